package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.ozon.dev/qwestard/storefront/internal/models"
	"gitlab.ozon.dev/qwestard/storefront/internal/status"
)

func dlv(s models.DeliveryStage) *models.DeliveryStage { return &s }

func act(a models.CustomerAction) *models.CustomerAction { return &a }

func order(stage models.OrderStage, delivery *models.DeliveryStage, action *models.CustomerAction) *models.Order {
	return &models.Order{ID: 1, StatusOrder: stage, StatusDelivery: delivery, StatusUserOrder: action}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name  string
		order *models.Order
		label string
		tone  status.Tone
	}{
		{"awaiting confirmation", order(models.StagePendingConfirmation, nil, nil), status.LabelAwaitingConfirmation, status.ToneWarning},
		{"processing", order(models.StageProcessing, nil, nil), status.LabelProcessing, status.ToneInfo},
		{"handed to carrier, no delivery stage", order(models.StageHandedToCarrier, nil, nil), status.LabelHandedToCarrier, status.ToneSuccess},
		{"received by carrier", order(models.StageHandedToCarrier, dlv(models.DeliveryReceivedByCarrier), nil), status.LabelReceivedByCarrier, status.ToneWarning},
		{"in transit", order(models.StageHandedToCarrier, dlv(models.DeliveryInTransit), nil), status.LabelInTransit, status.ToneInfo},
		{"delivered", order(models.StageHandedToCarrier, dlv(models.DeliveryDelivered), nil), status.LabelDelivered, status.ToneSuccess},
		{"receipt confirmed", order(models.StageHandedToCarrier, dlv(models.DeliveryDelivered), act(models.ActionConfirmedReceipt)), status.LabelReceived, status.ToneSuccess},
		{"cancelled while pending", order(models.StagePendingConfirmation, nil, act(models.ActionCancelled)), status.LabelCancelled, status.ToneDanger},
		{"out-of-range order stage", order(models.OrderStage(7), nil, nil), status.LabelUnknown, status.ToneNeutral},
		{"negative order stage", order(models.OrderStage(-1), nil, nil), status.LabelUnknown, status.ToneNeutral},
		{"out-of-range delivery stage", order(models.StageHandedToCarrier, dlv(models.DeliveryStage(5)), nil), status.LabelHandedToCarrier, status.ToneSuccess},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := status.Derive(tc.order)
			assert.Equal(t, tc.label, fs.Label)
			assert.Equal(t, tc.tone, fs.Tone)
		})
	}
}

// A recorded cancellation overrides every other state, including a fully
// delivered order.
func TestDeriveCancellationOverrides(t *testing.T) {
	for stage := models.OrderStage(0); stage <= models.StageHandedToCarrier; stage++ {
		for _, delivery := range []*models.DeliveryStage{nil, dlv(0), dlv(1), dlv(2)} {
			fs := status.Derive(order(stage, delivery, act(models.ActionCancelled)))
			assert.Equal(t, status.LabelCancelled, fs.Label)
			assert.Equal(t, status.ToneDanger, fs.Tone)
		}
	}
}

// Derive is total: every combination in and around the documented domains
// produces a defined label, and only genuinely out-of-range order stages
// fall through to Unknown.
func TestDeriveTotal(t *testing.T) {
	deliveries := []*models.DeliveryStage{nil}
	for d := models.DeliveryStage(-1); d <= 3; d++ {
		deliveries = append(deliveries, dlv(d))
	}
	actions := []*models.CustomerAction{nil, act(models.ActionConfirmedReceipt), act(models.ActionCancelled)}

	for stage := models.OrderStage(-1); stage <= 3; stage++ {
		for _, delivery := range deliveries {
			for _, action := range actions {
				o := order(stage, delivery, action)
				fs := status.Derive(o)
				assert.NotEmpty(t, fs.Label)
				if fs.Label == status.LabelUnknown {
					assert.False(t, stage.Valid(), "valid stage %d fell through to Unknown", stage)
					assert.False(t, o.Cancelled())
				}
			}
		}
	}
}

func TestWorkflowStepsBasePipeline(t *testing.T) {
	steps := status.WorkflowSteps(order(models.StageProcessing, nil, nil))
	assert.Len(t, steps, 3)

	assert.Equal(t, status.LabelAwaitingConfirmation, steps[0].Label)
	assert.True(t, steps[0].Completed)
	assert.False(t, steps[0].Active)

	assert.Equal(t, status.LabelProcessing, steps[1].Label)
	assert.True(t, steps[1].Completed)
	assert.True(t, steps[1].Active)

	assert.Equal(t, status.LabelHandedToCarrier, steps[2].Label)
	assert.False(t, steps[2].Completed)
	assert.False(t, steps[2].Active)

	for i, s := range steps {
		assert.Equal(t, i, s.Index)
		assert.False(t, s.Cancelled)
	}
}

func TestWorkflowStepsDeliverySubSteps(t *testing.T) {
	steps := status.WorkflowSteps(order(models.StageHandedToCarrier, dlv(models.DeliveryInTransit), nil))
	assert.Len(t, steps, 6)

	for i := 0; i < 3; i++ {
		assert.True(t, steps[i].Completed)
	}
	assert.True(t, steps[2].Active, "carrier handoff is the active base step")

	assert.Equal(t, status.LabelReceivedByCarrier, steps[3].Label)
	assert.True(t, steps[3].Completed)
	assert.Equal(t, status.LabelInTransit, steps[4].Label)
	assert.True(t, steps[4].Completed)
	assert.True(t, steps[4].Active)
	assert.Equal(t, status.LabelDelivered, steps[5].Label)
	assert.False(t, steps[5].Completed)
}

func TestWorkflowStepsNoDeliveryStageYet(t *testing.T) {
	steps := status.WorkflowSteps(order(models.StageHandedToCarrier, nil, nil))
	assert.Len(t, steps, 6)
	for _, s := range steps[3:] {
		assert.False(t, s.Completed)
		assert.False(t, s.Active)
	}
}

func TestWorkflowStepsTerminalReceipt(t *testing.T) {
	steps := status.WorkflowSteps(order(models.StageHandedToCarrier, dlv(models.DeliveryDelivered), act(models.ActionConfirmedReceipt)))
	assert.Len(t, steps, 7)
	last := steps[len(steps)-1]
	assert.Equal(t, status.LabelReceivedByCustomer, last.Label)
	assert.True(t, last.Completed)
	assert.False(t, last.Active)
	assert.False(t, last.Cancelled)
}

func TestWorkflowStepsCancelled(t *testing.T) {
	steps := status.WorkflowSteps(order(models.StageProcessing, nil, act(models.ActionCancelled)))
	assert.Len(t, steps, 4)

	for _, s := range steps[:3] {
		assert.True(t, s.Cancelled)
		assert.False(t, s.Completed, "cancelled orders render no progress")
		assert.False(t, s.Active)
	}
	last := steps[3]
	assert.Equal(t, status.LabelCancelled, last.Label)
	assert.True(t, last.Completed)
	assert.True(t, last.Active)
	assert.True(t, last.Cancelled)
}

func TestWorkflowStepsDeterministic(t *testing.T) {
	o := order(models.StageHandedToCarrier, dlv(models.DeliveryInTransit), nil)
	assert.Equal(t, status.WorkflowSteps(o), status.WorkflowSteps(o))
}

// End-to-end scenarios for one order record each: headline status plus
// both customer eligibility flags.
func TestCustomerScenarios(t *testing.T) {
	tests := []struct {
		name       string
		order      *models.Order
		label      string
		canCancel  bool
		canConfirm bool
	}{
		{"fresh order", order(models.StagePendingConfirmation, nil, nil), status.LabelAwaitingConfirmation, true, false},
		{"delivered, awaiting confirmation", order(models.StageHandedToCarrier, dlv(models.DeliveryDelivered), nil), status.LabelDelivered, false, true},
		{"receipt confirmed", order(models.StageHandedToCarrier, dlv(models.DeliveryDelivered), act(models.ActionConfirmedReceipt)), status.LabelReceived, false, false},
		{"cancelled while processing", &models.Order{StatusOrder: models.StageProcessing, StatusUserOrder: act(models.ActionCancelled), ReasonUserOrder: "changed mind"}, status.LabelCancelled, false, false},
		{"still processing", order(models.StageProcessing, nil, nil), status.LabelProcessing, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.label, status.Derive(tc.order).Label)
			assert.Equal(t, tc.canCancel, status.CanCustomerCancel(tc.order))
			assert.Equal(t, tc.canConfirm, status.CanCustomerConfirmReceipt(tc.order))
		})
	}
}

// No order state may be simultaneously cancel- and confirm-eligible.
func TestEligibilityMutuallyExclusive(t *testing.T) {
	deliveries := []*models.DeliveryStage{nil, dlv(0), dlv(1), dlv(2)}
	actions := []*models.CustomerAction{nil, act(models.ActionConfirmedReceipt), act(models.ActionCancelled)}
	for stage := models.OrderStage(0); stage <= models.StageHandedToCarrier; stage++ {
		for _, delivery := range deliveries {
			for _, action := range actions {
				o := order(stage, delivery, action)
				both := status.CanCustomerCancel(o) && status.CanCustomerConfirmReceipt(o)
				assert.False(t, both, "stage=%d delivery=%v action=%v", stage, delivery, action)
			}
		}
	}
}

func TestAdminAdvanceOrder(t *testing.T) {
	assert.True(t, status.CanAdminAdvanceOrder(order(models.StagePendingConfirmation, nil, nil)))
	assert.True(t, status.CanAdminAdvanceOrder(order(models.StageProcessing, nil, nil)))
	assert.False(t, status.CanAdminAdvanceOrder(order(models.StageHandedToCarrier, nil, nil)), "final stage has no successor")
	assert.False(t, status.CanAdminAdvanceOrder(order(models.StageProcessing, dlv(models.DeliveryDelivered), nil)), "completed delivery freezes the order stage")
	assert.False(t, status.CanAdminAdvanceOrder(order(models.StagePendingConfirmation, nil, act(models.ActionCancelled))), "cancellation is terminal")

	assert.Equal(t,
		[]models.OrderStage{models.StageProcessing, models.StageHandedToCarrier},
		status.NextOrderStages(order(models.StagePendingConfirmation, nil, nil)))
	assert.Equal(t,
		[]models.OrderStage{models.StageHandedToCarrier},
		status.NextOrderStages(order(models.StageProcessing, nil, nil)))
	assert.Nil(t, status.NextOrderStages(order(models.StageHandedToCarrier, nil, nil)))
}

func TestAdminAdvanceDelivery(t *testing.T) {
	assert.False(t, status.CanAdminAdvanceDelivery(order(models.StageProcessing, nil, nil)), "delivery needs the carrier handoff first")
	assert.True(t, status.CanAdminAdvanceDelivery(order(models.StageHandedToCarrier, nil, nil)))
	assert.True(t, status.CanAdminAdvanceDelivery(order(models.StageHandedToCarrier, dlv(models.DeliveryInTransit), nil)))
	assert.False(t, status.CanAdminAdvanceDelivery(order(models.StageHandedToCarrier, dlv(models.DeliveryDelivered), nil)))
	assert.False(t, status.CanAdminAdvanceDelivery(order(models.StageHandedToCarrier, nil, act(models.ActionCancelled))))

	assert.Equal(t,
		[]models.DeliveryStage{models.DeliveryReceivedByCarrier, models.DeliveryInTransit, models.DeliveryDelivered},
		status.NextDeliveryStages(order(models.StageHandedToCarrier, nil, nil)))
	assert.Equal(t,
		[]models.DeliveryStage{models.DeliveryDelivered},
		status.NextDeliveryStages(order(models.StageHandedToCarrier, dlv(models.DeliveryInTransit), nil)))
	assert.Nil(t, status.NextDeliveryStages(order(models.StageHandedToCarrier, dlv(models.DeliveryDelivered), nil)))
}
