// Package status derives everything the order views display from the raw
// order record: the headline status, the progress workflow and the
// eligibility of the customer and admin transitions. All functions here are
// pure and total; network failures and authorization belong to the callers.
package status

import (
	"gitlab.ozon.dev/qwestard/storefront/internal/models"
)

// Tone selects the display color of a status badge.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneInfo
	ToneSuccess
	ToneWarning
	ToneDanger
)

func (t Tone) String() string {
	switch t {
	case ToneInfo:
		return "info"
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneDanger:
		return "danger"
	default:
		return "neutral"
	}
}

// Display labels. "Received by carrier" and "Received by customer" are
// deliberately distinct: the carrier accepting a parcel and the customer
// confirming receipt are different states even though the upstream product
// copy once used one string for both.
const (
	LabelAwaitingConfirmation = "Awaiting confirmation"
	LabelProcessing           = "Processing"
	LabelHandedToCarrier      = "Handed to carrier"
	LabelReceivedByCarrier    = "Received by carrier"
	LabelInTransit            = "In transit"
	LabelDelivered            = "Delivered"
	LabelReceived             = "Received"
	LabelReceivedByCustomer   = "Received by customer"
	LabelCancelled            = "Cancelled"
	LabelUnknown              = "Unknown"
)

// FinalStatus is the headline badge for an order.
type FinalStatus struct {
	Label string
	Tone  Tone
}

// Derive maps an order to its headline status. The rules form a priority
// table: the first matching row wins, and a cancellation recorded by the
// customer overrides everything else.
func Derive(o *models.Order) FinalStatus {
	if o.Cancelled() {
		return FinalStatus{LabelCancelled, ToneDanger}
	}
	if o.ReceiptConfirmed() && o.DeliveredToCustomer() {
		return FinalStatus{LabelReceived, ToneSuccess}
	}
	switch o.StatusOrder {
	case models.StageHandedToCarrier:
		if o.StatusDelivery == nil {
			return FinalStatus{LabelHandedToCarrier, ToneSuccess}
		}
		switch *o.StatusDelivery {
		case models.DeliveryDelivered:
			return FinalStatus{LabelDelivered, ToneSuccess}
		case models.DeliveryInTransit:
			return FinalStatus{LabelInTransit, ToneInfo}
		case models.DeliveryReceivedByCarrier:
			return FinalStatus{LabelReceivedByCarrier, ToneWarning}
		default:
			// Out-of-range delivery value from the backend; fall back to
			// the stage we do know.
			return FinalStatus{LabelHandedToCarrier, ToneSuccess}
		}
	case models.StageProcessing:
		return FinalStatus{LabelProcessing, ToneInfo}
	case models.StagePendingConfirmation:
		return FinalStatus{LabelAwaitingConfirmation, ToneWarning}
	default:
		return FinalStatus{LabelUnknown, ToneNeutral}
	}
}

// Step is one node of the rendered progress workflow.
type Step struct {
	Index     int
	Label     string
	Completed bool
	Active    bool
	Cancelled bool
}

var (
	baseStepLabels     = [...]string{LabelAwaitingConfirmation, LabelProcessing, LabelHandedToCarrier}
	deliveryStepLabels = [...]string{LabelReceivedByCarrier, LabelInTransit, LabelDelivered}
)

// WorkflowSteps builds the ordered workflow for an order: the three
// fulfillment steps, the three carrier steps once the order reached the
// carrier, and a terminal step when the customer has acted. Pure function of
// the order; identical input yields an identical sequence.
func WorkflowSteps(o *models.Order) []Step {
	cancelled := o.Cancelled()
	steps := make([]Step, 0, len(baseStepLabels)+len(deliveryStepLabels)+1)

	for i, label := range baseStepLabels {
		steps = append(steps, Step{
			Index:     len(steps),
			Label:     label,
			Completed: !cancelled && int(o.StatusOrder) >= i,
			Active:    !cancelled && int(o.StatusOrder) == i,
			Cancelled: cancelled,
		})
	}

	if o.StatusOrder == models.StageHandedToCarrier {
		for i, label := range deliveryStepLabels {
			reached := o.StatusDelivery != nil && int(*o.StatusDelivery) >= i
			at := o.StatusDelivery != nil && int(*o.StatusDelivery) == i
			steps = append(steps, Step{
				Index:     len(steps),
				Label:     label,
				Completed: !cancelled && reached,
				Active:    !cancelled && at,
				Cancelled: cancelled,
			})
		}
	}

	switch {
	case o.ReceiptConfirmed():
		steps = append(steps, Step{Index: len(steps), Label: LabelReceivedByCustomer, Completed: true})
	case cancelled:
		steps = append(steps, Step{Index: len(steps), Label: LabelCancelled, Completed: true, Active: true, Cancelled: true})
	}
	return steps
}

// CanCustomerCancel reports whether the cancellation window is still open:
// no customer action recorded yet, and the order has not reached the carrier
// (a processing order that somehow reports a completed delivery is also
// excluded). The backend re-checks; this only gates the button.
func CanCustomerCancel(o *models.Order) bool {
	if o.StatusUserOrder != nil {
		return false
	}
	switch o.StatusOrder {
	case models.StagePendingConfirmation:
		return true
	case models.StageProcessing:
		return o.StatusDelivery == nil || *o.StatusDelivery != models.DeliveryDelivered
	default:
		return false
	}
}

// CanCustomerConfirmReceipt reports whether the customer may confirm
// receipt: delivery completed and no customer action recorded yet.
func CanCustomerConfirmReceipt(o *models.Order) bool {
	return o.StatusUserOrder == nil &&
		o.StatusDelivery != nil && *o.StatusDelivery == models.DeliveryDelivered
}

// CanAdminAdvanceOrder reports whether the admin may still move the order
// stage forward. Closed once the order is cancelled, once delivery has
// completed, or once the final stage is reached.
func CanAdminAdvanceOrder(o *models.Order) bool {
	if o.Cancelled() {
		return false
	}
	if o.StatusDelivery != nil && *o.StatusDelivery >= models.DeliveryDelivered {
		return false
	}
	return o.StatusOrder < models.StageHandedToCarrier
}

// CanAdminAdvanceDelivery reports whether the admin may advance the carrier
// stage. Requires the order to be with the carrier and delivery not yet
// completed.
func CanAdminAdvanceDelivery(o *models.Order) bool {
	if o.Cancelled() {
		return false
	}
	if o.StatusOrder != models.StageHandedToCarrier {
		return false
	}
	return o.StatusDelivery == nil || *o.StatusDelivery < models.DeliveryDelivered
}

// NextOrderStages lists the order stages the admin may select next. The UI
// offers any strictly later stage, not just the immediate successor.
func NextOrderStages(o *models.Order) []models.OrderStage {
	if !CanAdminAdvanceOrder(o) {
		return nil
	}
	var out []models.OrderStage
	for s := o.StatusOrder + 1; s <= models.StageHandedToCarrier; s++ {
		out = append(out, s)
	}
	return out
}

// NextDeliveryStages lists the delivery stages the admin may select next.
// An order with the carrier but no delivery stage yet may enter at any of
// the three.
func NextDeliveryStages(o *models.Order) []models.DeliveryStage {
	if !CanAdminAdvanceDelivery(o) {
		return nil
	}
	start := models.DeliveryReceivedByCarrier
	if o.StatusDelivery != nil {
		start = *o.StatusDelivery + 1
	}
	var out []models.DeliveryStage
	for s := start; s <= models.DeliveryDelivered; s++ {
		out = append(out, s)
	}
	return out
}
