// Package view adapts the status engine for the two order-detail surfaces.
// Both render the same derived status and workflow; the admin variant
// additionally exposes the permitted forward transitions.
package view

import (
	"gitlab.ozon.dev/qwestard/storefront/internal/models"
	"gitlab.ozon.dev/qwestard/storefront/internal/status"
)

// CustomerOrderView is everything the customer order page needs beyond the
// raw record.
type CustomerOrderView struct {
	Order      *models.Order
	Status     status.FinalStatus
	Steps      []status.Step
	CanCancel  bool
	CanConfirm bool
}

func CustomerOrder(o *models.Order) CustomerOrderView {
	return CustomerOrderView{
		Order:      o,
		Status:     status.Derive(o),
		Steps:      status.WorkflowSteps(o),
		CanCancel:  status.CanCustomerCancel(o),
		CanConfirm: status.CanCustomerConfirmReceipt(o),
	}
}

// AdminOrderView extends the customer view with the admin transitions.
type AdminOrderView struct {
	CustomerOrderView
	CanAdvanceOrder    bool
	CanAdvanceDelivery bool
	NextOrderStages    []models.OrderStage
	NextDeliveryStages []models.DeliveryStage
}

func AdminOrder(o *models.Order) AdminOrderView {
	return AdminOrderView{
		CustomerOrderView:  CustomerOrder(o),
		CanAdvanceOrder:    status.CanAdminAdvanceOrder(o),
		CanAdvanceDelivery: status.CanAdminAdvanceDelivery(o),
		NextOrderStages:    status.NextOrderStages(o),
		NextDeliveryStages: status.NextDeliveryStages(o),
	}
}
