// Package service orchestrates the status mutations: it gates each action
// on the engine's eligibility predicates, submits it, and re-fetches the
// order so the displayed state always comes from the backend. Nothing is
// mutated optimistically.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gitlab.ozon.dev/qwestard/storefront/internal/audit"
	"gitlab.ozon.dev/qwestard/storefront/internal/cache"
	"gitlab.ozon.dev/qwestard/storefront/internal/models"
	"gitlab.ozon.dev/qwestard/storefront/internal/session"
	"gitlab.ozon.dev/qwestard/storefront/internal/status"
)

var (
	ErrReasonRequired = errors.New("cancellation reason is required")
	ErrNotEligible    = errors.New("action is not permitted in the order's current state")
	ErrInvalidTarget  = errors.New("target stage is not a permitted transition")
)

// Backend is the slice of the API client the service needs; implemented by
// api.Client.
type Backend interface {
	Order(ctx context.Context, id int64) (*models.Order, error)
	AdminOrder(ctx context.Context, id int64) (*models.Order, error)
	SubmitCustomerAction(ctx context.Context, id int64, action models.CustomerAction, reason string) error
	SetOrderStage(ctx context.Context, id int64, stage models.OrderStage) error
	SetDeliveryStage(ctx context.Context, id int64, stage models.DeliveryStage) error
}

// Journal receives one record per issued mutation; implemented by
// audit.WorkerPool.
type Journal interface {
	Log(audit.Record)
}

type OrderService struct {
	backend Backend
	cache   *cache.OrderCache
	journal Journal
	session *session.Store
}

func NewOrderService(backend Backend, orderCache *cache.OrderCache, journal Journal, sess *session.Store) *OrderService {
	return &OrderService{
		backend: backend,
		cache:   orderCache,
		journal: journal,
		session: sess,
	}
}

// Order returns the customer view of an order, serving from the view cache
// when possible.
func (s *OrderService) Order(ctx context.Context, id int64) (*models.Order, error) {
	if o, ok := s.cache.Get(id); ok {
		return o, nil
	}
	o, err := s.backend.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(o)
	return o, nil
}

// AdminOrder returns the admin view of an order, serving from the view
// cache when possible.
func (s *OrderService) AdminOrder(ctx context.Context, id int64) (*models.Order, error) {
	if o, ok := s.cache.Get(id); ok {
		return o, nil
	}
	o, err := s.backend.AdminOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(o)
	return o, nil
}

// CancelOrder records the customer's cancellation with its reason and
// returns the re-fetched order.
func (s *OrderService) CancelOrder(ctx context.Context, id int64, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	o, err := s.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.CanCustomerCancel(o) {
		return nil, fmt.Errorf("cancel order %d: %w", id, ErrNotEligible)
	}

	if err := s.backend.SubmitCustomerAction(ctx, id, models.ActionCancelled, reason); err != nil {
		return nil, fmt.Errorf("cancel order %d: %w", id, err)
	}
	return s.refetchUser(ctx, id, o, "cancel", reason)
}

// ConfirmReceipt records the customer's receipt confirmation and returns
// the re-fetched order.
func (s *OrderService) ConfirmReceipt(ctx context.Context, id int64) (*models.Order, error) {
	o, err := s.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.CanCustomerConfirmReceipt(o) {
		return nil, fmt.Errorf("confirm receipt of order %d: %w", id, ErrNotEligible)
	}

	if err := s.backend.SubmitCustomerAction(ctx, id, models.ActionConfirmedReceipt, ""); err != nil {
		return nil, fmt.Errorf("confirm receipt of order %d: %w", id, err)
	}
	return s.refetchUser(ctx, id, o, "confirm_receipt", "")
}

// AdvanceOrderStatus moves the fulfillment stage to target, which must be a
// permitted forward jump.
func (s *OrderService) AdvanceOrderStatus(ctx context.Context, id int64, target models.OrderStage) (*models.Order, error) {
	o, err := s.AdminOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.CanAdminAdvanceOrder(o) {
		return nil, fmt.Errorf("advance order %d: %w", id, ErrNotEligible)
	}
	if !containsStage(status.NextOrderStages(o), target) {
		return nil, fmt.Errorf("advance order %d to %s: %w", id, target, ErrInvalidTarget)
	}

	if err := s.backend.SetOrderStage(ctx, id, target); err != nil {
		return nil, fmt.Errorf("advance order %d: %w", id, err)
	}
	return s.refetchAdmin(ctx, id, o, "advance_order_status")
}

// AdvanceDeliveryStatus moves the carrier stage to target, which must be a
// permitted forward jump.
func (s *OrderService) AdvanceDeliveryStatus(ctx context.Context, id int64, target models.DeliveryStage) (*models.Order, error) {
	o, err := s.AdminOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.CanAdminAdvanceDelivery(o) {
		return nil, fmt.Errorf("advance delivery of order %d: %w", id, ErrNotEligible)
	}
	if !containsDelivery(status.NextDeliveryStages(o), target) {
		return nil, fmt.Errorf("advance delivery of order %d to %s: %w", id, target, ErrInvalidTarget)
	}

	if err := s.backend.SetDeliveryStage(ctx, id, target); err != nil {
		return nil, fmt.Errorf("advance delivery of order %d: %w", id, err)
	}
	return s.refetchAdmin(ctx, id, o, "advance_delivery_status")
}

func (s *OrderService) refetchUser(ctx context.Context, id int64, before *models.Order, action, note string) (*models.Order, error) {
	fresh, err := s.backend.Order(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("re-fetch order %d: %w", id, err)
	}
	s.finish(before, fresh, action, note)
	return fresh, nil
}

func (s *OrderService) refetchAdmin(ctx context.Context, id int64, before *models.Order, action string) (*models.Order, error) {
	fresh, err := s.backend.AdminOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("re-fetch order %d: %w", id, err)
	}
	s.finish(before, fresh, action, "")
	return fresh, nil
}

func (s *OrderService) finish(before, after *models.Order, action, note string) {
	s.cache.Put(after)
	s.journal.Log(audit.Record{
		Timestamp: time.Now().UTC(),
		Actor:     s.actor(),
		OrderID:   after.ID,
		Action:    action,
		OldStatus: status.Derive(before).Label,
		NewStatus: status.Derive(after).Label,
		Note:      note,
	})
}

func (s *OrderService) actor() string {
	if u := s.session.User(); u != nil {
		return u.Email
	}
	return "anonymous"
}

func containsStage(stages []models.OrderStage, target models.OrderStage) bool {
	for _, s := range stages {
		if s == target {
			return true
		}
	}
	return false
}

func containsDelivery(stages []models.DeliveryStage, target models.DeliveryStage) bool {
	for _, s := range stages {
		if s == target {
			return true
		}
	}
	return false
}
