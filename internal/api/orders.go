package api

import (
	"context"
	"fmt"
	"net/http"

	"gitlab.ozon.dev/qwestard/storefront/internal/models"
)

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login authenticates and stores the returned token and profile in the
// session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", payload, &resp); err != nil {
		return nil, err
	}
	if err := c.session.SetSession(resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return resp.User, nil
}

// Logout revokes the token server-side and clears the session either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	if clearErr := c.session.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Orders fetches the customer's order list.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/user/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches one customer order with its line items.
func (c *Client) Order(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/orders/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

type customerActionRequest struct {
	StatusUserOrder models.CustomerAction `json:"status_user_order"`
	ReasonUserOrder string                `json:"reason_user_order,omitempty"`
}

// SubmitCustomerAction records the customer's terminal action. The reason
// accompanies cancellations only.
func (c *Client) SubmitCustomerAction(ctx context.Context, id int64, action models.CustomerAction, reason string) error {
	payload := customerActionRequest{StatusUserOrder: action, ReasonUserOrder: reason}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/user/orders/%d/status", id), payload, nil)
}

// AdminOrder fetches the admin view of one order.
func (c *Client) AdminOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/orders/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// SetOrderStage moves the fulfillment stage forward.
func (c *Client) SetOrderStage(ctx context.Context, id int64, stage models.OrderStage) error {
	payload := map[string]models.OrderStage{"status": stage}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", id), payload, nil)
}

// SetDeliveryStage moves the carrier stage forward.
func (c *Client) SetDeliveryStage(ctx context.Context, id int64, stage models.DeliveryStage) error {
	payload := map[string]models.DeliveryStage{"delivery_status": stage}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d/delivery-status", id), payload, nil)
}
