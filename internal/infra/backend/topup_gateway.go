package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
)

var _ gateway.TopUpGateway = (*TopUpClient)(nil)

type TopUpClient struct {
	c *Client
}

func NewTopUpClient(c *Client) *TopUpClient { return &TopUpClient{c: c} }

func (t *TopUpClient) Options(ctx context.Context) (*model.TopUpOptions, error) {
	var out model.TopUpOptions
	if err := t.c.do(ctx, http.MethodGet, "/topup/options", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TopUpClient) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*model.PendingOrder, error) {
	var out struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		Data    model.PendingOrder `json:"data"`
	}
	if err := t.c.do(ctx, http.MethodPost, "/topup/create", nil, req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (t *TopUpClient) PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error) {
	var out struct {
		Success       bool   `json:"success"`
		Status        string `json:"status"`
		OrderID       string `json:"orderId"`
		Amount        int64  `json:"amount"`
		PaymentMethod string `json:"paymentMethod"`
		Message       string `json:"message"`
	}
	if err := t.c.do(ctx, http.MethodGet, "/topup/payment-status/"+url.PathEscape(orderID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &model.PaymentStatus{
		OrderID:       out.OrderID,
		RawStatus:     out.Status,
		State:         model.MapPaymentStatus(out.Status),
		Amount:        out.Amount,
		PaymentMethod: out.PaymentMethod,
		Message:       out.Message,
	}, nil
}

func (t *TopUpClient) History(ctx context.Context, page, limit int) ([]model.TopUpHistoryEntry, *model.Pagination, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var out struct {
		Success    bool                      `json:"success"`
		History    []model.TopUpHistoryEntry `json:"history"`
		Pagination model.Pagination          `json:"pagination"`
	}
	if err := t.c.do(ctx, http.MethodGet, "/topup/history", q, nil, &out); err != nil {
		return nil, nil, err
	}
	return out.History, &out.Pagination, nil
}
