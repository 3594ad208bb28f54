package gateway

import (
	"context"

	"ppob-dashboard/internal/domain/model"
)

type CreateOrderRequest struct {
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
}

// TopUpGateway wraps the backend's top-up endpoints.
//
// CreateOrder is NOT idempotent: a blind retry creates a second order, so the
// caller must never re-issue it automatically. Options and PaymentStatus are
// read-only and safe to repeat.
type TopUpGateway interface {
	Options(ctx context.Context) (*model.TopUpOptions, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.PendingOrder, error)
	PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error)
	History(ctx context.Context, page, limit int) ([]model.TopUpHistoryEntry, *model.Pagination, error)
}
