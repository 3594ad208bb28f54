package gateway

import (
	"context"

	"ppob-dashboard/internal/domain/model"
)

// CatalogGateway wraps the backend's product catalog endpoints. All reads.
type CatalogGateway interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Providers(ctx context.Context, categoryID int64) ([]model.Provider, error)
	Products(ctx context.Context, providerID, categoryID int64) ([]model.Product, error)
	Product(ctx context.Context, productID int64) (*model.Product, error)
}

type CreateTransactionRequest struct {
	ProductID    int64  `json:"product_id"`
	TargetNumber string `json:"target_number"`
}

type CreateTransactionResult struct {
	Message       string            `json:"message"`
	Transaction   model.Transaction `json:"transaction"`
	ProductName   string            `json:"product_name"`
	ProviderName  string            `json:"provider_name"`
	CategoryName  string            `json:"category_name"`
	TransactionID string            `json:"transaction_id"`
}

type CreatePaymentRequest struct {
	TransactionID string `json:"transaction_id"`
	PaymentMethod string `json:"payment_method"`
}

type CreatePaymentResult struct {
	Message       string `json:"message"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	NewBalance    *int64 `json:"new_balance,omitempty"`
	Processing    bool   `json:"processing,omitempty"`
}

// PurchaseGateway wraps the wizard's two-call submission. The two calls are
// not transactional upstream: CreateTransaction may succeed and CreatePayment
// fail, leaving an unresolved transaction visible only through history.
type PurchaseGateway interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*CreateTransactionResult, error)
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResult, error)
	PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error)
}
