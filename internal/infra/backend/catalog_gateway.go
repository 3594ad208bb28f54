package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
)

var (
	_ gateway.CatalogGateway  = (*CatalogClient)(nil)
	_ gateway.PurchaseGateway = (*CatalogClient)(nil)
)

// CatalogClient serves both catalog reads and the wizard's purchase calls;
// upstream they live under the same product/transaction API.
type CatalogClient struct {
	c *Client
}

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

func (g *CatalogClient) Categories(ctx context.Context) ([]model.Category, error) {
	var out struct {
		Categories []model.Category `json:"categories"`
	}
	if err := g.c.do(ctx, http.MethodGet, "/products/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (g *CatalogClient) Providers(ctx context.Context, categoryID int64) ([]model.Provider, error) {
	var out struct {
		Providers []model.Provider `json:"providers"`
	}
	path := fmt.Sprintf("/products/categories/%d/providers", categoryID)
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Providers, nil
}

func (g *CatalogClient) Products(ctx context.Context, providerID, categoryID int64) ([]model.Product, error) {
	var q url.Values
	if categoryID > 0 {
		q = url.Values{"categoryId": []string{strconv.FormatInt(categoryID, 10)}}
	}
	var out struct {
		Products []model.Product `json:"products"`
	}
	path := fmt.Sprintf("/products/providers/%d/products", providerID)
	if err := g.c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (g *CatalogClient) Product(ctx context.Context, productID int64) (*model.Product, error) {
	var out struct {
		Product model.Product `json:"product"`
	}
	path := fmt.Sprintf("/products/%d", productID)
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (g *CatalogClient) CreateTransaction(ctx context.Context, req gateway.CreateTransactionRequest) (*gateway.CreateTransactionResult, error) {
	var out struct {
		Message     string            `json:"message"`
		Transaction model.Transaction `json:"transaction"`
		Product     struct {
			Name     string `json:"name"`
			Provider string `json:"provider"`
			Category string `json:"category"`
		} `json:"product"`
	}
	if err := g.c.do(ctx, http.MethodPost, "/transactions/create", nil, req, &out); err != nil {
		return nil, err
	}
	return &gateway.CreateTransactionResult{
		Message:       out.Message,
		Transaction:   out.Transaction,
		ProductName:   out.Product.Name,
		ProviderName:  out.Product.Provider,
		CategoryName:  out.Product.Category,
		TransactionID: out.Transaction.TransactionID,
	}, nil
}

func (g *CatalogClient) CreatePayment(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.CreatePaymentResult, error) {
	var out gateway.CreatePaymentResult
	if err := g.c.do(ctx, http.MethodPost, "/payment/create", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *CatalogClient) PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error) {
	var out struct {
		Success       bool   `json:"success"`
		Status        string `json:"status"`
		OrderID       string `json:"orderId"`
		Amount        int64  `json:"amount"`
		PaymentMethod string `json:"paymentMethod"`
		Message       string `json:"message"`
	}
	if err := g.c.do(ctx, http.MethodGet, "/payment/status/"+url.PathEscape(orderID), nil, nil, &out); err != nil {
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
