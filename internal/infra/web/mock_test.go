//go:build !integration

package web

import (
	"context"
	"sync"
	"time"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"

	"github.com/go-redis/redis/v8"
)

// --- In-memory redis for the session repo ---

type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case string:
		f.data[key] = v
	case []byte:
		f.data[key] = string(v)
	}
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Expire(ctx context.Context, key string, _ time.Duration) error { return nil }

func (f *fakeRedis) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeRedis) Close() error { return nil }

// --- Mock upstream gateways (Ports) ---

type mockAuthGateway struct {
	LoginFunc func(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error)
}

func (m *mockAuthGateway) Login(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &gateway.AuthResult{
		Token: "upstream-token",
		User:  model.User{ID: 7, Email: req.Email, FullName: "Test User", Balance: 500000},
	}, nil
}

func (m *mockAuthGateway) Register(ctx context.Context, req gateway.RegisterRequest) (string, error) {
	return "registered", nil
}

func (m *mockAuthGateway) Logout(ctx context.Context, token string) error { return nil }

func (m *mockAuthGateway) VerifyEmail(ctx context.Context, token string) (string, error) {
	return "verified", nil
}

func (m *mockAuthGateway) ResendVerification(ctx context.Context, email string) (string, error) {
	return "sent", nil
}

func (m *mockAuthGateway) ForgotPassword(ctx context.Context, email string) (string, error) {
	return "sent", nil
}

func (m *mockAuthGateway) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return "reset", nil
}

type mockUserGateway struct {
	ProfileFunc func(ctx context.Context) (*model.User, error)
}

func (m *mockUserGateway) Profile(ctx context.Context) (*model.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return &model.User{ID: 7, Email: "user@example.com", FullName: "Test User", PhoneNumber: "081234567890", Balance: 500000}, nil
}

func (m *mockUserGateway) UpdateProfile(ctx context.Context, upd gateway.ProfileUpdate) (*model.User, error) {
	return &model.User{ID: 7, Email: "user@example.com", FullName: upd.FullName, Balance: 500000}, nil
}

func (m *mockUserGateway) Balance(ctx context.Context) (int64, error) { return 500000, nil }

func (m *mockUserGateway) Transactions(ctx context.Context, page, limit int) ([]model.Transaction, *model.Pagination, error) {
	return nil, &model.Pagination{Page: page, Limit: limit}, nil
}

func (m *mockUserGateway) ChangePassword(ctx context.Context, chg gateway.PasswordChange) (string, error) {
	return "changed", nil
}

type mockTopUpGateway struct{}

func (m *mockTopUpGateway) Options(ctx context.Context) (*model.TopUpOptions, error) {
	return &model.TopUpOptions{
		Amounts: []model.TopUpOption{{Amount: 50000, Label: "50rb"}},
		PaymentMethods: []model.PaymentMethod{
			{Code: "QRIS", Name: "QRIS", Type: model.MethodQRIS, Fee: 1},
		},
		MinAmount: 10000,
		MaxAmount: 5000000,
	}, nil
}

func (m *mockTopUpGateway) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*model.PendingOrder, error) {
	return &model.PendingOrder{OrderID: "TU-777", Amount: req.Amount, PaymentMethod: req.PaymentMethod}, nil
}

func (m *mockTopUpGateway) PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error) {
	return &model.PaymentStatus{OrderID: orderID, RawStatus: "PENDING", State: model.PaymentPending}, nil
}

func (m *mockTopUpGateway) History(ctx context.Context, page, limit int) ([]model.TopUpHistoryEntry, *model.Pagination, error) {
	return nil, &model.Pagination{Page: page, Limit: limit}, nil
}

type mockCatalogGateway struct{}

func (m *mockCatalogGateway) Categories(ctx context.Context) ([]model.Category, error) {
	return []model.Category{{ID: 1, Name: "Pulsa", Slug: "pulsa", IsActive: true}}, nil
}

func (m *mockCatalogGateway) Providers(ctx context.Context, categoryID int64) ([]model.Provider, error) {
	return []model.Provider{{ID: 11, Name: "Telkomsel", BrandCode: "TSEL", IsActive: true}}, nil
}

func (m *mockCatalogGateway) Products(ctx context.Context, providerID, categoryID int64) ([]model.Product, error) {
	return []model.Product{{ID: 101, ProductName: "Pulsa 50rb", SKUCode: "TSEL50", FinalPrice: 51500}}, nil
}

func (m *mockCatalogGateway) Product(ctx context.Context, productID int64) (*model.Product, error) {
	if productID != 101 {
		return nil, domain.ErrNotFound
	}
	return &model.Product{ID: 101, ProductName: "Pulsa 50rb", SKUCode: "TSEL50", FinalPrice: 51500}, nil
}

func (m *mockCatalogGateway) CreateTransaction(ctx context.Context, req gateway.CreateTransactionRequest) (*gateway.CreateTransactionResult, error) {
	return &gateway.CreateTransactionResult{TransactionID: "TRX-777"}, nil
}

func (m *mockCatalogGateway) CreatePayment(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.CreatePaymentResult, error) {
	return &gateway.CreatePaymentResult{Status: "paid", TransactionID: req.TransactionID}, nil
}

func (m *mockCatalogGateway) PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error) {
	return &model.PaymentStatus{OrderID: orderID, State: model.PaymentPending}, nil
}
