// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/infra/i18n"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func newTestTranslator() *i18n.Translator {
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "id")
	if err != nil {
		panic(err)
	}
	return tr
}

func testOptions() *model.TopUpOptions {
	return &model.TopUpOptions{
		Amounts: []model.TopUpOption{
			{Amount: 50000, Label: "50rb", Popular: true},
			{Amount: 100000, Label: "100rb"},
		},
		PaymentMethods: []model.PaymentMethod{
			{Code: "QRIS", Name: "QRIS", Type: model.MethodQRIS, Fee: 1},
			{Code: "VA_BCA", Name: "BCA Virtual Account", Type: model.MethodBankTransfer, Fee: 4000},
		},
		MinAmount: 10000,
		MaxAmount: 5000000,
	}
}

// mockTopUpGateway is a small in-memory implementation used by unit tests.
type mockTopUpGateway struct {
	mu sync.Mutex

	OptionsFunc       func(ctx context.Context) (*model.TopUpOptions, error)
	CreateOrderFunc   func(ctx context.Context, req gateway.CreateOrderRequest) (*model.PendingOrder, error)
	PaymentStatusFunc func(ctx context.Context, orderID string) (*model.PaymentStatus, error)
	HistoryFunc       func(ctx context.Context, page, limit int) ([]model.TopUpHistoryEntry, *model.Pagination, error)

	optionsCalls       int
	createOrderCalls   int
	paymentStatusCalls int
	inFlight           int
	maxInFlight        int
}

func (m *mockTopUpGateway) Options(ctx context.Context) (*model.TopUpOptions, error) {
	m.mu.Lock()
	m.optionsCalls++
	fn := m.OptionsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return testOptions(), nil
}

func (m *mockTopUpGateway) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*model.PendingOrder, error) {
	m.mu.Lock()
	m.createOrderCalls++
	fn := m.CreateOrderFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &model.PendingOrder{
		OrderID:       "TU-001",
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}, nil
}

func (m *mockTopUpGateway) PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error) {
	m.mu.Lock()
	m.paymentStatusCalls++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	fn := m.PaymentStatusFunc
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if fn != nil {
		return fn(ctx, orderID)
	}
	return &model.PaymentStatus{OrderID: orderID, RawStatus: "PENDING", State: model.PaymentPending}, nil
}

func (m *mockTopUpGateway) History(ctx context.Context, page, limit int) ([]model.TopUpHistoryEntry, *model.Pagination, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, page, limit)
	}
	return nil, &model.Pagination{Page: page, Limit: limit}, nil
}

func (m *mockTopUpGateway) counts() (options, creates, polls, maxInFlight int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.optionsCalls, m.createOrderCalls, m.paymentStatusCalls, m.maxInFlight
}

// mockBalanceStore tracks refreshes; Refresh signals refreshed so tests can
// wait for the fire-and-forget goroutine.
type mockBalanceStore struct {
	mu        sync.Mutex
	balance   int64
	refreshes int
	refreshed chan struct{}
	RefreshFn func(ctx context.Context) error
}

func newMockBalanceStore(balance int64) *mockBalanceStore {
	return &mockBalanceStore{balance: balance, refreshed: make(chan struct{}, 8)}
}

func (m *mockBalanceStore) Balance() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

func (m *mockBalanceStore) Set(balance int64) {
	m.mu.Lock()
	m.balance = balance
	m.mu.Unlock()
}

func (m *mockBalanceStore) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.refreshes++
	fn := m.RefreshFn
	m.mu.Unlock()
	select {
	case m.refreshed <- struct{}{}:
	default:
	}
	if fn != nil {
		return fn(ctx)
	}
	return nil
}

func (m *mockBalanceStore) Subscribe(func(int64)) {}

func (m *mockBalanceStore) refreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

// mockToaster records pushed toasts per session.
type mockToaster struct {
	mu     sync.Mutex
	pushed []model.Toast
}

func (m *mockToaster) Push(sessionID string, t model.Toast) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushed = append(m.pushed, t)
}

func (m *mockToaster) Drain(sessionID string) []model.Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pushed
	m.pushed = nil
	return out
}

func (m *mockToaster) all() []model.Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Toast(nil), m.pushed...)
}

func (m *mockToaster) titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, t := range m.pushed {
		out = append(out, t.Title)
	}
	return out
}

// mockCatalogGateway implements both CatalogGateway and PurchaseGateway.
type mockCatalogGateway struct {
	mu sync.Mutex

	CategoriesFunc        func(ctx context.Context) ([]model.Category, error)
	ProvidersFunc         func(ctx context.Context, categoryID int64) ([]model.Provider, error)
	ProductsFunc          func(ctx context.Context, providerID, categoryID int64) ([]model.Product, error)
	CreateTransactionFunc func(ctx context.Context, req gateway.CreateTransactionRequest) (*gateway.CreateTransactionResult, error)
	CreatePaymentFunc     func(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.CreatePaymentResult, error)

	categoriesCalls int
	txnCalls        int
	payCalls        int
}

func (m *mockCatalogGateway) Categories(ctx context.Context) ([]model.Category, error) {
	m.mu.Lock()
	m.categoriesCalls++
	fn := m.CategoriesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return []model.Category{{ID: 1, Name: "Pulsa", Slug: "pulsa", IsActive: true}}, nil
}

func (m *mockCatalogGateway) Providers(ctx context.Context, categoryID int64) ([]model.Provider, error) {
	if m.ProvidersFunc != nil {
		return m.ProvidersFunc(ctx, categoryID)
	}
	return []model.Provider{{ID: 11, Name: "Telkomsel", BrandCode: "TSEL", IsActive: true}}, nil
}

func (m *mockCatalogGateway) Products(ctx context.Context, providerID, categoryID int64) ([]model.Product, error) {
	if m.ProductsFunc != nil {
		return m.ProductsFunc(ctx, providerID, categoryID)
	}
	return []model.Product{{ID: 101, ProductName: "Pulsa 50rb", SKUCode: "TSEL50", FinalPrice: 51500}}, nil
}

func (m *mockCatalogGateway) Product(ctx context.Context, productID int64) (*model.Product, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalogGateway) CreateTransaction(ctx context.Context, req gateway.CreateTransactionRequest) (*gateway.CreateTransactionResult, error) {
	m.mu.Lock()
	m.txnCalls++
	fn := m.CreateTransactionFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &gateway.CreateTransactionResult{TransactionID: "TRX-001"}, nil
}

func (m *mockCatalogGateway) CreatePayment(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.CreatePaymentResult, error) {
	m.mu.Lock()
	m.payCalls++
	fn := m.CreatePaymentFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &gateway.CreatePaymentResult{Status: "paid", TransactionID: req.TransactionID}, nil
}

func (m *mockCatalogGateway) PaymentStatus(ctx context.Context, orderID string) (*model.PaymentStatus, error) {
	return &model.PaymentStatus{OrderID: orderID, State: model.PaymentPending}, nil
}

func (m *mockCatalogGateway) calls() (categories, txns, pays int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoriesCalls, m.txnCalls, m.payCalls
}

// mockSessionStore is an in-memory SessionStore.
type mockSessionStore struct {
	mu   sync.Mutex
	sess *model.Session
}

func (m *mockSessionStore) Current(ctx context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	cp := *m.sess
	return &cp, nil
}

func (m *mockSessionStore) Login(ctx context.Context, sess *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sess
	m.sess = &cp
	return nil
}

func (m *mockSessionStore) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}

func (m *mockSessionStore) UpdateUser(ctx context.Context, u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return domain.ErrUnauthenticated
	}
	m.sess.User = u
	return nil
}

func (m *mockSessionStore) Subscribe(func(*model.Session)) {}

// mockAuthGateway implements gateway.AuthGateway.
type mockAuthGateway struct {
	LoginFunc  func(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error)
	logoutMu   sync.Mutex
	logedOut   []string
	LogoutFunc func(ctx context.Context, token string) error
}

func (m *mockAuthGateway) Login(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &gateway.AuthResult{
		Token: "tok-abc",
		User:  model.User{ID: 7, Email: req.Email, Balance: 150000},
	}, nil
}

func (m *mockAuthGateway) Register(ctx context.Context, req gateway.RegisterRequest) (string, error) {
	return "registered", nil
}

func (m *mockAuthGateway) Logout(ctx context.Context, token string) error {
	m.logoutMu.Lock()
	m.logedOut = append(m.logedOut, token)
	m.logoutMu.Unlock()
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

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

// mockUserGateway implements gateway.UserGateway.
type mockUserGateway struct {
	ProfileFunc func(ctx context.Context) (*model.User, error)
	BalanceFunc func(ctx context.Context) (int64, error)
}

func (m *mockUserGateway) Profile(ctx context.Context) (*model.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return &model.User{ID: 7, Email: "a@b.c", Balance: 150000}, nil
}

func (m *mockUserGateway) UpdateProfile(ctx context.Context, upd gateway.ProfileUpdate) (*model.User, error) {
	return &model.User{ID: 7, Email: "a@b.c", FullName: upd.FullName, Balance: 150000}, nil
}

func (m *mockUserGateway) Balance(ctx context.Context) (int64, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx)
	}
	return 150000, nil
}

func (m *mockUserGateway) Transactions(ctx context.Context, page, limit int) ([]model.Transaction, *model.Pagination, error) {
	return nil, &model.Pagination{Page: page, Limit: limit}, nil
}

func (m *mockUserGateway) ChangePassword(ctx context.Context, chg gateway.PasswordChange) (string, error) {
	return "changed", nil
}
