package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/domain/ports/notify"
	"ppob-dashboard/internal/domain/ports/store"
	"ppob-dashboard/internal/format"
	"ppob-dashboard/internal/infra/i18n"

	"github.com/oklog/ulid/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

type WizardStep string

const (
	StepCategory WizardStep = "category"
	StepProvider WizardStep = "provider"
	StepProduct  WizardStep = "product"
	StepConfirm  WizardStep = "confirm"
)

// Wizard is one PPOB purchase drill-down: category, provider, product, then
// a confirmation. Back unwinds exactly one level and clears whatever that
// level had selected and fetched.
type Wizard struct {
	ID        string
	sessionID string

	mu         sync.Mutex
	step       WizardStep
	categories []model.Category
	category   *model.Category
	providers  []model.Provider
	provider   *model.Provider
	products   []model.Product
	product    *model.Product
	submitting bool
}

type WizardSnapshot struct {
	ID         string           `json:"id"`
	Step       WizardStep       `json:"step"`
	Categories []model.Category `json:"categories,omitempty"`
	Category   *model.Category  `json:"category,omitempty"`
	Providers  []model.Provider `json:"providers,omitempty"`
	Provider   *model.Provider  `json:"provider,omitempty"`
	Products   []model.Product  `json:"products,omitempty"`
	Product    *model.Product   `json:"product,omitempty"`
}

func (w *Wizard) Snapshot() WizardSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WizardSnapshot{
		ID:         w.ID,
		Step:       w.step,
		Categories: w.categories,
		Category:   w.category,
		Providers:  w.providers,
		Provider:   w.provider,
		Products:   w.products,
		Product:    w.product,
	}
}

// Compile-time check
var _ PPOBUseCase = (*ppobUC)(nil)

type PPOBUseCase interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Providers(ctx context.Context, categoryID int64) ([]model.Provider, error)
	Products(ctx context.Context, providerID, categoryID int64) ([]model.Product, error)
	Product(ctx context.Context, productID int64) (*model.Product, error)
	StartWizard(ctx context.Context, sessionID string) (*Wizard, error)
	Wizard(sessionID, wizardID string) (*Wizard, error)
	SelectCategory(ctx context.Context, w *Wizard, categoryID int64) error
	SelectProvider(ctx context.Context, w *Wizard, providerID int64) error
	SelectProduct(ctx context.Context, w *Wizard, productID int64) error
	Back(w *Wizard) error
	Submit(ctx context.Context, w *Wizard, targetNumber string) (*gateway.CreatePaymentResult, error)
}

type ppobUC struct {
	catalog   gateway.CatalogGateway
	purchases gateway.PurchaseGateway
	balance   store.BalanceStore
	toasts    notify.Toaster
	tr        *i18n.Translator
	log       *zerolog.Logger

	catalogCache *gocache.Cache
	wizards      *gocache.Cache
}

func NewPPOBUseCase(
	catalog gateway.CatalogGateway,
	purchases gateway.PurchaseGateway,
	balance store.BalanceStore,
	toasts notify.Toaster,
	tr *i18n.Translator,
	cacheTTL time.Duration,
	logger *zerolog.Logger,
) *ppobUC {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ppobUC{
		catalog:      catalog,
		purchases:    purchases,
		balance:      balance,
		toasts:       toasts,
		tr:           tr,
		log:          logger,
		catalogCache: gocache.New(cacheTTL, 2*cacheTTL),
		wizards:      gocache.New(time.Hour, 10*time.Minute),
	}
}

func (u *ppobUC) StartWizard(ctx context.Context, sessionID string) (*Wizard, error) {
	cats, err := u.categories(ctx)
	if err != nil {
		return nil, err
	}
	w := &Wizard{
		ID:         ulid.Make().String(),
		sessionID:  sessionID,
		step:       StepCategory,
		categories: cats,
	}
	u.wizards.SetDefault(w.ID, w)
	return w, nil
}

func (u *ppobUC) Wizard(sessionID, wizardID string) (*Wizard, error) {
	v, ok := u.wizards.Get(wizardID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	w := v.(*Wizard)
	if w.sessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// Categories, Providers, Products and Product expose the catalog for plain
// browsing outside a wizard. The first two share the wizard's cache.
func (u *ppobUC) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories(ctx)
}

func (u *ppobUC) Providers(ctx context.Context, categoryID int64) ([]model.Provider, error) {
	return u.providersFor(ctx, categoryID)
}

func (u *ppobUC) Products(ctx context.Context, providerID, categoryID int64) ([]model.Product, error) {
	return u.catalog.Products(ctx, providerID, categoryID)
}

func (u *ppobUC) Product(ctx context.Context, productID int64) (*model.Product, error) {
	return u.catalog.Product(ctx, productID)
}

func (u *ppobUC) categories(ctx context.Context) ([]model.Category, error) {
	if v, ok := u.catalogCache.Get("categories"); ok {
		return v.([]model.Category), nil
	}
	cats, err := u.catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	u.catalogCache.SetDefault("categories", cats)
	return cats, nil
}

func (u *ppobUC) SelectCategory(ctx context.Context, w *Wizard, categoryID int64) error {
	w.mu.Lock()
	if w.step != StepCategory {
		w.mu.Unlock()
		return domain.ErrWizardState
	}
	var chosen *model.Category
	for i := range w.categories {
		if w.categories[i].ID == categoryID {
			chosen = &w.categories[i]
			break
		}
	}
	w.mu.Unlock()
	if chosen == nil {
		return domain.ErrNotFound
	}

	providers, err := u.providersFor(ctx, categoryID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepCategory {
		return domain.ErrWizardState
	}
	w.category = chosen
	w.providers = providers
	w.step = StepProvider
	return nil
}

func (u *ppobUC) providersFor(ctx context.Context, categoryID int64) ([]model.Provider, error) {
	key := fmt.Sprintf("providers:%d", categoryID)
	if v, ok := u.catalogCache.Get(key); ok {
		return v.([]model.Provider), nil
	}
	providers, err := u.catalog.Providers(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	u.catalogCache.SetDefault(key, providers)
	return providers, nil
}

func (u *ppobUC) SelectProvider(ctx context.Context, w *Wizard, providerID int64) error {
	w.mu.Lock()
	if w.step != StepProvider || w.category == nil {
		w.mu.Unlock()
		return domain.ErrWizardState
	}
	categoryID := w.category.ID
	var chosen *model.Provider
	for i := range w.providers {
		if w.providers[i].ID == providerID {
			chosen = &w.providers[i]
			break
		}
	}
	w.mu.Unlock()
	if chosen == nil {
		return domain.ErrNotFound
	}

	products, err := u.catalog.Products(ctx, providerID, categoryID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepProvider {
		return domain.ErrWizardState
	}
	w.provider = chosen
	w.products = products
	w.step = StepProduct
	return nil
}

// SelectProduct checks the current balance against the product's final price
// before the confirmation step is allowed.
func (u *ppobUC) SelectProduct(ctx context.Context, w *Wizard, productID int64) error {
	w.mu.Lock()
	if w.step != StepProduct {
		w.mu.Unlock()
		return domain.ErrWizardState
	}
	var chosen *model.Product
	for i := range w.products {
		if w.products[i].ID == productID {
			chosen = &w.products[i]
			break
		}
	}
	w.mu.Unlock()
	if chosen == nil {
		return domain.ErrNotFound
	}

	if u.balance.Balance() < chosen.FinalPrice {
		u.pushToast(w.sessionID, "ppob.balance_low.title", "ppob.balance_low.desc", model.ToastError,
			format.Currency(chosen.FinalPrice))
		return domain.ErrInsufficientBalance
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepProduct {
		return domain.ErrWizardState
	}
	w.product = chosen
	w.step = StepConfirm
	return nil
}

// Back unwinds exactly one level, clearing the selection and fetched data of
// the level being left.
func (u *ppobUC) Back(w *Wizard) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepConfirm:
		w.product = nil
		w.step = StepProduct
	case StepProduct:
		w.products = nil
		w.provider = nil
		w.step = StepProvider
	case StepProvider:
		w.providers = nil
		w.category = nil
		w.step = StepCategory
	default:
		return domain.ErrWizardState
	}
	return nil
}

// Submit runs the two-call sequence: create the transaction, then create the
// balance payment against it. If the second call fails the transaction stays
// unresolved upstream with no compensation here; it surfaces again only
// through history.
func (u *ppobUC) Submit(ctx context.Context, w *Wizard, targetNumber string) (*gateway.CreatePaymentResult, error) {
	w.mu.Lock()
	if w.step != StepConfirm || w.product == nil {
		w.mu.Unlock()
		return nil, domain.ErrWizardState
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, domain.ErrWizardState
	}
	if targetNumber == "" {
		w.mu.Unlock()
		return nil, domain.ErrInvalidArgument
	}
	w.submitting = true
	productID := w.product.ID
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	txn, err := u.purchases.CreateTransaction(ctx, gateway.CreateTransactionRequest{
		ProductID:    productID,
		TargetNumber: targetNumber,
	})
	if err != nil {
		u.pushToast(w.sessionID, "ppob.tx_failed.title", "ppob.tx_failed.desc", model.ToastError)
		return nil, err
	}

	pay, err := u.purchases.CreatePayment(ctx, gateway.CreatePaymentRequest{
		TransactionID: txn.TransactionID,
		PaymentMethod: "balance",
	})
	if err != nil {
		// Known gap: the transaction now exists upstream in an unresolved
		// state and is only visible through history.
		u.log.Warn().Err(err).Str("transaction_id", txn.TransactionID).
			Msg("payment creation failed after transaction was created")
		u.pushToast(w.sessionID, "ppob.payment_failed.title", "ppob.payment_failed.desc", model.ToastError)
		return nil, err
	}

	if pay.NewBalance != nil {
		u.balance.Set(*pay.NewBalance)
	} else {
		refreshCtx, cancel := context.WithTimeout(gateway.WithToken(context.Background(), gateway.TokenFromContext(ctx)), 10*time.Second)
		go func() {
			defer cancel()
			_ = u.balance.Refresh(refreshCtx)
		}()
	}

	u.pushToast(w.sessionID, "ppob.success.title", "", model.ToastSuccess)
	u.wizards.Delete(w.ID)
	return pay, nil
}

func (u *ppobUC) pushToast(sessionID, titleKey, descKey string, variant model.ToastVariant, args ...interface{}) {
	t := model.Toast{Title: u.tr.T(titleKey), Variant: variant}
	if descKey != "" {
		t.Description = u.tr.T(descKey, args...)
	}
	u.toasts.Push(sessionID, t)
}
