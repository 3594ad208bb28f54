// File: internal/usecase/topup_uc.go
package usecase

import (
	"context"
	"time"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/domain/ports/notify"
	"ppob-dashboard/internal/domain/ports/store"
	"ppob-dashboard/internal/infra/i18n"

	"github.com/oklog/ulid/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ TopUpUseCase = (*topUpUC)(nil)

const optionsCacheKey = "topup_options"

// How long an untouched flow may live before the registry evicts it. Orders
// expire upstream well before this.
const flowTTL = time.Hour

type TopUpUseCase interface {
	// Options returns the preset amounts and payment methods, cached briefly.
	Options(ctx context.Context) (*model.TopUpOptions, error)
	// StartFlow opens a fresh flow instance for the session.
	StartFlow(ctx context.Context, sessionID, token string) (*Flow, error)
	// Flow resolves a live flow owned by the session.
	Flow(sessionID, flowID string) (*Flow, error)
	// CloseFlow dismisses a flow and removes it from the registry.
	CloseFlow(sessionID, flowID string) error
	// History lists the session user's past top-up orders.
	History(ctx context.Context, page, limit int) ([]model.TopUpHistoryEntry, *model.Pagination, error)
}

type topUpUC struct {
	topups  gateway.TopUpGateway
	balance store.BalanceStore
	toasts  notify.Toaster
	tr      *i18n.Translator
	log     *zerolog.Logger

	pollInterval time.Duration
	closeDelay   time.Duration

	options *gocache.Cache
	flows   *gocache.Cache
}

func NewTopUpUseCase(
	topups gateway.TopUpGateway,
	balance store.BalanceStore,
	toasts notify.Toaster,
	tr *i18n.Translator,
	pollInterval, closeDelay, optionsTTL time.Duration,
	logger *zerolog.Logger,
) *topUpUC {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	if closeDelay <= 0 {
		closeDelay = 2 * time.Second
	}
	if optionsTTL <= 0 {
		optionsTTL = time.Minute
	}
	uc := &topUpUC{
		topups:       topups,
		balance:      balance,
		toasts:       toasts,
		tr:           tr,
		log:          logger,
		pollInterval: pollInterval,
		closeDelay:   closeDelay,
		options:      gocache.New(optionsTTL, 2*optionsTTL),
		flows:        gocache.New(flowTTL, 10*time.Minute),
	}
	// A flow falling out of the registry must not keep polling.
	uc.flows.OnEvicted(func(_ string, v interface{}) {
		if f, ok := v.(*Flow); ok {
			f.Close()
		}
	})
	return uc
}

func (u *topUpUC) Options(ctx context.Context) (*model.TopUpOptions, error) {
	if v, ok := u.options.Get(optionsCacheKey); ok {
		opts := v.(model.TopUpOptions)
		return &opts, nil
	}
	opts, err := u.topups.Options(ctx)
	if err != nil {
		return nil, err
	}
	u.options.SetDefault(optionsCacheKey, *opts)
	return opts, nil
}

func (u *topUpUC) StartFlow(ctx context.Context, sessionID, token string) (*Flow, error) {
	opts, err := u.Options(ctx)
	if err != nil {
		u.pushToast(sessionID, "topup.options_failed.title", "topup.options_failed.desc", model.ToastError)
		return nil, err
	}

	f := &Flow{
		ID:           ulid.Make().String(),
		sessionID:    sessionID,
		token:        token,
		topups:       u.topups,
		balance:      u.balance,
		log:          u.log,
		pollInterval: u.pollInterval,
		closeDelay:   u.closeDelay,
		state:        FlowSelecting,
		options:      *opts,
	}
	f.toast = func(titleKey, descKey string, variant model.ToastVariant, args ...interface{}) {
		u.pushToast(sessionID, titleKey, descKey, variant, args...)
	}
	u.flows.SetDefault(f.ID, f)
	return f, nil
}

func (u *topUpUC) Flow(sessionID, flowID string) (*Flow, error) {
	v, ok := u.flows.Get(flowID)
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	f := v.(*Flow)
	if f.sessionID != sessionID {
		return nil, domain.ErrFlowNotFound
	}
	return f, nil
}

func (u *topUpUC) CloseFlow(sessionID, flowID string) error {
	f, err := u.Flow(sessionID, flowID)
	if err != nil {
		return err
	}
	f.Close()
	u.flows.Delete(flowID)
	return nil
}

func (u *topUpUC) History(ctx context.Context, page, limit int) ([]model.TopUpHistoryEntry, *model.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return u.topups.History(ctx, page, limit)
}

func (u *topUpUC) pushToast(sessionID, titleKey, descKey string, variant model.ToastVariant, args ...interface{}) {
	t := model.Toast{Title: u.tr.T(titleKey), Variant: variant}
	if descKey != "" {
		t.Description = u.tr.T(descKey, args...)
	}
	u.toasts.Push(sessionID, t)
}
