package usecase

import (
	"context"
	"sync"
	"time"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/domain/ports/store"
	"ppob-dashboard/internal/format"
	"ppob-dashboard/internal/infra/metrics"

	"github.com/rs/zerolog"
)

type FlowState string

const (
	FlowSelecting       FlowState = "selecting"
	FlowCreating        FlowState = "creating"
	FlowAwaitingPayment FlowState = "awaiting_payment"
	FlowSucceeded       FlowState = "succeeded"
	FlowClosed          FlowState = "closed"
)

type pollTrigger string

const (
	triggerScheduled pollTrigger = "scheduled"
	triggerManual    pollTrigger = "manual"
)

// Flow is one live top-up flow instance. It is the only stateful component of
// the top-up feature: selection, order creation and the status poll loop all
// hang off it. A session may run several flows over time but each flow owns
// exactly one pending order.
type Flow struct {
	ID        string
	sessionID string
	token     string

	topups  gateway.TopUpGateway
	balance store.BalanceStore
	toast   func(titleKey, descKey string, variant model.ToastVariant, args ...interface{})
	log     *zerolog.Logger

	pollInterval time.Duration
	closeDelay   time.Duration

	mu         sync.Mutex
	state      FlowState
	options    model.TopUpOptions
	amount     int64
	method     *model.PaymentMethod
	order      *model.PendingOrder
	lastStatus *model.PaymentStatus
	redirect   string

	// Polling machinery. work is the depth-1 queue: a trigger enqueued while
	// a query is outstanding (or already queued) is dropped, which guarantees
	// at most one status query in flight per flow.
	work       chan pollTrigger
	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

// FlowSnapshot is the read model the web layer renders from. The *Label
// fields are display-ready Rupiah strings so the frontend never re-implements
// the formatting.
type FlowSnapshot struct {
	ID             string               `json:"id"`
	State          FlowState            `json:"state"`
	Amount         int64                `json:"amount"`
	AmountLabel    string               `json:"amountLabel"`
	Method         *model.PaymentMethod `json:"method,omitempty"`
	MethodFee      int64                `json:"methodFee"`
	SystemFee      int64                `json:"systemFee"`
	TotalAmount    int64                `json:"totalAmount"`
	TotalLabel     string               `json:"totalLabel"`
	MinAmount      int64                `json:"minAmount"`
	MaxAmount      int64                `json:"maxAmount"`
	Order          *model.PendingOrder  `json:"order,omitempty"`
	ExpiresAtLabel string               `json:"expiresAtLabel,omitempty"`
	LastStatus     *model.PaymentStatus `json:"lastStatus,omitempty"`
	Redirect       string               `json:"redirect,omitempty"`
}

// Snapshot returns a consistent copy of the flow for rendering.
func (f *Flow) Snapshot() FlowSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := FlowSnapshot{
		ID:        f.ID,
		State:     f.state,
		Amount:    f.amount,
		MinAmount: f.options.MinAmount,
		MaxAmount: f.options.MaxAmount,
		Order:     f.order,
		Redirect:  f.redirect,
	}
	if f.method != nil {
		m := *f.method
		s.Method = &m
		s.MethodFee = MethodFee(f.amount, m)
		s.SystemFee = SystemFee(f.amount)
		s.TotalAmount = TotalAmount(f.amount, m)
	} else {
		// Without a method the summary shows the bare amount.
		s.TotalAmount = f.amount
	}
	s.AmountLabel = format.Currency(f.amount)
	s.TotalLabel = format.Currency(s.TotalAmount)
	if f.order != nil && !f.order.ExpiresAt.IsZero() {
		s.ExpiresAtLabel = format.Date(f.order.ExpiresAt)
	}
	if f.lastStatus != nil {
		st := *f.lastStatus
		s.LastStatus = &st
	}
	return s
}

// SelectAmount records the chosen amount, preset or free-form. Values below
// the configured minimum are rejected; the maximum is display guidance and is
// not enforced here, the backend has the final say.
func (f *Flow) SelectAmount(amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowSelecting {
		return domain.ErrFlowState
	}
	if amount <= 0 {
		return domain.ErrInvalidArgument
	}
	if amount < f.options.MinAmount {
		return domain.ErrAmountBelowMinimum
	}
	f.amount = amount
	return nil
}

// SelectMethod records the chosen payment channel by code.
func (f *Flow) SelectMethod(code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowSelecting {
		return domain.ErrFlowState
	}
	m, ok := f.options.MethodByCode(code)
	if !ok {
		return domain.ErrNoPaymentMethod
	}
	f.method = &m
	return nil
}

// Submit creates the order upstream and, on success, enters the awaiting
// state and starts the poll loop. On failure the flow returns to selecting
// with no order retained; the caller may submit again, but never two orders
// concurrently.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state != FlowSelecting {
		f.mu.Unlock()
		return domain.ErrFlowState
	}
	if f.amount <= 0 {
		f.mu.Unlock()
		f.toast("topup.incomplete.title", "topup.incomplete.desc", model.ToastError)
		return domain.ErrInvalidArgument
	}
	if f.amount < f.options.MinAmount {
		f.mu.Unlock()
		return domain.ErrAmountBelowMinimum
	}
	if f.method == nil {
		f.mu.Unlock()
		f.toast("topup.incomplete.title", "topup.incomplete.desc", model.ToastError)
		return domain.ErrNoPaymentMethod
	}
	req := gateway.CreateOrderRequest{Amount: f.amount, PaymentMethod: f.method.Code}
	f.state = FlowCreating
	f.mu.Unlock()

	order, err := f.topups.CreateOrder(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowCreating {
		// Closed while the call was in flight; discard the result. The order,
		// if one was created, resolves upstream on its own.
		return domain.ErrFlowState
	}
	if err != nil {
		f.state = FlowSelecting
		metrics.IncTopUpOrder("failed")
		f.toast("topup.create_failed.title", "", model.ToastError)
		return err
	}
	f.order = order
	f.state = FlowAwaitingPayment
	metrics.IncTopUpOrder("created")
	f.startPollingLocked()
	return nil
}

// startPollingLocked launches the poll loop as a cancelable unit: a ticker
// feeding the depth-1 work queue and a single worker draining it. Callers
// hold f.mu.
func (f *Flow) startPollingLocked() {
	ctx, cancel := context.WithCancel(gateway.WithToken(context.Background(), f.token))
	f.pollCancel = cancel
	f.work = make(chan pollTrigger, 1)
	f.pollDone = make(chan struct{})

	go f.tickLoop(ctx)
	go f.pollWorker(ctx)
}

func (f *Flow) tickLoop(ctx context.Context) {
	t := time.NewTicker(f.pollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f.enqueue(triggerScheduled)
		}
	}
}

func (f *Flow) enqueue(trigger pollTrigger) {
	select {
	case f.work <- trigger:
	default:
		metrics.IncPollSuppressed()
	}
}

func (f *Flow) pollWorker(ctx context.Context) {
	defer close(f.pollDone)
	for {
		select {
		case <-ctx.Done():
			return
		case trigger := <-f.work:
			f.pollOnce(ctx, trigger)
		}
	}
}

// pollOnce issues a single status query. Failures are logged and swallowed;
// polling continues on schedule with no backoff. Only a paid result causes a
// transition.
func (f *Flow) pollOnce(ctx context.Context, trigger pollTrigger) {
	f.mu.Lock()
	if f.state != FlowAwaitingPayment || f.order == nil {
		f.mu.Unlock()
		return
	}
	orderID := f.order.OrderID
	f.mu.Unlock()

	status, err := f.topups.PaymentStatus(ctx, orderID)
	if err != nil {
		metrics.IncPollTick(string(trigger), "error")
		f.log.Debug().Err(err).Str("order_id", orderID).Msg("payment status poll failed")
		return
	}
	metrics.IncPollTick(string(trigger), string(status.State))

	f.mu.Lock()
	defer f.mu.Unlock()
	// The flow may have been closed, or superseded, while the query was in
	// flight; a stale result must not touch anything.
	if f.state != FlowAwaitingPayment || f.order == nil || f.order.OrderID != orderID {
		return
	}
	f.lastStatus = status
	if status.State != model.PaymentPaid {
		return
	}

	// The only automatic terminal transition, taken exactly once.
	f.state = FlowSucceeded
	f.stopPollingLocked()
	metrics.IncFlowTerminal("succeeded")
	f.toast("topup.paid.title", "topup.paid.desc", model.ToastSuccess, format.Currency(f.amount))

	// Best-effort balance refresh; its failure does not affect the terminal
	// state.
	refreshCtx, cancel := context.WithTimeout(gateway.WithToken(context.Background(), f.token), 10*time.Second)
	go func() {
		defer cancel()
		_ = f.balance.Refresh(refreshCtx)
	}()

	// Hold the success confirmation briefly, then close the flow and send
	// the user home. The registry drops the closed flow on eviction.
	time.AfterFunc(f.closeDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.state == FlowSucceeded {
			f.state = FlowClosed
			f.redirect = "/dashboard"
		}
	})
}

// CheckNow is the user's "check status" action: same depth-1 queue as the
// scheduled ticks, so it can never produce a second concurrent query.
func (f *Flow) CheckNow() error {
	f.mu.Lock()
	if f.state != FlowAwaitingPayment {
		f.mu.Unlock()
		return domain.ErrFlowState
	}
	f.mu.Unlock()
	f.enqueue(triggerManual)
	return nil
}

// Close dismisses the flow: polling is canceled as a unit and the flow goes
// inert. Nothing is canceled upstream; an in-flight query's result is simply
// discarded on arrival. Closing a succeeded or closed flow is a no-op.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case FlowSucceeded, FlowClosed:
		return
	case FlowAwaitingPayment:
		metrics.IncFlowTerminal("abandoned")
	}
	f.stopPollingLocked()
	f.state = FlowClosed
}

// ViewHistory cancels polling like Close and points the user at the history
// page.
func (f *Flow) ViewHistory() {
	f.Close()
	f.mu.Lock()
	f.redirect = "/history"
	f.mu.Unlock()
}

func (f *Flow) stopPollingLocked() {
	if f.pollCancel != nil {
		f.pollCancel()
		f.pollCancel = nil
	}
}

// State returns the current flow state.
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
