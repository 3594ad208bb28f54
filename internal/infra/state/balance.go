package state

import (
	"context"
	"sync"

	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/domain/ports/store"

	"github.com/rs/zerolog"
)

var _ store.BalanceStore = (*BalanceContainer)(nil)

// BalanceContainer holds the user's spendable balance. Refresh is an
// idempotent overwrite from the backend; a failed refresh keeps the previous
// value and is only logged, never surfaced.
type BalanceContainer struct {
	users gateway.UserGateway
	log   *zerolog.Logger

	mu      sync.RWMutex
	balance int64
	subs    []func(balance int64)
}

func NewBalanceContainer(users gateway.UserGateway, logger *zerolog.Logger) *BalanceContainer {
	return &BalanceContainer{users: users, log: logger}
}

func (c *BalanceContainer) Balance() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.balance
}

// Set overwrites the balance directly, used when the backend already returned
// it inline (login, payment responses).
func (c *BalanceContainer) Set(balance int64) {
	c.mu.Lock()
	c.balance = balance
	subs := make([]func(int64), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(balance)
	}
}

func (c *BalanceContainer) Refresh(ctx context.Context) error {
	balance, err := c.users.Balance(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("balance refresh failed")
		return err
	}
	c.Set(balance)
	return nil
}

func (c *BalanceContainer) Subscribe(fn func(balance int64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}
