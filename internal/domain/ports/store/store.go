package store

import (
	"context"

	"ppob-dashboard/internal/domain/model"
)

// SessionStore is the injected container for the authenticated identity and
// its bearer credential. The web layer resolves a store instance per request
// and passes it down; nothing below holds a global.
type SessionStore interface {
	// Current returns the live session, or domain.ErrUnauthenticated.
	Current(ctx context.Context) (*model.Session, error)
	Login(ctx context.Context, sess *model.Session) error
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, u model.User) error
	// Subscribe registers an observer called after every successful write.
	Subscribe(fn func(sess *model.Session))
}

// BalanceStore holds the user's spendable balance. Refresh is a single
// idempotent overwrite; a failed refresh leaves the previous value in place.
type BalanceStore interface {
	Balance() int64
	// Set overwrites the balance when the backend already returned it inline
	// (login, payment responses).
	Set(balance int64)
	Refresh(ctx context.Context) error
	Subscribe(fn func(balance int64))
}
