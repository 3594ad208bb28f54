// Package state holds the injected state containers: the authenticated
// session and the spendable balance. Each container has an explicit
// read/write surface plus a subscription hook for observers; nothing here is
// a package-level global.
package state

import (
	"context"
	"sync"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/store"
	red "ppob-dashboard/internal/infra/redis"
)

var _ store.SessionStore = (*SessionContainer)(nil)

// SessionContainer is the per-session view over the shared session repo. It is
// created by the web layer once per request from the session cookie and passed
// down; nothing below the web layer sees a global.
type SessionContainer struct {
	id   string
	repo *red.SessionRepo

	mu   sync.RWMutex
	subs []func(sess *model.Session)
}

func NewSessionContainer(id string, repo *red.SessionRepo) *SessionContainer {
	return &SessionContainer{id: id, repo: repo}
}

// ID returns the local session identifier (not the upstream credential).
func (c *SessionContainer) ID() string { return c.id }

func (c *SessionContainer) Current(ctx context.Context) (*model.Session, error) {
	if c.id == "" {
		return nil, domain.ErrUnauthenticated
	}
	sess, err := c.repo.Find(ctx, c.id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnauthenticated
	}
	return sess, err
}

func (c *SessionContainer) Login(ctx context.Context, sess *model.Session) error {
	c.mu.Lock()
	c.id = sess.ID
	c.mu.Unlock()
	if err := c.repo.Save(ctx, sess); err != nil {
		return err
	}
	c.notify(sess)
	return nil
}

func (c *SessionContainer) Logout(ctx context.Context) error {
	if c.id == "" {
		return nil
	}
	if err := c.repo.Delete(ctx, c.id); err != nil {
		return err
	}
	c.notify(nil)
	return nil
}

func (c *SessionContainer) UpdateUser(ctx context.Context, u model.User) error {
	sess, err := c.Current(ctx)
	if err != nil {
		return err
	}
	sess.User = u
	if err := c.repo.Save(ctx, sess); err != nil {
		return err
	}
	c.notify(sess)
	return nil
}

func (c *SessionContainer) Subscribe(fn func(sess *model.Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *SessionContainer) notify(sess *model.Session) {
	c.mu.RLock()
	subs := make([]func(*model.Session), len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()
	for _, fn := range subs {
		fn(sess)
	}
}
