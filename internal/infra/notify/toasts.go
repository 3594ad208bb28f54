// Package notify implements the per-session toast queue. Toasts are held in
// an expiring in-memory cache and dropped unread after their TTL; they are
// notifications, not an audit trail.
package notify

import (
	"sync"
	"time"

	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/notify"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var _ notify.Toaster = (*ToastQueue)(nil)

const maxQueued = 20

type ToastQueue struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

func NewToastQueue(ttl time.Duration) *ToastQueue {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ToastQueue{cache: gocache.New(ttl, 2*ttl)}
}

func (q *ToastQueue) Push(sessionID string, toast model.Toast) {
	if sessionID == "" {
		return
	}
	if toast.ID == "" {
		toast.ID = uuid.NewString()
	}
	if toast.CreatedAt.IsZero() {
		toast.CreatedAt = time.Now()
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	var queued []model.Toast
	if v, ok := q.cache.Get(sessionID); ok {
		queued = v.([]model.Toast)
	}
	queued = append(queued, toast)
	if len(queued) > maxQueued {
		queued = queued[len(queued)-maxQueued:]
	}
	q.cache.SetDefault(sessionID, queued)
}

// Drain returns and clears everything queued for the session.
func (q *ToastQueue) Drain(sessionID string) []model.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.cache.Get(sessionID)
	if !ok {
		return nil
	}
	q.cache.Delete(sessionID)
	return v.([]model.Toast)
}
