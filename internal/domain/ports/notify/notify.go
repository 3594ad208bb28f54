package notify

import "ppob-dashboard/internal/domain/model"

// Toaster queues short-lived notifications for a session. Pushing never
// blocks; excess or expired toasts are dropped silently.
type Toaster interface {
	Push(sessionID string, toast model.Toast)
	Drain(sessionID string) []model.Toast
}
