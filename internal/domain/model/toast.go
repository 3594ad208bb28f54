package model

import "time"

type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
	ToastInfo    ToastVariant = "info"
)

// Toast is a short-lived notification queued for one session. Toasts never
// block interaction; the frontend drains and displays them.
type Toast struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Variant     ToastVariant `json:"variant"`
	CreatedAt   time.Time    `json:"createdAt"`
}
