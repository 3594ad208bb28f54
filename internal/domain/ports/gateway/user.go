package gateway

import (
	"context"

	"ppob-dashboard/internal/domain/model"
)

type ProfileUpdate struct {
	FullName    string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,min=9,max=15"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// UserGateway wraps the backend's profile and balance endpoints. Balance reads
// are idempotent overwrites; the dashboard holds no ledger state of its own.
type UserGateway interface {
	Profile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (*model.User, error)
	Balance(ctx context.Context) (int64, error)
	Transactions(ctx context.Context, page, limit int) ([]model.Transaction, *model.Pagination, error)
	ChangePassword(ctx context.Context, chg PasswordChange) (string, error)
}
