package usecase

import (
	"context"

	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/domain/ports/notify"
	"ppob-dashboard/internal/domain/ports/store"
	"ppob-dashboard/internal/infra/i18n"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	Profile(ctx context.Context, sessions store.SessionStore) (*model.User, error)
	UpdateProfile(ctx context.Context, sessions store.SessionStore, upd gateway.ProfileUpdate) (*model.User, error)
	Balance(ctx context.Context) (int64, error)
	ChangePassword(ctx context.Context, sessionID string, chg gateway.PasswordChange) (string, error)
	Transactions(ctx context.Context, page, limit int) ([]model.Transaction, *model.Pagination, error)
}

type userUC struct {
	users   gateway.UserGateway
	balance store.BalanceStore
	toasts  notify.Toaster
	tr      *i18n.Translator
}

func NewUserUseCase(users gateway.UserGateway, balance store.BalanceStore, toasts notify.Toaster, tr *i18n.Translator) *userUC {
	return &userUC{users: users, balance: balance, toasts: toasts, tr: tr}
}

// Profile fetches the fresh profile and syncs the session's cached identity
// and the balance container with it.
func (u *userUC) Profile(ctx context.Context, sessions store.SessionStore) (*model.User, error) {
	user, err := u.users.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := sessions.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	u.balance.Set(user.Balance)
	return user, nil
}

func (u *userUC) UpdateProfile(ctx context.Context, sessions store.SessionStore, upd gateway.ProfileUpdate) (*model.User, error) {
	user, err := u.users.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	if err := sessions.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	if sess, err := sessions.Current(ctx); err == nil {
		u.toasts.Push(sess.ID, model.Toast{Title: u.tr.T("profile.updated.title"), Variant: model.ToastSuccess})
	}
	return user, nil
}

// Balance fetches the fresh balance and syncs the container.
func (u *userUC) Balance(ctx context.Context) (int64, error) {
	balance, err := u.users.Balance(ctx)
	if err != nil {
		return 0, err
	}
	u.balance.Set(balance)
	return balance, nil
}

func (u *userUC) ChangePassword(ctx context.Context, sessionID string, chg gateway.PasswordChange) (string, error) {
	msg, err := u.users.ChangePassword(ctx, chg)
	if err != nil {
		return "", err
	}
	u.toasts.Push(sessionID, model.Toast{Title: u.tr.T("profile.password_changed.title"), Variant: model.ToastSuccess})
	return msg, nil
}

func (u *userUC) Transactions(ctx context.Context, page, limit int) ([]model.Transaction, *model.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return u.users.Transactions(ctx, page, limit)
}
