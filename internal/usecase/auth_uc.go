package usecase

import (
	"context"
	"time"

	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/domain/ports/notify"
	"ppob-dashboard/internal/domain/ports/store"
	"ppob-dashboard/internal/infra/i18n"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

type AuthUseCase interface {
	Login(ctx context.Context, sessions store.SessionStore, req gateway.LoginRequest) (*model.Session, error)
	Register(ctx context.Context, sessionID string, req gateway.RegisterRequest) (string, error)
	Logout(ctx context.Context, sessions store.SessionStore) error
	VerifyEmail(ctx context.Context, token string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

type authUC struct {
	auth    gateway.AuthGateway
	balance store.BalanceStore
	toasts  notify.Toaster
	tr      *i18n.Translator
	log     *zerolog.Logger
}

func NewAuthUseCase(auth gateway.AuthGateway, balance store.BalanceStore, toasts notify.Toaster, tr *i18n.Translator, logger *zerolog.Logger) *authUC {
	return &authUC{auth: auth, balance: balance, toasts: toasts, tr: tr, log: logger}
}

func (u *authUC) Login(ctx context.Context, sessions store.SessionStore, req gateway.LoginRequest) (*model.Session, error) {
	res, err := u.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	sess := &model.Session{
		ID:           uuid.NewString(),
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		User:         res.User,
		CreatedAt:    time.Now(),
	}
	if err := sessions.Login(ctx, sess); err != nil {
		return nil, err
	}
	u.balance.Set(res.User.Balance)
	u.log.Info().Int64("user_id", res.User.ID).Msg("user logged in")
	return sess, nil
}

func (u *authUC) Register(ctx context.Context, sessionID string, req gateway.RegisterRequest) (string, error) {
	msg, err := u.auth.Register(ctx, req)
	if err != nil {
		return "", err
	}
	u.toasts.Push(sessionID, model.Toast{
		Title:       u.tr.T("auth.registered.title"),
		Description: u.tr.T("auth.registered.desc"),
		Variant:     model.ToastSuccess,
	})
	return msg, nil
}

// Logout revokes the credential upstream best-effort, then always discards
// the local session.
func (u *authUC) Logout(ctx context.Context, sessions store.SessionStore) error {
	if sess, err := sessions.Current(ctx); err == nil {
		if err := u.auth.Logout(ctx, sess.Token); err != nil {
			u.log.Debug().Err(err).Msg("upstream logout failed")
		}
	}
	return sessions.Logout(ctx)
}

func (u *authUC) VerifyEmail(ctx context.Context, token string) (string, error) {
	return u.auth.VerifyEmail(ctx, token)
}

func (u *authUC) ResendVerification(ctx context.Context, email string) (string, error) {
	return u.auth.ResendVerification(ctx, email)
}

func (u *authUC) ForgotPassword(ctx context.Context, email string) (string, error) {
	return u.auth.ForgotPassword(ctx, email)
}

func (u *authUC) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return u.auth.ResetPassword(ctx, token, newPassword)
}
