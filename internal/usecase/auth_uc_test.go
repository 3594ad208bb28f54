// File: internal/usecase/auth_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
)

func TestAuth_Login(t *testing.T) {
	t.Run("creates a session and seeds the balance", func(t *testing.T) {
		auth := &mockAuthGateway{}
		bal := newMockBalanceStore(0)
		uc := NewAuthUseCase(auth, bal, &mockToaster{}, newTestTranslator(), newTestLogger())
		sessions := &mockSessionStore{}

		sess, err := uc.Login(context.Background(), sessions, gateway.LoginRequest{Email: "a@b.c", Password: "secret123"})
		if err != nil {
			t.Fatal(err)
		}
		if sess.ID == "" {
			t.Error("expected a generated session id")
		}
		if sess.Token != "tok-abc" {
			t.Errorf("expected the upstream token, got %q", sess.Token)
		}
		if sess.User.ID != 7 {
			t.Errorf("unexpected user: %+v", sess.User)
		}
		if stored, err := sessions.Current(context.Background()); err != nil || stored.ID != sess.ID {
			t.Errorf("expected the session to be stored, got %+v, %v", stored, err)
		}
		if got := bal.Balance(); got != 150000 {
			t.Errorf("expected balance seeded from login, got %d", got)
		}
	})

	t.Run("upstream rejection leaves no session", func(t *testing.T) {
		auth := &mockAuthGateway{
			LoginFunc: func(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error) {
				return nil, domain.ErrUnauthenticated
			},
		}
		uc := NewAuthUseCase(auth, newMockBalanceStore(0), &mockToaster{}, newTestTranslator(), newTestLogger())
		sessions := &mockSessionStore{}

		if _, err := uc.Login(context.Background(), sessions, gateway.LoginRequest{Email: "a@b.c", Password: "wrong"}); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if _, err := sessions.Current(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Error("expected no stored session")
		}
	})
}

func TestAuth_Register(t *testing.T) {
	toasts := &mockToaster{}
	uc := NewAuthUseCase(&mockAuthGateway{}, newMockBalanceStore(0), toasts, newTestTranslator(), newTestLogger())

	msg, err := uc.Register(context.Background(), "sess-1", gateway.RegisterRequest{Email: "a@b.c", Password: "secret123", FullName: "A B"})
	if err != nil {
		t.Fatal(err)
	}
	if msg != "registered" {
		t.Errorf("unexpected message %q", msg)
	}
	if titles := toasts.titles(); len(titles) != 1 || titles[0] != "Pendaftaran berhasil" {
		t.Errorf("expected a registration toast, got %v", titles)
	}
}

func TestAuth_Logout(t *testing.T) {
	t.Run("revokes upstream then clears locally", func(t *testing.T) {
		auth := &mockAuthGateway{}
		uc := NewAuthUseCase(auth, newMockBalanceStore(0), &mockToaster{}, newTestTranslator(), newTestLogger())
		sessions := &mockSessionStore{}
		_ = sessions.Login(context.Background(), &model.Session{ID: "s1", Token: "tok-xyz"})

		if err := uc.Logout(context.Background(), sessions); err != nil {
			t.Fatal(err)
		}
		if _, err := sessions.Current(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Error("expected the local session to be gone")
		}
		auth.logoutMu.Lock()
		defer auth.logoutMu.Unlock()
		if len(auth.logedOut) != 1 || auth.logedOut[0] != "tok-xyz" {
			t.Errorf("expected the upstream token to be revoked, got %v", auth.logedOut)
		}
	})

	t.Run("upstream failure still clears locally", func(t *testing.T) {
		auth := &mockAuthGateway{
			LogoutFunc: func(ctx context.Context, token string) error { return errors.New("unreachable") },
		}
		uc := NewAuthUseCase(auth, newMockBalanceStore(0), &mockToaster{}, newTestTranslator(), newTestLogger())
		sessions := &mockSessionStore{}
		_ = sessions.Login(context.Background(), &model.Session{ID: "s1", Token: "tok-xyz"})

		if err := uc.Logout(context.Background(), sessions); err != nil {
			t.Fatal(err)
		}
		if _, err := sessions.Current(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Error("expected the local session to be gone despite the upstream failure")
		}
	})
}
