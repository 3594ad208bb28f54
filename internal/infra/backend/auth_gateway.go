package backend

import (
	"context"
	"net/http"

	"ppob-dashboard/internal/domain/ports/gateway"
)

var _ gateway.AuthGateway = (*AuthClient)(nil)

type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

func (a *AuthClient) Login(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error) {
	var out gateway.AuthResult
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func (a *AuthClient) Register(ctx context.Context, req gateway.RegisterRequest) (string, error) {
	var out messageResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (a *AuthClient) Logout(ctx context.Context, token string) error {
	// Logout is issued with the credential being revoked, not the ambient one.
	cl := a.c.WithTokens(StaticToken(token))
	return cl.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (a *AuthClient) VerifyEmail(ctx context.Context, token string) (string, error) {
	var out messageResponse
	body := map[string]string{"token": token}
	if err := a.c.do(ctx, http.MethodPost, "/auth/verify-email", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (a *AuthClient) ResendVerification(ctx context.Context, email string) (string, error) {
	var out messageResponse
	body := map[string]string{"email": email}
	if err := a.c.do(ctx, http.MethodPost, "/auth/resend-verification", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (a *AuthClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	body := map[string]string{"email": email}
	if err := a.c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (a *AuthClient) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var out messageResponse
	body := map[string]string{"token": token, "newPassword": newPassword}
	if err := a.c.do(ctx, http.MethodPost, "/auth/reset-password", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
