package gateway

import (
	"context"

	"ppob-dashboard/internal/domain/model"
)

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	RememberMe bool   `json:"rememberMe"`
}

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required,min=9,max=15"`
	ReferralCode string `json:"referral_code,omitempty" validate:"omitempty,alphanum"`
}

type AuthResult struct {
	Message      string     `json:"message"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	User         model.User `json:"user"`
}

// AuthGateway wraps the backend's authentication endpoints. All calls are
// unauthenticated except Logout, which revokes the bearer credential upstream.
type AuthGateway interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}
