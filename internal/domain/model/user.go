package model

import "time"

// User is the authenticated reseller customer as reported by the backend.
// The dashboard never mutates balance fields directly; they are overwritten
// wholesale on every profile/balance refresh.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	ReferralCode   string    `json:"referral_code"`
	Balance        int64     `json:"balance"`
	ReferralEarned int64     `json:"referral_earned,omitempty"`
	TopUpEarned    int64     `json:"topup_earned,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) IsZero() bool { return u == nil || u.ID == 0 }

// Session couples an authenticated identity with its bearer credential.
// The credential is attached to every outbound backend call.
type Session struct {
	ID           string    `json:"id"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	User         User      `json:"user"`
	CreatedAt    time.Time `json:"created_at"`
}
