package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ===== Session cookie primitives =====

type CookieConfig struct {
	HMACSecret   []byte
	CookieName   string
	CookieDomain string
	SecureCookie bool
	TTL          time.Duration
}

// SessionManager mints and verifies the signed session cookie. The cookie
// carries only the local session ID; the upstream credential never leaves the
// server.
type SessionManager struct{ cfg CookieConfig }

func NewSessionManager(secret string, secure bool, domain string, ttl time.Duration) *SessionManager {
	return &SessionManager{cfg: CookieConfig{
		HMACSecret:   []byte(secret),
		CookieName:   "dash_session",
		CookieDomain: domain, // "" is fine if you want host-only cookie
		SecureCookie: secure, // true in prod (TLS)
		TTL:          ttl,
	}}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (m *SessionManager) Mint(w http.ResponseWriter, sessionID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
			Subject:   sessionID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.cfg.HMACSecret)
	if err != nil {
		return "", err
	}

	c := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    signed,
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, c)
	return signed, nil
}

func (m *SessionManager) Clear(w http.ResponseWriter) {
	c := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, c)
}

// SessionIDFromRequest extracts and verifies the session cookie, returning the
// local session ID.
func (m *SessionManager) SessionIDFromRequest(r *http.Request) (string, error) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return "", errors.New("missing session cookie")
	}
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (any, error) {
		return m.cfg.HMACSecret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", errors.New("invalid session cookie")
	}
	return claims.Subject, nil
}
