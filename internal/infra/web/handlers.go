package web

import (
	"errors"
	"net/http"
	"strconv"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/format"
	"ppob-dashboard/internal/infra/state"
)

// ===== auth =====

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req gateway.LoginRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	container := state.NewSessionContainer("", s.sessions)
	sess, err := s.authUC.Login(r.Context(), container, req)
	if err != nil {
		// Rejected credentials are not an expired session; there is no local
		// state to tear down and the toast says so.
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{
				Error: "invalid credentials",
				Toast: &model.Toast{Title: s.tr.T("auth.login_failed.title"), Variant: model.ToastError},
			})
			return
		}
		s.writeError(w, r, err)
		return
	}
	if _, err := s.cookies.Mint(w, sess.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		User model.User `json:"user"`
	}{User: sess.User})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req gateway.RegisterRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.authUC.Register(r.Context(), "", req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, messageResponse{Message: msg})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	if err := s.authUC.Logout(r.Context(), rs.container); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.authUC.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.authUC.ResendVerification(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.authUC.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.authUC.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// ===== user =====

// profileResponse decorates the raw user with display-ready fields.
type profileResponse struct {
	*model.User
	PhoneDisplay string `json:"phone_display,omitempty"`
}

func newProfileResponse(u *model.User) profileResponse {
	return profileResponse{User: u, PhoneDisplay: format.PhoneNumber(u.PhoneNumber)}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	user, err := s.userUC.Profile(r.Context(), rs.container)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newProfileResponse(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req gateway.ProfileUpdate
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rs := sessionFrom(r.Context())
	user, err := s.userUC.UpdateProfile(r.Context(), rs.container, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newProfileResponse(user))
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.userUC.Balance(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Balance int64 `json:"balance"`
	}{Balance: balance})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	txns, pag, err := s.userUC.Transactions(r.Context(), page, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Data       []model.Transaction `json:"data"`
		Pagination *model.Pagination   `json:"pagination"`
	}{Data: txns, Pagination: pag})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req gateway.PasswordChange
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rs := sessionFrom(r.Context())
	msg, err := s.userUC.ChangePassword(r.Context(), rs.sess.ID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// ===== toasts =====

func (s *Server) handleToasts(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	toasts := s.toasts.Drain(rs.sess.ID)
	if toasts == nil {
		toasts = []model.Toast{}
	}
	s.writeJSON(w, http.StatusOK, struct {
		Data []model.Toast `json:"data"`
	}{Data: toasts})
}

func paging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
