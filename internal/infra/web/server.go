package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/domain/ports/notify"
	"ppob-dashboard/internal/infra/i18n"
	"ppob-dashboard/internal/infra/logging"
	red "ppob-dashboard/internal/infra/redis"
	"ppob-dashboard/internal/infra/state"
	"ppob-dashboard/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	authUC  usecase.AuthUseCase
	userUC  usecase.UserUseCase
	topupUC usecase.TopUpUseCase
	ppobUC  usecase.PPOBUseCase

	sessions *red.SessionRepo
	toasts   notify.Toaster
	tr       *i18n.Translator
	cookies  *SessionManager
	validate *validator.Validate

	allowedOrigin string
	log           *zerolog.Logger
}

func NewServer(
	authUC usecase.AuthUseCase,
	userUC usecase.UserUseCase,
	topupUC usecase.TopUpUseCase,
	ppobUC usecase.PPOBUseCase,
	sessions *red.SessionRepo,
	toasts notify.Toaster,
	tr *i18n.Translator,
	cookies *SessionManager,
	allowedOrigin string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		authUC:        authUC,
		userUC:        userUC,
		topupUC:       topupUC,
		ppobUC:        ppobUC,
		sessions:      sessions,
		toasts:        toasts,
		tr:            tr,
		cookies:       cookies,
		validate:      validator.New(),
		allowedOrigin: allowedOrigin,
		log:           logger,
	}
}

// Routes builds the full router: health and metrics in the clear, the auth
// endpoints cookie-less, everything else behind the session middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(s.cors)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)
			r.Post("/verify-email", s.handleVerifyEmail)
			r.Post("/resend-verification", s.handleResendVerification)
			r.Post("/forgot-password", s.handleForgotPassword)
			r.Post("/reset-password", s.handleResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Post("/auth/logout", s.handleLogout)

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", s.handleProfile)
				r.Put("/profile", s.handleUpdateProfile)
				r.Get("/balance", s.handleBalance)
				r.Get("/transactions", s.handleTransactions)
				r.Post("/change-password", s.handleChangePassword)
			})

			r.Route("/topup", func(r chi.Router) {
				r.Get("/options", s.handleTopUpOptions)
				r.Get("/history", s.handleTopUpHistory)
				r.Post("/flows", s.handleStartFlow)
				r.Route("/flows/{flowID}", func(r chi.Router) {
					r.Get("/", s.handleGetFlow)
					r.Post("/amount", s.handleFlowAmount)
					r.Post("/method", s.handleFlowMethod)
					r.Post("/submit", s.handleFlowSubmit)
					r.Post("/check", s.handleFlowCheck)
					r.Post("/copied", s.handleFlowCopied)
					r.Post("/history", s.handleFlowViewHistory)
					r.Delete("/", s.handleCloseFlow)
				})
			})

			r.Route("/ppob", func(r chi.Router) {
				r.Get("/categories", s.handleCategories)
				r.Get("/categories/{categoryID}/providers", s.handleProviders)
				r.Get("/providers/{providerID}/products", s.handleProducts)
				r.Get("/products/{productID}", s.handleProduct)
				r.Post("/wizards", s.handleStartWizard)
				r.Route("/wizards/{wizardID}", func(r chi.Router) {
					r.Get("/", s.handleGetWizard)
					r.Post("/category", s.handleWizardCategory)
					r.Post("/provider", s.handleWizardProvider)
					r.Post("/product", s.handleWizardProduct)
					r.Post("/back", s.handleWizardBack)
					r.Post("/submit", s.handleWizardSubmit)
				})
			})

			r.Get("/toasts", s.handleToasts)
		})
	})

	return r
}

// ===== middleware =====

type sessionCtxKey struct{}

type requestSession struct {
	container *state.SessionContainer
	sess      *model.Session
}

func sessionFrom(ctx context.Context) *requestSession {
	rs, _ := ctx.Value(sessionCtxKey{}).(*requestSession)
	return rs
}

// requireSession verifies the signed cookie, resolves the session from the
// repo and threads the upstream bearer token through the request context. A
// cookie pointing at a dead session is cleared on the way out.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.cookies.SessionIDFromRequest(r)
		if err != nil {
			s.writeUnauthorized(w)
			return
		}
		container := state.NewSessionContainer(id, s.sessions)
		sess, err := container.Current(r.Context())
		if err != nil {
			s.cookies.Clear(w)
			s.writeSessionExpired(w)
			return
		}
		// Sliding expiry, matching the cookie MaxAge refresh on login.
		_ = s.sessions.Touch(r.Context(), id)

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, &requestSession{container: container, sess: sess})
		ctx = gateway.WithToken(ctx, sess.Token)
		ctx = logging.WithSessionID(ctx, sess.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		logging.With(ctx, s.log).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Msg("http request")
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.allowedOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ===== response helpers =====

type errorResponse struct {
	Error    string       `json:"error"`
	Redirect string       `json:"redirect,omitempty"`
	Toast    *model.Toast `json:"toast,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (s *Server) writeUnauthorized(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Redirect: "/login"})
}

// writeSessionExpired is the 401 for a credential that was once valid. The
// toast rides in the response body because the session it would otherwise be
// queued under is already gone.
func (s *Server) writeSessionExpired(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error:    "unauthorized",
		Redirect: "/login",
		Toast: &model.Toast{
			Title:       s.tr.T("auth.session_expired.title"),
			Description: s.tr.T("auth.session_expired.desc"),
			Variant:     model.ToastError,
		},
	})
}

// writeError maps domain sentinels onto HTTP statuses. An upstream 401 means
// the stored credential died; the local session is torn down with it.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		if rs := sessionFrom(r.Context()); rs != nil {
			_ = rs.container.Logout(r.Context())
		}
		s.cookies.Clear(w)
		s.writeSessionExpired(w)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrFlowNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrFlowState), errors.Is(err, domain.ErrWizardState):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrAmountBelowMinimum),
		errors.Is(err, domain.ErrNoPaymentMethod),
		errors.Is(err, domain.ErrInsufficientBalance):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		logging.With(r.Context(), s.log).Error().Err(err).Msg("request failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeValid decodes a JSON body and runs struct validation on it.
func (s *Server) decodeValid(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidArgument
	}
	if err := s.validate.Struct(v); err != nil {
		return domain.ErrInvalidArgument
	}
	return nil
}
