package web

import (
	"net/http"

	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type amountRequest struct {
	Amount int64 `json:"amount" validate:"required"`
}

type methodRequest struct {
	Code string `json:"code" validate:"required"`
}

func (s *Server) handleTopUpOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.topupUC.Options(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleTopUpHistory(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	entries, pag, err := s.topupUC.History(r.Context(), page, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Data       []model.TopUpHistoryEntry `json:"data"`
		Pagination *model.Pagination         `json:"pagination"`
	}{Data: entries, Pagination: pag})
}

func (s *Server) handleStartFlow(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	f, err := s.topupUC.StartFlow(r.Context(), rs.sess.ID, rs.sess.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, f.Snapshot())
}

// flow resolves the flow named in the URL, scoped to the caller's session.
func (s *Server) flow(w http.ResponseWriter, r *http.Request) (*usecase.Flow, bool) {
	rs := sessionFrom(r.Context())
	f, err := s.topupUC.Flow(rs.sess.ID, chi.URLParam(r, "flowID"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return f, true
}

func (s *Server) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flow(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, f.Snapshot())
}

func (s *Server) handleFlowAmount(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flow(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := f.SelectAmount(req.Amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, f.Snapshot())
}

func (s *Server) handleFlowMethod(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flow(w, r)
	if !ok {
		return
	}
	var req methodRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := f.SelectMethod(req.Code); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, f.Snapshot())
}

func (s *Server) handleFlowSubmit(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flow(w, r)
	if !ok {
		return
	}
	if err := f.Submit(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, f.Snapshot())
}

func (s *Server) handleFlowCheck(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flow(w, r)
	if !ok {
		return
	}
	if err := f.CheckNow(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, f.Snapshot())
}

// handleFlowCopied acknowledges that the user copied the payment reference
// (VA number or QR string) to the clipboard. Toasts are queued server-side,
// so the frontend reports the copy here and picks the confirmation up on the
// next drain.
func (s *Server) handleFlowCopied(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flow(w, r)
	if !ok {
		return
	}
	rs := sessionFrom(r.Context())
	s.toasts.Push(rs.sess.ID, model.Toast{Title: s.tr.T("topup.copied.title"), Variant: model.ToastSuccess})
	s.writeJSON(w, http.StatusOK, f.Snapshot())
}

func (s *Server) handleFlowViewHistory(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flow(w, r)
	if !ok {
		return
	}
	f.ViewHistory()
	s.writeJSON(w, http.StatusOK, f.Snapshot())
}

func (s *Server) handleCloseFlow(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	if err := s.topupUC.CloseFlow(rs.sess.ID, chi.URLParam(r, "flowID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
