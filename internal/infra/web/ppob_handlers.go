package web

import (
	"net/http"
	"strconv"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type selectIDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

type wizardSubmitRequest struct {
	TargetNumber string `json:"targetNumber" validate:"required,min=4"`
}

func urlID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidArgument
	}
	return id, nil
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.ppobUC.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	providers, err := s.ppobUC.Providers(r.Context(), categoryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, providers)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	providerID, err := urlID(r, "providerID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("categoryId"), 10, 64)
	products, err := s.ppobUC.Products(r.Context(), providerID, categoryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := urlID(r, "productID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	product, err := s.ppobUC.Product(r.Context(), productID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleStartWizard(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	wiz, err := s.ppobUC.StartWizard(r.Context(), rs.sess.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, wiz.Snapshot())
}

func (s *Server) wizard(w http.ResponseWriter, r *http.Request) (*usecase.Wizard, bool) {
	rs := sessionFrom(r.Context())
	wiz, err := s.ppobUC.Wizard(rs.sess.ID, chi.URLParam(r, "wizardID"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return wiz, true
}

func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizard(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (s *Server) handleWizardCategory(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizard(w, r)
	if !ok {
		return
	}
	var req selectIDRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ppobUC.SelectCategory(r.Context(), wiz, req.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (s *Server) handleWizardProvider(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizard(w, r)
	if !ok {
		return
	}
	var req selectIDRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ppobUC.SelectProvider(r.Context(), wiz, req.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (s *Server) handleWizardProduct(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizard(w, r)
	if !ok {
		return
	}
	var req selectIDRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ppobUC.SelectProduct(r.Context(), wiz, req.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizard(w, r)
	if !ok {
		return
	}
	if err := s.ppobUC.Back(wiz); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (s *Server) handleWizardSubmit(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizard(w, r)
	if !ok {
		return
	}
	var req wizardSubmitRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pay, err := s.ppobUC.Submit(r.Context(), wiz, req.TargetNumber)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, pay)
}
