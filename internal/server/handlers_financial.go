package server

import (
	"net/http"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// handleFinancialsRoot dispatches GET (list) and POST (create) for
// /api/companies/{id}/financials.
func (s *Server) handleFinancialsRoot(w http.ResponseWriter, r *http.Request, companyID string) {
	switch r.Method {
	case http.MethodGet:
		periods, err := s.app.CompanyService.ListFinancials(r.Context(), companyID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		if periods == nil {
			periods = []models.FinancialPeriod{}
		}
		WriteJSON(w, http.StatusOK, periods)

	case http.MethodPost:
		var input models.FinancialInput
		if !DecodeJSON(w, r, &input) {
			return
		}
		period, err := s.app.CompanyService.AddFinancial(r.Context(), companyID, input)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, period)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleFinancial dispatches PUT/DELETE for
// /api/companies/{id}/financials/{fid}.
func (s *Server) handleFinancial(w http.ResponseWriter, r *http.Request, companyID, financialID string) {
	switch r.Method {
	case http.MethodPut:
		var input models.FinancialInput
		if !DecodeJSON(w, r, &input) {
			return
		}
		period, err := s.app.CompanyService.UpdateFinancial(r.Context(), companyID, financialID, input)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, period)

	case http.MethodDelete:
		if err := s.app.CompanyService.DeleteFinancial(r.Context(), companyID, financialID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": "Financial data deleted"})

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

// handleROICBreakdown handles GET
// /api/companies/{id}/financials/{fid}/roic-breakdown.
func (s *Server) handleROICBreakdown(w http.ResponseWriter, r *http.Request, companyID, financialID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	breakdown, err := s.app.CompanyService.ROICBreakdown(r.Context(), companyID, financialID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, breakdown)
}
