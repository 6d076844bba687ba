package server

import (
	"net/http"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// handleCompanyList handles GET /api/companies.
func (s *Server) handleCompanyList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.app.CompanyService.ListCompanies(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list companies")
		WriteServiceError(w, err)
		return
	}
	if summaries == nil {
		summaries = []models.CompanySummary{}
	}
	WriteJSON(w, http.StatusOK, summaries)
}

// handleCompanyCreate handles POST /api/companies.
func (s *Server) handleCompanyCreate(w http.ResponseWriter, r *http.Request) {
	var input models.CompanyInput
	if !DecodeJSON(w, r, &input) {
		return
	}

	company, err := s.app.CompanyService.CreateCompany(r.Context(), input)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, company)
}

// handleCompany dispatches GET/PUT/DELETE for /api/companies/{id}.
func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request, companyID string) {
	switch r.Method {
	case http.MethodGet:
		company, err := s.app.CompanyService.GetCompany(r.Context(), companyID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, company)

	case http.MethodPut:
		var input models.CompanyInput
		if !DecodeJSON(w, r, &input) {
			return
		}
		company, err := s.app.CompanyService.UpdateCompany(r.Context(), companyID, input)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, company)

	case http.MethodDelete:
		if err := s.app.CompanyService.DeleteCompany(r.Context(), companyID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": "Company deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
