package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/kenshiro-fujita/investment-analysis/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Companies and their financial periods
	mux.HandleFunc("/api/companies/", s.routeCompanies)
	mux.HandleFunc("/api/companies", s.handleCompaniesRoot)
}

// handleCompaniesRoot dispatches GET (list) and POST (create) for /api/companies.
func (s *Server) handleCompaniesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleCompanyList(w, r)
	case http.MethodPost:
		s.handleCompanyCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeCompanies dispatches /api/companies/{id}/* to the appropriate handler.
func (s *Server) routeCompanies(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/companies/")
	if path == "" {
		s.handleCompaniesRoot(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	companyID := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch {
	case subpath == "":
		s.handleCompany(w, r, companyID)
	case subpath == "financials":
		s.handleFinancialsRoot(w, r, companyID)
	case strings.HasPrefix(subpath, "financials/"):
		s.routeFinancial(w, r, companyID, strings.TrimPrefix(subpath, "financials/"))
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeFinancial dispatches /api/companies/{id}/financials/{fid}[/roic-breakdown].
func (s *Server) routeFinancial(w http.ResponseWriter, r *http.Request, companyID, subpath string) {
	parts := strings.SplitN(subpath, "/", 2)
	financialID := parts[0]
	if financialID == "" {
		WriteError(w, http.StatusBadRequest, "financial record ID is required in path")
		return
	}

	if len(parts) == 2 {
		if parts[1] == "roic-breakdown" {
			s.handleROICBreakdown(w, r, companyID, financialID)
			return
		}
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	s.handleFinancial(w, r, companyID, financialID)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":        common.GetVersion(),
		"environment":    s.app.Config.Environment,
		"storage_path":   s.app.Config.Storage.Path,
		"roic_ma_weight": s.app.Config.Derivation.ROICMAWeight,
		"logging_level":  s.app.Config.Logging.Level,
		"uptime":         uptime.String(),
		"started_at":     s.app.StartupTime,
	})
}
