package server

import (
	"net/http"
	"time"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Users
	mux.HandleFunc("/api/users/register", s.handleUserRegister)
	mux.HandleFunc("/api/users/me", s.handleUserGet)
	mux.HandleFunc("/api/users/me/base-currency", s.handleBaseCurrency)

	// Categories
	mux.HandleFunc("/api/categories/", s.routeCategory)
	mux.HandleFunc("/api/categories", s.handleCategories)

	// Expenses
	mux.HandleFunc("/api/expenses/", s.routeExpense)
	mux.HandleFunc("/api/expenses", s.handleExpenses)

	// Budgets
	mux.HandleFunc("/api/budgets/status", s.handleBudgetStatus)
	mux.HandleFunc("/api/budgets/", s.routeBudget)
	mux.HandleFunc("/api/budgets", s.handleBudgets)

	// Summaries
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/summary/monthly", s.handleMonthly)
	mux.HandleFunc("/api/summary/monthly/chart", s.handleMonthlyChart)
}

// requireUser extracts the caller's user id from the request context, writing
// a 401 when the X-User-ID header was absent.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := common.UserIDFromContext(r.Context())
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return "", false
	}
	return userID, true
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
		"version": common.GetVersion(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
