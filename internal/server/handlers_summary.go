package server

import (
	"net/http"
	"strconv"

	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// handleSummary handles GET /api/summary with the expense filter parameters.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	filter, err := parseExpenseFilter(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	summary, err := s.app.SummaryService.TotalAndByCategory(r.Context(), userID, filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// parseYear reads the year query parameter.
func parseYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, models.NewValidationError(models.CodeInvalidPeriod, "year query parameter is required")
	}
	return year, nil
}

// handleMonthly handles GET /api/summary/monthly?year=.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	year, err := parseYear(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	points, err := s.app.SummaryService.MonthlyTotals(r.Context(), userID, year)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, points)
}

// handleMonthlyChart handles GET /api/summary/monthly/chart?year= and
// responds with a PNG.
func (s *Server) handleMonthlyChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	year, err := parseYear(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	png, err := s.app.SummaryService.RenderMonthlyChart(r.Context(), userID, year)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
