package server

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// budgetRequest is the wire form of a budget write. LimitAmount travels as a
// string for the same precision reason as expense amounts. Currency only
// matters on the account's first budget, where it establishes the base
// currency.
type budgetRequest struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	CategoryID  string `json:"category_id"`
	LimitAmount string `json:"limit_amount"`
	Currency    string `json:"currency"`
}

func (req budgetRequest) toInput() (interfaces.BudgetInput, error) {
	limit, err := decimal.NewFromString(req.LimitAmount)
	if err != nil {
		return interfaces.BudgetInput{}, models.NewValidationError(models.CodeInvalidInput,
			"limit_amount must be a decimal number string")
	}
	return interfaces.BudgetInput{
		Year:        req.Year,
		Month:       req.Month,
		CategoryID:  req.CategoryID,
		LimitAmount: limit,
		Currency:    models.CurrencyCode(req.Currency),
	}, nil
}

// parsePeriod reads the year and month query parameters.
func parsePeriod(r *http.Request) (year, month int, err error) {
	q := r.URL.Query()
	year, err = strconv.Atoi(q.Get("year"))
	if err != nil {
		return 0, 0, models.NewValidationError(models.CodeInvalidPeriod, "year query parameter is required")
	}
	month, err = strconv.Atoi(q.Get("month"))
	if err != nil {
		return 0, 0, models.NewValidationError(models.CodeInvalidPeriod, "month query parameter is required")
	}
	return year, month, nil
}

// handleBudgets handles POST /api/budgets.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req budgetRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	status, err := s.app.BudgetService.CreateBudget(r.Context(), userID, in)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, status)
}

// routeBudget handles /api/budgets/{id} (PUT update, DELETE).
func (s *Server) routeBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id := PathParam(r, "/api/budgets/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "budget id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req budgetRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		in, err := req.toInput()
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		status, err := s.app.BudgetService.UpdateBudget(r.Context(), userID, id, in)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, status)

	case http.MethodDelete:
		if err := s.app.BudgetService.DeleteBudget(r.Context(), userID, id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

// handleBudgetStatus handles GET /api/budgets/status?year=&month=.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	year, month, err := parsePeriod(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	statuses, err := s.app.BudgetService.StatusFor(r.Context(), userID, year, month)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, statuses)
}
