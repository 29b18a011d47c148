package server

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// expenseRequest is the wire form of an expense write. Amount travels as a
// string so no caller can lose precision to float64 on the way in.
type expenseRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Recurring   bool   `json:"recurring"`
	CategoryID  string `json:"category_id"`
}

// toInput parses the wire form into a service input. Parse failures come back
// as a typed validation error so they map to 400 like every other bad input.
func (req expenseRequest) toInput() (interfaces.ExpenseInput, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return interfaces.ExpenseInput{}, models.NewValidationError(models.CodeInvalidInput,
			"amount must be a decimal number string")
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(models.DateFormat, req.Date)
		if err != nil {
			return interfaces.ExpenseInput{}, models.NewValidationError(models.CodeInvalidInput,
				"date must be formatted YYYY-MM-DD")
		}
	}

	return interfaces.ExpenseInput{
		Amount:      amount,
		Currency:    models.CurrencyCode(req.Currency),
		Date:        date,
		Description: req.Description,
		Recurring:   req.Recurring,
		CategoryID:  req.CategoryID,
	}, nil
}

// parseExpenseFilter builds an ExpenseFilter from query parameters:
// start_date, end_date (inclusive, YYYY-MM-DD) and category_id
// ("" selects only uncategorized, absent selects all).
func parseExpenseFilter(r *http.Request) (models.ExpenseFilter, error) {
	var filter models.ExpenseFilter
	q := r.URL.Query()

	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse(models.DateFormat, v)
		if err != nil {
			return filter, models.NewValidationError(models.CodeInvalidInput, "start_date must be formatted YYYY-MM-DD")
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse(models.DateFormat, v)
		if err != nil {
			return filter, models.NewValidationError(models.CodeInvalidInput, "end_date must be formatted YYYY-MM-DD")
		}
		filter.EndDate = &t
	}
	if q.Has("category_id") {
		categoryID := q.Get("category_id")
		filter.CategoryID = &categoryID
	}

	return filter, nil
}

// handleExpenses handles /api/expenses (GET list, POST create).
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		filter, err := parseExpenseFilter(r)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		expenses, err := s.app.LedgerService.ListExpenses(r.Context(), userID, filter)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, expenses)

	case http.MethodPost:
		var req expenseRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		in, err := req.toInput()
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		expense, err := s.app.LedgerService.CreateExpense(r.Context(), userID, in)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, expense)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeExpense handles /api/expenses/{id} (PUT update, DELETE).
func (s *Server) routeExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id := PathParam(r, "/api/expenses/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "expense id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req expenseRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		in, err := req.toInput()
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		expense, err := s.app.LedgerService.UpdateExpense(r.Context(), userID, id, in)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, expense)

	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteExpense(r.Context(), userID, id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}
