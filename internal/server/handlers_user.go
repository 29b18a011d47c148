package server

import (
	"net/http"

	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// userResponse is the public view of a user account.
type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name,omitempty"`
	BaseCurrency string `json:"base_currency,omitempty"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		BaseCurrency: string(u.BaseCurrency),
	}
}

// handleUserRegister handles POST /api/users/register.
func (s *Server) handleUserRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	u, err := s.app.UserService.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, newUserResponse(u))
}

// handleUserGet handles GET /api/users/me.
func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	u, err := s.app.UserService.Get(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, newUserResponse(u))
}

// handleBaseCurrency handles PUT /api/users/me/base-currency, the explicit
// settings path. It succeeds exactly once per account.
func (s *Server) handleBaseCurrency(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Currency string `json:"currency"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := s.app.UserService.SetBaseCurrency(r.Context(), userID, models.CurrencyCode(req.Currency)); err != nil {
		WriteServiceError(w, err)
		return
	}

	u, err := s.app.UserService.Get(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, newUserResponse(u))
}
