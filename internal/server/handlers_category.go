package server

import "net/http"

// handleCategories handles /api/categories (GET list, POST create).
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		categories, err := s.app.LedgerService.ListCategories(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var req struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		category, err := s.app.LedgerService.CreateCategory(r.Context(), userID, req.Name, req.Color)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, category)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeCategory handles /api/categories/{id} (DELETE).
func (s *Server) routeCategory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id := PathParam(r, "/api/categories/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "category id is required")
		return
	}

	if err := s.app.LedgerService.DeleteCategory(r.Context(), userID, id); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
