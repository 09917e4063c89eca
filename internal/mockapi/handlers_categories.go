package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskbench/taskbench-go/internal/api"
)

// ListCategories handles GET categories/.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	cats := s.store.ListCategories(userID)
	out := make([]api.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, api.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST categories/.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	var req api.CategoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	cat := s.store.CreateCategory(userID, req.Name)
	writeJSON(w, http.StatusCreated, api.CategoryResponse{ID: cat.ID, Name: cat.Name})
}

// UpdateCategory handles PATCH categories/{categoryID}/.
func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		badRequest(w, "invalid category ID")
		return
	}

	var req api.CategoryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	cat, ok := s.store.UpdateCategory(userID, categoryID, req.Name)
	if !ok {
		notFound(w, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, api.CategoryResponse{ID: cat.ID, Name: cat.Name})
}

// DeleteCategory handles DELETE categories/{categoryID}/.
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		badRequest(w, "invalid category ID")
		return
	}
	if !s.store.DeleteCategory(userID, categoryID) {
		notFound(w, "category not found")
		return
	}
	noContent(w)
}
