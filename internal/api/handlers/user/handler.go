package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Stash/internal/api/handlers"
	"Stash/internal/core/users"
)

// Handler serves user endpoints
type Handler struct {
	service users.Service
}

// NewHandler creates a new user handler
func NewHandler(service users.Service) *Handler {
	return &Handler{service: service}
}

// HandleRegister creates an account
// POST /users
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, user)
}

// HandleGet returns a user by ID
// GET /users/{userID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, user)
}

// writeServiceError maps user service errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidEmail):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidEmail", "A valid email address is required")
	case errors.Is(err, users.ErrDuplicateEmail):
		handlers.WriteError(w, http.StatusConflict, "DuplicateEmail", "Email already registered")
	case errors.Is(err, users.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "User not found")
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An unexpected error occurred")
	}
}
