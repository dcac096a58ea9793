package folder

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Stash/internal/api/handlers"
	"Stash/internal/api/middleware"
	"Stash/internal/core/folders"
)

// Handler serves folder endpoints
type Handler struct {
	service folders.Service
}

// NewHandler creates a new folder handler
func NewHandler(service folders.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate creates a folder
// POST /folders
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	var req folders.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}

	folder, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, folder)
}

// HandleList lists the caller's folders
// GET /folders
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, list)
}

// HandleGet returns a single folder
// GET /folders/{folderID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	folder, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "folderID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, folder)
}

// HandleUpdate applies a partial update
// PATCH /folders/{folderID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	var req folders.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}

	folder, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "folderID"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, folder)
}

// HandleDelete removes a folder
// DELETE /folders/{folderID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "folderID")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps folder service errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, folders.ErrEmptyTitle):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Folder title is required")
	case errors.Is(err, folders.ErrDuplicateTitle):
		handlers.WriteError(w, http.StatusConflict, "DuplicateTitle", "A folder with this title already exists")
	case errors.Is(err, folders.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Folder not found")
	case errors.Is(err, folders.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", "You do not have access to this folder")
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An unexpected error occurred")
	}
}
