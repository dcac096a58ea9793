package preview

import (
	"errors"
	"net/http"

	"Stash/internal/api/handlers"
	"Stash/internal/core/preview"
)

// Handler resolves link previews on demand
type Handler struct {
	service preview.Service
}

// NewHandler creates a new preview handler
func NewHandler(service preview.Service) *Handler {
	return &Handler{service: service}
}

// HandleResolve resolves preview metadata for a URL
// GET /preview?url={url}
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "url parameter is required")
		return
	}

	result, err := h.service.Resolve(r.Context(), rawURL)
	if err != nil {
		if errors.Is(err, preview.ErrInvalidURL) {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidURL", err.Error())
			return
		}
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to resolve preview")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
