package content

import (
	"errors"
	"net/http"

	"Stash/internal/api/handlers"
	"Stash/internal/core/content"
	"Stash/internal/core/preview"
)

// writeServiceError maps content service errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, preview.ErrInvalidURL):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidURL", err.Error())
	case errors.Is(err, content.ErrInvalidCursor):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidCursor", "Invalid pagination cursor")
	case errors.Is(err, content.ErrFolderNotFound):
		handlers.WriteError(w, http.StatusBadRequest, "FolderNotFound", "One or more folders do not exist")
	case errors.Is(err, content.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Content not found")
	case errors.Is(err, content.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", "You do not have access to this content")
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An unexpected error occurred")
	}
}
