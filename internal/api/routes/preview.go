package routes

import (
	"github.com/go-chi/chi/v5"

	previewhandler "Stash/internal/api/handlers/preview"
	"Stash/internal/core/preview"
)

// RegisterPreviewRoutes registers the on-demand preview endpoint
func RegisterPreviewRoutes(r chi.Router, service preview.Service) {
	handler := previewhandler.NewHandler(service)

	r.Get("/preview", handler.HandleResolve)
}
