package routes

import (
	"github.com/go-chi/chi/v5"

	contenthandler "Stash/internal/api/handlers/content"
	"Stash/internal/api/middleware"
	"Stash/internal/core/content"
)

// RegisterContentRoutes registers saved-item endpoints on the router
func RegisterContentRoutes(r chi.Router, service content.Service) {
	handler := contenthandler.NewHandler(service)

	r.Route("/content", func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Post("/", handler.HandleCreate)
		r.Post("/save", handler.HandleSaveLink)
		r.Get("/", handler.HandleList)

		r.Route("/{contentID}", func(r chi.Router) {
			r.Get("/", handler.HandleGet)
			r.Patch("/", handler.HandleUpdate)
			r.Delete("/", handler.HandleDelete)
			r.Post("/folders", handler.HandleAddToFolders)
			r.Put("/similar", handler.HandleSetSimilar)
			r.Get("/similar", handler.HandleGetSimilar)
		})
	})
}
