package routes

import (
	"github.com/go-chi/chi/v5"

	folderhandler "Stash/internal/api/handlers/folder"
	"Stash/internal/api/middleware"
	"Stash/internal/core/folders"
)

// RegisterFolderRoutes registers folder endpoints on the router
func RegisterFolderRoutes(r chi.Router, service folders.Service) {
	handler := folderhandler.NewHandler(service)

	r.Route("/folders", func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Post("/", handler.HandleCreate)
		r.Get("/", handler.HandleList)

		r.Route("/{folderID}", func(r chi.Router) {
			r.Get("/", handler.HandleGet)
			r.Patch("/", handler.HandleUpdate)
			r.Delete("/", handler.HandleDelete)
		})
	})
}
