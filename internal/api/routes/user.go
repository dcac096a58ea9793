package routes

import (
	"github.com/go-chi/chi/v5"

	userhandler "Stash/internal/api/handlers/user"
	"Stash/internal/core/users"
)

// RegisterUserRoutes registers user endpoints on the router
func RegisterUserRoutes(r chi.Router, service users.Service) {
	handler := userhandler.NewHandler(service)

	r.Post("/users", handler.HandleRegister)
	r.Get("/users/{userID}", handler.HandleGet)
}
