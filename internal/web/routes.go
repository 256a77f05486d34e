package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/lost-found/internal/web/handlers"
	"github.com/kozaktomas/lost-found/internal/web/middleware"
)

func (s *Server) setupRoutes(sessionManager *middleware.SessionManager) {
	authHandler := handlers.NewAuthHandler(s.deps.Users, sessionManager)
	itemsHandler := handlers.NewItemsHandler(s.deps.Service, s.deps.Items, s.deps.Images)
	notificationsHandler := handlers.NewNotificationsHandler(s.deps.Notifications, s.deps.Items)
	adminHandler := handlers.NewAdminHandler(s.deps.Service)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/status", authHandler.Status)

		// Everything else requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessionManager))

			// Items
			r.Post("/items/lost", itemsHandler.ReportLost)
			r.Post("/items/found", itemsHandler.SubmitFound)
			r.Get("/items", itemsHandler.List)
			r.Get("/items/{id}", itemsHandler.Get)
			r.Get("/items/{id}/image", itemsHandler.Image)

			// Notifications
			r.Get("/notifications", notificationsHandler.List)

			// Admin
			r.Post("/admin/reset", adminHandler.Reset)
		})
	})
}
