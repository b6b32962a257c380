package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/aronpal/accountd/internal/auth"
	"github.com/aronpal/accountd/internal/handlers"
	"github.com/aronpal/accountd/internal/middleware"
)

// RegisterRoutes registers all application routes under /api
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	resetHandler *handlers.PasswordResetHandler,
	addressHandler *handlers.AddressHandler,
	adminHandler *handlers.AdminHandler,
	tokenManager *auth.TokenManager,
) {
	// Rate limiting for endpoints that accept credentials or mail codes
	rateLimitConfig := middleware.DefaultCredentialRateLimit()

	router.Route("/api", func(api chi.Router) {
		// Public routes - no authentication required
		api.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)
		api.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/token/refresh", authHandler.Refresh)
		api.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/register", authHandler.Register)

		api.Route("/password-reset", func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(rateLimitConfig))
			r.Post("/send-otp", resetHandler.SendOTP)
			r.Post("/verify-otp", resetHandler.VerifyOTP)
		})

		// Protected routes - authentication required
		api.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(tokenManager))

			r.Get("/auth/profile", userHandler.GetProfile)
			r.Post("/auth/profile", userHandler.UpdateProfile)
			r.Get("/auth/users", userHandler.ListUsers)
			r.Get("/auth/users/{id}", userHandler.GetUser)

			r.Route("/addresses", func(r chi.Router) {
				r.Post("/", addressHandler.CreateAddress)
				r.Get("/", addressHandler.ListAddresses)
				r.Get("/check", addressHandler.CheckAddress)
				r.Get("/{id}", addressHandler.GetAddress)
				r.Put("/{id}", addressHandler.UpdateAddress)
			})

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/admin/users", adminHandler.ListUsers)
				r.Post("/admin/users", adminHandler.CreateUser)
				r.Put("/admin/users/{id}", adminHandler.UpdateUser)
				r.Delete("/admin/users/{id}", adminHandler.DeleteUser)
				r.Get("/admin/stats", adminHandler.DashboardStats)
			})
		})
	})
}
