package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/finbook/finbook-api/internal/api"
	apiMiddleware "github.com/finbook/finbook-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. The credit-card paths carry a literal colon (for example
// /credit-card:all), which chi treats as part of the path segment.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	userHandler := api.NewUserHandler(app.userService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)

	r.Put("/user", userHandler.Create)
	r.Delete("/user", userHandler.Delete)

	r.Post("/credit-card", cardHandler.AddCard)
	r.Get("/credit-card:all", cardHandler.ListCards)
	r.Get("/credit-card:user-id", cardHandler.ResolveOwner)
	r.Post("/credit-card:update-balance", cardHandler.UpdateBalances)
	r.Get("/credit-card:balance-history", cardHandler.BalanceHistory)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
