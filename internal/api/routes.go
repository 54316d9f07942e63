package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the service router. The webhook path answers GET with a
// static liveness body because SNS pings the endpoint before delivering.
func Routes(webhook *WebhookHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Get("/health", HandleHealth)
	r.Get("/webhooks/ses", webhook.HandleGet)
	r.Post("/webhooks/ses", webhook.HandlePost)

	return r
}
