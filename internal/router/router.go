package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/expat-financier/internal/handlers"
	"github.com/GregMSThompson/expat-financier/internal/middleware"
)

func NewRouter(deps *handlers.Deps, metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	wh := handlers.NewWebhookHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Mount("/webhook", wh.WebhookRoutes())
	r.Get("/healthz", hh.Health)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}
