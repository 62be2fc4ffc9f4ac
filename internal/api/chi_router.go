// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/folio/internal/middleware"
)

// Router builds the chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	timeout       time.Duration
}

// NewRouter creates a Router. A zero timeout disables the request timeout.
func NewRouter(handler *Handler, mw *ChiMiddleware, timeout time.Duration) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		timeout:       timeout,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	// Probes and scraping are not rate limited.
	r.Get("/healthz", router.handler.Healthz)
	r.Get("/readyz", router.handler.Readyz)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		if router.timeout > 0 {
			r.Use(chimiddleware.Timeout(router.timeout))
		}
		r.Use(APISecurityHeaders())

		r.Get("/recommend", router.handler.Recommend)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/recommendations", router.handler.Recommendations)

			r.Route("/books", func(r chi.Router) {
				r.Get("/", router.handler.Books)
				r.Get("/search", router.handler.SearchBooks)
				r.Get("/random", router.handler.RandomBooks)
				r.Get("/{id}", router.handler.Book)
			})

			r.Route("/index", func(r chi.Router) {
				r.Get("/", router.handler.IndexStatus)
				r.Get("/history", router.handler.IndexHistory)
				r.With(router.handler.RequireAuthorization).Post("/rebuild", router.handler.RebuildIndex)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	return r
}
