package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"manoscerca.app/internal/middleware"
)

// Routes sets up the HTTP routing configuration for the application and returns the final http.Handler.
//
// Registered Routes:
//   - GET /v1/healthcheck: application health and readiness.
//   - GET /v1/categories: the category code to label table.
//   - GET, POST /v1/providers: filtered listing and registration.
//   - GET, PUT, DELETE /v1/providers/:id: detail view, update and delete.
//   - GET /v1/providers/:id/share: share token and link.
//   - GET /v1/providers/:id/export: profile file download.
//   - GET /v1/share/preview: decode a shared profile without importing it.
//   - POST /v1/import/link, POST /v1/import/file: imports.
//   - GET /v1/map: map center, bounds and marker clusters.
//   - GET /metrics: Prometheus metrics, served from a cache refreshed every 10s.
//
// Middleware, outermost first: security headers, request ids, Sentry.
//
// The ctx stops the metrics cache refresh goroutine.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/categories", app.listCategoriesHandler)

	router.HandlerFunc(http.MethodGet, "/v1/providers", app.listProvidersHandler)
	router.HandlerFunc(http.MethodPost, "/v1/providers", app.createProviderHandler)
	router.HandlerFunc(http.MethodGet, "/v1/providers/:id", app.showProviderHandler)
	router.HandlerFunc(http.MethodPut, "/v1/providers/:id", app.updateProviderHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/providers/:id", app.deleteProviderHandler)
	router.HandlerFunc(http.MethodGet, "/v1/providers/:id/share", app.shareProviderHandler)
	router.HandlerFunc(http.MethodGet, "/v1/providers/:id/export", app.exportProviderHandler)

	router.HandlerFunc(http.MethodGet, "/v1/share/preview", app.sharePreviewHandler)
	router.HandlerFunc(http.MethodPost, "/v1/import/link", app.importLinkHandler)
	router.HandlerFunc(http.MethodPost, "/v1/import/file", app.importFileHandler)

	router.HandlerFunc(http.MethodGet, "/v1/map", app.mapHandler)

	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.SentryMiddleware(router)
	handler = middleware.RequestID(handler)
	return middleware.SecurityHeaders(handler)
}
