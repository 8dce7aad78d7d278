package middleware

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

// SentryMiddleware captures panics from handlers, reports them to Sentry and
// re-panics so net/http can close the connection.
func SentryMiddleware(next http.Handler) http.Handler {
	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
		Timeout:         2 * time.Second,
	})

	return sentryHandler.Handle(tagRequest(next))
}

// tagRequest copies the request id onto the request's Sentry scope so
// reported errors can be matched with log lines.
func tagRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			if id := RequestIDFromContext(r.Context()); id != "" {
				hub.Scope().SetTag("request_id", id)
			}
			hub.Scope().SetTag("route", r.Method+" "+r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}
