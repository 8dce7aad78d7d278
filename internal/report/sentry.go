package report

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SetupSentry initialises the global Sentry client. An empty dsn leaves the
// client disabled, and every capture then becomes a no-op.
func SetupSentry(dsn, env, version string) error {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          "manoscerca@" + version,
		EnableTracing:    true,
		Debug:            env == "development" && dsn != "",
		TracesSampleRate: 1.0,
	}); err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	sentry.CaptureMessage("ManosCerca started")
	return nil
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
