package app

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"manoscerca.app/internal/report"
	"manoscerca.app/internal/utils"
)

// StartMirrorRefresh reloads the directory from the store every interval
// until ctx is cancelled. It picks up records written to the same database
// by other processes, such as the command-line client.
func (app *Application) StartMirrorRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			app.Logger.Info("stopping directory refresh")
			return
		case <-ticker.C:
			app.refreshMirror(ctx)
		}
	}
}

// refreshMirror runs a single reload. Failures are logged and reported
// here only; the directory does not report reload errors itself.
func (app *Application) refreshMirror(ctx context.Context) {
	before := app.Directory.Count()
	if err := app.Directory.Reload(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		app.Logger.Error("failed to refresh provider directory", "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("flow", "refresh", "storage", app.Config.Storage),
			Level: sentry.LevelWarning,
		})
		return
	}
	if after := app.Directory.Count(); after != before {
		app.Logger.Info("provider directory changed on disk", "before", before, "after", after)
	}
}
