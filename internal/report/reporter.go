package report

import (
	"os"
	"runtime"

	"github.com/getsentry/sentry-go"
)

const serviceName = "manoscerca"

// ConfigureScope tags every event with the deployment and the host it came
// from.
func ConfigureScope(env, version string) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(map[string]string{
			"service":     serviceName,
			"env":         env,
			"app_version": version,
			"go_version":  runtime.Version(),
		})
		scope.SetContext("host_info", sentry.Context{
			"hostname": hostname,
			"os":       runtime.GOOS,
			"arch":     runtime.GOARCH,
		})
	})
}

// ReportError captures err at the given level, sentry.LevelError when none
// is passed.
func ReportError(err error, levels ...sentry.Level) {
	opts := SentryReportOptions{Level: sentry.LevelError}
	if len(levels) > 0 {
		opts.Level = levels[0]
	}
	ReportErrorWithSentryOptions(err, opts)
}

// SentryReportOptions provides optional data for reporting.
type SentryReportOptions struct {
	// ExtraContext is attached as the "directory" context, e.g. provider_id.
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
}

// ReportErrorWithSentryOptions captures err with tags, context and level.
func ReportErrorWithSentryOptions(err error, opts SentryReportOptions) {
	if err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if len(opts.ExtraContext) > 0 {
			scope.SetContext("directory", sentry.Context(opts.ExtraContext))
		}
		scope.SetTags(opts.Tags)
		if opts.Level != "" {
			scope.SetLevel(opts.Level)
		}

		// Events with a flow tag group by flow and error type.
		if flow := opts.Tags["flow"]; flow != "" {
			scope.SetFingerprint([]string{"{{ default }}", flow})
		}
		sentry.CaptureException(err)
	})
}
