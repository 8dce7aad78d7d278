package utils

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/getsentry/sentry-go"

	"manoscerca.app/internal/report"
)

// CreateDataDirectory ensures the directory that will hold dbPath exists,
// creating it if necessary. A path without a directory component is left
// alone.
func CreateDataDirectory(dbPath string, logger *slog.Logger) error {
	dataDir := filepath.Dir(dbPath)
	if dataDir == "." || dataDir == "" {
		return nil
	}

	stat, err := os.Stat(dataDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(dataDir, 0o750); err != nil {
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Level: sentry.LevelError,
				ExtraContext: map[string]interface{}{
					"data_dir": dataDir,
				},
			})
			return err
		}
		logger.Info("created data directory", "path", dataDir)
		return nil
	}

	if !stat.IsDir() {
		err := fmt.Errorf("%s is not a directory", dataDir)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Level: sentry.LevelError,
			ExtraContext: map[string]interface{}{
				"data_dir": dataDir,
			},
		})
		return err
	}
	return nil
}
