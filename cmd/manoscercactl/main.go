// Command manoscercactl manages the provider directory stored in a local
// SQLite database, the same file the manoscerca server reads.
package main

import (
	"context"
	"os"
	"os/signal"

	"manoscerca.app/internal/report"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	report.FlushSentry()
	if err != nil {
		os.Exit(1)
	}
}
