package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"manoscerca.app/internal/app"
	"manoscerca.app/internal/config"
	"manoscerca.app/internal/report"
	"manoscerca.app/internal/store"
	"manoscerca.app/internal/utils"
)

const version = "1.0.0"

// mirrorRefreshInterval is how often the server picks up records written
// to the database by other processes.
const mirrorRefreshInterval = 30 * time.Second

func main() {
	cfg, err := parseConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := report.SetupSentry(cfg.SentryDSN, cfg.Env, version); err != nil {
		logger.Error("failed to initialise sentry", "error", err)
	}
	defer report.FlushSentry()
	report.ConfigureScope(cfg.Env, version)

	if err := run(cfg, logger); err != nil {
		report.ReportError(err, sentry.LevelFatal)
		report.FlushSentry()
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// parseConfig builds the configuration from the defaults or the config
// file, then the environment, then the flags explicitly set in args.
func parseConfig(args []string, lookup func(string) (string, bool)) (*config.Config, error) {
	fs := flag.NewFlagSet("manoscerca", flag.ContinueOnError)

	var (
		port       = fs.Int("port", 4000, "API server port")
		env        = fs.String("env", "development", "Environment (development|staging|production)")
		configFile = fs.String("config-file", "", "Path to a local YAML configuration file")
		dbPath     = fs.String("db", "", "Path to the SQLite database file")
		storage    = fs.String("storage", "", "Storage engine (sqlite|memory)")
		noSeed     = fs.Bool("no-seed", false, "Do not seed sample providers into an empty directory")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(lookup)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "env":
			cfg.Env = *env
		case "db":
			cfg.DBPath = *dbPath
		case "storage":
			cfg.Storage = *storage
		case "no-seed":
			cfg.SeedSampleData = !*noSeed
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfig(configFile string) (*config.Config, error) {
	if configFile == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfigFromFile(configFile)
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Storage == config.StorageSQLite {
		if err := utils.CreateDataDirectory(cfg.DBPath, logger); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	st, err := store.Open(ctx, cfg.Storage, cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	application := app.New(cfg, st, logger, version)
	if err := application.Directory.Load(ctx, cfg.SeedSampleData); err != nil {
		return fmt.Errorf("failed to load provider directory: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Storage == config.StorageSQLite {
		g.Go(func() error {
			application.StartMirrorRefresh(gctx, mirrorRefreshInterval)
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
