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

	"github.com/jamespfennell/gtfs"

	"busplanner.dev/internal/app"
	"busplanner.dev/internal/appconf"
	"busplanner.dev/internal/busline"
	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/geocode"
	internalgtfs "busplanner.dev/internal/gtfs"
	"busplanner.dev/internal/kakao"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/restapi"
)

func main() {
	var (
		configPath string
		envFile    string
		port       int
		env        string
		gtfsSource string
		verbose    bool
	)

	flag.StringVar(&configPath, "config", "", "Path to config.yml (defaults to ./config.yml when present)")
	flag.StringVar(&envFile, "env-file", ".env", "Path to a .env file")
	flag.IntVar(&port, "port", 0, "API server port (overrides config)")
	flag.StringVar(&env, "env", "", "Environment (development|test|production)")
	flag.StringVar(&gtfsSource, "gtfs", "", "URL or path of a static GTFS zip file")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)
	slog.SetDefault(logger)

	if err := appconf.LoadDotEnv(envFile); err != nil {
		logging.LogError(logger, "failed to load env file", err)
		os.Exit(1)
	}

	cfg, err := appconf.Load(configPath)
	if err != nil {
		logging.LogError(logger, "failed to load config", err)
		os.Exit(1)
	}
	if port != 0 {
		cfg.Port = port
	}
	if env != "" {
		cfg.Env = appconf.EnvFlagToEnvironment(env)
	}
	if gtfsSource != "" {
		cfg.GTFS.Source = gtfsSource
	}
	if err := cfg.Validate(); err != nil {
		logging.LogError(logger, "invalid configuration", err)
		os.Exit(1)
	}
	if cfg.Kakao.RestAPIKey == "" {
		logger.Warn("KAKAO_REST_API_KEY is not set; route requests will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, shutdown, err := buildApplication(ctx, cfg, logger, verbose)
	if err != nil {
		logging.LogError(logger, "failed to initialize application", err)
		os.Exit(1)
	}
	defer shutdown()

	api := restapi.NewRestAPI(application)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2*cfg.Kakao.Timeout() + 5*time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.LogError(logger, "server stopped", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.LogError(logger, "graceful shutdown failed", err)
		}
	}
}

// buildApplication wires the providers, adapters and feed into an Application.
func buildApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger, verbose bool) (*app.Application, func(), error) {
	client := kakao.NewClient(cfg.Kakao, kakao.WithLogger(logger))
	resolver := geocode.NewResolver(client, cfg.Region.Hint, cfg.Cache.GeocodeTTL, logger)
	service := directions.NewService(resolver, client, cfg.Kakao.Priority, logger)

	var manager *internalgtfs.Manager
	if cfg.GTFS.Source == "" {
		logger.Warn("no GTFS source configured; line lookup will return no results")
		manager = internalgtfs.NewManagerFromStatic(&gtfs.Static{}, logger)
	} else {
		loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		var err error
		manager, err = internalgtfs.InitGTFSManager(loadCtx, internalgtfs.Config{
			Source:  cfg.GTFS.Source,
			Verbose: verbose,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("loading GTFS feed: %w", err)
		}
	}

	var lines busline.Lookup = busline.NewFeedLookup(manager, logger)
	if cfg.Cache.StopCacheSize > 0 {
		lines = busline.NewCachedLookup(lines, cfg.Cache.StopCacheSize, time.Hour, logger)
	}

	application := &app.Application{
		Config:      cfg,
		Logger:      logger,
		Directions:  service,
		Lines:       lines,
		GtfsManager: manager,
	}
	return application, manager.Shutdown, nil
}
