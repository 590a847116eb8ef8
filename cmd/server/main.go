package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"timed-set/internal/api"
	"timed-set/internal/config"
	"timed-set/internal/logs"
	"timed-set/internal/metrics"
	"timed-set/internal/timedset"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (config.Config, error) {
	cfg := config.Default()

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "listen address")
	fs.DurationVar(&cfg.Set.TTL, "ttl", cfg.Set.TTL, "lifetime of every value added to the set")
	fs.IntVar(&cfg.Log.Size, "log-size", cfg.Log.Size, "log entries kept in memory")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "minimum log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", cfg.Server.ShutdownTimeout, "grace period for in-flight requests")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Root context, cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger
	level, _ := logs.ParseLevel(cfg.Log.Level)
	logger := logs.NewLogger(cfg.Log.Size, level)
	logger.SetOutput(os.Stderr)
	serverLog := logger.With("server")

	// Metrics
	metricsRegistry := metrics.NewRegistry()

	// Set
	set := timedset.New[string](cfg.Set.TTL, timedset.WithMetrics(metricsRegistry))

	// API
	handler := api.NewHandler(set, metricsRegistry, logger)
	mux := http.NewServeMux()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.RegisterRoutes(mux, handler),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		serverLog.Infof("listening on %s, ttl %s", cfg.Server.Addr, cfg.Set.TTL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		serverLog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
