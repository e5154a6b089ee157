// Package main - Entry point for the reuse-cost estimation server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	hcladapter "reuse-cost/adapters/hcl"
	"reuse-cost/api"
	"reuse-cost/core/estimate"
	"reuse-cost/internal/config"
	"reuse-cost/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgFile := flag.String("config", "", "config file (json or yaml)")
	envFile := flag.String("env-file", ".env", "dotenv file applied over the config")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	if err := run(*cfgFile, *envFile, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, envFile, addr string) error {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	est := estimate.Default()
	if cfg.Catalog.Path != "" {
		cat, err := hcladapter.NewLoader().LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		if est, err = estimate.New(cat); err != nil {
			return err
		}
	}

	server := api.NewServer(api.Options{
		Version:   version,
		Estimator: est,
		RateLimit: cfg.Server.RateLimit,
		Burst:     cfg.Server.Burst,
		Variation: decimal.NewFromFloat(cfg.Output.Variation),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe(cfg.Server.Addr)
	}()
	logging.Info("server started",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("catalog", est.Catalog().Version))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutdown signal received, draining connections")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil {
		return err
	}
	logging.Info("server stopped")
	return nil
}
