package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/yndnr/voteledger-go/internal/core/domain"
	"github.com/yndnr/voteledger-go/internal/core/service"
	"github.com/yndnr/voteledger-go/internal/infra/buildinfo"
	"github.com/yndnr/voteledger-go/internal/infra/confloader"
	"github.com/yndnr/voteledger-go/internal/infra/shutdown"
	"github.com/yndnr/voteledger-go/internal/server/config"
	"github.com/yndnr/voteledger-go/internal/server/httpserver"
	"github.com/yndnr/voteledger-go/internal/storage"
	"github.com/yndnr/voteledger-go/internal/storage/memory"
	"github.com/yndnr/voteledger-go/internal/telemetry/logger"
	"github.com/yndnr/voteledger-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("voteledger-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	log.Info("starting voteledger-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	metrics := metric.NewRegistry()

	kv, err := openStorage(cfg, log, metrics)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	checkpoints := storage.NewCheckpointStore(kv, log)
	weights := service.NewWeightService(checkpoints, log)
	tokens := service.NewTokenService(kv, storage.NewTokenStore(kv), weights,
		&service.TokenServiceConfig{MaxSupply: cfg.Ledger.MaxSupply}, log)
	clock := storage.NewStepClock(kv)
	auth := service.NewAuthService(operatorKeys(cfg), log)

	if !auth.HasKeys() {
		log.Warn("no operator keys configured, mint and admin endpoints will reject all requests")
	}

	// Seed the step gauge from storage so restarts do not zero it.
	if step, err := clock.Current(context.Background()); err == nil {
		metrics.SetCurrentStep(float64(step))
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		WeightService: weights,
		TokenService:  tokens,
		AuthService:   auth,
		StepClock:     clock,
		KV:            kv,
		Metrics:       metrics,
		Logger:        log,
		RateLimit:     cfg.Limits.RateLimit,
		RateBurst:     cfg.Limits.RateBurst,
	})

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router,
		cfg.Server.HTTP.ReadTimeout, cfg.Server.HTTP.WriteTimeout)

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing storage engine")
		return kv.Close()
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped")
	return nil
}

// loadConfig merges defaults, the optional config file, and the
// environment, then validates the result.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStorage opens the configured KV engine.
func openStorage(cfg *config.ServerConfig, log *slog.Logger, metrics *metric.Registry) (storage.KVEngine, error) {
	if cfg.Storage.Engine == "memory" {
		log.Warn("using memory engine, data will not survive restarts")
		return memory.New(), nil
	}

	kvCfg := storage.KVConfig{
		Engine: cfg.Storage.Engine,
		Dir:    cfg.Storage.DataDir,
		Badger: storage.BadgerConfig{
			GCInterval:       cfg.Storage.Badger.GCInterval.String(),
			GCThreshold:      cfg.Storage.Badger.GCThreshold,
			CacheSize:        cfg.Storage.Badger.CacheSize,
			ValueLogFileSize: cfg.Storage.Badger.ValueLogFileSize,
			NumMemtables:     cfg.Storage.Badger.NumMemtables,
			SyncWrites:       cfg.Storage.Badger.SyncWrites,
		},
	}

	engine, err := storage.NewBadgerEngine(kvCfg, log)
	if err != nil {
		return nil, err
	}
	engine.RegisterMetrics(metrics.Prometheus())
	return engine, nil
}

// operatorKeys converts configured keys into domain keys.
func operatorKeys(cfg *config.ServerConfig) []*domain.OperatorKey {
	keys := make([]*domain.OperatorKey, 0, len(cfg.Security.OperatorKeys))
	for _, k := range cfg.Security.OperatorKeys {
		keys = append(keys, &domain.OperatorKey{
			KeyID:      k.KeyID,
			Name:       k.Name,
			SecretHash: k.SecretHash,
		})
	}
	return keys
}
