package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/stratix/internal/api"
	"github.com/newthinker/stratix/internal/backtest"
	"github.com/newthinker/stratix/internal/config"
	"github.com/newthinker/stratix/internal/journal"
	"github.com/newthinker/stratix/internal/logger"
	"github.com/newthinker/stratix/internal/marketdata"
	"github.com/newthinker/stratix/internal/metrics"
	"github.com/newthinker/stratix/internal/profile"
	"github.com/newthinker/stratix/internal/research"
	"github.com/newthinker/stratix/internal/scanner"
	"github.com/newthinker/stratix/internal/session"
	"github.com/newthinker/stratix/internal/storage/archive"
	"github.com/newthinker/stratix/internal/strategy"
	"github.com/newthinker/stratix/internal/strategy/emacross"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Stratix server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	sessions, err := buildSessionStore(cfg, log)
	if err != nil {
		return err
	}
	profiles := profile.NewService(sessions, logger.Component(log, "profile"))

	var provider marketdata.Provider = marketdata.NewGenerator()
	if cfg.Market.QuoteCacheTTL > 0 {
		provider = marketdata.NewCachedProvider(provider, cfg.Market.QuoteCacheTTL)
	}

	engine := strategy.NewEngine(logger.Component(log, "strategy"))
	engine.Register(emacross.New(strategy.Params{}))

	results, err := buildArchive(cfg)
	if err != nil {
		return err
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	server, err := api.NewServer(api.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		JobTTL:         time.Duration(cfg.Server.JobTTLHours) * time.Hour,
		MaxJobs:        cfg.Server.MaxJobs,
		MetricsPath:    cfg.Metrics.Path,
		StreamEnabled:  cfg.Stream.Enabled,
		StreamInterval: cfg.Stream.Interval,
	}, api.Dependencies{
		Profiles:   profiles,
		Market:     provider,
		Scanner:    scanner.New(provider, logger.Component(log, "scanner")),
		Strategies: engine,
		Backtester: backtest.New(provider),
		Archive:    results,
		Journal:    journal.NewStore(),
		Research:   research.NewLab(),
		Metrics:    reg,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.Info("starting Stratix server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down Stratix server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

// buildSessionStore picks the configured session backend, falling back to
// memory when redis is unreachable.
func buildSessionStore(cfg *config.Config, log *zap.Logger) (session.Store, error) {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Session.Redis.Addr,
		Password: cfg.Session.Redis.Password,
		DB:       cfg.Session.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory sessions",
			zap.String("addr", cfg.Session.Redis.Addr), zap.Error(err))
		return session.NewMemoryStore(), nil
	}

	return session.NewRedisStore(client, cfg.Session.TTL), nil
}

// buildArchive builds the backtest result archive from config.
func buildArchive(cfg *config.Config) (*archive.Results, error) {
	switch cfg.Archive.Type {
	case "s3":
		storage, err := archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 archive: %w", err)
		}
		return archive.NewResults(storage), nil
	default:
		storage, err := archive.NewLocalFS(cfg.Archive.Path)
		if err != nil {
			return nil, fmt.Errorf("creating archive dir: %w", err)
		}
		return archive.NewResults(storage), nil
	}
}
