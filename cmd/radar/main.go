package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"B3Radar/internal/collector"
	"B3Radar/internal/config"
	"B3Radar/internal/logging"
	"B3Radar/internal/notifier"
	"B3Radar/internal/radar"
	"B3Radar/internal/recorder"
	"B3Radar/internal/scheduler"
	"B3Radar/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("B3Radar starting")

	tf, err := cfg.Timeframe()
	if err != nil {
		logger.Fatal("engine timeframe", zap.Error(err))
	}

	fetcher := newFetcher(cfg, logger)
	logger.Info("data source ready",
		zap.String("provider", fetcher.Name()),
		zap.Duration("cache_ttl", cfg.DataSource.CacheTTL))
	if cfg.DataSource.CacheTTL > 0 {
		fetcher = collector.NewCachedFetcher(fetcher, cfg.DataSource.CacheTTL)
	}
	col := collector.NewCollector(fetcher, cfg.DataSource.Concurrency, cfg.DataSource.RequestPacing, logger)

	rec := newRecorder(cfg.Database.SQLitePath, logger)
	defer rec.Close()

	svc, err := radar.NewService(col, rec, tf, logger)
	if err != nil {
		logger.Fatal("init radar service", zap.Error(err))
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sender scheduler.Sender
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
		sender = tn
	} else {
		logger.Info("telegram not configured, chat delivery disabled")
	}

	sched := scheduler.NewScheduler(ctx, svc, sender, scheduler.NewTradingCalendar(logger), logger)
	sched.MarketHoursOnly = cfg.Schedule.MarketHoursOnly
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.SummaryCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	api := server.New(svc, logger)
	go api.Hub().Run(ctx)
	srv := api.HTTPServer(cfg.Server.Addr)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, refreshing now")
		go sched.RunRefreshNow()
	}

	logger.Info("B3Radar is running. Press Ctrl+C to stop.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received, stopping...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	cancel()
	logger.Info("B3Radar stopped")
}

func newFetcher(cfg *config.Config, logger *zap.Logger) collector.Fetcher {
	opts := collector.HTTPOptions{
		BaseURL:       cfg.DataSource.BaseURL,
		Range:         cfg.DataSource.Range,
		Interval:      cfg.DataSource.Interval,
		Proxy:         cfg.Proxy,
		Timeout:       cfg.DataSource.RequestTimeout,
		MaxRetries:    cfg.DataSource.MaxRetries,
		RetryInterval: time.Second,
	}
	switch cfg.DataSource.Provider {
	case config.ProviderBrapi:
		return collector.NewBrapiFetcher(opts, cfg.DataSource.APIKey, logger)
	case config.ProviderDemo:
		return &collector.DemoFetcher{}
	default:
		return collector.NewYahooFetcher(opts, logger)
	}
}

func newRecorder(path string, logger *zap.Logger) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("create database dir failed, using noop recorder", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path, logger)
	if err != nil {
		logger.Warn("init sqlite recorder failed, using noop recorder", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}
