// README: Entry point; loads config, wires the generation provider and usage sinks, serves HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelplanner/internal/ai"
	"travelplanner/internal/config"
	httptransport "travelplanner/internal/http"
	"travelplanner/internal/infra"
	"travelplanner/internal/logger"
	"travelplanner/internal/modules/aiusage"
	"travelplanner/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logr := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = logr.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.APIKey() == "" {
		logr.Warn("generation credential not set; plan requests will fail until it is provided",
			zap.String("env", cfg.CredentialEnv()))
	}

	generator, closeGenerator, err := ai.NewGenerator(ctx, ai.ProviderConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.AI.AnthropicBaseURL,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
	})
	if err != nil {
		logr.Fatal("init generation provider", zap.Error(err))
	}
	defer closeGenerator()

	usageSvc, closeUsage := buildUsage(ctx, cfg, logr)
	defer closeUsage()

	var recorder service.UsageRecorder
	if usageSvc.Enabled() {
		recorder = usageSvc
	}
	planner := service.NewTripPlanner(generator, service.Tariff{
		InputPerMTok:  cfg.Tariff.InputPerMTok,
		OutputPerMTok: cfg.Tariff.OutputPerMTok,
	}, recorder, logr)

	gin.SetMode(cfg.HTTP.GinMode)
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner: planner,
		Logger:  logr,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logr.Error("http shutdown", zap.Error(err))
		}
	}()

	logr.Info("travel planning api listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("provider", cfg.AI.Provider),
		zap.String("model", generator.Model()),
		zap.Bool("usage_ledger", cfg.DB.DSN != ""),
		zap.Bool("usage_totals", cfg.Redis.Addr != ""),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Fatal("http server", zap.Error(err))
	}
}

// buildUsage connects the optional usage sinks. A sink that cannot be reached
// is logged and skipped; planning never depends on it.
func buildUsage(ctx context.Context, cfg config.Config, logr *zap.Logger) (*aiusage.Service, func()) {
	var (
		store   *aiusage.Store
		counter *aiusage.Counter
		closers []func()
	)
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logr.Warn("usage ledger disabled", zap.Error(err))
		} else {
			store = aiusage.NewStore(pool)
			closers = append(closers, pool.Close)
		}
	}
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logr.Warn("usage totals disabled", zap.Error(err))
		} else {
			counter = aiusage.NewCounter(rdb)
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}
	return aiusage.NewService(store, counter), func() {
		for _, c := range closers {
			c()
		}
	}
}
