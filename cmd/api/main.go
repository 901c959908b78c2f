package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/application"
	appactions "github.com/bryanwahyu/rcis/internal/application/actions"
	appai "github.com/bryanwahyu/rcis/internal/application/ai"
	"github.com/bryanwahyu/rcis/internal/application/alerts"
	appdashboard "github.com/bryanwahyu/rcis/internal/application/dashboard"
	appknowledge "github.com/bryanwahyu/rcis/internal/application/knowledge"
	appreworks "github.com/bryanwahyu/rcis/internal/application/reworks"
	"github.com/bryanwahyu/rcis/internal/application/seed"
	appsettings "github.com/bryanwahyu/rcis/internal/application/settings"
	"github.com/bryanwahyu/rcis/internal/config"
	domai "github.com/bryanwahyu/rcis/internal/domain/ai"
	"github.com/bryanwahyu/rcis/internal/domain/knowledge"
	"github.com/bryanwahyu/rcis/internal/infra/ai/openai"
	"github.com/bryanwahyu/rcis/internal/infra/db"
	"github.com/bryanwahyu/rcis/internal/infra/httpserver"
	slacknotify "github.com/bryanwahyu/rcis/internal/infra/notify/slack"
	minioStore "github.com/bryanwahyu/rcis/internal/infra/storage"
	"github.com/bryanwahyu/rcis/internal/logging"
	"github.com/bryanwahyu/rcis/internal/middleware"
)

// narrative endpoint budget per client IP
const (
	narrativeBurst     = 5
	narrativePerMinute = 2
)

func main() {
	// load config (CONFIG_PATH atau config.yaml)
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connect database
	store, err := db.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database connect error", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer store.Close()

	clock := application.SystemClock{Loc: cfg.Location}

	// init minio (opsional)
	var images knowledge.ImageStore
	if cfg.MinioEnabled() {
		s, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatal("minio init error", zap.Error(err))
		}
		images = s
	} else {
		logger.Info("minio not configured, knowledge image upload disabled")
	}

	// init ai (opsional)
	var narrator domai.Client
	if cfg.OpenAIEnabled() {
		narrator = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	} else {
		logger.Info("openai not configured, insight narrative disabled")
	}

	// init services
	dashboardSvc := &appdashboard.Service{Reworks: store.Reworks(), Clock: clock, Log: logger}
	settingsSvc := &appsettings.Service{
		Admin: store,
		Seeder: &seed.Generator{
			Reworks:   store.Reworks(),
			Actions:   store.Actions(),
			Knowledge: store.Knowledge(),
			Clock:     clock,
			Log:       logger,
		},
		Role: cfg.App.Role,
		Log:  logger,
	}

	// alert digest
	if cfg.Alerts.Schedule != "" {
		sched, err := alerts.Parse(cfg.Alerts.Schedule)
		if err != nil {
			logger.Fatal("alerts schedule", zap.Error(err))
		}
		var notifier alerts.Notifier = alerts.LogNotifier{Log: logger}
		if cfg.SlackEnabled() {
			notifier = slacknotify.New(cfg.Slack.BotToken, cfg.Slack.ChannelID)
		}
		scheduler := &alerts.Scheduler{
			Source:       dashboardSvc,
			Notifier:     notifier,
			Clock:        clock,
			Log:          logger,
			LookbackDays: cfg.Alerts.LookbackDays,
		}
		go scheduler.Run(ctx, sched)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	limiter := middleware.NewRateLimiter(narrativeBurst, narrativePerMinute)
	go limiter.Sweep(ctx, 5*time.Minute, 30*time.Minute)

	// init router
	handler := httpserver.NewRouter(httpserver.Deps{
		Reworks:   &appreworks.Service{Repo: store.Reworks(), Clock: clock},
		Actions:   &appactions.Service{Repo: store.Actions(), Clock: clock},
		Knowledge: &appknowledge.Service{Repo: store.Knowledge(), Images: images, Log: logger},
		Dashboard: dashboardSvc,
		AI:        appai.NewService(narrator),
		Settings:  settingsSvc,
		Clock:     clock,
		Health:    map[string]middleware.HealthChecker{"database": middleware.StoreHealthChecker{Store: store}},
		Metrics:   metrics,
		Limiter:   limiter,
		Origins:   cfg.Server.CORSOrigins,
		Log:       logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening",
			zap.String("addr", addr),
			zap.String("driver", cfg.Database.Driver),
			zap.String("timezone", cfg.Location.String()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
