package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"climate-dashboard/internal/config"
	"climate-dashboard/internal/infra/adapter/persistence/jsonfile"
	pgRepo "climate-dashboard/internal/infra/adapter/persistence/postgres"
	"climate-dashboard/internal/infra/db"
	"climate-dashboard/internal/infra/newsapi"
	"climate-dashboard/internal/infra/notifier"
	"climate-dashboard/internal/infra/scraper"
	"climate-dashboard/internal/observability/logging"
	"climate-dashboard/internal/observability/tracing"
	pkgconfig "climate-dashboard/internal/pkg/config"
	"climate-dashboard/internal/registry"
	"climate-dashboard/internal/repository"

	feedUC "climate-dashboard/internal/usecase/feed"
	notifyUC "climate-dashboard/internal/usecase/notify"
	updateUC "climate-dashboard/internal/usecase/update"

	hhttp "climate-dashboard/internal/handler/http"
	"climate-dashboard/internal/handler/http/dashboard"

	_ "climate-dashboard/docs" // swagger docs
)

// @title           Climate Scale-Up News Dashboard API
// @version         1.0
// @description     気候テック企業のニュースと手動アップデートを集約するダッシュボードの API
// @description     企業ごとのフィード取得、手動アップデートの投稿と履歴参照を提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := initLogger()

	cfg, err := config.Load(logger, pkgconfig.NewConfigMetrics("dashboard"))
	if err != nil {
		logger.Error("configuration rejected", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Setup(cfg.TraceSampleRatio)

	roster := initRoster(logger, cfg)
	store, database := initStore(logger, cfg)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	notifications := initNotifications(logger, cfg)
	version := getVersion()
	handler := setupServer(logger, cfg, roster, store, database, notifications, version)

	runServer(logger, cfg, handler, version)

	// サーバー停止後に送信中の通知を待つ
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := notifications.Shutdown(ctx); err != nil {
		logger.Warn("notification shutdown incomplete", slog.Any("error", err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("tracer shutdown failed", slog.Any("error", err))
	}
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func initLogger() *slog.Logger {
	logger := logging.NewFromEnv(os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// initRoster loads the embedded roster, or ROSTER_FILE when set.
func initRoster(logger *slog.Logger, cfg *config.Config) *registry.Registry {
	var (
		roster *registry.Registry
		err    error
	)
	if cfg.RosterFile != "" {
		roster, err = registry.Load(cfg.RosterFile)
	} else {
		roster, err = registry.Default()
	}
	if err != nil {
		logger.Error("failed to load roster", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("roster loaded",
		slog.Int("companies", len(roster.List())),
		slog.Any("groups", roster.Groups()))
	return roster
}

// initStore opens the manual update store. The returned *sql.DB is nil for
// the file store.
func initStore(logger *slog.Logger, cfg *config.Config) (repository.UpdateRepository, *sql.DB) {
	if cfg.Store.Driver != config.StorePostgres {
		logger.Info("using file update store", slog.String("path", cfg.Store.UpdatesFile))
		return jsonfile.New(cfg.Store.UpdatesFile), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("using postgres update store")
	return pgRepo.NewUpdateRepo(database), database
}

// initNewsSource picks the adapter named by NEWS_PROVIDER.
func initNewsSource(logger *slog.Logger, cfg *config.Config) feedUC.NewsSource {
	if cfg.News.Provider == config.ProviderNewsAPI {
		logger.Info("news provider: newsapi",
			slog.Int("history_days", cfg.News.HistoryDays))
		return newsapi.NewClient(newsapi.Config{
			APIKey:      cfg.News.APIKey,
			BaseURL:     cfg.News.APIBaseURL,
			HistoryDays: cfg.News.HistoryDays,
			Timeout:     cfg.News.FetchTimeout,
		})
	}
	logger.Info("news provider: google news rss")
	return scraper.NewRSSFetcher(&http.Client{Timeout: cfg.News.FetchTimeout}, cfg.News.RSSBaseURL)
}

func initNotifications(logger *slog.Logger, cfg *config.Config) *notifyUC.Service {
	channels := []notifyUC.Channel{
		notifyUC.NewSlackChannel(notifier.SlackConfig{
			Enabled:    cfg.Notify.SlackEnabled,
			WebhookURL: cfg.Notify.SlackWebhookURL,
			Timeout:    cfg.Notify.WebhookTimeout,
		}),
		notifyUC.NewDiscordChannel(notifier.DiscordConfig{
			Enabled:    cfg.Notify.DiscordEnabled,
			WebhookURL: cfg.Notify.DiscordWebhookURL,
			Timeout:    cfg.Notify.WebhookTimeout,
		}),
	}
	logger.Info("notifications configured",
		slog.Bool("slack", cfg.Notify.SlackEnabled),
		slog.Bool("discord", cfg.Notify.DiscordEnabled))
	return notifyUC.NewService(channels, cfg.Notify.MaxConcurrent)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer registers every route and wraps the mux in the middleware chain.
func setupServer(
	logger *slog.Logger,
	cfg *config.Config,
	roster *registry.Registry,
	store repository.UpdateRepository,
	database *sql.DB,
	notifications *notifyUC.Service,
	version string,
) http.Handler {
	feedSvc := feedUC.NewService(store, initNewsSource(logger, cfg), cfg.News.Provider, cfg.News.FetchTimeout)
	updateSvc := updateUC.NewService(store, roster, notifications)

	mux := http.NewServeMux()

	// ヘルスチェック・メトリクス
	mux.Handle("/health", &hhttp.HealthHandler{
		Store:         store,
		StoreDriver:   cfg.Store.Driver,
		DB:            database,
		Notifications: notifications,
		Version:       version,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{Store: store, DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	dashboard.Register(mux, roster, feedSvc, updateSvc)

	return hhttp.Chain(mux, hhttp.ServerMiddleware(logger, cfg.RequestTimeout)...)
}

// runServer serves until SIGINT/SIGTERM and then drains in-flight requests.
func runServer(logger *slog.Logger, cfg *config.Config, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
