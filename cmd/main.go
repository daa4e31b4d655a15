package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matchpoint/gamenight/internal/adapters/http/api"
	"github.com/matchpoint/gamenight/internal/adapters/notify"
	"github.com/matchpoint/gamenight/internal/adapters/repository"
	app "github.com/matchpoint/gamenight/internal/app"
	"github.com/matchpoint/gamenight/internal/config"
	"github.com/matchpoint/gamenight/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	var mailer notify.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = notify.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	} else {
		mailer = notify.NewLogMailer(log.Named("mail"))
	}
	dispatcher := notify.NewDispatcher(mailer,
		notify.WithQueueCapacity(cfg.NotifyQueueSize),
		notify.WithLogger(log.Named("notify")),
	)
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	store := repository.NewMemStore(ctx)

	svc := app.New(
		app.WithLogger(log),
		app.WithRepository(store),
		app.WithNotifier(dispatcher),
		app.WithLookbackSessions(cfg.LookbackSessions),
		app.WithAllowTierMixing(cfg.AllowTierMixing),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxRankingLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
