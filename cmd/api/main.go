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

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"github.com/MrJamesThe3rd/fixnet/internal/auth"
	"github.com/MrJamesThe3rd/fixnet/internal/config"
	"github.com/MrJamesThe3rd/fixnet/internal/database"
	fixnetHttp "github.com/MrJamesThe3rd/fixnet/internal/http"
	diagnosticHandler "github.com/MrJamesThe3rd/fixnet/internal/http/diagnostic"
	pricingHandler "github.com/MrJamesThe3rd/fixnet/internal/http/pricing"
	repairHandler "github.com/MrJamesThe3rd/fixnet/internal/http/repair"
	"github.com/MrJamesThe3rd/fixnet/internal/importer"
	"github.com/MrJamesThe3rd/fixnet/internal/metrics"
	"github.com/MrJamesThe3rd/fixnet/internal/notify"
	"github.com/MrJamesThe3rd/fixnet/internal/notify/telegram"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
	repairStore "github.com/MrJamesThe3rd/fixnet/internal/repair/store"
	"github.com/MrJamesThe3rd/fixnet/internal/tracing"
)

func main() {
	issueFor := flag.String("issue-token", "", "print an operator token for the given subject and exit")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of tokens printed by -issue-token")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.App.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	if *issueFor != "" {
		if err := printToken(cfg.Server.JWTSecret, *issueFor, *tokenTTL); err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}

		return
	}

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func printToken(secret, subject string, ttl time.Duration) error {
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	token, err := auth.Issue(secret, subject, ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)

	return nil
}

func run(cfg *config.Config) error {
	metrics.Init()

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	tp, err := tracing.Setup(cfg.Tracing.Exporter, cfg.App.Name, os.Stdout)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}

	if tp != nil {
		otel.SetTracerProvider(tp)

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := tp.Shutdown(ctx); err != nil {
				slog.Error("failed to flush traces", "error", err)
			}
		}()
	}

	sender, err := newSender(cfg)
	if err != nil {
		return err
	}

	dispatcher := notify.NewDispatcher(sender, notify.Options{
		Workers:   cfg.Notify.Workers,
		QueueSize: cfg.Notify.QueueSize,
		Timeout:   cfg.Notify.Timeout,
	})

	var (
		repairService = repair.NewService(repairStore.New(db), dispatcher)
		parser        = importer.NewParser()
	)

	var (
		diagnosticH = diagnosticHandler.NewHandler()
		pricingH    = pricingHandler.NewHandler()
		repairH     = repairHandler.NewHandler(repairService, parser)
	)

	routerOpts := fixnetHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		JWTSecret:   cfg.Server.JWTSecret,
		Metrics:     metrics.Handler(),
	}
	// Assigned only when set so a nil provider stays a nil interface.
	if tp != nil {
		routerOpts.TracerProvider = tp
	}

	router := fixnetHttp.New(diagnosticH, pricingH, repairH, routerOpts)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	if err := dispatcher.Close(shutdownCtx); err != nil {
		slog.Warn("pending notifications were not delivered", "error", err)
	}

	return nil
}

// newSender picks Telegram when it is configured and falls back to logging.
func newSender(cfg *config.Config) (notify.Sender, error) {
	if !cfg.TelegramEnabled() {
		slog.Warn("telegram is not configured, notifications will only be logged")
		return notify.LogSender{}, nil
	}

	sender, err := telegram.New(telegram.Config{
		Token:   cfg.Telegram.Token,
		ChatID:  cfg.Telegram.ChatID,
		Rate:    cfg.Notify.Rate,
		Timeout: cfg.Notify.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating telegram sender: %w", err)
	}

	// Telegram being down must not keep intake from starting.
	go func() {
		if err := sender.Check(); err != nil {
			slog.Error("telegram is unreachable, notifications will fail until it recovers", "error", err)
		}
	}()

	return sender, nil
}
