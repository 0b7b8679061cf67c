package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/expat-financier/internal/bootstrap"
	"github.com/GregMSThompson/expat-financier/internal/config"
	"github.com/GregMSThompson/expat-financier/internal/dashboard"
	"github.com/GregMSThompson/expat-financier/internal/dialog"
	"github.com/GregMSThompson/expat-financier/internal/handlers"
	"github.com/GregMSThompson/expat-financier/internal/metrics"
	"github.com/GregMSThompson/expat-financier/internal/response"
	"github.com/GregMSThompson/expat-financier/internal/router"
	"github.com/GregMSThompson/expat-financier/internal/services"
	"github.com/GregMSThompson/expat-financier/internal/telegram"
	"github.com/GregMSThompson/expat-financier/pkg/logger"
)

const (
	shutdownTimeout = 15 * time.Second
	janitorInterval = 10 * time.Minute
)

type app struct {
	cfg    *config.Config
	bs     *bootstrap.Bootstrap
	engine *dialog.Engine
	bot    *telegram.Bot
}

func newApp(ctx context.Context, poll bool) *app {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)

	// services
	profiles := services.NewProfileService(bs.Profiles)
	notifier := services.NewSheetsNotifier(cfg.SheetsURL, cfg.NotifyTimeout)
	if cfg.SheetsURL == "" {
		bs.Log.Warn("SHEETSURL not set, profile export disabled")
	}

	// dialog
	engine := dialog.NewEngine(profiles, notifier, dashboard.NewRenderer(cfg.Currency),
		metrics.NewRecorder(bs.Registry), cfg.NotifyTimeout)

	// transport
	bot, err := telegram.New(bs.Log, engine, telegram.Options{Token: bs.BotToken, Poll: poll})
	exitOnError("telegram setup failed", err, bs.Log)

	go engine.RunJanitor(logger.ToContext(ctx, bs.Log), janitorInterval, cfg.SessionIdle)

	return &app{cfg: cfg, bs: bs, engine: engine, bot: bot}
}

// close waits for in-flight exports before releasing the stores.
func (a *app) close() {
	a.engine.Wait()
	a.bs.Close()
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, false)
	defer a.close()

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = a.bs.Log
	deps.ResponseHandler = response.New(a.bs.Log)
	deps.Bot = a.bot
	deps.WebhookSecret = a.cfg.WebhookSecret

	// router
	r := router.NewRouter(deps, promhttp.HandlerFor(a.bs.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.bs.Log.Info("server listening", "port", a.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			exitOnError("server start failed", err, a.bs.Log)
		}
	case <-ctx.Done():
		a.bs.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.bs.Log.Warn("server shutdown failed", "error", err)
		}
	}
	return nil
}

func poll(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, true)
	defer a.close()

	a.bot.Run(ctx)
	a.bs.Log.Info("polling stopped")
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
