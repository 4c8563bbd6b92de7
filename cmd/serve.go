package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"astronaut-schedule/internal/config"
	router "astronaut-schedule/internal/http"
	"astronaut-schedule/internal/http/handlers"
	"astronaut-schedule/internal/http/middleware"
	"astronaut-schedule/internal/importer"
	"astronaut-schedule/internal/logx"
	"astronaut-schedule/internal/notify"
	"astronaut-schedule/internal/service"
	"astronaut-schedule/internal/store/memory"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	serveSeed  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the schedule HTTP API",
	Long:  `Serve the timeline over HTTP. Conflicts are logged and, when a webhook is configured, posted to it.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "Schedule file to import before serving")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "Reload the log level when the config file changes")
}

func newLogger(cfg config.Config) logx.Logger {
	return logx.New(logx.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})
}

func newDispatcher(cfg config.Config, log logx.Logger) *notify.Dispatcher {
	sinks := []notify.Sink{notify.LogSink{Log: log}}
	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(cfg.Notify.WebhookURL, cfg.Notify.WebhookRate, cfg.Notify.WebhookTimeout))
	}
	return notify.New(cfg.Notify.QueueSize, log, sinks...)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	dispatcher := newDispatcher(cfg, log)
	dispatcher.Start(cfg.Notify.Workers)

	store := memory.New(dispatcher)

	svc, err := service.New(store, log)
	if err != nil {
		return fmt.Errorf("service initiation failed: %w", err)
	}

	if serveSeed != "" {
		if err := seed(svc, serveSeed, log); err != nil {
			return err
		}
	}

	var limiter *rate.Limiter
	if cfg.HTTP.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
	}

	handler := router.New(handlers.New(svc),
		middleware.RequestID,
		middleware.AccessLog(log),
		middleware.RateLimit(limiter),
	)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch && configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, log, func(next config.Config) {
				log.SetLevel(next.Log.Level)
			})
			if err != nil {
				log.Warn("config watch stopped", logx.Err(err))
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", logx.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Debug("systemd notify failed", logx.Err(err))
	}

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("shut down signal received")
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn("notify drain incomplete", logx.Err(err))
	}

	log.Info("shut down gracefully")
	return nil
}

func seed(svc *service.TaskService, path string, log logx.Logger) error {
	f, err := importer.Load(path)
	if err != nil {
		return err
	}

	res := importer.Apply(svc, f)
	for _, failed := range res.Failed {
		log.Warn("seed entry skipped", logx.Err(failed))
	}
	log.Info("seed imported",
		logx.String("path", path),
		logx.Int("added", len(res.Added)),
		logx.Int("failed", len(res.Failed)),
	)
	return nil
}
