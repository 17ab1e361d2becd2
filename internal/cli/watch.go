package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/memberwd/backoffice/internal/entity"
	"github.com/memberwd/backoffice/internal/watch"
	"github.com/memberwd/backoffice/pkg/job"
)

const (
	tokenRefreshInterval = time.Minute
	tokenRefreshWindow   = time.Minute * 5
)

// runWatch hosts the notification watcher until SIGINT/SIGTERM.
func (a *app) runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	metricsAddr := fs.String("metrics-addr", a.cfg.MetricsAddr, "serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var metrics *watch.Metrics

	if *metricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics = watch.NewMetrics(registry)

		go a.serveMetrics(ctx, *metricsAddr, registry)
	}

	watcher, err := watch.New(watch.Config{
		WSURL:                a.cfg.WSURL,
		Tokens:               a.session,
		Tenant:               a.cfg.Tenant,
		KeepAliveInterval:    a.cfg.Watch.KeepAliveInterval,
		ReconnectBaseDelay:   a.cfg.Watch.ReconnectBaseDelay,
		ReconnectMaxDelay:    a.cfg.Watch.ReconnectMaxDelay,
		MaxReconnectAttempts: a.cfg.Watch.MaxReconnectAttempts,
		PollInterval:         a.cfg.Watch.PollInterval,
		Capacity:             a.cfg.Watch.Capacity,
		Notifications:        a.notifications,
		Logger:               a.log,
		Metrics:              metrics,
		OnNotification:       a.printNotification,
	})
	if err != nil {
		return err
	}

	runner := job.NewRunner(a.log)
	runner.AddIf(a.cfg.RefreshToken != "", "token-refresh", tokenRefreshInterval, a.refreshToken)
	runner.Start(ctx)

	defer runner.Stop()

	a.printf("watching notifications (ctrl-c to stop)\n")

	return watcher.Run(ctx)
}

func (a *app) printNotification(n entity.Notification) {
	a.printf("[%s] %s: %s\n", n.CreatedAt.UTC().Format("15:04:05"), n.Type, n.Title)
}

// refreshToken swaps the session token pair before it expires so a
// long watch never drops to 401.
func (a *app) refreshToken(ctx context.Context) error {
	soon, err := a.session.ExpiresSoon(tokenRefreshWindow)
	if err != nil || !soon {
		return err
	}

	next, err := a.auth.Refresh(ctx, a.session.RefreshToken())
	if err != nil {
		return err
	}

	a.session.Update(next)
	a.log.Info("session token refreshed")

	return nil
}

func (a *app) serveMetrics(ctx context.Context, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error("metrics server failed", "error", err)
	}
}
