package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/clients/analytics"
	"github.com/memberwd/backoffice/internal/clients/auth"
	"github.com/memberwd/backoffice/internal/clients/databases"
	"github.com/memberwd/backoffice/internal/clients/downloads"
	"github.com/memberwd/backoffice/internal/clients/notifications"
	"github.com/memberwd/backoffice/internal/clients/omset"
	"github.com/memberwd/backoffice/internal/clients/records"
	"github.com/memberwd/backoffice/internal/clients/reserved"
	"github.com/memberwd/backoffice/internal/clients/users"
	"github.com/memberwd/backoffice/pkg/config"
	"github.com/memberwd/backoffice/pkg/logger"
	"github.com/memberwd/backoffice/pkg/transport"
)

var ErrUsage = errors.New("usage")

// Execute runs one backoffice command. It loads configuration from the
// environment (and .env when present) and dispatches on the first
// argument.
func Execute(args []string) error {
	cfg, err := config.New(".env")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return newApp(cfg, os.Stdout).run(ctx, args)
}

type app struct {
	cfg config.Config
	out io.Writer
	log *slog.Logger

	session *auth.Session

	auth          *auth.Client
	databases     *databases.Client
	records       *records.Client
	reserved      *reserved.Client
	omset         *omset.Client
	analytics     *analytics.Client
	notifications *notifications.Client
	users         *users.Client
	downloads     *downloads.Client
}

func newApp(cfg config.Config, out io.Writer) *app {
	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogPretty {
		log = logger.NewPretty(logger.ParseLevel(cfg.LogLevel))
	}

	slog.SetDefault(log)

	session := auth.NewSession(cfg.AccessToken, cfg.RefreshToken)

	opts := []api.Option{
		api.WithTokenSource(session),
		api.WithTenant(cfg.Tenant),
	}

	if cfg.HTTPTimeout > 0 {
		opts = append(opts, api.WithHTTPClient(&http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: transport.NewTraceRoundTripper(http.DefaultTransport),
		}))
	}

	apiClient := api.New(cfg.BaseURL, opts...)

	return &app{
		cfg:     cfg,
		out:     out,
		log:     log,
		session: session,

		auth:          auth.NewClient(apiClient),
		databases:     databases.NewClient(apiClient),
		records:       records.NewClient(apiClient),
		reserved:      reserved.NewClient(apiClient),
		omset:         omset.NewClient(apiClient),
		analytics:     analytics.NewClient(apiClient),
		notifications: notifications.NewClient(apiClient),
		users:         users.NewClient(apiClient),
		downloads:     downloads.NewClient(apiClient),
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError()
	}

	ctx = logger.SetCommand(ctx, args[0])

	switch args[0] {
	case "login":
		return a.runLogin(ctx, args[1:])
	case "databases":
		return a.runDatabases(ctx, args[1:])
	case "records":
		return a.runRecords(ctx, args[1:])
	case "reserved":
		return a.runReserved(ctx, args[1:])
	case "omset":
		return a.runOmset(ctx, args[1:])
	case "analytics":
		return a.runAnalytics(ctx, args[1:])
	case "notifications":
		return a.runNotifications(ctx, args[1:])
	case "users":
		return a.runUsers(ctx, args[1:])
	case "downloads":
		return a.runDownloads(ctx, args[1:])
	case "report":
		return a.runReport(ctx, args[1:])
	case "export":
		return a.runExport(ctx, args[1:])
	case "watch":
		return a.runWatch(ctx, args[1:])
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("%w: backoffice <login|databases|records|reserved|omset|analytics|notifications|users|downloads|report|export|watch> [...]", ErrUsage)
}

func subUsageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
