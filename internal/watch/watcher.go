package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/clients/notifications"
	"github.com/memberwd/backoffice/internal/entity"
	"github.com/memberwd/backoffice/pkg/job"
)

const (
	defaultKeepAliveInterval    = time.Second * 30
	defaultReconnectBaseDelay   = time.Second
	defaultReconnectMaxDelay    = time.Second * 30
	defaultMaxReconnectAttempts = 5
	defaultPollInterval         = time.Minute
	defaultCapacity             = 200

	writeWait = time.Second * 10
)

// NotificationLister is the REST surface the polling fallback needs.
// *notifications.Client satisfies it.
type NotificationLister interface {
	List(ctx context.Context, filter notifications.Filter) ([]entity.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
}

type Config struct {
	// WSURL is the full notification stream endpoint (ws/wss scheme).
	WSURL  string
	Tokens api.TokenSource
	Tenant string

	KeepAliveInterval    time.Duration
	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
	MaxReconnectAttempts int
	PollInterval         time.Duration
	Capacity             int

	// OnNotification fires for every new (not previously seen) item,
	// from both the live channel and polling.
	OnNotification func(entity.Notification)

	Notifications NotificationLister
	Logger        *slog.Logger
	Metrics       *Metrics
	Dialer        *websocket.Dialer
}

// Watcher mirrors the notification inbox over a live channel. It is a
// reconnect policy around a read loop, nothing more: arrival order,
// no delivery guarantees. After MaxReconnectAttempts consecutive
// failures it degrades to polling for the rest of its lifetime.
type Watcher struct {
	cfg Config

	mu     sync.Mutex
	list   []entity.Notification
	seen   map[uuid.UUID]struct{}
	unread int
}

func New(cfg Config) (*Watcher, error) {
	if cfg.WSURL == "" {
		return nil, fmt.Errorf("%w: websocket url is required", entity.ErrInvalidInput)
	}

	if cfg.Notifications == nil {
		return nil, fmt.Errorf("%w: notifications client is required", entity.ErrInvalidInput)
	}

	if cfg.KeepAliveInterval <= 0 {
		cfg.KeepAliveInterval = defaultKeepAliveInterval
	}

	if cfg.ReconnectBaseDelay <= 0 {
		cfg.ReconnectBaseDelay = defaultReconnectBaseDelay
	}

	if cfg.ReconnectMaxDelay <= 0 {
		cfg.ReconnectMaxDelay = defaultReconnectMaxDelay
	}

	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = defaultMaxReconnectAttempts
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}

	return &Watcher{
		cfg:  cfg,
		seen: make(map[uuid.UUID]struct{}),
	}, nil
}

// Run blocks until ctx is cancelled. Context cancellation is the only
// clean exit; Run then returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.cfg.Logger

	attempts := 0

	for {
		if ctx.Err() != nil {
			return nil
		}

		conn, err := w.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			attempts++
			w.cfg.Metrics.reconnectAttempted()
			log.Warn("websocket dial failed", "error", err, "attempt", attempts)

			if attempts >= w.cfg.MaxReconnectAttempts {
				log.Warn("reconnect ceiling reached, falling back to polling")
				return w.poll(ctx)
			}

			if !w.sleep(ctx, w.backoff(attempts)) {
				return nil
			}

			continue
		}

		attempts = 0
		w.cfg.Metrics.setConnected(true)
		log.Info("websocket connected")

		err = w.serve(ctx, conn)
		w.cfg.Metrics.setConnected(false)

		if ctx.Err() != nil {
			return nil
		}

		attempts++
		w.cfg.Metrics.reconnectAttempted()
		log.Warn("websocket closed", "error", err, "attempt", attempts)

		if attempts >= w.cfg.MaxReconnectAttempts {
			log.Warn("reconnect ceiling reached, falling back to polling")
			return w.poll(ctx)
		}

		if !w.sleep(ctx, w.backoff(attempts)) {
			return nil
		}
	}
}

// dial authenticates via query params: the browser client could not set
// headers on a websocket, and the backend keeps that contract.
func (w *Watcher) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(w.cfg.WSURL)
	if err != nil {
		return nil, fmt.Errorf("parse websocket url: %w", err)
	}

	query := u.Query()

	if w.cfg.Tokens != nil {
		token, err := w.cfg.Tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("token source: %w", err)
		}

		query.Set("token", token)
	}

	if w.cfg.Tenant != "" {
		query.Set("tenant", w.cfg.Tenant)
	}

	u.RawQuery = query.Encode()

	conn, resp, err := w.cfg.Dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial websocket: %w (status %d)", err, resp.StatusCode)
		}

		return nil, fmt.Errorf("dial websocket: %w", err)
	}

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	return conn, nil
}

// serve reads the connection until it breaks or ctx ends. A goroutine
// sends ping control frames on the keep-alive interval and closes the
// socket on ctx cancel so the blocked read returns.
func (w *Watcher) serve(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(w.cfg.KeepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-done:
				return
			case <-ticker.C:
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				if err != nil {
					_ = conn.Close()
					return
				}
			}
		}
	}()

	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		var n entity.Notification

		if err := json.Unmarshal(message, &n); err != nil {
			w.cfg.Logger.Warn("drop undecodable message", "error", err)
			continue
		}

		if w.add(n) {
			w.cfg.Metrics.messageReceived()
		}
	}
}

// poll is the permanent fallback: a full refetch on a fixed interval,
// replacing the snapshot wholesale each tick.
func (w *Watcher) poll(ctx context.Context) error {
	runner := job.NewRunner(w.cfg.Logger)

	runner.Add("notifications-poll", w.cfg.PollInterval, func(ctx context.Context) error {
		w.cfg.Metrics.polled()
		return w.refresh(ctx)
	})

	runner.Start(ctx)
	runner.Stop()

	return nil
}

func (w *Watcher) refresh(ctx context.Context) error {
	list, err := w.cfg.Notifications.List(ctx, notifications.Filter{Limit: w.cfg.Capacity})
	if err != nil {
		return fmt.Errorf("refetch notifications: %w", err)
	}

	unread, err := w.cfg.Notifications.UnreadCount(ctx)
	if err != nil {
		return fmt.Errorf("refetch unread count: %w", err)
	}

	w.replace(list, unread)

	return nil
}

// add prepends a live message. Returns false for duplicates, which
// happen when a poll overlapped a delivery before a reconnect.
func (w *Watcher) add(n entity.Notification) bool {
	w.mu.Lock()

	if _, dup := w.seen[n.ID]; dup {
		w.mu.Unlock()
		return false
	}

	w.seen[n.ID] = struct{}{}
	w.list = append([]entity.Notification{n}, w.list...)

	if len(w.list) > w.cfg.Capacity {
		evicted := w.list[w.cfg.Capacity:]
		w.list = w.list[:w.cfg.Capacity]

		for _, e := range evicted {
			delete(w.seen, e.ID)
		}
	}

	if !n.Read {
		w.unread++
	}

	callback := w.cfg.OnNotification
	w.mu.Unlock()

	if callback != nil {
		callback(n)
	}

	return true
}

func (w *Watcher) replace(list []entity.Notification, unread int) {
	if len(list) > w.cfg.Capacity {
		list = list[:w.cfg.Capacity]
	}

	w.mu.Lock()

	var fresh []entity.Notification

	if w.cfg.OnNotification != nil {
		for _, n := range list {
			if _, ok := w.seen[n.ID]; !ok {
				fresh = append(fresh, n)
			}
		}
	}

	w.list = append([]entity.Notification(nil), list...)
	w.seen = make(map[uuid.UUID]struct{}, len(list))

	for _, n := range list {
		w.seen[n.ID] = struct{}{}
	}

	w.unread = unread

	callback := w.cfg.OnNotification
	w.mu.Unlock()

	if callback != nil {
		for _, n := range fresh {
			callback(n)
		}
	}
}

// Snapshot copies the current list and unread count; callers never see
// internal slices.
func (w *Watcher) Snapshot() ([]entity.Notification, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	list := make([]entity.Notification, len(w.list))
	copy(list, w.list)

	return list, w.unread
}

// MarkRead updates the local mirror only; the server-side flag changes
// through the notifications REST client.
func (w *Watcher) MarkRead(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.list {
		if w.list[i].ID == id && !w.list[i].Read {
			w.list[i].Read = true
			w.unread--

			return
		}
	}
}

func (w *Watcher) backoff(attempt int) time.Duration {
	delay := w.cfg.ReconnectBaseDelay << (attempt - 1)
	if delay > w.cfg.ReconnectMaxDelay || delay <= 0 {
		delay = w.cfg.ReconnectMaxDelay
	}

	return delay
}

func (w *Watcher) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
