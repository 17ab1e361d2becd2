package watch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/memberwd/backoffice/internal/clients/notifications"
	"github.com/memberwd/backoffice/internal/entity"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

type stubLister struct {
	mu     sync.Mutex
	list   []entity.Notification
	unread int
	calls  int
}

func (s *stubLister) List(_ context.Context, _ notifications.Filter) ([]entity.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	return append([]entity.Notification(nil), s.list...), nil
}

func (s *stubLister) UnreadCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unread, nil
}

func (s *stubLister) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func note(title string) entity.Notification {
	return entity.Notification{
		ID:        uuid.Must(uuid.NewV4()),
		Type:      entity.NotificationAnnouncement,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
}

func TestWatcher_LiveMessages(t *testing.T) {
	t.Parallel()

	first := note("database uploaded")
	second := note("records assigned")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.URL.Query().Get("token"))
		require.Equal(t, "acme", r.URL.Query().Get("tenant"))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		defer conn.Close()

		for _, n := range []entity.Notification{first, second, first} {
			b, err := json.Marshal(n)
			require.NoError(t, err)
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, b))
		}

		// hold the connection until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	received := make(chan entity.Notification, 4)

	w, err := New(Config{
		WSURL:         wsURL(srv),
		Tokens:        tokenSourceFunc(func() string { return "secret" }),
		Tenant:        "acme",
		Notifications: &stubLister{},
		OnNotification: func(n entity.Notification) {
			received <- n
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	require.Equal(t, first.ID, (<-received).ID)
	require.Equal(t, second.ID, (<-received).ID)

	// the repeated first message is deduped, never delivered twice
	select {
	case n := <-received:
		t.Fatalf("unexpected extra notification %s", n.ID)
	case <-time.After(100 * time.Millisecond):
	}

	list, unread := w.Snapshot()
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID, "newest first")
	require.Equal(t, 2, unread)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_FallsBackToPolling(t *testing.T) {
	t.Parallel()

	existing := note("from the backlog")

	lister := &stubLister{list: []entity.Notification{existing}, unread: 1}

	w, err := New(Config{
		WSURL:                "ws://127.0.0.1:1", // nothing listens here
		Notifications:        lister,
		ReconnectBaseDelay:   time.Millisecond,
		ReconnectMaxDelay:    2 * time.Millisecond,
		MaxReconnectAttempts: 2,
		PollInterval:         10 * time.Millisecond,
		Dialer:               &websocket.Dialer{HandshakeTimeout: 50 * time.Millisecond},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		return lister.callCount() >= 2
	}, 5*time.Second, 5*time.Millisecond, "poller never ran")

	list, unread := w.Snapshot()
	require.Len(t, list, 1)
	require.Equal(t, existing.ID, list[0].ID)
	require.Equal(t, 1, unread)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_MarkRead(t *testing.T) {
	t.Parallel()

	w, err := New(Config{WSURL: "ws://unused", Notifications: &stubLister{}})
	require.NoError(t, err)

	n := note("pending approval")
	require.True(t, w.add(n))

	_, unread := w.Snapshot()
	require.Equal(t, 1, unread)

	w.MarkRead(n.ID)

	list, unread := w.Snapshot()
	require.Equal(t, 0, unread)
	require.True(t, list[0].Read)

	// second mark is a no-op
	w.MarkRead(n.ID)

	_, unread = w.Snapshot()
	require.Equal(t, 0, unread)
}

func TestWatcher_CapacityEviction(t *testing.T) {
	t.Parallel()

	w, err := New(Config{WSURL: "ws://unused", Notifications: &stubLister{}, Capacity: 3})
	require.NoError(t, err)

	oldest := note("n0")
	w.add(oldest)

	for i := 1; i < 4; i++ {
		w.add(note("n"))
	}

	list, _ := w.Snapshot()
	require.Len(t, list, 3)

	for _, n := range list {
		require.NotEqual(t, oldest.ID, n.ID)
	}

	// an evicted id may arrive again
	require.True(t, w.add(oldest))
}

func TestWatcher_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	w, err := New(Config{WSURL: "ws://unused", Notifications: &stubLister{}})
	require.NoError(t, err)

	w.add(note("original"))

	list, _ := w.Snapshot()
	list[0].Title = "mutated"

	fresh, _ := w.Snapshot()
	require.Equal(t, "original", fresh[0].Title)
}

type tokenSourceFunc func() string

func (f tokenSourceFunc) Token(_ context.Context) (string, error) {
	return f(), nil
}
