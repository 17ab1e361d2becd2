package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

func TestClient_List(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notifications", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("unread"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))

		_ = json.NewEncoder(w).Encode([]entity.Notification{
			{Type: entity.NotificationOmsetAdded, Title: "new deposit"},
		})
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	list, err := c.List(context.Background(), Filter{UnreadOnly: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, entity.NotificationOmsetAdded, list[0].Type)
}

func TestClient_UnreadCount(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notifications/unread-count", r.URL.Path)

		_, _ = w.Write([]byte(`{"count":7}`))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	count, err := c.UnreadCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, count)
}

func TestClient_MarkRead(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())

	var markedPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		markedPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	require.NoError(t, c.MarkRead(context.Background(), id))
	require.Equal(t, "PATCH /notifications/"+id.String()+"/read", markedPath)

	require.NoError(t, c.MarkAllRead(context.Background()))
	require.Equal(t, "POST /notifications/read-all", markedPath)
}
