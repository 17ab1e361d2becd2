package downloads

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

func approvedRequest(baseExpiry time.Duration) entity.DownloadRequest {
	expires := time.Now().Add(baseExpiry)

	return entity.DownloadRequest{
		ID:        uuid.Must(uuid.NewV4()),
		Status:    entity.DownloadStatusApproved,
		FileToken: "tok-123",
		ExpiresAt: &expires,
	}
}

func TestClient_FileURL(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("https://api.example.com"))

	req := approvedRequest(time.Hour)

	u, err := c.FileURL(req)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/downloads/"+req.ID.String()+"/file?token=tok-123", u)
}

func TestClient_FileURL_Errors(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("https://api.example.com"))

	pending := approvedRequest(time.Hour)
	pending.Status = entity.DownloadStatusPending

	_, err := c.FileURL(pending)
	require.ErrorIs(t, err, entity.ErrNotApproved)

	noToken := approvedRequest(time.Hour)
	noToken.FileToken = ""

	_, err = c.FileURL(noToken)
	require.ErrorIs(t, err, entity.ErrFileTokenNotSet)

	expired := approvedRequest(-time.Hour)

	_, err = c.FileURL(expired)
	require.ErrorIs(t, err, entity.ErrNotApproved)
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	artifact := []byte("col1,col2\nv1,v2\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok-123", r.URL.Query().Get("token"))
		require.Empty(t, r.Header.Get("Authorization"), "token url is the only credential")

		_, _ = w.Write(artifact)
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	var buf bytes.Buffer

	n, err := c.Fetch(context.Background(), approvedRequest(time.Hour), &buf)
	require.NoError(t, err)
	require.Equal(t, int64(len(artifact)), n)
	require.Equal(t, artifact, buf.Bytes())
}

func TestClient_Fetch_HTTPErrorNotRetried(t *testing.T) {
	t.Parallel()

	var hits int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusGone)
		_, _ = w.Write([]byte("token consumed"))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	var buf bytes.Buffer

	_, err := c.Fetch(context.Background(), approvedRequest(time.Hour), &buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "410")
	require.Equal(t, 1, hits, "http-level responses are final")
}

func TestClient_RequestAndApprove(t *testing.T) {
	t.Parallel()

	dbID := uuid.Must(uuid.NewV4())
	reqID := uuid.Must(uuid.NewV4())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/downloads":
			var body requestBody

			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, dbID, body.DatabaseID)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(entity.DownloadRequest{
				ID:         reqID,
				DatabaseID: dbID,
				Status:     entity.DownloadStatusPending,
				Note:       body.Note,
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/downloads/"+reqID.String()+"/approve":
			_ = json.NewEncoder(w).Encode(entity.DownloadRequest{
				ID:        reqID,
				Status:    entity.DownloadStatusApproved,
				FileToken: "tok-999",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	req, err := c.Request(context.Background(), dbID, "monthly export")
	require.NoError(t, err)
	require.Equal(t, entity.DownloadStatusPending, req.Status)
	require.Equal(t, "monthly export", req.Note)

	approved, err := c.Approve(context.Background(), req.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DownloadStatusApproved, approved.Status)
	require.NotEmpty(t, approved.FileToken)
}
