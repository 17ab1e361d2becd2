package reserved

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

func TestClient_Claim(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reserved-members", r.URL.Path)

		var input ClaimInput

		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Equal(t, "Budi Santoso", input.CustomerName)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entity.ReservedMember{
			CustomerName: input.CustomerName,
			CustomerID:   input.CustomerID,
			Status:       entity.ReservedStatusPending,
		})
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	m, err := c.Claim(context.Background(), ClaimInput{CustomerName: "Budi Santoso", CustomerID: "C-42"})
	require.NoError(t, err)
	require.Equal(t, entity.ReservedStatusPending, m.Status)
}

func TestClient_Claim_AlreadyClaimed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"customer already reserved by another staff","error":""}`))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	_, err := c.Claim(context.Background(), ClaimInput{CustomerName: "Budi Santoso", CustomerID: "C-42"})
	require.ErrorIs(t, err, entity.ErrConflict)
}

func TestClient_Claim_Invalid(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("http://unused"))

	_, err := c.Claim(context.Background(), ClaimInput{CustomerName: "B"})
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestClient_ApproveReject(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reserved-members/" + id.String() + "/approve":
			_ = json.NewEncoder(w).Encode(entity.ReservedMember{ID: id, Status: entity.ReservedStatusApproved})
		case "/reserved-members/" + id.String() + "/reject":
			var body rejectRequest

			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			_ = json.NewEncoder(w).Encode(entity.ReservedMember{
				ID:     id,
				Status: entity.ReservedStatusRejected,
				Reason: body.Reason,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	m, err := c.Approve(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, entity.ReservedStatusApproved, m.Status)

	m, err = c.Reject(context.Background(), id, "duplicate of an existing member")
	require.NoError(t, err)
	require.Equal(t, entity.ReservedStatusRejected, m.Status)
	require.Equal(t, "duplicate of an existing member", m.Reason)
}

func TestClient_Delete_ProcessedClaim(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"claim already processed","error":""}`))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	err := c.Delete(context.Background(), uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, entity.ErrConflict)
}
