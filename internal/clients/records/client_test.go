package records

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

func TestClient_SetOutcome(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/memberwd/records/"+id.String(), r.URL.Path)
		require.Equal(t, http.MethodPatch, r.Method)

		var body outcomeRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, entity.OutcomeDeposited, body.Outcome)

		_ = json.NewEncoder(w).Encode(entity.Record{ID: id, Outcome: body.Outcome})
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	record, err := c.SetOutcome(context.Background(), id, entity.OutcomeDeposited)
	require.NoError(t, err)
	require.Equal(t, entity.OutcomeDeposited, record.Outcome)
}

func TestClient_SetOutcome_UnknownOutcome(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("http://unused"))

	_, err := c.SetOutcome(context.Background(), uuid.Must(uuid.NewV4()), "maybe_later")
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestClient_UpdateRowData(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body rowDataRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "08999", body.RowData["phone"])

		_ = json.NewEncoder(w).Encode(entity.Record{
			ID:      id,
			RowData: map[string]string{"name": "Budi", "phone": "08999"},
		})
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	record, err := c.UpdateRowData(context.Background(), id, map[string]string{"phone": "08999"})
	require.NoError(t, err)
	require.Equal(t, "Budi", record.RowData["name"])
}

func TestClient_UpdateRowData_Empty(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("http://unused"))

	_, err := c.UpdateRowData(context.Background(), uuid.Must(uuid.NewV4()), nil)
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestClient_List_QueryParams(t *testing.T) {
	t.Parallel()

	staffID := uuid.Must(uuid.NewV4())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/memberwd/records", r.URL.Path)
		require.Equal(t, staffID.String(), r.URL.Query().Get("staff_id"))
		require.Equal(t, "assigned", r.URL.Query().Get("status"))
		require.Equal(t, "pending", r.URL.Query().Get("outcome"))

		_ = json.NewEncoder(w).Encode([]entity.Record{})
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	_, err := c.List(context.Background(), Filter{
		StaffID: &staffID,
		Status:  entity.RecordStatusAssigned,
		Outcome: entity.OutcomePending,
	})
	require.NoError(t, err)
}
