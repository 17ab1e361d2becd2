package users

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

func TestClient_Create(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)

		var input CreateInput

		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Equal(t, entity.RoleStaff, input.Role)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entity.Staff{Username: input.Username, Role: input.Role, Active: true})
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	u, err := c.Create(context.Background(), CreateInput{
		Username: "dina",
		Name:     "Dina",
		Password: "longenough",
		Role:     entity.RoleStaff,
	})
	require.NoError(t, err)
	require.True(t, u.Active)
}

func TestClient_Create_Validation(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("http://unused"))

	tests := []struct {
		name  string
		input CreateInput
	}{
		{name: "short password", input: CreateInput{Username: "dina", Name: "Dina", Password: "short", Role: entity.RoleStaff}},
		{name: "bad role", input: CreateInput{Username: "dina", Name: "Dina", Password: "longenough", Role: "superuser"}},
		{name: "missing username", input: CreateInput{Name: "Dina", Password: "longenough", Role: entity.RoleStaff}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := c.Create(context.Background(), tt.input)
			require.ErrorIs(t, err, entity.ErrInvalidInput)
		})
	}
}

func TestClient_SetBlockedPages(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/"+id.String()+"/blocked-pages", r.URL.Path)

		var body blockedPagesRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		_ = json.NewEncoder(w).Encode(entity.Staff{ID: id, BlockedPages: body.BlockedPages})
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	u, err := c.SetBlockedPages(context.Background(), id, []string{entity.PageOmset, entity.PageAnalytics})
	require.NoError(t, err)
	require.Equal(t, []string{entity.PageOmset, entity.PageAnalytics}, u.BlockedPages)
}

func TestClient_SetBlockedPages_UnknownSlug(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("http://unused"))

	_, err := c.SetBlockedPages(context.Background(), uuid.Must(uuid.NewV4()), []string{"secret-page"})
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestClient_Update_LastMasterAdmin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"cannot demote the last master admin","error":""}`))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	role := entity.RoleStaff

	_, err := c.Update(context.Background(), uuid.Must(uuid.NewV4()), UpdateInput{Role: &role})
	require.ErrorIs(t, err, entity.ErrConflict)
}
