package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

func TestClient_Login(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		_, _ = w.Write([]byte(`{
			"accessToken": "access-1",
			"refreshToken": "refresh-1",
			"user": {
				"id": "7b1e3c62-6f9e-4f5a-9a38-0cdd6f6f8a11",
				"username": "dina",
				"name": "Dina",
				"role": "admin",
				"blocked_pages": [],
				"active": true
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	session, err := c.Login(context.Background(), "dina", "secret")
	require.NoError(t, err)
	require.Equal(t, "access-1", session.AccessToken())
	require.Equal(t, "refresh-1", session.RefreshToken())
	require.Equal(t, entity.RoleAdmin, session.Profile().Role)

	token, err := session.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-1", token)
}

func TestClient_Login_EmptyInput(t *testing.T) {
	t.Parallel()

	c := NewClient(api.New("http://unused"))

	_, err := c.Login(context.Background(), "", "secret")
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestClient_Me_SessionExpired(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired","error":"exp claim in the past"}`))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, entity.ErrSessionExpired)
}

func TestClient_Login_BlockedStaff(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"account disabled","error":""}`))
	}))
	defer srv.Close()

	c := NewClient(api.New(srv.URL))

	_, err := c.Login(context.Background(), "dina", "secret")
	require.ErrorIs(t, err, entity.ErrForbidden)
}

func TestSession_ExpiresSoon(t *testing.T) {
	t.Parallel()

	makeToken := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "dina",
			"exp": exp.Unix(),
		})

		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		return signed
	}

	tests := []struct {
		name   string
		exp    time.Time
		window time.Duration
		want   bool
	}{
		{name: "expires within window", exp: time.Now().Add(time.Minute), window: 5 * time.Minute, want: true},
		{name: "plenty of time left", exp: time.Now().Add(time.Hour), window: 5 * time.Minute, want: false},
		{name: "already expired", exp: time.Now().Add(-time.Minute), window: time.Minute, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSession(makeToken(tt.exp), "")

			got, err := s.ExpiresSoon(tt.window)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSession_ExpiresSoon_NoToken(t *testing.T) {
	t.Parallel()

	s := NewSession("", "")

	_, err := s.ExpiresSoon(time.Minute)
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestSession_Update(t *testing.T) {
	t.Parallel()

	s := NewSession("old-access", "old-refresh")
	s.Update(&Session{accessToken: "new-access"})

	require.Equal(t, "new-access", s.AccessToken())
	require.Equal(t, "old-refresh", s.RefreshToken())
}
