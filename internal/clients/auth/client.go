package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         entity.Staff `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", entity.ErrInvalidInput)
	}

	var data sessionResponse

	err := c.api.Post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &data)
	if err != nil {
		return nil, mapAuthError(err)
	}

	return sessionFromAPI(data), nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", entity.ErrInvalidInput)
	}

	var data sessionResponse

	err := c.api.Post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &data)
	if err != nil {
		return nil, mapAuthError(err)
	}

	return sessionFromAPI(data), nil
}

func (c *Client) Me(ctx context.Context) (entity.Staff, error) {
	var data entity.Staff

	err := c.api.Get(ctx, "/auth/me", nil, &data)
	if err != nil {
		return entity.Staff{}, mapAuthError(err)
	}

	return data, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.api.Post(ctx, "/auth/logout", nil, nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// mapAuthError promotes a 401 with a token-expiry detail to
// ErrSessionExpired so the CLI can tell "log in again" apart from
// "wrong credentials".
func mapAuthError(err error) error {
	var apiErr *api.APIError

	if errors.As(err, &apiErr) && errors.Is(err, entity.ErrUnauthorized) {
		detail := strings.ToLower(apiErr.Message + " " + apiErr.Detail)
		if strings.Contains(detail, "expired") {
			return fmt.Errorf("%s: %w", apiErr.Message, entity.ErrSessionExpired)
		}
	}

	return err
}
