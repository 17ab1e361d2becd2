package notifications

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofrs/uuid/v5"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type Filter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// List returns notifications newest first, the only ordering the
// backend guarantees.
func (c *Client) List(ctx context.Context, filter Filter) ([]entity.Notification, error) {
	query := url.Values{}

	if filter.UnreadOnly {
		query.Set("unread", "true")
	}

	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var data []entity.Notification

	err := c.api.Get(ctx, "/notifications", query, &data)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return data, nil
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var data unreadCountResponse

	err := c.api.Get(ctx, "/notifications/unread-count", nil, &data)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}

	return data.Count, nil
}

func (c *Client) MarkRead(ctx context.Context, id uuid.UUID) error {
	err := c.api.Patch(ctx, "/notifications/"+id.String()+"/read", nil, nil)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	return nil
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	err := c.api.Post(ctx, "/notifications/read-all", nil, nil)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}

	return nil
}
