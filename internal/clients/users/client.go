package users

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

var validate = validator.New()

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

func (c *Client) List(ctx context.Context) ([]entity.Staff, error) {
	var data []entity.Staff

	err := c.api.Get(ctx, "/users", nil, &data)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return data, nil
}

type CreateInput struct {
	Username string      `json:"username" validate:"required,min=3,max=64"`
	Name     string      `json:"name" validate:"required,min=2,max=255"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     entity.Role `json:"role" validate:"required,oneof=staff admin master_admin"`
}

func (c *Client) Create(ctx context.Context, input CreateInput) (entity.Staff, error) {
	if err := validate.Struct(input); err != nil {
		return entity.Staff{}, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	var data entity.Staff

	err := c.api.Post(ctx, "/users", input, &data)
	if err != nil {
		return entity.Staff{}, fmt.Errorf("create user: %w", err)
	}

	return data, nil
}

// UpdateInput fields are pointers so unset fields stay untouched.
type UpdateInput struct {
	Name   *string      `json:"name,omitempty"`
	Role   *entity.Role `json:"role,omitempty"`
	Active *bool        `json:"active,omitempty"`
}

// Update patches a user. Demoting the last master_admin is a backend
// 409, surfaced as entity.ErrConflict.
func (c *Client) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (entity.Staff, error) {
	if input.Role != nil && !input.Role.IsValid() {
		return entity.Staff{}, fmt.Errorf("%w: unknown role %q", entity.ErrInvalidInput, *input.Role)
	}

	var data entity.Staff

	err := c.api.Patch(ctx, "/users/"+id.String(), input, &data)
	if err != nil {
		return entity.Staff{}, fmt.Errorf("update user: %w", err)
	}

	return data, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.api.Delete(ctx, "/users/"+id.String())
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

type blockedPagesRequest struct {
	BlockedPages []string `json:"blocked_pages"`
}

// SetBlockedPages replaces the user's blocked page list. Page slugs are
// checked against the known set before the request goes out.
func (c *Client) SetBlockedPages(ctx context.Context, id uuid.UUID, pages []string) (entity.Staff, error) {
	for _, page := range pages {
		if !entity.IsKnownPage(page) {
			return entity.Staff{}, fmt.Errorf("%w: unknown page %q", entity.ErrInvalidInput, page)
		}
	}

	var data entity.Staff

	err := c.api.Patch(ctx, "/users/"+id.String()+"/blocked-pages", blockedPagesRequest{BlockedPages: pages}, &data)
	if err != nil {
		return entity.Staff{}, fmt.Errorf("set blocked pages: %w", err)
	}

	return data, nil
}
