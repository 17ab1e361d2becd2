package reserved

import (
	"context"
	"fmt"
	"net/url"

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

type Filter struct {
	StaffID *uuid.UUID
	Status  entity.ReservedStatus
}

func (c *Client) List(ctx context.Context, filter Filter) ([]entity.ReservedMember, error) {
	query := url.Values{}

	if filter.StaffID != nil {
		query.Set("staff_id", filter.StaffID.String())
	}

	if filter.Status != "" {
		if !filter.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown reserved status %q", entity.ErrInvalidInput, filter.Status)
		}

		query.Set("status", string(filter.Status))
	}

	var data []entity.ReservedMember

	err := c.api.Get(ctx, "/reserved-members", query, &data)
	if err != nil {
		return nil, fmt.Errorf("list reserved members: %w", err)
	}

	return data, nil
}

type ClaimInput struct {
	CustomerName string `json:"customer_name" validate:"required,min=2"`
	CustomerID   string `json:"customer_id" validate:"required"`
}

// Claim reserves a customer name for the calling staff member. A 409
// means someone already holds the claim; callers surface it as
// entity.ErrConflict.
func (c *Client) Claim(ctx context.Context, input ClaimInput) (entity.ReservedMember, error) {
	if err := validate.Struct(input); err != nil {
		return entity.ReservedMember{}, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	var data entity.ReservedMember

	err := c.api.Post(ctx, "/reserved-members", input, &data)
	if err != nil {
		return entity.ReservedMember{}, fmt.Errorf("claim reserved member: %w", err)
	}

	return data, nil
}

func (c *Client) Approve(ctx context.Context, id uuid.UUID) (entity.ReservedMember, error) {
	var data entity.ReservedMember

	err := c.api.Patch(ctx, "/reserved-members/"+id.String()+"/approve", nil, &data)
	if err != nil {
		return entity.ReservedMember{}, fmt.Errorf("approve reserved member: %w", err)
	}

	return data, nil
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (c *Client) Reject(ctx context.Context, id uuid.UUID, reason string) (entity.ReservedMember, error) {
	var data entity.ReservedMember

	err := c.api.Patch(ctx, "/reserved-members/"+id.String()+"/reject", rejectRequest{Reason: reason}, &data)
	if err != nil {
		return entity.ReservedMember{}, fmt.Errorf("reject reserved member: %w", err)
	}

	return data, nil
}

// Delete withdraws a claim. Only pending claims can be withdrawn; the
// backend answers 409 for processed ones.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.api.Delete(ctx, "/reserved-members/"+id.String())
	if err != nil {
		return fmt.Errorf("delete reserved member: %w", err)
	}

	return nil
}
