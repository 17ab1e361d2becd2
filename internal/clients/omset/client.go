package omset

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

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
	Type    entity.OmsetType
	From    time.Time
	To      time.Time
	Limit   int
	Offset  int
}

func (c *Client) List(ctx context.Context, filter Filter) ([]entity.OmsetRecord, error) {
	query := url.Values{}

	if filter.StaffID != nil {
		query.Set("staff_id", filter.StaffID.String())
	}

	if filter.Type != "" {
		if !filter.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown omset type %q", entity.ErrInvalidInput, filter.Type)
		}

		query.Set("type", string(filter.Type))
	}

	if !filter.From.IsZero() {
		query.Set("from", filter.From.UTC().Format(time.RFC3339))
	}

	if !filter.To.IsZero() {
		query.Set("to", filter.To.UTC().Format(time.RFC3339))
	}

	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var data []entity.OmsetRecord

	err := c.api.Get(ctx, "/omset", query, &data)
	if err != nil {
		return nil, fmt.Errorf("list omset: %w", err)
	}

	return data, nil
}

type AddInput struct {
	CustomerName string           `json:"customer_name" validate:"required,min=2"`
	CustomerID   string           `json:"customer_id" validate:"required"`
	Amount       decimal.Decimal  `json:"amount"`
	Type         entity.OmsetType `json:"type" validate:"required,oneof=NDP RDP"`
	DatabaseID   *uuid.UUID       `json:"database_id,omitempty"`
	DepositedAt  time.Time        `json:"deposited_at" validate:"required"`
}

func (c *Client) Add(ctx context.Context, input AddInput) (entity.OmsetRecord, error) {
	if err := validate.Struct(input); err != nil {
		return entity.OmsetRecord{}, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	if !input.Amount.IsPositive() {
		return entity.OmsetRecord{}, fmt.Errorf("%w: amount must be positive", entity.ErrInvalidInput)
	}

	var data entity.OmsetRecord

	err := c.api.Post(ctx, "/omset", input, &data)
	if err != nil {
		return entity.OmsetRecord{}, fmt.Errorf("add omset entry: %w", err)
	}

	return data, nil
}

// Delete removes a deposit entry, the admin correction path.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.api.Delete(ctx, "/omset/"+id.String())
	if err != nil {
		return fmt.Errorf("delete omset entry: %w", err)
	}

	return nil
}

// Summary asks the backend for its aggregation over the window. The
// client-side mirror over raw entries lives in internal/report.
func (c *Client) Summary(ctx context.Context, from, to time.Time) (entity.OmsetSummary, error) {
	query := url.Values{}

	if !from.IsZero() {
		query.Set("from", from.UTC().Format(time.RFC3339))
	}

	if !to.IsZero() {
		query.Set("to", to.UTC().Format(time.RFC3339))
	}

	var data entity.OmsetSummary

	err := c.api.Get(ctx, "/omset/summary", query, &data)
	if err != nil {
		return entity.OmsetSummary{}, fmt.Errorf("omset summary: %w", err)
	}

	return data, nil
}
