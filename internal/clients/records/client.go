package records

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

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
	Status  entity.RecordStatus
	Outcome entity.Outcome
	Limit   int
	Offset  int
}

func (c *Client) List(ctx context.Context, filter Filter) ([]entity.Record, error) {
	query := url.Values{}

	if filter.StaffID != nil {
		query.Set("staff_id", filter.StaffID.String())
	}

	if filter.Status != "" {
		if !filter.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown record status %q", entity.ErrInvalidInput, filter.Status)
		}

		query.Set("status", string(filter.Status))
	}

	if filter.Outcome != "" {
		if !filter.Outcome.IsValid() {
			return nil, fmt.Errorf("%w: unknown outcome %q", entity.ErrInvalidInput, filter.Outcome)
		}

		query.Set("outcome", string(filter.Outcome))
	}

	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var data []entity.Record

	err := c.api.Get(ctx, "/memberwd/records", query, &data)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return data, nil
}

type outcomeRequest struct {
	Outcome entity.Outcome `json:"outcome" validate:"required,oneof=pending contacted no_answer wrong_number deposited"`
}

// SetOutcome records the call result for a record. The backend stamps
// worked_at.
func (c *Client) SetOutcome(ctx context.Context, recordID uuid.UUID, outcome entity.Outcome) (entity.Record, error) {
	body := outcomeRequest{Outcome: outcome}

	if err := validate.Struct(body); err != nil {
		return entity.Record{}, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	var data entity.Record

	err := c.api.Patch(ctx, "/memberwd/records/"+recordID.String(), body, &data)
	if err != nil {
		return entity.Record{}, fmt.Errorf("set record outcome: %w", err)
	}

	return data, nil
}

type rowDataRequest struct {
	RowData map[string]string `json:"row_data" validate:"required,min=1"`
}

// UpdateRowData merges the given keys into the record's row_data;
// existing keys not mentioned stay untouched.
func (c *Client) UpdateRowData(ctx context.Context, recordID uuid.UUID, rowData map[string]string) (entity.Record, error) {
	body := rowDataRequest{RowData: rowData}

	if err := validate.Struct(body); err != nil {
		return entity.Record{}, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	var data entity.Record

	err := c.api.Patch(ctx, "/memberwd/records/"+recordID.String(), body, &data)
	if err != nil {
		return entity.Record{}, fmt.Errorf("update record row data: %w", err)
	}

	return data, nil
}
