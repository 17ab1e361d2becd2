package databases

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofrs/uuid/v5"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
	"github.com/memberwd/backoffice/internal/sheet"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

func (c *Client) List(ctx context.Context) ([]entity.Database, error) {
	var data []entity.Database

	err := c.api.Get(ctx, "/memberwd/databases", nil, &data)
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}

	return data, nil
}

type UploadInput struct {
	Name     string
	FileName string
	Data     []byte
}

// Upload pushes a spreadsheet as a new record database. The file is
// parsed locally first so an empty or unreadable sheet never leaves
// the machine.
func (c *Client) Upload(ctx context.Context, input UploadInput) (entity.Database, error) {
	if input.Name == "" {
		return entity.Database{}, fmt.Errorf("%w: database name is required", entity.ErrInvalidInput)
	}

	rows, err := sheet.ReadRows(bytes.NewReader(input.Data), input.FileName)
	if err != nil {
		return entity.Database{}, fmt.Errorf("validate spreadsheet: %w", err)
	}

	if _, err := sheet.ParseRecords(rows); err != nil {
		return entity.Database{}, fmt.Errorf("validate spreadsheet: %w", err)
	}

	var data entity.Database

	err = c.api.PostMultipart(
		ctx,
		"/memberwd/databases",
		map[string]string{"name": input.Name},
		input.FileName,
		bytes.NewReader(input.Data),
		&data,
	)
	if err != nil {
		return entity.Database{}, fmt.Errorf("upload database: %w", err)
	}

	return data, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.api.Delete(ctx, "/memberwd/databases/"+id.String())
	if err != nil {
		return fmt.Errorf("delete database: %w", err)
	}

	return nil
}

type RecordFilter struct {
	Status entity.RecordStatus
	Limit  int
	Offset int
}

func (c *Client) Records(ctx context.Context, id uuid.UUID, filter RecordFilter) ([]entity.Record, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown record status %q", entity.ErrInvalidInput, filter.Status)
	}

	query := url.Values{}

	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}

	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var data []entity.Record

	err := c.api.Get(ctx, "/memberwd/databases/"+id.String()+"/records", query, &data)
	if err != nil {
		return nil, fmt.Errorf("list database records: %w", err)
	}

	return data, nil
}

type AssignInput struct {
	DatabaseID uuid.UUID
	StaffID    uuid.UUID
	Count      int
}

type AssignResult struct {
	Assigned  int `json:"assigned"`
	Requested int `json:"requested"`
	Remaining int `json:"remaining"`
}

type assignRequest struct {
	StaffID uuid.UUID `json:"staff_id"`
	Count   int       `json:"count"`
}

// Assign moves up to Count available records to the staff member.
// Asking for more than remains is not an error; the result reports how
// many actually moved.
func (c *Client) Assign(ctx context.Context, input AssignInput) (AssignResult, error) {
	if input.Count <= 0 {
		return AssignResult{}, fmt.Errorf("%w: assign count must be positive", entity.ErrInvalidInput)
	}

	var data AssignResult

	err := c.api.Post(
		ctx,
		"/memberwd/databases/"+input.DatabaseID.String()+"/assign",
		assignRequest{StaffID: input.StaffID, Count: input.Count},
		&data,
	)
	if err != nil {
		return AssignResult{}, fmt.Errorf("assign records: %w", err)
	}

	return data, nil
}
