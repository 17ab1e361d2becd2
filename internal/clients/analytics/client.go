package analytics

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

func (c *Client) Overview(ctx context.Context, from, to time.Time) (entity.Overview, error) {
	var data entity.Overview

	err := c.api.Get(ctx, "/analytics/overview", windowQuery(from, to), &data)
	if err != nil {
		return entity.Overview{}, fmt.Errorf("analytics overview: %w", err)
	}

	return data, nil
}

func (c *Client) StaffPerformance(ctx context.Context, from, to time.Time) ([]entity.StaffPerformanceRow, error) {
	var data []entity.StaffPerformanceRow

	err := c.api.Get(ctx, "/analytics/staff-performance", windowQuery(from, to), &data)
	if err != nil {
		return nil, fmt.Errorf("analytics staff performance: %w", err)
	}

	return data, nil
}

func (c *Client) DepositSeries(ctx context.Context, from, to time.Time, granularity entity.Granularity) ([]entity.DepositBucket, error) {
	if granularity != "" && !granularity.IsValid() {
		return nil, fmt.Errorf("%w: unknown granularity %q", entity.ErrInvalidInput, granularity)
	}

	query := windowQuery(from, to)

	if granularity != "" {
		query.Set("granularity", string(granularity))
	}

	var data []entity.DepositBucket

	err := c.api.Get(ctx, "/analytics/deposits", query, &data)
	if err != nil {
		return nil, fmt.Errorf("analytics deposit series: %w", err)
	}

	return data, nil
}

func windowQuery(from, to time.Time) url.Values {
	query := url.Values{}

	if !from.IsZero() {
		query.Set("from", from.UTC().Format(time.RFC3339))
	}

	if !to.IsZero() {
		query.Set("to", to.UTC().Format(time.RFC3339))
	}

	return query
}
