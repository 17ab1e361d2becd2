package downloads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/memberwd/backoffice/internal/api"
	"github.com/memberwd/backoffice/internal/entity"
)

const (
	fetchTimeout      = time.Minute
	fetchRetryMax     = 3
	fetchRetryWaitMax = time.Second * 5
)

type Client struct {
	api   *api.Client
	fetch *http.Client
}

func NewClient(apiClient *api.Client) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = fetchRetryMax
	retryClient.RetryWaitMin = time.Second
	retryClient.RetryWaitMax = fetchRetryWaitMax
	retryClient.HTTPClient.Timeout = fetchTimeout
	retryClient.Logger = nil

	// Only transport-level failures are retried. An HTTP response of
	// any status is final: the artifact GET is idempotent but the
	// token may have been consumed or expired server-side.
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	return &Client{
		api:   apiClient,
		fetch: retryClient.StandardClient(),
	}
}

type requestBody struct {
	DatabaseID uuid.UUID `json:"database_id"`
	Note       string    `json:"note,omitempty"`
}

func (c *Client) Request(ctx context.Context, databaseID uuid.UUID, note string) (entity.DownloadRequest, error) {
	var data entity.DownloadRequest

	err := c.api.Post(ctx, "/downloads", requestBody{DatabaseID: databaseID, Note: note}, &data)
	if err != nil {
		return entity.DownloadRequest{}, fmt.Errorf("request download: %w", err)
	}

	return data, nil
}

type Filter struct {
	Status entity.DownloadStatus
	Mine   bool
}

func (c *Client) List(ctx context.Context, filter Filter) ([]entity.DownloadRequest, error) {
	query := url.Values{}

	if filter.Status != "" {
		if !filter.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown download status %q", entity.ErrInvalidInput, filter.Status)
		}

		query.Set("status", string(filter.Status))
	}

	if filter.Mine {
		query.Set("mine", "true")
	}

	var data []entity.DownloadRequest

	err := c.api.Get(ctx, "/downloads", query, &data)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}

	return data, nil
}

func (c *Client) Approve(ctx context.Context, id uuid.UUID) (entity.DownloadRequest, error) {
	var data entity.DownloadRequest

	err := c.api.Patch(ctx, "/downloads/"+id.String()+"/approve", nil, &data)
	if err != nil {
		return entity.DownloadRequest{}, fmt.Errorf("approve download: %w", err)
	}

	return data, nil
}

type rejectRequest struct {
	Note string `json:"note"`
}

func (c *Client) Reject(ctx context.Context, id uuid.UUID, note string) (entity.DownloadRequest, error) {
	var data entity.DownloadRequest

	err := c.api.Patch(ctx, "/downloads/"+id.String()+"/reject", rejectRequest{Note: note}, &data)
	if err != nil {
		return entity.DownloadRequest{}, fmt.Errorf("reject download: %w", err)
	}

	return data, nil
}

// FileURL builds the query-string-authenticated artifact URL for an
// approved request.
func (c *Client) FileURL(req entity.DownloadRequest) (string, error) {
	if req.Status != entity.DownloadStatusApproved {
		return "", entity.ErrNotApproved
	}

	if req.FileToken == "" {
		return "", entity.ErrFileTokenNotSet
	}

	if req.Expired(time.Now()) {
		return "", fmt.Errorf("%w: file token expired", entity.ErrNotApproved)
	}

	query := url.Values{}
	query.Set("token", req.FileToken)

	return c.api.BaseURL() + "/downloads/" + req.ID.String() + "/file?" + query.Encode(), nil
}

// Fetch streams the approved artifact into w. The token in the URL is
// the only credential; no Authorization header is sent.
func (c *Client) Fetch(ctx context.Context, req entity.DownloadRequest, w io.Writer) (int64, error) {
	fileURL, err := c.FileURL(req)
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.fetch.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		return 0, fmt.Errorf("fetch artifact: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copy artifact: %w", err)
	}

	return n, nil
}
