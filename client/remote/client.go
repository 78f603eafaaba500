// Package remote is the field client's view of the central API: one
// submit endpoint and one dashboard-status endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// ConnectionErrorMessage is shown for any transport-level submit failure.
const ConnectionErrorMessage = "เกิดข้อผิดพลาดในการเชื่อมต่อ กรุณาลองใหม่อีกครั้ง"

// Submitter posts one report to the central API.
type Submitter interface {
	SubmitReport(ctx context.Context, req models.SubmitRequest) (models.SubmitResult, error)
}

// StatusFetcher retrieves the submission records for a date.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, date string) ([]models.SubmissionRecord, error)
}

// API bundles both directions of the central endpoint.
type API interface {
	Submitter
	StatusFetcher
}

// Client talks to the central API over HTTP with a bounded timeout.
type Client struct {
	baseURL        string
	parentFolderID string
	httpClient     *http.Client
}

// NewClient creates an API client. The timeout applies per call; a
// timeout is reported as a normal failure, not a crash.
func NewClient(baseURL, parentFolderID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:        baseURL,
		parentFolderID: parentFolderID,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// SubmitReport posts one report. A non-2xx status is a non-exceptional
// failure: the result carries the generic connection-error message and
// err is nil. Transport errors are returned as errors.
func (c *Client) SubmitReport(ctx context.Context, req models.SubmitRequest) (models.SubmitResult, error) {
	if req.ParentFolderID == "" {
		req.ParentFolderID = c.parentFolderID
	}

	body, err := json.Marshal(req)
	if err != nil {
		return models.SubmitResult{}, fmt.Errorf("failed to marshal submit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reports", bytes.NewReader(body))
	if err != nil {
		return models.SubmitResult{}, fmt.Errorf("failed to build submit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.SubmitResult{}, fmt.Errorf("submit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.SubmitResult{Success: false, Message: ConnectionErrorMessage}, nil
	}

	var result models.SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.SubmitResult{}, fmt.Errorf("failed to decode submit response: %w", err)
	}
	return result, nil
}

// FetchStatus retrieves the {pointName, shift} records for a date. A
// cache-busting nonce is appended so intermediate proxies never serve a
// stale coverage view.
func (c *Client) FetchStatus(ctx context.Context, date string) ([]models.SubmissionRecord, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("t", fmt.Sprintf("%d", time.Now().UnixMilli()))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reports/status?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status request rejected: status %d", resp.StatusCode)
	}

	var records []models.SubmissionRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		// Non-array payloads degrade to "nothing reported" upstream.
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return records, nil
}
