// ABOUTME: HTTP client for the Avi sizing calculator API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// Client is the API client for the sizing calculator backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Details    string
	Fields     []models.FieldError
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("backend error: %s", e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	for _, f := range e.Fields {
		msg += fmt.Sprintf("\n  %s: %s", f.Field, f.Message)
	}
	return msg
}

// IsBadRequest reports whether err is a 400 returned by the backend
func IsBadRequest(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// CapacityModel calls GET /api/v1/capacity-model
func (c *Client) CapacityModel(ctx context.Context) (*models.CapacityModel, error) {
	var m models.CapacityModel
	if err := c.do(ctx, http.MethodGet, "/api/v1/capacity-model", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// EstimateQuick calls POST /api/v1/estimate/quick
func (c *Client) EstimateQuick(ctx context.Context, cores float64) (*models.QuickEstimate, error) {
	var est models.QuickEstimate
	if err := c.do(ctx, http.MethodPost, "/api/v1/estimate/quick", models.QuickRequest{VCFCores: cores}, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

// EstimateAdvanced calls POST /api/v1/estimate/advanced
func (c *Client) EstimateAdvanced(ctx context.Context, req models.AdvancedRequest) (*models.AdvancedResponse, error) {
	var resp models.AdvancedResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/estimate/advanced", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends a request with an optional JSON body and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    errResp.Error,
		Details:    errResp.Details,
		Fields:     errResp.Fields,
	}
}
