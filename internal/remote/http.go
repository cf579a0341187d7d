package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to the plan authority over its JSON API.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient builds a client for the authority at baseURL. An empty
// token disables bearer authentication.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("remote: %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ListPlans fetches the authority's roster.
func (c *HTTPClient) ListPlans(ctx context.Context) ([]PlanSummary, error) {
	var summaries []PlanSummary
	if err := c.do(ctx, http.MethodGet, "/api/plans", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetPlanDetail fetches one full plan.
func (c *HTTPClient) GetPlanDetail(ctx context.Context, remoteID int64) (*PlanPayload, error) {
	var payload PlanPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/plans/%d", remoteID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreatePlan stores a new plan and returns its assigned id.
func (c *HTTPClient) CreatePlan(ctx context.Context, payload *PlanPayload) (int64, error) {
	var created struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/plans", payload, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// UpdatePlan overwrites a remote plan.
func (c *HTTPClient) UpdatePlan(ctx context.Context, remoteID int64, payload *PlanPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/plans/%d", remoteID), payload, nil)
}

// DeletePlan removes a remote plan.
func (c *HTTPClient) DeletePlan(ctx context.Context, remoteID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/plans/%d", remoteID), nil, nil)
}

// IsReachable probes the authority's health endpoint with a short
// deadline so the gate check never stalls a pass.
func (c *HTTPClient) IsReachable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}
