// Package client provides a Go client for the Sentinel audit API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a Sentinel API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// New creates a new Sentinel client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RiskAssessment is the audit verdict for a contract address.
type RiskAssessment struct {
	RiskScore int      `json:"riskScore"`
	RiskLevel string   `json:"riskLevel"`
	Summary   string   `json:"summary"`
	KeyIssues []string `json:"keyIssues"`
}

// APIError represents an API error response
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Audit submits a contract address for a risk audit. Soft failures
// (unverified source, provider errors, misconfiguration) come back as a
// RiskAssessment with riskLevel Unknown or SystemError, not as an error.
func (c *Client) Audit(ctx context.Context, address string) (*RiskAssessment, error) {
	body, err := json.Marshal(map[string]string{"contractAddress": address})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/audit", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audit response: %w", err)
	}

	// The payload shape is authoritative: a body carrying riskLevel is a
	// renderable assessment even under a 5xx status.
	var assessment RiskAssessment
	if err := json.Unmarshal(raw, &assessment); err == nil && assessment.RiskLevel != "" {
		return &assessment, nil
	}

	var apiErr APIError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		apiErr.StatusCode = resp.StatusCode
		return nil, &apiErr
	}

	return nil, fmt.Errorf("HTTP %d: unexpected audit response", resp.StatusCode)
}
