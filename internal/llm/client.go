package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"task-agent/internal/config"
	"task-agent/internal/errors"
)

const (
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"
)

// Client is the model-service boundary: given a conversation and a tool
// catalog, it returns either final text or structured tool requests.
type Client interface {
	// CreateMessage sends one request and returns the model's response.
	// Failures are classified into config errors (bad credential) and API
	// errors (rate limit, connectivity, service errors).
	CreateMessage(ctx context.Context, req *Request) (*Response, error)

	// Configured reports whether a credential is present.
	Configured() bool
}

// HTTPClient implements Client against the Anthropic Messages API.
type HTTPClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a client from configuration. The client is usable even
// without a key; CreateMessage then fails and Configured reports false.
func NewClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		apiKey:  cfg.LLM.APIKey,
		baseURL: cfg.LLM.BaseURL,
		http: &http.Client{
			Timeout: cfg.LLM.RequestTimeout,
		},
	}
}

// Configured reports whether a credential is present
func (c *HTTPClient) Configured() bool {
	return c.apiKey != ""
}

// CreateMessage sends one request to the Messages API
func (c *HTTPClient) CreateMessage(ctx context.Context, req *Request) (*Response, error) {
	if !c.Configured() {
		return nil, errors.NewConfigError(
			"ANTHROPIC_API_KEY is not set. Create a .env file with your key or run: export ANTHROPIC_API_KEY='your-key-here'", nil)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewAPIError("An unexpected error occurred while contacting the AI service. Please try again.", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewAPIError("An unexpected error occurred while contacting the AI service. Please try again.", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.NewAPIError("Cannot reach the AI service. Please check your internet connection.", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.NewAPIError("An unexpected error occurred while contacting the AI service. Please try again.", err)
	}

	if err := classifyStatus(httpResp.StatusCode); err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.NewAPIError("An unexpected error occurred while contacting the AI service. Please try again.", err)
	}

	return &resp, nil
}

// classifyStatus maps an HTTP status to the error taxonomy: authentication
// failures are config errors, everything else non-2xx is an API error.
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.NewConfigError("Invalid API key. Please check your ANTHROPIC_API_KEY and try again.", nil)
	case status == http.StatusTooManyRequests:
		return errors.NewAPIError("Rate limit exceeded. Please wait a moment and try again.", nil)
	default:
		return errors.NewAPIError(
			fmt.Sprintf("The AI service returned an error (HTTP %d). Please try again later.", status), nil)
	}
}
