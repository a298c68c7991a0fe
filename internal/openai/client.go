// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the chat API client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotConfigured
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeAPI
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotConfigured = &ClientError{Type: ErrTypeNotConfigured, Message: "API endpoint, key, or model not configured"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNotConfigured checks whether an error means the client is missing
// endpoint, key, or model settings.
func IsNotConfigured(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotConfigured
	}
	return errors.Is(err, ErrNotConfigured)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds the connection settings for the chat API client.
type ClientConfig struct {
	// BaseURL is the endpoint root. The /v1/... path segments are appended
	// unless the URL already ends with them.
	BaseURL string

	// APIKey is sent as a bearer token.
	APIKey string

	// Model is the chat model identifier.
	Model string

	// Timeout bounds a single request (default: 120s). Role-play replies
	// can be long, so this is generous.
	Timeout time.Duration
}

// Client communicates with an OpenAI-compatible endpoint. It is safe for
// concurrent use.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a client for the given configuration.
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// SetModel updates the model identifier.
func (c *Client) SetModel(model string) {
	c.config.Model = model
}

// Configured reports whether endpoint, key, and model are all set.
func (c *Client) Configured() bool {
	return c.config.BaseURL != "" && c.config.APIKey != "" && c.config.Model != ""
}

// apiURL joins the base URL with an API path. A trailing slash on the base
// is stripped, and the path is not appended twice when the base already
// ends with it, so both https://host and https://host/v1 style endpoints
// work.
func (c *Client) apiURL(path string) string {
	base := strings.TrimSuffix(strings.TrimSpace(c.config.BaseURL), "/")
	if strings.HasSuffix(base, path) {
		return base
	}
	return base + path
}

// =============================================================================
// CHAT COMPLETION
// =============================================================================

// Complete sends the composed messages and returns the raw assistant reply.
// A response without choices yields an empty string, not an error.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	reqBody := ChatRequest{
		Model:           c.config.Model,
		Messages:        messages,
		Temperature:     DefaultTemperature,
		PresencePenalty: DefaultPresencePenalty,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/v1/chat/completions"), bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Try to surface the provider's error message
		var provider apiError
		if err := json.NewDecoder(resp.Body).Decode(&provider); err == nil && provider.Error.Message != "" {
			return "", &ClientError{
				Type:       ErrTypeAPI,
				Message:    provider.Error.Message,
				StatusCode: resp.StatusCode,
			}
		}
		return "", &ClientError{
			Type:       ErrTypeAPI,
			Message:    "API request failed: " + resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}

// =============================================================================
// MODEL LISTING
// =============================================================================

// ListModels fetches the models available at the endpoint. Listing is a
// convenience for the settings flow, so every failure degrades to an empty
// list rather than an error.
func (c *Client) ListModels(ctx context.Context) []string {
	if c.config.BaseURL == "" || c.config.APIKey == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL("/v1/models"), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var result modelListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil
	}

	var models []string
	for _, m := range result.Data {
		if m.ID != "" {
			models = append(models, m.ID)
		}
	}
	for _, m := range result.Models {
		if m.Name != "" {
			// Gemini-style listings prefix names with "models/"
			models = append(models, strings.TrimPrefix(m.Name, "models/"))
		}
	}
	return models
}
