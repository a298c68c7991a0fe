// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: baseURL,
		APIKey:  "sk-test",
		Model:   "test-model",
	})
}

// =============================================================================
// URL NORMALIZATION
// =============================================================================

func TestAPIURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"plain host", "https://api.example.com", "/v1/chat/completions", "https://api.example.com/v1/chat/completions"},
		{"trailing slash", "https://api.example.com/", "/v1/models", "https://api.example.com/v1/models"},
		{"already suffixed", "https://api.example.com/v1/chat/completions", "/v1/chat/completions", "https://api.example.com/v1/chat/completions"},
		{"suffixed with slash", "https://api.example.com/v1/models/", "/v1/models", "https://api.example.com/v1/models"},
		{"surrounding space", "  https://api.example.com  ", "/v1/models", "https://api.example.com/v1/models"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(tt.base)
			assert.Equal(t, tt.want, c.apiURL(tt.path))
		})
	}
}

// =============================================================================
// COMPLETION
// =============================================================================

func TestCompleteSuccess(t *testing.T) {
	var gotReq ChatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(ChatResponse{
			Choices: []ChatChoice{{Message: ChatMessage{Role: RoleAssistant, Content: "hello|||world"}}},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	reply, err := c.Complete(context.Background(), []ChatMessage{
		{Role: RoleSystem, Content: "system prompt"},
		{Role: RoleUser, Content: "hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello|||world", reply)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.InDelta(t, 0.85, gotReq.Temperature, 1e-9)
	assert.InDelta(t, 0.2, gotReq.PresencePenalty, 1e-9)
	require.Len(t, gotReq.Messages, 2)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatResponse{})
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", reply)
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), nil)
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeAPI, clientErr.Type)
	assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
	assert.Equal(t, "invalid api key", clientErr.Message)
}

func TestCompleteAPIErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), nil)
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusInternalServerError, clientErr.StatusCode)
	assert.Contains(t, clientErr.Message, "500")
}

func TestCompleteNotConfigured(t *testing.T) {
	tests := []struct {
		name   string
		config ClientConfig
	}{
		{"missing base url", ClientConfig{APIKey: "k", Model: "m"}},
		{"missing key", ClientConfig{BaseURL: "https://x", Model: "m"}},
		{"missing model", ClientConfig{BaseURL: "https://x", APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.config).Complete(context.Background(), nil)
			assert.True(t, IsNotConfigured(err))
		})
	}
}

// =============================================================================
// MODEL LISTING
// =============================================================================

func TestListModelsOpenAIShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"gpt-a"},{"id":"gpt-b"}]}`))
	}))
	defer srv.Close()

	models := newTestClient(srv.URL).ListModels(context.Background())
	assert.Equal(t, []string{"gpt-a", "gpt-b"}, models)
}

func TestListModelsGeminiShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"models/gemini-pro"},{"name":"flat-name"}]}`))
	}))
	defer srv.Close()

	models := newTestClient(srv.URL).ListModels(context.Background())
	assert.Equal(t, []string{"gemini-pro", "flat-name"}, models)
}

func TestListModelsFailSoft(t *testing.T) {
	// Server error yields an empty list, not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	assert.Empty(t, newTestClient(srv.URL).ListModels(context.Background()))

	// Malformed body too.
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv2.Close()
	assert.Empty(t, newTestClient(srv2.URL).ListModels(context.Background()))

	// Unreachable server too.
	assert.Empty(t, newTestClient("http://127.0.0.1:1").ListModels(context.Background()))

	// Unconfigured client never hits the network.
	assert.Empty(t, NewClient(ClientConfig{}).ListModels(context.Background()))
}
