// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openai provides the HTTP client for OpenAI-compatible chat
// completion endpoints.
package openai

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatMessage is a single message in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the request body for /v1/chat/completions.
type ChatRequest struct {
	Model           string        `json:"model"`
	Messages        []ChatMessage `json:"messages"`
	Temperature     float64       `json:"temperature"`
	PresencePenalty float64       `json:"presence_penalty"`
}

// Sampling parameters are fixed for role-play generation.
const (
	DefaultTemperature     = 0.85
	DefaultPresencePenalty = 0.2
)

// ChatChoice is a single completion choice.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponse is the response body for /v1/chat/completions.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// apiError is the error envelope some providers return on failure.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// MODEL LIST TYPES
// =============================================================================

// modelListResponse accepts both common listing shapes: the OpenAI
// `{"data": [{"id": ...}]}` form and the Gemini-style
// `{"models": [{"name": ...}]}` form.
type modelListResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}
