package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Definition describes a tool: its wire descriptor plus dispatch metadata
type Definition struct {
	Name        string
	Description string
	InputSchema map[string]any

	// Public tools bypass the authentication gate (login only)
	Public bool
}

// Descriptor is the wire form advertised by tools/list
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Handler processes one tool invocation. Handlers never return Go errors
// across the dispatch boundary; every failure is a well-formed error Result.
type Handler func(ctx context.Context, tc *Context, args Args) *Result

// Invocation is one incoming tool call
type Invocation struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Result is the outcome of one invocation, never partially streamed
type Result struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is a piece of tool output
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextResult renders a human-readable summary with an embedded
// pretty-printed payload
func TextResult(summary string, payload any) *Result {
	text := summary
	if payload != nil {
		pretty, err := json.MarshalIndent(payload, "", "  ")
		if err == nil {
			text = summary + "\n\n" + string(pretty)
		}
	}
	return &Result{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// ErrorResult renders a failure as an error-flagged result
func ErrorResult(format string, args ...any) *Result {
	return &Result{
		Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// FailureResult wraps a backend error with the attempted action, without
// leaking raw transport detail beyond the error's message
func FailureResult(action string, err error) *Result {
	return ErrorResult("%s failed: %s", action, err.Error())
}
