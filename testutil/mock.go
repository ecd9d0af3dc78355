// Package testutil provides test helpers for gemini (fake transport, mock tools).
package testutil

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/skosovsky/gemini"
)

// Request is one call recorded by FakeTransport.
type Request struct {
	URL  string
	Form url.Values
}

// FakeTransport is a gemini.Transport that records requests and replies with a fixed response.
type FakeTransport struct {
	Status int // 0 means 200
	Body   string
	Err    error

	mu       sync.Mutex
	requests []Request
}

// PostForm records the request and returns the configured response.
func (f *FakeTransport) PostForm(ctx context.Context, rawURL string, form url.Values) (int, []byte, error) {
	f.mu.Lock()
	f.requests = append(f.requests, Request{URL: rawURL, Form: form})
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	if f.Err != nil {
		return 0, nil, f.Err
	}
	status := f.Status
	if status == 0 {
		status = 200
	}
	return status, []byte(f.Body), nil
}

// Requests returns a copy of the recorded requests.
func (f *FakeTransport) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// LastPayload returns the f.req value of the most recent request, or "" if none.
func (f *FakeTransport) LastPayload() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return ""
	}
	return f.requests[len(f.requests)-1].Form.Get("f.req")
}

// ResponseBody builds a StreamGenerate body whose first fragment carries text.
// With guard set, the hijack-guard prefix is prepended.
func ResponseBody(text string, guard bool) string {
	inner, _ := json.Marshal([]any{nil, nil, nil, nil, []any{[]any{"rc_1", []any{text}}}})
	body, _ := json.Marshal([]any{[]any{"wrb.fr", nil, string(inner)}})
	if guard {
		return ")]}'\n" + string(body)
	}
	return string(body)
}

// MockTool returns a tool with the given params whose handler records its arguments.
type MockTool struct {
	Tool *gemini.Tool

	mu    sync.Mutex
	calls []map[string]any
}

// NewMockTool creates a MockTool. result and err are returned from every call.
func NewMockTool(name string, params []gemini.Param, result any, err error) *MockTool {
	m := &MockTool{}
	m.Tool = &gemini.Tool{
		Name:        name,
		Description: "mock tool " + name,
		Params:      params,
		Fn: func(_ context.Context, args map[string]any) (any, error) {
			m.mu.Lock()
			m.calls = append(m.calls, args)
			m.mu.Unlock()
			return result, err
		},
	}
	return m
}

// Calls returns the arguments of every call so far.
func (m *MockTool) Calls() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]any(nil), m.calls...)
}

var _ gemini.Transport = (*FakeTransport)(nil)
