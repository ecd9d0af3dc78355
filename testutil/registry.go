package testutil

import (
	"time"

	"github.com/skosovsky/gemini"
)

// NewTestRegistry returns a Registry with a long timeout and panic recovery enabled,
// with the given tools registered.
func NewTestRegistry(tools ...*gemini.Tool) *gemini.Registry {
	reg := gemini.NewRegistry(gemini.WithDefaultTimeout(30 * time.Second))
	reg.Use(gemini.WithRecovery())
	for _, t := range tools {
		reg.Register(t)
	}
	return reg
}

// NewTestClient returns a Client backed by a FakeTransport answering with body.
func NewTestClient(body string, opts ...gemini.ClientOption) (*gemini.Client, *FakeTransport) {
	ft := &FakeTransport{Body: body}
	opts = append([]gemini.ClientOption{gemini.WithTransport(ft)}, opts...)
	return gemini.NewClient(opts...), ft
}
