package gemini

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

// entry pairs a registered tool with its derived schema and compiled validator.
type entry struct {
	tool      *Tool
	schema    ToolSchema
	validator argsValidator
	handler   Handler // tool.Fn wrapped with middlewares
}

// Registry holds tools by name and dispatches invocations.
type Registry struct {
	entries     map[string]*entry
	opts        registryOptions
	mu          sync.Mutex
	middlewares []Middleware
}

// NewRegistry creates a Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		entries: make(map[string]*entry),
		opts:    o,
	}
}

// Register stores t under t.Name together with its derived schema and returns t unchanged.
// If a tool with the same name already exists, it is replaced. Stored middlewares (see Use)
// are applied to the handler. A tool without a handler is not stored. Safe for concurrent
// use with Invoke and other Register calls.
func (r *Registry) Register(t *Tool) *Tool {
	if t.Fn == nil {
		r.opts.logger.Error("tool has no handler, not registered", "tool", t.Name)
		return t
	}
	e := &entry{tool: t, schema: Derive(t)}
	if v, err := compileValidator(t); err != nil {
		r.opts.logger.Error("tool schema not compiled, arguments will not be validated",
			"tool", t.Name, "error", err)
	} else {
		e.validator = v
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e.handler = r.wrap(t)
	if _, replaced := r.entries[t.Name]; replaced {
		r.opts.logger.Debug("tool replaced", "tool", t.Name)
	} else {
		r.opts.logger.Debug("tool registered", "tool", t.Name, "params", len(t.Params))
	}
	r.entries[t.Name] = e
	return t
}

// Schemas returns the schemas of all registered tools, sorted by name for deterministic order.
// The returned values are copies.
func (r *Registry) Schemas() []ToolSchema {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := slices.Sorted(maps.Keys(r.entries))
	out := make([]ToolSchema, 0, len(names))
	for _, name := range names {
		out = append(out, r.entries[name].schema.clone())
	}
	return out
}

// Get returns the tool registered under name, or (nil, false) if not found.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.tool, true
}

// Invoke calls the tool registered under name with the given named arguments.
// It returns ErrToolNotFound for an unknown name and a *ValidationError when args do not
// fit the tool's parameters. Omitted optional parameters receive their defaults.
// An error returned by the handler itself is passed through unchanged.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.Lock()
	e, ok := r.entries[name]
	var h Handler
	if ok {
		h = e.handler
	}
	r.mu.Unlock()
	if !ok {
		return nil, ErrToolNotFound
	}
	if err := validateArgs(name, e.validator, args); err != nil {
		return nil, err
	}
	call := withDefaults(e.tool.Params, args)
	if r.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.timeout)
		defer cancel()
	}
	start := time.Now()
	res, err := h(ctx, call)
	r.opts.logger.Debug("tool invoked", "tool", name, "duration", time.Since(start), "error", err)
	return res, err
}

// withDefaults copies args and fills in the defaults of omitted optional parameters.
func withDefaults(params []Param, args map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	maps.Copy(out, args)
	for _, p := range params {
		if _, ok := out[p.Name]; !ok && p.HasDefault {
			out[p.Name] = p.Default
		}
	}
	return out
}

// wrap applies the stored middleware chain to t.Fn. Caller holds r.mu.
func (r *Registry) wrap(t *Tool) Handler {
	h := t.Fn
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](t.Name, h)
	}
	return h
}
