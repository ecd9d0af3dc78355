package gemini

import (
	"context"
	"encoding/json"
	"fmt"
)

// NewTool builds a Tool from a typed function. Parameters are reflected from the
// argument struct T: one parameter per exported field, named by its json tag, in field
// order. A field tagged jsonschema:"default=..." is optional; all others are required.
// The handler decodes the named arguments into T before calling fn.
// Returns an error if T is not a struct.
func NewTool[T any, R any](
	name, description string,
	fn func(ctx context.Context, args T) (R, error),
) (*Tool, error) {
	params, err := paramsFor[T]()
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w", name, err)
	}
	handler := func(ctx context.Context, args map[string]any) (any, error) {
		typed, err := decodeArgs[T](args)
		if err != nil {
			return nil, &ValidationError{Tool: name, Reason: err.Error()}
		}
		return fn(ctx, typed)
	}
	return &Tool{
		Name:        name,
		Description: description,
		Params:      params,
		Fn:          handler,
	}, nil
}

// MustTool is like NewTool but panics on error. Intended for package-level tool declarations.
func MustTool[T any, R any](
	name, description string,
	fn func(ctx context.Context, args T) (R, error),
) *Tool {
	t, err := NewTool(name, description, fn)
	if err != nil {
		panic("gemini: " + err.Error())
	}
	return t
}

func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(args)
	if err != nil {
		return out, fmt.Errorf("json encode error: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("json parse error: %w", err)
	}
	return out, nil
}
