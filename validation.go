package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// argsValidator checks invocation arguments against a compiled schema.
// *jsonschema.Schema implements it.
type argsValidator interface {
	Validate(v any) error
}

// validationDocument turns a ToolSchema into the stricter schema used at invoke time:
// unknown argument names are rejected, and parameters of unknown kind accept any type.
func validationDocument(t *Tool) map[string]any {
	params := uniqueParams(t.Params)
	props := make(map[string]any, len(params))
	required := make([]any, 0, len(params))
	for _, p := range params {
		prop := map[string]any{}
		if p.Kind != KindUnknown {
			prop["type"] = p.Kind.String()
		}
		props[p.Name] = prop
		if !p.HasDefault {
			required = append(required, p.Name)
		}
	}
	doc := map[string]any{
		"$schema":              SchemaDialect,
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

// compileValidator compiles the invoke-time schema of t.
func compileValidator(t *Tool) (argsValidator, error) {
	doc, err := normalizeJSON(validationDocument(t))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("tool.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile("tool.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// validateArgs runs the compiled schema on args. Go values are round-tripped
// through JSON first so that ints, structs and slices reach the validator as plain JSON values.
func validateArgs(tool string, v argsValidator, args map[string]any) error {
	if v == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	inst, err := normalizeJSON(args)
	if err != nil {
		return &ValidationError{Tool: tool, Reason: err.Error()}
	}
	if err := v.Validate(inst); err != nil {
		return &ValidationError{Tool: tool, Reason: err.Error()}
	}
	return nil
}

func normalizeJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
