package gemini

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/invopop/jsonschema"
)

// SchemaDialect is the $schema value of every derived input schema.
const SchemaDialect = "http://json-schema.org/draft-07/schema#"

// ParamKind is the declared kind of a tool parameter.
type ParamKind int

const (
	KindUnknown ParamKind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindString
	KindArray
	KindObject
)

var kindLabels = map[ParamKind]string{
	KindInteger: "integer",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

// String returns the JSON Schema type label. Unknown kinds are labelled "string".
func (k ParamKind) String() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "string"
}

// kindFromLabel maps a JSON Schema type name back to a ParamKind.
func kindFromLabel(label string) ParamKind {
	for k, l := range kindLabels {
		if l == label {
			return k
		}
	}
	return KindUnknown
}

// ToolSchema is the wire description of a tool.
type ToolSchema struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"input_schema"`
}

// InputSchema is the object schema of a tool's parameters. Required is omitted
// from JSON when no parameter is required.
type InputSchema struct {
	Schema     string              `json:"$schema"`
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one parameter. Description is always emitted, and always empty.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Derive builds the ToolSchema of t. Parameters without a default are required,
// in declaration order.
func Derive(t *Tool) ToolSchema {
	params := uniqueParams(t.Params)
	props := make(map[string]Property, len(params))
	var required []string
	for _, p := range params {
		props[p.Name] = Property{Type: p.Kind.String()}
		if !p.HasDefault {
			required = append(required, p.Name)
		}
	}
	return ToolSchema{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: InputSchema{
			Schema:     SchemaDialect,
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}

// clone returns a deep copy so callers of Registry.Schemas cannot mutate stored schemas.
func (s ToolSchema) clone() ToolSchema {
	s.InputSchema.Properties = maps.Clone(s.InputSchema.Properties)
	if s.InputSchema.Properties == nil {
		s.InputSchema.Properties = map[string]Property{}
	}
	s.InputSchema.Required = slices.Clone(s.InputSchema.Required)
	return s
}

// uniqueParams drops repeated parameter names, keeping the first declaration.
func uniqueParams(params []Param) []Param {
	seen := make(map[string]struct{}, len(params))
	out := make([]Param, 0, len(params))
	for _, p := range params {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out
}

var errNotStruct = errors.New("argument type must be a struct")

// paramsFor reflects the argument struct T into an ordered parameter list.
// Property order follows field order; a jsonschema:"default=..." tag makes a field optional.
// With DoNotReference the root schema is inlined, so unnamed structs reflect too.
func paramsFor[T any]() ([]Param, error) {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", errNotStruct, typ)
	}
	r := &jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	schema := r.ReflectFromType(typ)
	if schema == nil {
		return nil, errors.New("schema reflection returned nil")
	}
	if schema.Properties == nil {
		return []Param{}, nil
	}
	params := make([]Param, 0, schema.Properties.Len())
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		p := Param{Name: pair.Key}
		if prop := pair.Value; prop != nil {
			p.Kind = kindFromLabel(prop.Type)
			if prop.Default != nil {
				p.Default = prop.Default
				p.HasDefault = true
			}
		}
		params = append(params, p)
	}
	return params, nil
}
