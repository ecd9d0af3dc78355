package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamKind_String(t *testing.T) {
	tests := []struct {
		kind ParamKind
		want string
	}{
		{KindInteger, "integer"},
		{KindNumber, "number"},
		{KindBoolean, "boolean"},
		{KindString, "string"},
		{KindArray, "array"},
		{KindObject, "object"},
		{KindUnknown, "string"},
		{ParamKind(99), "string"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestDerive_RequiredAndTypes(t *testing.T) {
	tool := &Tool{
		Name:        "greet",
		Description: "Greets a",
		Params: []Param{
			Required("a", KindInteger),
			Optional("b", KindString, "x"),
		},
	}
	s := Derive(tool)
	assert.Equal(t, "greet", s.Name)
	assert.Equal(t, "Greets a", s.Description)
	assert.Equal(t, SchemaDialect, s.InputSchema.Schema)
	assert.Equal(t, "object", s.InputSchema.Type)
	assert.Equal(t, []string{"a"}, s.InputSchema.Required)
	assert.Equal(t, map[string]Property{
		"a": {Type: "integer"},
		"b": {Type: "string"},
	}, s.InputSchema.Properties)
}

func TestDerive_RequiredKeepsDeclarationOrder(t *testing.T) {
	tool := &Tool{Name: "t", Params: []Param{
		Required("zeta", KindNumber),
		Optional("mid", KindBoolean, true),
		Required("alpha", KindArray),
		Required("obj", KindObject),
		Required("any", KindUnknown),
	}}
	s := Derive(tool)
	assert.Equal(t, []string{"zeta", "alpha", "obj", "any"}, s.InputSchema.Required)
	assert.Equal(t, "string", s.InputSchema.Properties["any"].Type)
}

func TestDerive_NoParams(t *testing.T) {
	s := Derive(&Tool{Name: "ping"})
	assert.Empty(t, s.InputSchema.Properties)
	assert.NotNil(t, s.InputSchema.Properties)
	assert.Nil(t, s.InputSchema.Required)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	input, ok := m["input_schema"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, input, "required")
	assert.Equal(t, map[string]any{}, input["properties"])
}

func TestDerive_AllOptionalOmitsRequired(t *testing.T) {
	s := Derive(&Tool{Name: "t", Params: []Param{Optional("n", KindInteger, 1)}})
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"required"`)
}

func TestToolSchema_WireShape(t *testing.T) {
	s := Derive(&Tool{Name: "add", Description: "Adds", Params: []Param{Required("a", KindInteger)}})
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "add",
		"description": "Adds",
		"input_schema": {
			"$schema": "http://json-schema.org/draft-07/schema#",
			"type": "object",
			"properties": {"a": {"type": "integer", "description": ""}},
			"required": ["a"]
		}
	}`, string(data))
}

func TestParamsFor(t *testing.T) {
	type Args struct {
		Count   int               `json:"count"`
		Ratio   float64           `json:"ratio"`
		Verbose bool              `json:"verbose" jsonschema:"default=false"`
		City    string            `json:"city" jsonschema:"default=Paris"`
		Tags    []string          `json:"tags"`
		Meta    map[string]string `json:"meta"`
		Extra   any               `json:"extra"`
	}
	params, err := paramsFor[Args]()
	require.NoError(t, err)
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"count", "ratio", "verbose", "city", "tags", "meta", "extra"}, names)

	byName := make(map[string]Param, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}
	assert.Equal(t, KindInteger, byName["count"].Kind)
	assert.Equal(t, KindNumber, byName["ratio"].Kind)
	assert.Equal(t, KindBoolean, byName["verbose"].Kind)
	assert.Equal(t, KindString, byName["city"].Kind)
	assert.Equal(t, KindArray, byName["tags"].Kind)
	assert.Equal(t, KindObject, byName["meta"].Kind)
	assert.Equal(t, KindUnknown, byName["extra"].Kind)

	assert.False(t, byName["count"].HasDefault)
	assert.True(t, byName["city"].HasDefault)
	assert.Equal(t, "Paris", byName["city"].Default)
	assert.True(t, byName["verbose"].HasDefault)
}

func TestParamsFor_Pointer(t *testing.T) {
	type Args struct {
		X int `json:"x"`
	}
	params, err := paramsFor[*Args]()
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "x", params[0].Name)
}

func TestParamsFor_NotStruct(t *testing.T) {
	_, err := paramsFor[int]()
	require.ErrorIs(t, err, errNotStruct)
}

func TestParamsFor_EmptyStruct(t *testing.T) {
	params, err := paramsFor[struct{}]()
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestParamsFor_AnonymousStruct(t *testing.T) {
	params, err := paramsFor[struct {
		N    int    `json:"n"`
		Mode string `json:"mode" jsonschema:"default=fast"`
	}]()
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, Param{Name: "n", Kind: KindInteger}, params[0])
	assert.Equal(t, "mode", params[1].Name)
	assert.True(t, params[1].HasDefault)
	assert.Equal(t, "fast", params[1].Default)
}

func TestDerive_DuplicateParamKeepsFirst(t *testing.T) {
	s := Derive(&Tool{Name: "dup", Params: []Param{
		Required("x", KindString),
		Required("x", KindInteger),
		Optional("y", KindBoolean, false),
		Required("y", KindNumber),
	}})
	assert.Equal(t, []string{"x"}, s.InputSchema.Required)
	assert.Equal(t, map[string]Property{
		"x": {Type: "string"},
		"y": {Type: "boolean"},
	}, s.InputSchema.Properties)
}
