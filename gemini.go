package gemini

import (
	"context"
	"net/url"
)

// Endpoint constants for the web chat backend.
const (
	BaseURL     = "https://gemini.google.com"
	APIEndpoint = "/_/BardChatUi/data/assistant.lamda.BardFrontendService/StreamGenerate"
)

// Transport performs the blocking form POST used by Client. Implementations return
// the HTTP status and the full body; err is reserved for transport-level failures
// (dial, timeout, read). Status codes are interpreted by Client, not by Transport.
type Transport interface {
	PostForm(ctx context.Context, rawURL string, form url.Values) (status int, body []byte, err error)
}

// Session holds the two continuation identifiers of a conversation.
// The zero value is a fresh conversation.
type Session struct {
	ConversationID string
	ResponseID     string
}

// IsSet reports whether both identifiers are present. A half-filled Session is
// treated as unset when building a request.
func (s Session) IsSet() bool {
	return s.ConversationID != "" && s.ResponseID != ""
}

// Handler is the function behind a Tool. args holds the named arguments after
// validation and default filling.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Tool is an LLM-callable function: name, description, ordered parameter list and handler.
// Params are in declaration order; that order is kept in the derived schema's required list.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Fn          Handler
}

// Param describes one named parameter of a Tool.
type Param struct {
	Name       string
	Kind       ParamKind
	Default    any
	HasDefault bool
}

// Required returns a parameter without a default value.
func Required(name string, kind ParamKind) Param {
	return Param{Name: name, Kind: kind}
}

// Optional returns a parameter with a default value; it is left out of the schema's required list.
func Optional(name string, kind ParamKind, def any) Param {
	return Param{Name: name, Kind: kind, Default: def, HasDefault: true}
}
