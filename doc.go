// Package gemini is a client for the Gemini web chat endpoint together with a
// small tool layer that exposes Go functions as callable tools with derived schemas.
//
// # Overview
//
// The web endpoint is not a public API. Requests are form posts carrying a
// doubly-encoded JSON array; responses are a batch of nested JSON arrays with the
// answer buried several levels deep. Decode extracts the answer and degrades to an
// empty string whenever the payload does not have the expected shape.
//
// Pipeline: Client.Ask → build f.req payload (message, locale, Session) →
// Transport.PostForm → Decode → answer string (or token stream via AskStream).
//
// Tools: Tool (name, description, ordered Params, Handler) → Derive → ToolSchema →
// Registry → Invoke (validate, fill defaults, call handler).
//
// # Key concepts
//
//   - Decode never fails: a missing or malformed structure yields "".
//   - Transport failures and non-200 statuses are reported as *APIError, so an
//     empty answer and a failed call stay distinguishable.
//   - ErrToolNotFound is returned for unknown tool names; handler errors pass
//     through Invoke unchanged.
//
// # Example
//
//	c := gemini.NewClient(gemini.WithTimeout(30 * time.Second))
//	answer, err := c.Ask(ctx, "What is the capital of France?")
//	if err != nil { ... }
//
//	reg := gemini.NewRegistry()
//	reg.Register(&gemini.Tool{
//	    Name:   "add",
//	    Params: []gemini.Param{gemini.Required("a", gemini.KindInteger), gemini.Optional("b", gemini.KindInteger, 1)},
//	    Fn:     func(_ context.Context, args map[string]any) (any, error) { ... },
//	})
//	out, err := reg.Invoke(ctx, "add", map[string]any{"a": 2})
package gemini
