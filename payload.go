package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

const (
	// payloadField is the form field carrying the request.
	payloadField = "f.req"
	locale       = "en-US"
)

// buildPayload encodes message and session as the f.req form value:
// [null, "<inner JSON>"] with inner = [[message,0,null,null,null,null,0],["en-US"],[cid,rid]].
// The inner array is embedded as a JSON string; the endpoint rejects it otherwise.
func buildPayload(message string, s Session) (url.Values, error) {
	ids := []any{nil, nil}
	if s.IsSet() {
		ids = []any{s.ConversationID, s.ResponseID}
	}
	inner := []any{
		[]any{message, 0, nil, nil, nil, nil, 0},
		[]any{locale},
		ids,
	}
	innerJSON, err := marshalCompact(inner)
	if err != nil {
		return nil, fmt.Errorf("encode inner payload: %w", err)
	}
	outerJSON, err := marshalCompact([]any{nil, innerJSON})
	if err != nil {
		return nil, fmt.Errorf("encode outer payload: %w", err)
	}
	return url.Values{payloadField: {outerJSON}}, nil
}

// marshalCompact is json.Marshal without HTML escaping and without the trailing newline.
func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
