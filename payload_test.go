package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unpack reverses buildPayload's double encoding.
func unpack(t *testing.T, raw string) (message string, localeTag string, ids []any) {
	t.Helper()
	var outer []any
	require.NoError(t, json.Unmarshal([]byte(raw), &outer))
	require.Len(t, outer, 2)
	assert.Nil(t, outer[0])
	innerStr, ok := outer[1].(string)
	require.True(t, ok, "inner payload must be a JSON string")

	var inner []any
	require.NoError(t, json.Unmarshal([]byte(innerStr), &inner))
	require.Len(t, inner, 3)

	msg, ok := inner[0].([]any)
	require.True(t, ok)
	require.Len(t, msg, 7)
	assert.Equal(t, []any{float64(0), nil, nil, nil, nil, float64(0)}, msg[1:])
	message, ok = msg[0].(string)
	require.True(t, ok)

	loc, ok := inner[1].([]any)
	require.True(t, ok)
	require.Len(t, loc, 1)
	localeTag, _ = loc[0].(string)

	ids, ok = inner[2].([]any)
	require.True(t, ok)
	require.Len(t, ids, 2)
	return message, localeTag, ids
}

func TestBuildPayload_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		message string
		session Session
		wantIDs []any
	}{
		{"fresh", "hello", Session{}, []any{nil, nil}},
		{"continued", "and then?", Session{ConversationID: "c_123", ResponseID: "r_456"}, []any{"c_123", "r_456"}},
		{"half session is unset", "hi", Session{ConversationID: "c_123"}, []any{nil, nil}},
		{"special characters", "a \"quoted\" <tag> & \\ ünïcødé\nline", Session{}, []any{nil, nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := buildPayload(tt.message, tt.session)
			require.NoError(t, err)
			require.Len(t, form, 1)
			msg, loc, ids := unpack(t, form.Get(payloadField))
			assert.Equal(t, tt.message, msg)
			assert.Equal(t, "en-US", loc)
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestBuildPayload_WireShape(t *testing.T) {
	form, err := buildPayload("hi", Session{})
	require.NoError(t, err)
	assert.Equal(t,
		`[null,"[[\"hi\",0,null,null,null,null,0],[\"en-US\"],[null,null]]"]`,
		form.Get("f.req"))
}

func TestMarshalCompact(t *testing.T) {
	s, err := marshalCompact([]any{"<a&b>", nil})
	require.NoError(t, err)
	assert.Equal(t, `["<a&b>",null]`, s)
}
