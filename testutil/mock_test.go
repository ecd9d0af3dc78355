package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skosovsky/gemini"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMockTool(t *testing.T) {
	m := NewMockTool("echo", []gemini.Param{gemini.Required("x", gemini.KindString)}, "ok", nil)
	reg := NewTestRegistry(m.Tool)
	res, err := reg.Invoke(context.Background(), "echo", map[string]any{"x": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	require.Len(t, m.Calls(), 1)
	assert.Equal(t, "hi", m.Calls()[0]["x"])
}

func TestNewTestRegistry(t *testing.T) {
	m := NewMockTool("m", nil, nil, nil)
	reg := NewTestRegistry(m.Tool)
	require.NotNil(t, reg)
	all := reg.Schemas()
	require.Len(t, all, 1)
	assert.Equal(t, "m", all[0].Name)
}

func TestFakeTransport(t *testing.T) {
	c, ft := NewTestClient(ResponseBody("hello there", true))
	answer, err := c.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", answer)
	require.Len(t, ft.Requests(), 1)
	assert.NotEmpty(t, ft.LastPayload())
}

func TestFakeTransport_Error(t *testing.T) {
	cause := errors.New("dial failed")
	ft := &FakeTransport{Err: cause}
	c := gemini.NewClient(gemini.WithTransport(ft))
	_, err := c.Ask(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, gemini.IsAPIError(err))
}
