package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Str("k", "v").Msg("hello")
	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"message":"hello"`)
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Msg("dropped")
	assert.Empty(t, buf.String())
	Error().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestCtx_UsesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	child := Logger().With().Str("request_id", "abc").Logger()
	ctx := WithContext(context.Background(), child)
	Ctx(ctx).Info().Msg("scoped")
	require.Contains(t, buf.String(), `"request_id":"abc"`)

	buf.Reset()
	Ctx(context.Background()).Info().Msg("global")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "warn", parseLevel("WARNING").String())
	assert.Equal(t, "info", parseLevel("nonsense").String())
}
