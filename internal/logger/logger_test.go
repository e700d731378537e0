package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "client")

	l.Info().Msg("hello")

	entry := decode(t, &buf)
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
}

func TestWithLevel_FiltersBelow(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "client").WithLevel("warn")

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Equal(t, "kept", decode(t, &buf)["message"])
}

func TestWithLevel_UnknownKeepsLevel(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, "client")
	assert.Same(t, l, l.WithLevel("loud"))
}

func TestChild_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "client").Child("instance", "abc")

	l.Info().Msg("x")
	assert.Equal(t, "abc", decode(t, &buf)["instance"])
}

func TestNop_Disabled(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, Nop().GetLevel())
}
