package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_WritesLevelMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	log.With("resource", "products").Warn(context.Background(), "fetch failed", "status", 503)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "fetch failed", rec["message"])
	assert.Equal(t, "products", rec["resource"])
	assert.EqualValues(t, 503, rec["status"])
}

func TestZerologLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	log.Info(context.Background(), "hidden")
	log.Error(context.Background(), "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestPairs_OddArgs(t *testing.T) {
	m := pairs([]any{"a", 1, "dangling"})
	assert.Equal(t, 1, m["a"])
	assert.Equal(t, "dangling", m["!BADKEY"])
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatZerolog, ""} {
		var buf bytes.Buffer
		log, err := New(&buf, format, "debug")
		require.NoError(t, err, format)
		log.Debug(context.Background(), "probe", "k", "v")
		assert.True(t, strings.Contains(buf.String(), "probe"), format)
	}

	_, err := New(&bytes.Buffer{}, "xml", "info")
	require.Error(t, err)
}

func TestNew_LevelApplied(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, FormatText, "error")
	require.NoError(t, err)

	log.Warn(context.Background(), "quiet")
	assert.Empty(t, buf.String())
}
