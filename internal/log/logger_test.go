package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf, Service: "test"})

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Str(FieldKey, "mode").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test", entry[FieldService])
	assert.Equal(t, "mode", entry[FieldKey])
	assert.Equal(t, "kept", entry["message"])
}

func TestNewLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	l.Debug().Msg("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), `"service":"line-conf"`)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, Console: true, Level: "info"})
	l.Info().Str(FieldKey, "verbose").Msg("assigned")

	assert.Contains(t, buf.String(), "assigned")
	assert.Contains(t, buf.String(), "verbose")
	assert.NotContains(t, buf.String(), "{")
}
