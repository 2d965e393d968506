package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info().Msg("no se escribe")
	assert.Zero(t, buf.Len(), "info queda por debajo de warn")

	l.Warn().Str("user_id", "u1").Msg("intento fallido")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "intento fallido", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_RedirigeLoggerGlobal(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info")

	log.Info().Msg("desde el global")
	assert.Contains(t, buf.String(), "desde el global")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("desconocido").String(), "nivel inválido cae en info")
}
