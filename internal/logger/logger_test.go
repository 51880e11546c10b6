package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Siva2k2k/ES-TM-sub001/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("timesheet_id", "ts-1").Msg("kept")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "ts-1", line["timesheet_id"])
	assert.Equal(t, "timesheet-approvals", line["service"])
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "", Format: "console"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("batch finished")

	assert.Contains(t, buf.String(), "batch finished")
	assert.NotContains(t, buf.String(), "hidden")
}
