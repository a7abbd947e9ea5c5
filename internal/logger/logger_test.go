package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		name      string
		config    LoggerConfig
		wantErr   bool
		wantLevel zerolog.Level
	}{
		{"prod defaults", LoggerConfig{}, false, zerolog.InfoLevel},
		{"dev defaults to debug", LoggerConfig{Env: "dev"}, false, zerolog.DebugLevel},
		{"staging warn", LoggerConfig{Env: "staging", Level: "warn"}, false, zerolog.WarnLevel},
		{"bad env", LoggerConfig{Env: "qa"}, true, 0},
		{"bad level", LoggerConfig{Level: "loud"}, true, 0},
		{"bad format", LoggerConfig{Format: "xml"}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			cfg.Output = &bytes.Buffer{}
			_, err := New(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestJSONOutputCarriesServiceFields(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	l, err := New(&LoggerConfig{Env: "prod", Output: &buf, Fields: map[string]interface{}{"region": "eu"}})
	require.NoError(t, err)
	l.Info().Str("game", "g1").Msg("started")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "footyfeud", line["service"])
	assert.Equal(t, "prod", line["env"])
	assert.Equal(t, "eu", line["region"])
	assert.Equal(t, "g1", line["game"])
	assert.Equal(t, "started", line["message"])
}

func TestConsoleOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	l, err := New(&LoggerConfig{Env: "dev", Output: &buf})
	require.NoError(t, err)
	l.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}
