package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "production", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected []interface{}
	}{
		{"empty", nil, nil},
		{"plain pairs", []interface{}{"postings", 3, "role", "SRE"}, []interface{}{"postings", 3, "role", "SRE"}},
		{"api key redacted", []interface{}{"api_key", "abc"}, []interface{}{"api_key", redacted}},
		{"case insensitive", []interface{}{"GEMINI_API_KEY", "abc"}, []interface{}{"GEMINI_API_KEY", redacted}},
		{"database url redacted", []interface{}{"database_url", "postgres://u:p@h/db"}, []interface{}{"database_url", redacted}},
		{"dangling key kept", []interface{}{"a", 1, "orphan"}, []interface{}{"a", 1, "orphan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeKVs(tt.input))
		})
	}
}

func TestLogger_WritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("component", "test")

	l.Info("trend run complete", "postings", 4, "token", "secret-value")
	l.Warn("feed failed", "source", "linkedin")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "trend run complete", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "test", fields["component"])
	assert.EqualValues(t, 4, fields["postings"])
	assert.Equal(t, redacted, fields["token"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.Sync()
}
