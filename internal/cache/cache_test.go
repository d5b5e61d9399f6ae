package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/skill-twin-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	observed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	batch := []types.RawPosting{
		{ID: "1", Source: types.SourceLinkedIn, Title: "React Developer", RawSkills: []string{"React"}, ObservedAt: observed},
	}

	k1, err := Key("v1", "abcdef0123456789ffff", 6, batch)
	require.NoError(t, err)
	k2, err := Key("v1", "abcdef0123456789ffff", 6, batch)
	require.NoError(t, err)
	assert.Equal(t, k1, k2, "deterministic")
	assert.True(t, strings.HasPrefix(k1, "trends:v1:abcdef0123456789:"))
	assert.Len(t, strings.TrimPrefix(k1, "trends:v1:abcdef0123456789:"), 64)

	other, _ := Key("v2", "abcdef0123456789ffff", 6, batch)
	assert.NotEqual(t, k1, other, "taxonomy version is part of the key")

	other, _ = Key("v1", "0000000000000000ffff", 6, batch)
	assert.NotEqual(t, k1, other, "same version with different tables must not share a key")

	other, _ = Key("v1", "abcdef0123456789ffff", 3, batch)
	assert.NotEqual(t, k1, other, "K is part of the key")

	changed := []types.RawPosting{batch[0]}
	changed[0].RawSkills = []string{"Vue"}
	other, _ = Key("v1", "abcdef0123456789ffff", 6, changed)
	assert.NotEqual(t, k1, other)
}

func TestNewRedisCache_MissingAddr(t *testing.T) {
	_, err := NewRedisCache(t.Context(), "", time.Minute)
	assert.EqualError(t, err, "missing redis address")
}
