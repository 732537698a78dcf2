package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_IntFromJSONNumber(t *testing.T) {
	m := map[string]any{"max_tokens": float64(512)}

	assert.Equal(t, 512, Get(m, "max_tokens", 256))
	assert.Equal(t, 256, Get(m, "missing", 256))
}

func TestGet_FloatConversions(t *testing.T) {
	m := map[string]any{
		"creativity": 0.7,
		"rate":       180,
	}

	assert.InDelta(t, 0.7, Get(m, "creativity", 0.5), 1e-9)
	assert.InDelta(t, float32(0.7), Get(m, "creativity", float32(0.5)), 1e-6)
	assert.InDelta(t, 180.0, Get(m, "rate", 0.0), 1e-9)
}

func TestGet_StringAndBool(t *testing.T) {
	m := map[string]any{
		"voice":     "english",
		"auto_play": true,
	}

	assert.Equal(t, "english", Get(m, "voice", "default"))
	assert.True(t, Get(m, "auto_play", false))

	// wrong type falls back to default
	assert.Equal(t, "default", Get(m, "auto_play", "default"))
}
