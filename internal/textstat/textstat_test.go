package textstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	s := Analyze("One two three. Four five! Six?", 180)

	assert.Equal(t, 6, s.Words)
	assert.Equal(t, 3, s.Sentences)
	assert.Equal(t, 30, s.Characters)
	assert.InDelta(t, 6.0/200.0, s.ReadingMinutes, 1e-9)
	assert.InDelta(t, 6.0/180.0, s.SpeechMinutes, 1e-9)
}

func TestAnalyze_Empty(t *testing.T) {
	s := Analyze("", 180)

	assert.Zero(t, s.Words)
	assert.Zero(t, s.Sentences)
	assert.Zero(t, s.ReadingMinutes)
	assert.Zero(t, s.SpeechMinutes)
}

func TestAnalyze_DefaultsRate(t *testing.T) {
	s := Analyze("hello world", 0)
	assert.Equal(t, 180, s.SpeechRateWPM)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a b c", Clean("a\nb\t c"))
	assert.Equal(t, "", Clean("  \r\n \t"))
	assert.Equal(t, "one two", Clean("one    two"))
}
