package rewrite

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Empty(t *testing.T) {
	assert.Nil(t, Split("", 500))
	assert.Nil(t, Split("   \n\t  ", 500))
}

func TestSplit_ShortTextIsSingleChunk(t *testing.T) {
	chunks := Split("Hello there. How are you?", 500)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Hello there. How are you?", chunks[0])
}

func TestSplit_SentenceBoundaries(t *testing.T) {
	text := "The first sentence is here. The second sentence follows it! Is this the third one? The fourth closes things out."

	chunks := Split(text, 60)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 60)
		// No chunk starts or ends mid-word.
		assert.Equal(t, strings.TrimSpace(c), c)
	}

	// Sentences stay intact when they fit.
	assert.Contains(t, chunks[0], "The first sentence is here.")
	assert.Equal(t, normalizeWhitespace(text), strings.Join(chunks, " "))
}

func TestSplit_WordFallbackForLongSentence(t *testing.T) {
	// One sentence, far over budget, no terminators until the end.
	text := strings.Repeat("word ", 50) + "end."

	chunks := Split(text, 40)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 40)
	}
	assert.Equal(t, normalizeWhitespace(text), strings.Join(chunks, " "))
}

func TestSplit_HardCutOversizedWord(t *testing.T) {
	word := strings.Repeat("x", 95)

	chunks := Split(word, 40)

	require.Len(t, chunks, 3)
	assert.Equal(t, 40, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 40, utf8.RuneCountInString(chunks[1]))
	assert.Equal(t, 15, utf8.RuneCountInString(chunks[2]))
}

func TestSplit_NormalizesWhitespace(t *testing.T) {
	chunks := Split("Line one.\n\nLine\ttwo.  Line   three.", 500)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Line one. Line two. Line three.", chunks[0])
}

func TestSplit_DefaultOnNonPositiveMax(t *testing.T) {
	text := strings.Repeat("A sentence sits here. ", 60)

	chunks := Split(text, 0)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), DefaultChunkSize)
	}
}

func TestSplit_MultiByteRunes(t *testing.T) {
	text := strings.Repeat("héllo wörld. ", 30)

	chunks := Split(text, 50)

	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50)
	}
	assert.Equal(t, normalizeWhitespace(text), strings.Join(chunks, " "))
}

func TestSplitSentences_TerminatorInsideToken(t *testing.T) {
	// Dots not followed by a space do not end a sentence.
	sentences := splitSentences("Visit example.com for more. Thanks!")

	require.Len(t, sentences, 2)
	assert.Equal(t, "Visit example.com for more.", sentences[0])
	assert.Equal(t, "Thanks!", sentences[1])
}
