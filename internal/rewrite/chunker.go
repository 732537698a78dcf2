package rewrite

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the maximum chunk length in characters.
const DefaultChunkSize = 500

// Split breaks text into chunks of at most max characters for rewriting.
// Chunks are built by greedily concatenating whole sentences; a sentence
// longer than max falls back to word boundaries, and a single word longer
// than max is hard-cut. Whitespace is normalized first, so joining the
// chunks with a single space reconstructs the normalized text.
func Split(text string, max int) []string {
	if max <= 0 {
		max = DefaultChunkSize
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return nil
	}

	if utf8.RuneCountInString(text) <= max {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	appendPiece := func(piece string) {
		pieceLen := utf8.RuneCountInString(piece)

		// +1 for the joining space
		if currentLen > 0 && currentLen+1+pieceLen > max {
			flush()
		}

		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(piece)
		currentLen += pieceLen
	}

	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(sentence) <= max {
			appendPiece(sentence)
			continue
		}

		// Sentence exceeds the budget: fall back to word boundaries.
		for _, word := range strings.Fields(sentence) {
			if utf8.RuneCountInString(word) <= max {
				appendPiece(word)
				continue
			}

			// A single oversized word gets hard-cut.
			for _, piece := range hardCut(word, max) {
				appendPiece(piece)
			}
		}
	}

	flush()
	return chunks
}

// splitSentences splits normalized text on sentence terminators followed by
// a space or end of input, keeping the terminator with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && runes[i+1] != ' ' {
			continue
		}

		sentence := strings.TrimSpace(string(runes[start : i+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

// hardCut slices a string into rune-safe pieces of at most max runes.
func hardCut(s string, max int) []string {
	var pieces []string
	runes := []rune(s)

	for len(runes) > max {
		pieces = append(pieces, string(runes[:max]))
		runes = runes[max:]
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}

	return pieces
}

// normalizeWhitespace collapses all whitespace runs into single spaces.
func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
