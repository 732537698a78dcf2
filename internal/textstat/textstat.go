// Package textstat computes the quick statistics shown next to the input
// box: counts and time estimates.
package textstat

import "strings"

// ReadingWPM is the average silent reading speed used for estimates.
const ReadingWPM = 200

// Stats describes a piece of text.
type Stats struct {
	Words          int     `json:"words"`
	Characters     int     `json:"characters"`
	Sentences      int     `json:"sentences"`
	ReadingMinutes float64 `json:"reading_minutes"`
	SpeechMinutes  float64 `json:"speech_minutes"`
	SpeechRateWPM  int     `json:"speech_rate_wpm"`
}

// Analyze computes statistics for text, estimating speech time at the given
// words-per-minute rate.
func Analyze(text string, speechRateWPM int) Stats {
	if speechRateWPM <= 0 {
		speechRateWPM = 180
	}

	words := len(strings.Fields(text))
	sentences := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")

	s := Stats{
		Words:         words,
		Characters:    len([]rune(text)),
		Sentences:     sentences,
		SpeechRateWPM: speechRateWPM,
	}

	if words > 0 {
		s.ReadingMinutes = float64(words) / ReadingWPM
		s.SpeechMinutes = float64(words) / float64(speechRateWPM)
	}

	return s
}

// Clean normalizes text for synthesis: newlines, tabs and repeated spaces
// collapse into single spaces.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
