package tts

import (
	"context"
	"errors"
	"time"
)

// EngineProvider is a string identifier for a speech engine.
type EngineProvider string

const (
	EngineProviderESpeak EngineProvider = "espeak"
	EngineProviderSay    EngineProvider = "say"
	EngineProviderPiper  EngineProvider = "piper"
)

// Error definitions for the tts package.
var (
	ErrEngineNotFound = errors.New("speech engine not found in registry")
	ErrVoiceNotFound  = errors.New("voice not found")
	ErrEmptyText      = errors.New("empty text provided")
	ErrEmptyAudio     = errors.New("audio file was not created or is empty")
)

// Rate bounds in words per minute, matching the UI slider.
const (
	MinRateWPM     = 50
	MaxRateWPM     = 300
	DefaultRateWPM = 180
)

// ClampRate bounds a words-per-minute rate to the supported range.
func ClampRate(wpm int) int {
	if wpm <= 0 {
		return DefaultRateWPM
	}
	if wpm < MinRateWPM {
		return MinRateWPM
	}
	if wpm > MaxRateWPM {
		return MaxRateWPM
	}
	return wpm
}

// Voice describes a synthesizer voice.
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// Engine defines the core interface for all speech engines.
type Engine interface {
	// Provider returns the engine identifier.
	Provider() EngineProvider

	// Voices lists the voices the engine can speak with.
	Voices(ctx context.Context) ([]Voice, error)

	// Synthesize renders the request to WAV audio.
	Synthesize(ctx context.Context, req *Request) (*Result, error)

	// Speak plays the request through the local audio device. Engines
	// serialize playback internally; the underlying synthesizers are not
	// reentrant and concurrent playback fights over the device.
	Speak(ctx context.Context, req *Request) error

	// Close cleans up resources.
	Close() error
}

// Request encapsulates all parameters for a synthesis call.
type Request struct {
	// Text is the text to speak. Callers should normalize whitespace first.
	Text string

	// Voice is the engine voice ID. Empty selects the engine default.
	Voice string

	// RateWPM is the speech rate in words per minute.
	RateWPM int

	// Parameters contains engine-specific options.
	Parameters map[string]any
}

// Result contains the outcome of a synthesis operation.
type Result struct {
	// Audio is the WAV payload.
	Audio []byte

	// Metadata contains engine-specific information.
	Metadata *ResultMetadata
}

// ResultMetadata contains metadata about the result.
type ResultMetadata struct {
	Provider        EngineProvider `json:"provider"`
	Voice           string         `json:"voice,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
	OutputBytes     int64          `json:"output_bytes"`
	DurationSeconds float64        `json:"duration_seconds,omitempty"`
	EngineSpecific  map[string]any `json:"engine_specific,omitempty"`
}
