package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/echoverse-team/echoverse/internal/textstat"
	"github.com/echoverse-team/echoverse/internal/tts"
	"github.com/echoverse-team/echoverse/internal/xfs"
)

// SpeechOptions hold the service defaults resolved from config.
type SpeechOptions struct {
	DefaultEngine tts.EngineProvider
	DefaultVoice  string
	DefaultRate   int
	AudioDir      string
}

// Speech is a service abstraction for text-to-speech.
type Speech struct {
	engines *tts.Registry
	opts    SpeechOptions
}

// NewSpeech creates a new Speech service.
func NewSpeech(engines *tts.Registry, opts SpeechOptions) *Speech {
	if opts.DefaultRate <= 0 {
		opts.DefaultRate = tts.DefaultRateWPM
	}

	return &Speech{
		engines: engines,
		opts:    opts,
	}
}

// SpeechResult is the outcome of a synthesis, including where the audio
// landed on disk.
type SpeechResult struct {
	Audio          []byte
	Path           string
	ElapsedSeconds float64
	Metadata       *tts.ResultMetadata
}

// Filename is the basename of the generated audio file.
func (r *SpeechResult) Filename() string {
	return filepath.Base(r.Path)
}

// Synthesize cleans the text, synthesizes it with the selected engine and
// writes the WAV to the audio directory. kind distinguishes filenames for
// rewritten ("output") versus as-is ("original") audio.
func (s *Speech) Synthesize(ctx context.Context, engine tts.EngineProvider, req *tts.Request, kind string) (*SpeechResult, error) {
	e, err := s.resolve(engine)
	if err != nil {
		return nil, err
	}

	s.applyDefaults(req)

	cleaned := textstat.Clean(req.Text)
	if cleaned == "" {
		return nil, tts.ErrEmptyText
	}
	req.Text = cleaned

	if kind == "" {
		kind = "output"
	}

	start := time.Now()

	res, err := e.Synthesize(ctx, req)
	if err != nil {
		slog.Error("Failed to synthesize speech", "engine", e.Provider(), "error", err)
		return nil, err
	}

	if err := xfs.EnsureDir(s.opts.AudioDir); err != nil {
		return nil, err
	}

	path := filepath.Join(s.opts.AudioDir, fmt.Sprintf("echoverse_%s_%d.wav", kind, time.Now().UnixNano()))
	if err := os.WriteFile(path, res.Audio, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}

	slog.Info("Audio generated", "engine", e.Provider(), "path", path, "bytes", len(res.Audio))

	return &SpeechResult{
		Audio:          res.Audio,
		Path:           path,
		ElapsedSeconds: time.Since(start).Seconds(),
		Metadata:       res.Metadata,
	}, nil
}

// Speak plays the text live without saving a file.
func (s *Speech) Speak(ctx context.Context, engine tts.EngineProvider, req *tts.Request) error {
	e, err := s.resolve(engine)
	if err != nil {
		return err
	}

	s.applyDefaults(req)

	cleaned := textstat.Clean(req.Text)
	if cleaned == "" {
		return tts.ErrEmptyText
	}
	req.Text = cleaned

	return e.Speak(ctx, req)
}

// Validate checks that the engine exists and the text is non-empty after
// cleaning, without synthesizing anything.
func (s *Speech) Validate(engine tts.EngineProvider, req *tts.Request) error {
	if _, err := s.resolve(engine); err != nil {
		return err
	}
	if textstat.Clean(req.Text) == "" {
		return tts.ErrEmptyText
	}

	return nil
}

// Voices lists the voices of the selected engine.
func (s *Speech) Voices(ctx context.Context, engine tts.EngineProvider) ([]tts.Voice, error) {
	e, err := s.resolve(engine)
	if err != nil {
		return nil, err
	}

	return e.Voices(ctx)
}

// Engines lists the registered engine names.
func (s *Speech) Engines() []tts.EngineProvider {
	return s.engines.List()
}

func (s *Speech) resolve(engine tts.EngineProvider) (tts.Engine, error) {
	if engine == "" {
		engine = s.opts.DefaultEngine
	}

	e, ok := s.engines.Get(engine)
	if !ok {
		return nil, tts.ErrEngineNotFound
	}

	return e, nil
}

func (s *Speech) applyDefaults(req *tts.Request) {
	if req.Voice == "" {
		req.Voice = s.opts.DefaultVoice
	}
	if req.RateWPM <= 0 {
		req.RateWPM = s.opts.DefaultRate
	}
}
