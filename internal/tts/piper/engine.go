// Package piper drives the piper neural synthesizer for higher quality
// offline voices.
package piper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/echoverse-team/echoverse/internal/tts"
	"github.com/echoverse-team/echoverse/mapsafe"
)

// DefaultBinary is the piper command name.
const DefaultBinary = "piper"

// playbackTimeout bounds a single live playback. It is longer than the
// synthesis timeout because the player runs in real time.
const playbackTimeout = 10 * time.Minute

// Engine implements tts.Engine for piper.
type Engine struct {
	executor  *tts.Executor
	player    *tts.Executor
	modelPath string
	tempDir   string
	playMu    sync.Mutex
}

// New creates a new piper engine bound to a voice model file. An empty
// binPath resolves piper from PATH.
func New(binPath, modelPath string) (*Engine, error) {
	if binPath == "" {
		binPath = DefaultBinary
	}
	if modelPath == "" {
		return nil, fmt.Errorf("piper requires a model path")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model not found: %w", err)
	}

	executor, err := tts.NewExecutor(binPath, 60*time.Second)
	if err != nil {
		return nil, err
	}

	return NewWithExecutor(executor, modelPath), nil
}

// NewWithExecutor creates an engine around an existing executor. The audio
// player is resolved on first Speak.
func NewWithExecutor(executor *tts.Executor, modelPath string) *Engine {
	return NewWithExecutors(executor, nil, modelPath)
}

// NewWithExecutors creates an engine with explicit synthesis and playback
// executors.
func NewWithExecutors(executor, player *tts.Executor, modelPath string) *Engine {
	return &Engine{
		executor:  executor,
		player:    player,
		modelPath: modelPath,
		tempDir:   os.TempDir(),
	}
}

// Provider returns the engine identifier.
func (e *Engine) Provider() tts.EngineProvider {
	return tts.EngineProviderPiper
}

// Synthesize renders text to WAV audio.
// Piper outputs to a file, so a temp file must be used, then read back;
// this is a limitation of piper's CLI interface.
func (e *Engine) Synthesize(ctx context.Context, req *tts.Request) (*tts.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, tts.ErrEmptyText
	}

	outputFile := filepath.Join(e.tempDir, fmt.Sprintf("piper_%d.wav", time.Now().UnixNano()))
	defer os.Remove(outputFile)

	args := e.buildArgs(req, outputFile)

	// Piper reads text from stdin
	_, stderr, err := e.executor.Execute(ctx, args, strings.NewReader(req.Text))
	if err != nil {
		return nil, fmt.Errorf("execution failed: %w\nstderr: %s", err, stderr)
	}

	audio, err := os.ReadFile(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	if len(audio) == 0 {
		return nil, tts.ErrEmptyAudio
	}

	duration, _ := tts.WAVDuration(audio)

	return &tts.Result{
		Audio: audio,
		Metadata: &tts.ResultMetadata{
			Provider:        e.Provider(),
			Voice:           req.Voice,
			Timestamp:       time.Now(),
			OutputBytes:     int64(len(audio)),
			DurationSeconds: duration,
			EngineSpecific: map[string]any{
				"model": e.modelPath,
				"args":  args,
			},
		},
	}, nil
}

// Speak synthesizes to a temp file and plays it with the platform player.
// Piper has no direct playback mode.
func (e *Engine) Speak(ctx context.Context, req *tts.Request) error {
	player, err := e.resolvePlayer()
	if err != nil {
		return err
	}

	res, err := e.Synthesize(ctx, req)
	if err != nil {
		return err
	}

	playbackFile := filepath.Join(e.tempDir, fmt.Sprintf("piper_play_%d.wav", time.Now().UnixNano()))
	if err := os.WriteFile(playbackFile, res.Audio, 0o644); err != nil {
		return fmt.Errorf("failed to stage playback file: %w", err)
	}
	defer os.Remove(playbackFile)

	e.playMu.Lock()
	defer e.playMu.Unlock()

	if _, stderr, err := player.Execute(ctx, []string{playbackFile}, nil); err != nil {
		return fmt.Errorf("playback failed: %w\nstderr: %s", err, stderr)
	}

	return nil
}

// resolvePlayer returns the playback executor, building one around the
// platform player on first use.
func (e *Engine) resolvePlayer() (*tts.Executor, error) {
	e.playMu.Lock()
	defer e.playMu.Unlock()

	if e.player != nil {
		return e.player, nil
	}

	binary := "aplay"
	if runtime.GOOS == "darwin" {
		binary = "afplay"
	}

	player, err := tts.NewExecutor(binary, playbackTimeout)
	if err != nil {
		return nil, fmt.Errorf("no audio player available: %w", err)
	}
	e.player = player

	return player, nil
}

// Voices returns the single voice baked into the model file; piper binds
// one model per engine instance, with optional speaker IDs inside it.
func (e *Engine) Voices(ctx context.Context) ([]tts.Voice, error) {
	name := strings.TrimSuffix(filepath.Base(e.modelPath), filepath.Ext(e.modelPath))

	return []tts.Voice{
		{
			ID:   name,
			Name: name,
		},
	}, nil
}

// buildArgs builds piper command-line arguments.
func (e *Engine) buildArgs(req *tts.Request, outputFile string) []string {
	args := []string{
		"--model", e.modelPath,
		"--output_file", outputFile,
	}

	// Piper has no words-per-minute knob; length_scale stretches phoneme
	// durations, so the default rate maps to 1.0.
	if req.RateWPM > 0 {
		scale := float64(tts.DefaultRateWPM) / float64(tts.ClampRate(req.RateWPM))
		args = append(args, "--length_scale", strconv.FormatFloat(scale, 'f', 2, 64))
	}

	p := req.Parameters
	if p == nil {
		return args
	}

	// Speaker ID, for multi-speaker models
	if v := mapsafe.Get(p, "speaker_id", -1); v >= 0 {
		args = append(args, "--speaker", strconv.Itoa(v))
	}

	// Noise scale
	if v := mapsafe.Get(p, "noise_scale", -1.0); v >= 0 {
		args = append(args, "--noise_scale", strconv.FormatFloat(v, 'f', 2, 64))
	}

	// Noise width
	if v := mapsafe.Get(p, "noise_w", -1.0); v >= 0 {
		args = append(args, "--noise_w", strconv.FormatFloat(v, 'f', 2, 64))
	}

	// Sentence silence
	if v := mapsafe.Get(p, "sentence_silence", -1.0); v >= 0 {
		args = append(args, "--sentence_silence", strconv.FormatFloat(v, 'f', 2, 64))
	}

	return args
}

// Close cleans up resources. Piper does not have any resources to clean up.
func (e *Engine) Close() error {
	return nil
}
