// Package say drives the macOS `say` command.
package say

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/echoverse-team/echoverse/internal/tts"
)

// DefaultBinary is the say command name.
const DefaultBinary = "say"

// Engine implements tts.Engine for macOS say.
type Engine struct {
	executor *tts.Executor
	tempDir  string
	playMu   sync.Mutex
}

// New creates a new say engine. An empty binPath resolves say from PATH.
func New(binPath string) (*Engine, error) {
	if binPath == "" {
		binPath = DefaultBinary
	}

	executor, err := tts.NewExecutor(binPath, 60*time.Second)
	if err != nil {
		return nil, err
	}

	return NewWithExecutor(executor), nil
}

// NewWithExecutor creates an engine around an existing executor.
func NewWithExecutor(executor *tts.Executor) *Engine {
	return &Engine{
		executor: executor,
		tempDir:  os.TempDir(),
	}
}

// Provider returns the engine identifier.
func (e *Engine) Provider() tts.EngineProvider {
	return tts.EngineProviderSay
}

// Synthesize renders text to WAV audio through a temp file.
func (e *Engine) Synthesize(ctx context.Context, req *tts.Request) (*tts.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, tts.ErrEmptyText
	}

	outputFile := filepath.Join(e.tempDir, fmt.Sprintf("say_%d.wav", time.Now().UnixNano()))
	defer os.Remove(outputFile)

	args := e.buildArgs(req)
	// LEI16@22050 in a .wav container keeps output format consistent with
	// the other engines.
	args = append(args, "-o", outputFile, "--data-format=LEI16@22050", "--file-format=WAVE")

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
				"args": args,
			},
		},
	}, nil
}

// Speak plays text through the audio device, serialized per engine.
func (e *Engine) Speak(ctx context.Context, req *tts.Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return tts.ErrEmptyText
	}

	e.playMu.Lock()
	defer e.playMu.Unlock()

	_, stderr, err := e.executor.Execute(ctx, e.buildArgs(req), strings.NewReader(req.Text))
	if err != nil {
		return fmt.Errorf("execution failed: %w\nstderr: %s", err, stderr)
	}

	return nil
}

// Voices lists the voices from `say -v ?`.
func (e *Engine) Voices(ctx context.Context) ([]tts.Voice, error) {
	stdout, stderr, err := e.executor.Execute(ctx, []string{"-v", "?"}, nil)
	if err != nil {
		return nil, fmt.Errorf("execution failed: %w\nstderr: %s", err, stderr)
	}

	return parseVoices(stdout), nil
}

// buildArgs builds the shared say arguments; say reads text from stdin when
// no positional text is given.
func (e *Engine) buildArgs(req *tts.Request) []string {
	var args []string

	if req.Voice != "" {
		args = append(args, "-v", req.Voice)
	}

	args = append(args, "-r", strconv.Itoa(tts.ClampRate(req.RateWPM)))

	return args
}

// parseVoices parses `say -v ?` output. Lines look like:
//
//	Alex                en_US    # Most people recognize me by my voice.
//	Ting-Ting           zh_CN    # 您好，我叫Ting-Ting。
func parseVoices(output []byte) []tts.Voice {
	var voices []tts.Voice

	for _, line := range strings.Split(string(output), "\n") {
		left, _, _ := strings.Cut(line, "#")
		fields := strings.Fields(left)
		if len(fields) < 2 {
			continue
		}

		locale := fields[len(fields)-1]
		if !strings.Contains(locale, "_") {
			continue
		}
		name := strings.Join(fields[:len(fields)-1], " ")

		voices = append(voices, tts.Voice{
			ID:       name,
			Name:     name,
			Language: locale,
		})
	}

	return voices
}

// Close cleans up resources. say does not have any resources to clean up.
func (e *Engine) Close() error {
	return nil
}
