// Package espeak drives the espeak-ng synthesizer, the default engine on
// Linux and BSD systems.
package espeak

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
	"github.com/echoverse-team/echoverse/mapsafe"
)

// DefaultBinary is the espeak-ng command name.
const DefaultBinary = "espeak-ng"

// Engine implements tts.Engine for espeak-ng.
type Engine struct {
	executor *tts.Executor
	tempDir  string

	// espeak owns the audio device while speaking; concurrent playback is
	// serialized here.
	playMu sync.Mutex
}

// New creates a new espeak engine. An empty binPath resolves espeak-ng
// from PATH.
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
	return tts.EngineProviderESpeak
}

// Synthesize renders text to WAV audio.
// espeak writes WAV to a file with -w, so a temp file is used and read back.
func (e *Engine) Synthesize(ctx context.Context, req *tts.Request) (*tts.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, tts.ErrEmptyText
	}

	outputFile := filepath.Join(e.tempDir, fmt.Sprintf("espeak_%d.wav", time.Now().UnixNano()))
	defer os.Remove(outputFile)

	args := e.buildArgs(req, outputFile)

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

// Speak plays text through the audio device. Playback is serialized; the
// engine cannot share the device between two processes.
func (e *Engine) Speak(ctx context.Context, req *tts.Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return tts.ErrEmptyText
	}

	e.playMu.Lock()
	defer e.playMu.Unlock()

	args := e.buildArgs(req, "")
	_, stderr, err := e.executor.Execute(ctx, args, strings.NewReader(req.Text))
	if err != nil {
		return fmt.Errorf("execution failed: %w\nstderr: %s", err, stderr)
	}

	return nil
}

// Voices lists the voices espeak-ng knows about.
func (e *Engine) Voices(ctx context.Context) ([]tts.Voice, error) {
	stdout, stderr, err := e.executor.Execute(ctx, []string{"--voices"}, nil)
	if err != nil {
		return nil, fmt.Errorf("execution failed: %w\nstderr: %s", err, stderr)
	}

	return parseVoices(stdout), nil
}

// buildArgs builds espeak-ng command-line arguments. An empty outputFile
// means live playback.
func (e *Engine) buildArgs(req *tts.Request, outputFile string) []string {
	args := []string{"--stdin"}

	if outputFile != "" {
		args = append(args, "-w", outputFile)
	}

	if req.Voice != "" {
		args = append(args, "-v", req.Voice)
	}

	args = append(args, "-s", strconv.Itoa(tts.ClampRate(req.RateWPM)))

	p := req.Parameters
	if p == nil {
		return args
	}

	// Amplitude, 0-200
	if v := mapsafe.Get(p, "amplitude", -1); v >= 0 {
		args = append(args, "-a", strconv.Itoa(v))
	}

	// Pitch, 0-99
	if v := mapsafe.Get(p, "pitch", -1); v >= 0 {
		args = append(args, "-p", strconv.Itoa(v))
	}

	// Gap between words, in units of 10ms
	if v := mapsafe.Get(p, "word_gap", -1); v >= 0 {
		args = append(args, "-g", strconv.Itoa(v))
	}

	return args
}

// parseVoices parses `espeak-ng --voices` output. Columns:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  af              --/M      Afrikaans          gmw/af
func parseVoices(output []byte) []tts.Voice {
	var voices []tts.Voice

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Pty") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		// VoiceName may contain spaces ("English (America)"); the File
		// column is the last field holding a path separator.
		fileIdx := len(fields) - 1
		for i := len(fields) - 1; i >= 4; i-- {
			if strings.Contains(fields[i], "/") {
				fileIdx = i
				break
			}
		}

		voices = append(voices, tts.Voice{
			ID:       fields[fileIdx],
			Name:     strings.Join(fields[3:fileIdx], " "),
			Language: fields[1],
			Gender:   parseGender(fields[2]),
		})
	}

	return voices
}

func parseGender(ageGender string) string {
	switch {
	case strings.Contains(ageGender, "F"):
		return "female"
	case strings.Contains(ageGender, "M"):
		return "male"
	default:
		return ""
	}
}

// Close cleans up resources. espeak does not have any resources to clean up.
func (e *Engine) Close() error {
	return nil
}
