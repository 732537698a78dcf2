package piper

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse-team/echoverse/internal/tts"
)

type fakeRunner struct {
	calls [][]string
	onRun func(args []string)
}

func (r *fakeRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	r.calls = append(r.calls, args)
	if r.onRun != nil {
		r.onRun(args)
	}
	return nil, nil, nil
}

func TestBuildArgs_Defaults(t *testing.T) {
	e := &Engine{modelPath: "/models/en_US-amy-medium.onnx"}

	args := e.buildArgs(&tts.Request{RateWPM: 180}, "/tmp/out.wav")

	assert.Equal(t, []string{
		"--model", "/models/en_US-amy-medium.onnx",
		"--output_file", "/tmp/out.wav",
		"--length_scale", "1.00",
	}, args)
}

func TestBuildArgs_RateMapsToLengthScale(t *testing.T) {
	e := &Engine{modelPath: "m.onnx"}

	// Faster speech shrinks the scale, slower speech grows it.
	fast := e.buildArgs(&tts.Request{RateWPM: 300}, "out.wav")
	assert.Contains(t, fast, "0.60")

	slow := e.buildArgs(&tts.Request{RateWPM: 90}, "out.wav")
	assert.Contains(t, slow, "2.00")
}

func TestBuildArgs_Parameters(t *testing.T) {
	e := &Engine{modelPath: "m.onnx"}

	args := e.buildArgs(&tts.Request{
		RateWPM: 180,
		Parameters: map[string]any{
			"speaker_id":       float64(3), // JSON numbers decode as float64
			"noise_scale":      0.65,
			"sentence_silence": 0.25,
		},
	}, "out.wav")

	assert.Contains(t, args, "--speaker")
	assert.Contains(t, args, "3")
	assert.Contains(t, args, "--noise_scale")
	assert.Contains(t, args, "0.65")
	assert.Contains(t, args, "--sentence_silence")
	assert.Contains(t, args, "0.25")
}

func TestVoices_DerivedFromModelFile(t *testing.T) {
	e := &Engine{modelPath: "/models/en_US-amy-medium.onnx"}

	voices, err := e.Voices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "en_US-amy-medium", voices[0].ID)
}

func TestSpeak_PlaysThroughPlayerExecutor(t *testing.T) {
	// The synthesizer fake writes the output file piper would produce.
	synth := &fakeRunner{onRun: func(args []string) {
		for i, a := range args {
			if a == "--output_file" {
				require.NoError(t, os.WriteFile(args[i+1], []byte("RIFF-fake-audio"), 0o644))
			}
		}
	}}
	player := &fakeRunner{}

	e := NewWithExecutors(
		tts.NewExecutorWithRunner("piper", time.Minute, synth),
		tts.NewExecutorWithRunner("aplay", time.Minute, player),
		"m.onnx",
	)

	err := e.Speak(context.Background(), &tts.Request{Text: "hello", RateWPM: 180})
	require.NoError(t, err)

	require.Len(t, synth.calls, 1)
	require.Len(t, player.calls, 1)
	require.Len(t, player.calls[0], 1)
	assert.True(t, strings.HasSuffix(player.calls[0][0], ".wav"))
}

func TestNew_RequiresModel(t *testing.T) {
	_, err := New("piper", "")
	assert.ErrorContains(t, err, "model path")
}
