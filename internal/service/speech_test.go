package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/echoverse-team/echoverse/internal/tts"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Provider() tts.EngineProvider {
	args := m.Called()
	return tts.EngineProvider(args.String(0))
}

func (m *MockEngine) Voices(ctx context.Context) ([]tts.Voice, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]tts.Voice); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) Synthesize(ctx context.Context, req *tts.Request) (*tts.Result, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*tts.Result); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) Speak(ctx context.Context, req *tts.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEngine) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newSpeechService(t *testing.T, e tts.Engine) (*Speech, string) {
	t.Helper()

	reg := tts.NewRegistry()
	reg.Register(e)

	dir := t.TempDir()
	svc := NewSpeech(reg, SpeechOptions{
		DefaultEngine: tts.EngineProviderESpeak,
		DefaultVoice:  "gmw/en-US",
		DefaultRate:   180,
		AudioDir:      dir,
	})

	return svc, dir
}

func TestSynthesize_WritesFileAndAppliesDefaults(t *testing.T) {
	e := new(MockEngine)
	e.On("Provider").Return("espeak")
	e.On("Synthesize", mock.Anything, mock.MatchedBy(func(req *tts.Request) bool {
		// Defaults applied, text cleaned.
		return req.Voice == "gmw/en-US" && req.RateWPM == 180 && req.Text == "hello world"
	})).Return(&tts.Result{
		Audio:    []byte("RIFF-fake-audio"),
		Metadata: &tts.ResultMetadata{Provider: tts.EngineProviderESpeak},
	}, nil).Once()

	svc, dir := newSpeechService(t, e)

	res, err := svc.Synthesize(context.Background(), "", &tts.Request{Text: "hello\n\nworld"}, "original")
	require.NoError(t, err)

	assert.Equal(t, []byte("RIFF-fake-audio"), res.Audio)
	assert.Contains(t, filepath.Base(res.Path), "echoverse_original_")

	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Audio, written)
	assert.Equal(t, dir, filepath.Dir(res.Path))

	e.AssertExpectations(t)
}

func TestSynthesize_UnknownEngine(t *testing.T) {
	e := new(MockEngine)
	e.On("Provider").Return("espeak")

	svc, _ := newSpeechService(t, e)

	_, err := svc.Synthesize(context.Background(), "piper", &tts.Request{Text: "hi"}, "")
	assert.ErrorIs(t, err, tts.ErrEngineNotFound)
}

func TestSynthesize_EmptyTextAfterCleaning(t *testing.T) {
	e := new(MockEngine)
	e.On("Provider").Return("espeak")

	svc, _ := newSpeechService(t, e)

	_, err := svc.Synthesize(context.Background(), "", &tts.Request{Text: " \n\t "}, "")
	assert.ErrorIs(t, err, tts.ErrEmptyText)
}

func TestSpeak_DelegatesToEngine(t *testing.T) {
	e := new(MockEngine)
	e.On("Provider").Return("espeak")
	e.On("Speak", mock.Anything, mock.MatchedBy(func(req *tts.Request) bool {
		return req.Text == "quick speak" && req.RateWPM == 200
	})).Return(nil).Once()

	svc, _ := newSpeechService(t, e)

	err := svc.Speak(context.Background(), tts.EngineProviderESpeak, &tts.Request{Text: "quick  speak", RateWPM: 200})
	require.NoError(t, err)
	e.AssertExpectations(t)
}

func TestVoices(t *testing.T) {
	e := new(MockEngine)
	e.On("Provider").Return("espeak")
	e.On("Voices", mock.Anything).Return([]tts.Voice{{ID: "gmw/en-US", Name: "English (America)"}}, nil).Once()

	svc, _ := newSpeechService(t, e)

	voices, err := svc.Voices(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "gmw/en-US", voices[0].ID)
	e.AssertExpectations(t)
}
