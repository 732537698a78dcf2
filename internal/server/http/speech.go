package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/echoverse-team/echoverse/internal/history"
	"github.com/echoverse-team/echoverse/internal/service"
	"github.com/echoverse-team/echoverse/internal/tts"
)

type (
	SpeechRequestDTO struct {
		Text       string         `json:"text" minLength:"1" maxLength:"100000" doc:"Text to speak"`
		Engine     string         `json:"engine,omitempty" enum:"espeak,say,piper" doc:"TTS engine; empty uses the configured default"`
		Voice      string         `json:"voice,omitempty" doc:"Engine voice identifier; empty uses the configured default"`
		RateWPM    int            `json:"rate_wpm,omitempty" minimum:"50" maximum:"300" doc:"Speech rate in words per minute"`
		Format     string         `json:"format,omitempty" enum:"wav,mp3" default:"wav" doc:"Requested format; output is always WAV"`
		Parameters map[string]any `json:"parameters,omitempty" doc:"Engine-specific options"`
	}

	SpeechResponseDTO struct {
		Audio          []byte              `json:"audio" doc:"WAV audio, base64 encoded"`
		Path           string              `json:"path" doc:"Server-side path of the generated file"`
		Filename       string              `json:"filename" doc:"Basename for downloading via /audio/"`
		ElapsedSeconds float64             `json:"elapsed_seconds"`
		Metadata       *tts.ResultMetadata `json:"metadata,omitempty"`
	}

	VoiceDTO struct {
		ID       string `json:"id"`
		Name     string `json:"name,omitempty"`
		Language string `json:"language,omitempty"`
		Gender   string `json:"gender,omitempty"`
	}
)

type (
	SynthesizeInput struct {
		Body SpeechRequestDTO
	}

	SynthesizeOutput struct {
		Body SpeechResponseDTO
	}

	SpeakInput struct {
		Body SpeechRequestDTO
	}

	SpeakOutput struct {
		Body struct {
			Accepted bool   `json:"accepted"`
			Engine   string `json:"engine"`
		}
	}

	VoicesInput struct {
		Engine string `query:"engine" enum:"espeak,say,piper" required:"false" doc:"TTS engine; empty uses the configured default"`
	}

	VoicesOutput struct {
		Body struct {
			Voices []VoiceDTO `json:"voices"`
		}
	}
)

// SpeechHandler handles HTTP requests for text-to-speech.
type SpeechHandler struct {
	service *service.Speech
	store   history.Store
}

// NewSpeechHandler creates a new SpeechHandler instance.
func NewSpeechHandler(api huma.API, svc *service.Speech, store history.Store) *SpeechHandler {
	h := &SpeechHandler{service: svc, store: store}

	huma.Register(api, huma.Operation{
		OperationID:   "synthesize",
		Method:        http.MethodPost,
		Path:          "/tts",
		Summary:       "Synthesize text to a WAV file",
		Tags:          []string{"speech"},
		DefaultStatus: http.StatusOK,
	}, h.handleSynthesize)

	huma.Register(api, huma.Operation{
		OperationID:   "speak",
		Method:        http.MethodPost,
		Path:          "/speak",
		Summary:       "Play text aloud on the server",
		Tags:          []string{"speech"},
		DefaultStatus: http.StatusAccepted,
	}, h.handleSpeak)

	huma.Register(api, huma.Operation{
		OperationID:   "list-voices",
		Method:        http.MethodGet,
		Path:          "/voices",
		Summary:       "List available voices",
		Tags:          []string{"speech"},
		DefaultStatus: http.StatusOK,
	}, h.handleVoices)

	return h
}

// handleSynthesize handles the synthesize operation.
func (h *SpeechHandler) handleSynthesize(ctx context.Context, input *SynthesizeInput) (*SynthesizeOutput, error) {
	res, err := h.service.Synthesize(
		ctx,
		tts.EngineProvider(input.Body.Engine),
		&tts.Request{
			Text:       input.Body.Text,
			Voice:      input.Body.Voice,
			RateWPM:    input.Body.RateWPM,
			Parameters: input.Body.Parameters,
		},
		"original",
	)
	if err != nil {
		return nil, mapSpeechError(err)
	}

	if h.store != nil {
		err := h.store.Append(ctx, &history.Entry{
			Original:  input.Body.Text,
			AudioPath: res.Path,
			Settings: map[string]any{
				"engine":   string(res.Metadata.Provider),
				"voice":    res.Metadata.Voice,
				"rate_wpm": input.Body.RateWPM,
			},
		})
		if err != nil {
			slog.Error("Failed to record history entry", "error", err)
		}
	}

	return &SynthesizeOutput{Body: toSpeechDTO(res)}, nil
}

// handleSpeak handles the live playback operation. Playback runs detached
// so the request returns as soon as it is queued; engines serialize access
// to the audio device themselves.
func (h *SpeechHandler) handleSpeak(ctx context.Context, input *SpeakInput) (*SpeakOutput, error) {
	engine := tts.EngineProvider(input.Body.Engine)
	req := &tts.Request{
		Text:       input.Body.Text,
		Voice:      input.Body.Voice,
		RateWPM:    input.Body.RateWPM,
		Parameters: input.Body.Parameters,
	}

	// Validate engine and text up front so the caller gets a real error
	// instead of a fire-and-forget 202 for a request that can never play.
	if err := h.service.Validate(engine, req); err != nil {
		return nil, mapSpeechError(err)
	}

	go func() {
		// Detached from the request context on purpose; playback outlives
		// the HTTP exchange.
		if err := h.service.Speak(context.Background(), engine, req); err != nil {
			slog.Error("Live playback failed", "engine", engine, "error", err)
		}
	}()

	out := &SpeakOutput{}
	out.Body.Accepted = true
	out.Body.Engine = input.Body.Engine

	return out, nil
}

// handleVoices handles the voice listing operation.
func (h *SpeechHandler) handleVoices(ctx context.Context, input *VoicesInput) (*VoicesOutput, error) {
	voices, err := h.service.Voices(ctx, tts.EngineProvider(input.Engine))
	if err != nil {
		return nil, mapSpeechError(err)
	}

	out := &VoicesOutput{}
	out.Body.Voices = make([]VoiceDTO, 0, len(voices))
	for _, v := range voices {
		out.Body.Voices = append(out.Body.Voices, VoiceDTO{
			ID:       v.ID,
			Name:     v.Name,
			Language: v.Language,
			Gender:   v.Gender,
		})
	}

	return out, nil
}

func toSpeechDTO(res *service.SpeechResult) SpeechResponseDTO {
	return SpeechResponseDTO{
		Audio:          res.Audio,
		Path:           res.Path,
		Filename:       res.Filename(),
		ElapsedSeconds: res.ElapsedSeconds,
		Metadata:       res.Metadata,
	}
}

func mapSpeechError(err error) error {
	switch {
	case errors.Is(err, tts.ErrEngineNotFound):
		return huma.Error404NotFound("tts engine not found", err)
	case errors.Is(err, tts.ErrVoiceNotFound):
		return huma.Error404NotFound("voice not found", err)
	case errors.Is(err, tts.ErrEmptyText):
		return huma.Error422UnprocessableEntity("text is empty", err)
	default:
		return huma.Error500InternalServerError("failed to synthesize", err)
	}
}
