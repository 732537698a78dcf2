package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/echoverse-team/echoverse/internal/history"
	"github.com/echoverse-team/echoverse/internal/rewrite"
	"github.com/echoverse-team/echoverse/internal/service"
	"github.com/echoverse-team/echoverse/internal/tts"
)

type (
	ProcessRequestDTO struct {
		Text       string  `json:"text" minLength:"1" maxLength:"100000" doc:"Text to rewrite and speak"`
		Tone       string  `json:"tone,omitempty" enum:"Neutral,Professional,Casual,Academic,Creative,Formal" default:"Neutral" doc:"Writing tone"`
		Creativity float64 `json:"creativity,omitempty" minimum:"0.1" maximum:"1.0" default:"0.7" doc:"Sampling temperature"`
		MaxTokens  int     `json:"max_tokens,omitempty" minimum:"50" maximum:"2000" default:"512" doc:"Maximum completion tokens per chunk"`
		Provider   string  `json:"provider,omitempty" enum:"openai,huggingface" doc:"Rewrite provider; empty uses the configured default"`
		Engine     string  `json:"engine,omitempty" enum:"espeak,say,piper" doc:"TTS engine; empty uses the configured default"`
		Voice      string  `json:"voice,omitempty" doc:"Engine voice identifier; empty uses the configured default"`
		RateWPM    int     `json:"rate_wpm,omitempty" minimum:"50" maximum:"300" doc:"Speech rate in words per minute"`
	}

	ProcessResponseDTO struct {
		Rewritten string            `json:"rewritten"`
		Chunks    int               `json:"chunks"`
		Speech    SpeechResponseDTO `json:"speech"`
	}
)

type (
	ProcessInput struct {
		Body ProcessRequestDTO
	}

	ProcessOutput struct {
		Body ProcessResponseDTO
	}
)

// ProcessHandler chains a rewrite and a synthesis into one call, the
// end-to-end path of turning raw text into narrated audio.
type ProcessHandler struct {
	rewriteSvc *service.Rewrite
	speechSvc  *service.Speech
	store      history.Store
}

// NewProcessHandler creates a new ProcessHandler instance.
func NewProcessHandler(api huma.API, rewriteSvc *service.Rewrite, speechSvc *service.Speech, store history.Store) *ProcessHandler {
	h := &ProcessHandler{
		rewriteSvc: rewriteSvc,
		speechSvc:  speechSvc,
		store:      store,
	}

	huma.Register(api, huma.Operation{
		OperationID:   "process",
		Method:        http.MethodPost,
		Path:          "/process",
		Summary:       "Rewrite text and synthesize the result",
		Tags:          []string{"rewrite", "speech"},
		DefaultStatus: http.StatusOK,
	}, h.handleProcess)

	return h
}

// handleProcess handles the combined rewrite-then-synthesize operation.
func (h *ProcessHandler) handleProcess(ctx context.Context, input *ProcessInput) (*ProcessOutput, error) {
	rewritten, err := h.rewriteSvc.Rewrite(
		ctx,
		rewrite.Provider(input.Body.Provider),
		&rewrite.Request{
			Text:       input.Body.Text,
			Tone:       input.Body.Tone,
			Creativity: input.Body.Creativity,
			MaxTokens:  input.Body.MaxTokens,
		},
	)
	if err != nil {
		return nil, mapRewriteError(err)
	}

	speech, err := h.speechSvc.Synthesize(
		ctx,
		tts.EngineProvider(input.Body.Engine),
		&tts.Request{
			Text:    rewritten.Rewritten,
			Voice:   input.Body.Voice,
			RateWPM: input.Body.RateWPM,
		},
		"output",
	)
	if err != nil {
		return nil, mapSpeechError(err)
	}

	if h.store != nil {
		err := h.store.Append(ctx, &history.Entry{
			Original:  input.Body.Text,
			Rewritten: rewritten.Rewritten,
			AudioPath: speech.Path,
			Settings: map[string]any{
				"tone":       input.Body.Tone,
				"creativity": input.Body.Creativity,
				"provider":   string(rewritten.Metadata.Provider),
				"engine":     string(speech.Metadata.Provider),
				"voice":      speech.Metadata.Voice,
				"rate_wpm":   input.Body.RateWPM,
			},
		})
		if err != nil {
			slog.Error("Failed to record history entry", "error", err)
		}
	}

	return &ProcessOutput{
		Body: ProcessResponseDTO{
			Rewritten: rewritten.Rewritten,
			Chunks:    rewritten.Chunks,
			Speech:    toSpeechDTO(speech),
		},
	}, nil
}
