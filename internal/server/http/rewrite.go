package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/echoverse-team/echoverse/internal/history"
	"github.com/echoverse-team/echoverse/internal/rewrite"
	"github.com/echoverse-team/echoverse/internal/service"
)

type (
	RewriteRequestDTO struct {
		Text        string         `json:"text" minLength:"1" maxLength:"100000" doc:"Text to rewrite"`
		Tone        string         `json:"tone,omitempty" enum:"Neutral,Professional,Casual,Academic,Creative,Formal" default:"Neutral" doc:"Writing tone"`
		Creativity  float64        `json:"creativity,omitempty" minimum:"0.1" maximum:"1.0" default:"0.7" doc:"Sampling temperature"`
		MaxTokens   int            `json:"max_tokens,omitempty" minimum:"50" maximum:"2000" default:"512" doc:"Maximum completion tokens per chunk"`
		Provider    string         `json:"provider,omitempty" enum:"openai,huggingface" doc:"Rewrite provider; empty uses the configured default"`
		Parameters  map[string]any `json:"parameters,omitempty" doc:"Provider-specific options"`
		SaveHistory *bool          `json:"save_history,omitempty" doc:"Record this call in history (default true)"`
	}

	RewriteResponseDTO struct {
		Rewritten      string                  `json:"rewritten"`
		Chunks         int                     `json:"chunks"`
		ElapsedSeconds float64                 `json:"elapsed_seconds"`
		Metadata       *rewrite.ResultMetadata `json:"metadata,omitempty"`
	}
)

type (
	RewriteInput struct {
		Body RewriteRequestDTO
	}

	RewriteOutput struct {
		Body RewriteResponseDTO
	}
)

// RewriteHandler handles HTTP requests for rewriting.
type RewriteHandler struct {
	service *service.Rewrite
	store   history.Store
}

// NewRewriteHandler creates a new RewriteHandler instance.
func NewRewriteHandler(api huma.API, svc *service.Rewrite, store history.Store) *RewriteHandler {
	h := &RewriteHandler{service: svc, store: store}

	huma.Register(api, huma.Operation{
		OperationID:   "rewrite",
		Method:        http.MethodPost,
		Path:          "/rewrite",
		Summary:       "Rewrite text in a selected tone",
		Tags:          []string{"rewrite"},
		DefaultStatus: http.StatusOK,
	}, h.handleRewrite)

	return h
}

// handleRewrite handles the rewrite operation.
func (h *RewriteHandler) handleRewrite(ctx context.Context, input *RewriteInput) (*RewriteOutput, error) {
	res, err := h.service.Rewrite(
		ctx,
		rewrite.Provider(input.Body.Provider),
		&rewrite.Request{
			Text:       input.Body.Text,
			Tone:       input.Body.Tone,
			Creativity: input.Body.Creativity,
			MaxTokens:  input.Body.MaxTokens,
			Parameters: input.Body.Parameters,
		},
	)
	if err != nil {
		return nil, mapRewriteError(err)
	}

	if input.Body.SaveHistory == nil || *input.Body.SaveHistory {
		h.record(ctx, input, res)
	}

	return &RewriteOutput{
		Body: RewriteResponseDTO{
			Rewritten:      res.Rewritten,
			Chunks:         res.Chunks,
			ElapsedSeconds: res.ElapsedSeconds,
			Metadata:       res.Metadata,
		},
	}, nil
}

func (h *RewriteHandler) record(ctx context.Context, input *RewriteInput, res *service.RewriteResult) {
	if h.store == nil {
		return
	}

	err := h.store.Append(ctx, &history.Entry{
		Original:  input.Body.Text,
		Rewritten: res.Rewritten,
		Settings: map[string]any{
			"tone":       input.Body.Tone,
			"creativity": input.Body.Creativity,
			"max_tokens": input.Body.MaxTokens,
			"provider":   string(res.Metadata.Provider),
		},
	})
	if err != nil {
		slog.Error("Failed to record history entry", "error", err)
	}
}

func mapRewriteError(err error) error {
	switch {
	case errors.Is(err, rewrite.ErrProviderNotFound):
		return huma.Error404NotFound("rewrite provider not found", err)
	case errors.Is(err, rewrite.ErrEmptyText):
		return huma.Error422UnprocessableEntity("text is empty", err)
	default:
		return huma.Error500InternalServerError("failed to rewrite", err)
	}
}
