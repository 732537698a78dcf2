package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/echoverse-team/echoverse/internal/textstat"
)

type (
	StatsInput struct {
		Body struct {
			Text    string `json:"text" minLength:"1" maxLength:"100000" doc:"Text to analyze"`
			RateWPM int    `json:"rate_wpm,omitempty" minimum:"50" maximum:"300" doc:"Speech rate used for the speech time estimate"`
		}
	}

	StatsOutput struct {
		Body textstat.Stats
	}
)

// NewStatsHandler registers the text statistics operation.
func NewStatsHandler(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "text-stats",
		Method:        http.MethodPost,
		Path:          "/stats",
		Summary:       "Compute word, character and timing statistics",
		Tags:          []string{"stats"},
		DefaultStatus: http.StatusOK,
	}, func(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
		return &StatsOutput{
			Body: textstat.Analyze(input.Body.Text, input.Body.RateWPM),
		}, nil
	})
}
