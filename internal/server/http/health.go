package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/echoverse-team/echoverse/internal/service"
)

type (
	HealthInput struct{}

	HealthOutput struct {
		Body struct {
			Status    string   `json:"status"`
			Providers []string `json:"providers" doc:"Registered rewrite providers"`
			Engines   []string `json:"engines" doc:"Registered TTS engines"`
		}
	}
)

// NewHealthHandler registers the liveness probe. It reports which providers
// and engines came up so a deployment with no working backend is visible.
func NewHealthHandler(api huma.API, rewriteSvc *service.Rewrite, speechSvc *service.Speech) {
	huma.Register(api, huma.Operation{
		OperationID:   "health",
		Method:        http.MethodGet,
		Path:          "/healthz",
		Summary:       "Report service health",
		Tags:          []string{"health"},
		DefaultStatus: http.StatusOK,
	}, func(ctx context.Context, _ *HealthInput) (*HealthOutput, error) {
		out := &HealthOutput{}
		out.Body.Status = "ok"

		for _, p := range rewriteSvc.Providers() {
			out.Body.Providers = append(out.Body.Providers, string(p))
		}
		for _, e := range speechSvc.Engines() {
			out.Body.Engines = append(out.Body.Engines, string(e))
		}

		if len(out.Body.Providers) == 0 && len(out.Body.Engines) == 0 {
			out.Body.Status = "degraded"
		}

		return out, nil
	})
}
