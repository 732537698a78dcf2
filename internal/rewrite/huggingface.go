package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/echoverse-team/echoverse/mapsafe"
)

const (
	defaultHFEndpoint = "https://api-inference.huggingface.co/models"
	defaultHFModel    = "google/flan-t5-base"
)

// HuggingFaceConfig holds the configuration for the Hugging Face provider.
type HuggingFaceConfig struct {
	Token    string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// HuggingFace rewrites text through the hosted Inference API using a
// text2text-generation model (flan-t5 family by default).
type HuggingFace struct {
	client   *http.Client
	token    string
	model    string
	endpoint string
}

// NewHuggingFace creates a new Hugging Face rewrite provider.
func NewHuggingFace(cfg HuggingFaceConfig) *HuggingFace {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultHFEndpoint
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	if cfg.Model == "" {
		cfg.Model = defaultHFModel
	}

	return &HuggingFace{
		client:   &http.Client{Timeout: timeout},
		token:    cfg.Token,
		model:    cfg.Model,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

// Provider returns the provider identifier.
func (p *HuggingFace) Provider() Provider {
	return ProviderHuggingFace
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	Temperature  float64 `json:"temperature,omitempty"`
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Rewrite posts the prompt to the Inference API and returns the generation.
func (p *HuggingFace) Rewrite(ctx context.Context, req *Request) (*Result, error) {
	model := mapsafe.Get(req.Parameters, "model", p.model)

	payload, err := json.Marshal(hfRequest{
		Inputs: req.Prompt(),
		Parameters: hfParameters{
			Temperature:  req.Creativity,
			MaxNewTokens: req.MaxTokens,
		},
		// Cold models return 503 otherwise; waiting matches the blocking
		// behavior the UI expects.
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := p.endpoint + "/" + model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, truncate(string(body), 256))
	}

	var generations []hfGeneration
	if err := json.Unmarshal(body, &generations); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(generations) == 0 || generations[0].GeneratedText == "" {
		return nil, ErrEmptyCompletion
	}

	text := generations[0].GeneratedText

	return &Result{
		Text: text,
		Metadata: &ResultMetadata{
			Provider:    p.Provider(),
			Model:       model,
			Timestamp:   time.Now(),
			OutputChars: len(text),
		},
	}, nil
}

// Close cleans up resources.
func (p *HuggingFace) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
