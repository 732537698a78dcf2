package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider is a string identifier for a rewrite provider.
type Provider string

const (
	ProviderOpenAI      Provider = "openai"
	ProviderHuggingFace Provider = "huggingface"
)

// Error definitions for the rewrite package.
var (
	ErrProviderNotFound = errors.New("rewrite provider not found in registry")
	ErrEmptyText        = errors.New("empty text provided")
	ErrEmptyCompletion  = errors.New("provider returned an empty completion")
)

// Rewriter defines the core interface for all rewrite providers.
type Rewriter interface {
	// Provider returns the provider identifier.
	Provider() Provider

	// Rewrite rewrites a single piece of text and returns the result.
	Rewrite(ctx context.Context, req *Request) (*Result, error)

	// Close cleans up resources.
	Close() error
}

// Request encapsulates all parameters for a rewrite call.
type Request struct {
	// Text is the text to rewrite. Callers are expected to keep it within
	// the configured chunk size; the service layer chunks longer input.
	Text string

	// Tone is the writing tone (Neutral, Professional, Casual, ...).
	Tone string

	// Creativity maps to sampling temperature, 0.1 to 1.0.
	Creativity float64

	// MaxTokens limits the completion length.
	MaxTokens int

	// Parameters contains provider-specific options.
	Parameters map[string]any
}

// Prompt renders the instruction sent to the model.
func (r *Request) Prompt() string {
	tone := r.Tone
	if tone == "" {
		tone = "neutral"
	}
	return fmt.Sprintf("Rewrite this in a %s tone: %s", strings.ToLower(tone), r.Text)
}

// Result contains the outcome of a rewrite operation.
type Result struct {
	// Text is the rewritten text.
	Text string

	// Metadata contains provider-specific information.
	Metadata *ResultMetadata
}

// ResultMetadata contains metadata about the result.
type ResultMetadata struct {
	Provider         Provider       `json:"provider"`
	Model            string         `json:"model"`
	Timestamp        time.Time      `json:"timestamp"`
	OutputChars      int            `json:"output_chars"`
	ProviderSpecific map[string]any `json:"provider_specific,omitempty"`
}
