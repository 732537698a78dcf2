package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/echoverse-team/echoverse/internal/rewrite"
)

// RewriteOptions hold the service defaults resolved from config.
type RewriteOptions struct {
	DefaultProvider rewrite.Provider
	DefaultTone     string
	MaxChunkChars   int
}

// Rewrite is a service abstraction for text rewriting.
type Rewrite struct {
	providers *rewrite.Registry
	opts      RewriteOptions
}

// NewRewrite creates a new Rewrite service.
func NewRewrite(providers *rewrite.Registry, opts RewriteOptions) *Rewrite {
	if opts.MaxChunkChars <= 0 {
		opts.MaxChunkChars = rewrite.DefaultChunkSize
	}
	if opts.DefaultTone == "" {
		opts.DefaultTone = "Neutral"
	}

	return &Rewrite{
		providers: providers,
		opts:      opts,
	}
}

// RewriteResult is the aggregated outcome of rewriting a full input.
type RewriteResult struct {
	Original       string
	Rewritten      string
	Chunks         int
	ElapsedSeconds float64
	Metadata       *rewrite.ResultMetadata
}

// Rewrite rewrites the full input text. Long input is split into chunks on
// sentence boundaries and the chunk rewrites are joined in order.
func (s *Rewrite) Rewrite(ctx context.Context, provider rewrite.Provider, req *rewrite.Request) (*RewriteResult, error) {
	if provider == "" {
		provider = s.opts.DefaultProvider
	}
	if req.Tone == "" {
		req.Tone = s.opts.DefaultTone
	}

	p, ok := s.providers.Get(provider)
	if !ok {
		return nil, rewrite.ErrProviderNotFound
	}

	chunks := rewrite.Split(req.Text, s.opts.MaxChunkChars)
	if len(chunks) == 0 {
		return nil, rewrite.ErrEmptyText
	}

	start := time.Now()

	parts := make([]string, 0, len(chunks))
	var meta *rewrite.ResultMetadata

	for i, chunk := range chunks {
		res, err := p.Rewrite(ctx, &rewrite.Request{
			Text:       chunk,
			Tone:       req.Tone,
			Creativity: req.Creativity,
			MaxTokens:  req.MaxTokens,
			Parameters: req.Parameters,
		})
		if err != nil {
			slog.Error("Failed to rewrite chunk", "provider", provider, "chunk", i+1, "chunks", len(chunks), "error", err)
			return nil, err
		}

		parts = append(parts, strings.TrimSpace(res.Text))
		meta = res.Metadata
	}

	rewritten := strings.Join(parts, " ")

	return &RewriteResult{
		Original:       req.Text,
		Rewritten:      rewritten,
		Chunks:         len(chunks),
		ElapsedSeconds: time.Since(start).Seconds(),
		Metadata:       meta,
	}, nil
}

// Providers lists the registered provider names.
func (s *Rewrite) Providers() []rewrite.Provider {
	return s.providers.List()
}
