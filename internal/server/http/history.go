package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/echoverse-team/echoverse/internal/history"
)

type (
	HistoryListInput struct {
		Limit int `query:"limit" minimum:"1" maximum:"100" required:"false" doc:"Maximum entries to return, newest first (default 5)"`
	}

	HistoryListOutput struct {
		Body struct {
			Entries []history.Entry `json:"entries"`
			Total   int             `json:"total" doc:"Total entries stored, regardless of limit"`
		}
	}

	HistoryClearInput struct{}

	HistoryClearOutput struct {
		Body struct {
			Cleared bool `json:"cleared"`
		}
	}
)

// HistoryHandler handles HTTP requests for the processing history.
type HistoryHandler struct {
	store history.Store
}

// NewHistoryHandler creates a new HistoryHandler instance.
func NewHistoryHandler(api huma.API, store history.Store) *HistoryHandler {
	h := &HistoryHandler{store: store}

	huma.Register(api, huma.Operation{
		OperationID:   "list-history",
		Method:        http.MethodGet,
		Path:          "/history",
		Summary:       "List recent history entries",
		Tags:          []string{"history"},
		DefaultStatus: http.StatusOK,
	}, h.handleList)

	huma.Register(api, huma.Operation{
		OperationID:   "clear-history",
		Method:        http.MethodDelete,
		Path:          "/history",
		Summary:       "Clear the history",
		Tags:          []string{"history"},
		DefaultStatus: http.StatusOK,
	}, h.handleClear)

	return h
}

// handleList handles the history listing operation.
func (h *HistoryHandler) handleList(ctx context.Context, input *HistoryListInput) (*HistoryListOutput, error) {
	entries, err := h.store.List(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list history", err)
	}

	total, err := h.store.Len(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to count history", err)
	}

	out := &HistoryListOutput{}
	out.Body.Entries = entries
	out.Body.Total = total

	return out, nil
}

// handleClear handles the history clearing operation.
func (h *HistoryHandler) handleClear(ctx context.Context, _ *HistoryClearInput) (*HistoryClearOutput, error) {
	if err := h.store.Clear(ctx); err != nil {
		return nil, huma.Error500InternalServerError("failed to clear history", err)
	}

	out := &HistoryClearOutput{}
	out.Body.Cleared = true

	return out, nil
}
