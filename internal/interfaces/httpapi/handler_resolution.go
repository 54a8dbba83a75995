package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	"github.com/riskibarqy/team-resolver/internal/usecase"
)

type resolveRequest struct {
	SourceName string   `json:"sourceName" validate:"required,max=200"`
	Candidates []string `json:"candidates" validate:"max=2000,dive,required,max=200"`
	Context    string   `json:"context" validate:"max=100"`
}

type batchResolveRequest struct {
	Items      []resolveRequest `json:"items" validate:"required,min=1,max=500,dive"`
	MaxWorkers int              `json:"maxWorkers" validate:"min=0,max=32"`
}

type matchResultDTO struct {
	SourceName   string   `json:"sourceName"`
	MatchedName  string   `json:"matchedName,omitempty"`
	Confidence   float64  `json:"confidence"`
	Strategy     string   `json:"strategy"`
	MatchFound   bool     `json:"matchFound"`
	Alternatives []string `json:"alternatives,omitempty"`
	ElapsedMs    float64  `json:"elapsedMs"`
}

type batchItemResultDTO struct {
	SourceName string          `json:"sourceName"`
	Result     *matchResultDTO `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Resolve")
	defer span.End()

	var req resolveRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.resolutionService.Resolve(ctx, req.SourceName, req.Candidates, req.Context)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve failed", "source_name", req.SourceName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResultToDTO(ctx, result))
}

func (h *Handler) ResolveBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveBatch")
	defer span.End()

	var req batchResolveRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]usecase.ResolveItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.ResolveItem{
			SourceName: item.SourceName,
			Candidates: item.Candidates,
			Context:    item.Context,
		})
	}

	results, err := h.resolutionService.ResolveBatch(ctx, items, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve batch failed", "items", len(items), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]batchItemResultDTO, 0, len(results))
	for _, item := range results {
		dto := batchItemResultDTO{SourceName: item.SourceName}
		if item.Err != nil {
			dto.Error = item.Err.Error()
		} else {
			result := matchResultToDTO(ctx, item.Result)
			dto.Result = &result
		}
		out = append(out, dto)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func matchResultToDTO(ctx context.Context, result mapping.MatchResult) matchResultDTO {
	ctx, span := startSpan(ctx, "httpapi.matchResultToDTO")
	defer span.End()

	return matchResultDTO{
		SourceName:   result.SourceName,
		MatchedName:  result.MatchedName,
		Confidence:   result.Confidence,
		Strategy:     string(result.StrategyUsed),
		MatchFound:   result.MatchFound,
		Alternatives: result.Alternatives,
		ElapsedMs:    float64(result.Elapsed.Microseconds()) / 1000.0,
	}
}
