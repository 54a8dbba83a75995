package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	"github.com/riskibarqy/team-resolver/internal/usecase"
)

type reportDTO struct {
	WindowDays      int                `json:"windowDays"`
	GeneratedAt     string             `json:"generatedAt"`
	TotalAttempts   int                `json:"totalAttempts"`
	Successful      int                `json:"successful"`
	SuccessRate     float64            `json:"successRate"`
	AvgConfidence   float64            `json:"avgConfidence"`
	AvgElapsedMs    float64            `json:"avgElapsedMs"`
	ByStrategy      []strategyStatsDTO `json:"byStrategy"`
	TopFailures     []failureGroupDTO  `json:"topFailures"`
	RecentSuccesses []attemptRecordDTO `json:"recentSuccesses"`
	KnowledgeBase   knowledgeBaseDTO   `json:"knowledgeBase"`
}

type strategyStatsDTO struct {
	Strategy      string  `json:"strategy"`
	Attempts      int     `json:"attempts"`
	Successes     int     `json:"successes"`
	SuccessRate   float64 `json:"successRate"`
	AvgConfidence float64 `json:"avgConfidence"`
}

type failureGroupDTO struct {
	SourceName   string   `json:"sourceName"`
	Alternatives []string `json:"alternatives,omitempty"`
	Context      string   `json:"context,omitempty"`
	Count        int      `json:"count"`
}

type attemptRecordDTO struct {
	SourceName  string  `json:"sourceName"`
	MatchedName string  `json:"matchedName"`
	Confidence  float64 `json:"confidence"`
	Strategy    string  `json:"strategy"`
	Context     string  `json:"context,omitempty"`
	AttemptedAt string  `json:"attemptedAt"`
}

type knowledgeBaseDTO struct {
	ManualMappings  int `json:"manualMappings"`
	LearnedMappings int `json:"learnedMappings"`
}

func (h *Handler) GetMappingReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMappingReport")
	defer span.End()

	windowDays := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: days must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		windowDays = parsed
	}

	report, err := h.reportService.MappingReport(ctx, windowDays)
	if err != nil {
		h.logger.WarnContext(ctx, "mapping report failed", "window_days", windowDays, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportToDTO(ctx, report))
}

func reportToDTO(ctx context.Context, report usecase.Report) reportDTO {
	ctx, span := startSpan(ctx, "httpapi.reportToDTO")
	defer span.End()

	byStrategy := make([]strategyStatsDTO, 0, len(report.ByStrategy))
	for _, stats := range report.ByStrategy {
		byStrategy = append(byStrategy, strategyStatsDTO{
			Strategy:      string(stats.Strategy),
			Attempts:      stats.Attempts,
			Successes:     stats.Successes,
			SuccessRate:   stats.SuccessRate,
			AvgConfidence: stats.AvgConfidence,
		})
	}

	failures := make([]failureGroupDTO, 0, len(report.TopFailures))
	for _, group := range report.TopFailures {
		failures = append(failures, failureGroupDTO{
			SourceName:   group.SourceName,
			Alternatives: group.Alternatives,
			Context:      group.Context,
			Count:        group.Count,
		})
	}

	successes := make([]attemptRecordDTO, 0, len(report.RecentSuccesses))
	for _, record := range report.RecentSuccesses {
		successes = append(successes, attemptRecordToDTO(ctx, record))
	}

	return reportDTO{
		WindowDays:      report.WindowDays,
		GeneratedAt:     report.GeneratedAt.UTC().Format(time.RFC3339),
		TotalAttempts:   report.TotalAttempts,
		Successful:      report.Successful,
		SuccessRate:     report.SuccessRate,
		AvgConfidence:   report.AvgConfidence,
		AvgElapsedMs:    report.AvgElapsedMs,
		ByStrategy:      byStrategy,
		TopFailures:     failures,
		RecentSuccesses: successes,
		KnowledgeBase: knowledgeBaseDTO{
			ManualMappings:  report.ManualMappings,
			LearnedMappings: report.LearnedMappings,
		},
	}
}

func attemptRecordToDTO(ctx context.Context, record mapping.AttemptRecord) attemptRecordDTO {
	ctx, span := startSpan(ctx, "httpapi.attemptRecordToDTO")
	defer span.End()

	return attemptRecordDTO{
		SourceName:  record.SourceName,
		MatchedName: record.MatchedName,
		Confidence:  record.Confidence,
		Strategy:    string(record.StrategyUsed),
		Context:     record.Context,
		AttemptedAt: record.AttemptedAt.UTC().Format(time.RFC3339),
	}
}
