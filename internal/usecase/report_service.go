package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	"github.com/riskibarqy/team-resolver/internal/platform/logging"
)

const (
	defaultReportWindowDays = 7
	maxReportWindowDays     = 365

	topFailuresLimit     = 20
	recentSuccessesLimit = 10
)

// Report is an operator-facing snapshot of resolution quality over a window.
type Report struct {
	WindowDays      int
	GeneratedAt     time.Time
	TotalAttempts   int
	Successful      int
	SuccessRate     float64
	AvgConfidence   float64
	AvgElapsedMs    float64
	ByStrategy      []mapping.StrategyStats
	TopFailures     []mapping.FailureGroup
	RecentSuccesses []mapping.AttemptRecord
	ManualMappings  int
	LearnedMappings int
}

// ReportService aggregates the attempt log and knowledge base counters.
type ReportService struct {
	attemptRepo mapping.AttemptRepository
	learnedRepo mapping.LearnedRepository
	manualCount int
	logger      *logging.Logger
}

func NewReportService(
	attemptRepo mapping.AttemptRepository,
	learnedRepo mapping.LearnedRepository,
	manualCount int,
	logger *logging.Logger,
) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportService{
		attemptRepo: attemptRepo,
		learnedRepo: learnedRepo,
		manualCount: manualCount,
		logger:      logger,
	}
}

// MappingReport builds the report for the trailing windowDays. Aggregate
// queries that fail degrade their section to the zero value instead of
// failing the whole report; only a missing store is a hard error.
func (s *ReportService) MappingReport(ctx context.Context, windowDays int) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.MappingReport")
	defer span.End()

	if s.attemptRepo == nil {
		return Report{}, fmt.Errorf("%w: attempt log store is not configured", ErrDependencyUnavailable)
	}

	if windowDays <= 0 {
		windowDays = defaultReportWindowDays
	}
	if windowDays > maxReportWindowDays {
		windowDays = maxReportWindowDays
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -windowDays)
	report := Report{
		WindowDays:     windowDays,
		GeneratedAt:    now,
		ManualMappings: s.manualCount,
	}

	stats, err := s.attemptRepo.Stats(ctx, since)
	if err != nil {
		s.logger.ErrorContext(ctx, "load attempt window stats failed", "error", err, "window_days", windowDays)
	} else {
		report.TotalAttempts = stats.TotalAttempts
		report.Successful = stats.Successful
		report.AvgConfidence = stats.AvgConfidence
		report.AvgElapsedMs = stats.AvgElapsedMs
		if stats.TotalAttempts > 0 {
			report.SuccessRate = float64(stats.Successful) / float64(stats.TotalAttempts)
		}
	}

	byStrategy, err := s.attemptRepo.StatsByStrategy(ctx, since)
	if err != nil {
		s.logger.ErrorContext(ctx, "load per-strategy stats failed", "error", err, "window_days", windowDays)
	} else {
		report.ByStrategy = byStrategy
	}

	failures, err := s.attemptRepo.TopFailures(ctx, since, topFailuresLimit)
	if err != nil {
		s.logger.ErrorContext(ctx, "load top failures failed", "error", err, "window_days", windowDays)
	} else {
		report.TopFailures = failures
	}

	successes, err := s.attemptRepo.RecentSuccesses(ctx, since, recentSuccessesLimit)
	if err != nil {
		s.logger.ErrorContext(ctx, "load recent successes failed", "error", err, "window_days", windowDays)
	} else {
		report.RecentSuccesses = successes
	}

	if s.learnedRepo != nil {
		count, err := s.learnedRepo.Count(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "count learned mappings failed", "error", err)
		} else {
			report.LearnedMappings = count
		}
	}

	return report, nil
}
