package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
)

// AttemptRepository is an in-memory append-only mapping.AttemptRepository.
type AttemptRepository struct {
	mu      sync.RWMutex
	records []mapping.AttemptRecord
}

func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{}
}

func (r *AttemptRepository) Append(_ context.Context, record mapping.AttemptRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, record)

	return nil
}

func (r *AttemptRepository) Stats(_ context.Context, since time.Time) (mapping.WindowStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats mapping.WindowStats
	var confidenceSum float64
	var elapsedSum time.Duration
	for _, record := range r.records {
		if record.AttemptedAt.Before(since) {
			continue
		}
		stats.TotalAttempts++
		elapsedSum += record.Elapsed
		if record.Success {
			stats.Successful++
			confidenceSum += record.Confidence
		}
	}
	if stats.TotalAttempts > 0 {
		stats.AvgElapsedMs = float64(elapsedSum.Milliseconds()) / float64(stats.TotalAttempts)
	}
	if stats.Successful > 0 {
		stats.AvgConfidence = confidenceSum / float64(stats.Successful)
	}

	return stats, nil
}

func (r *AttemptRepository) StatsByStrategy(_ context.Context, since time.Time) ([]mapping.StrategyStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type bucket struct {
		attempts      int
		successes     int
		confidenceSum float64
	}
	buckets := make(map[mapping.Strategy]*bucket)
	for _, record := range r.records {
		if record.AttemptedAt.Before(since) {
			continue
		}
		b, ok := buckets[record.StrategyUsed]
		if !ok {
			b = &bucket{}
			buckets[record.StrategyUsed] = b
		}
		b.attempts++
		if record.Success {
			b.successes++
			b.confidenceSum += record.Confidence
		}
	}

	out := make([]mapping.StrategyStats, 0, len(buckets))
	for strategy, b := range buckets {
		stats := mapping.StrategyStats{
			Strategy:    strategy,
			Attempts:    b.attempts,
			Successes:   b.successes,
			SuccessRate: float64(b.successes) / float64(b.attempts),
		}
		if b.successes > 0 {
			stats.AvgConfidence = b.confidenceSum / float64(b.successes)
		}
		out = append(out, stats)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Successes != out[j].Successes {
			return out[i].Successes > out[j].Successes
		}
		return out[i].Strategy < out[j].Strategy
	})

	return out, nil
}

func (r *AttemptRepository) TopFailures(_ context.Context, since time.Time, limit int) ([]mapping.FailureGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Failures group by the full (source, alternatives, context) triple;
	// the same source failing with different suggestions counts separately.
	type key struct {
		source       string
		context      string
		alternatives string
	}
	counts := make(map[key]*mapping.FailureGroup)
	for _, record := range r.records {
		if record.AttemptedAt.Before(since) || record.Success {
			continue
		}
		k := key{
			source:       record.SourceName,
			context:      record.Context,
			alternatives: strings.Join(record.Alternatives, "\x1f"),
		}
		group, ok := counts[k]
		if !ok {
			group = &mapping.FailureGroup{
				SourceName:   record.SourceName,
				Alternatives: record.Alternatives,
				Context:      record.Context,
			}
			counts[k] = group
		}
		group.Count++
	}

	out := make([]mapping.FailureGroup, 0, len(counts))
	for _, group := range counts {
		out = append(out, *group)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].SourceName != out[j].SourceName {
			return out[i].SourceName < out[j].SourceName
		}
		return strings.Join(out[i].Alternatives, "\x1f") < strings.Join(out[j].Alternatives, "\x1f")
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *AttemptRepository) RecentSuccesses(_ context.Context, since time.Time, limit int) ([]mapping.AttemptRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mapping.AttemptRecord, 0, limit)
	for _, record := range r.records {
		if record.AttemptedAt.Before(since) || !record.Success {
			continue
		}
		out = append(out, record)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AttemptedAt.After(out[j].AttemptedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
