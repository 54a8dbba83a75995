package mapping

import (
	"context"
	"time"
)

// LearnedRepository describes learned-mapping persistence needs from use cases.
type LearnedRepository interface {
	// ListTrusted returns entries flagged verified or with confidence > 0.9,
	// ordered by confidence descending so the most trusted row wins on
	// source-name collision.
	ListTrusted(ctx context.Context) ([]LearnedMapping, error)
	// Upsert inserts or overwrites the row keyed by
	// (source name, matched name, context).
	Upsert(ctx context.Context, m LearnedMapping) error
	// Delete removes every row for the pair, regardless of context.
	Delete(ctx context.Context, sourceName, matchedName string) error
	Count(ctx context.Context) (int, error)
}

// AttemptRepository describes the append-only attempt log and the aggregate
// queries reporting needs.
type AttemptRepository interface {
	Append(ctx context.Context, record AttemptRecord) error
	Stats(ctx context.Context, since time.Time) (WindowStats, error)
	StatsByStrategy(ctx context.Context, since time.Time) ([]StrategyStats, error)
	TopFailures(ctx context.Context, since time.Time, limit int) ([]FailureGroup, error)
	RecentSuccesses(ctx context.Context, since time.Time, limit int) ([]AttemptRecord, error)
}
