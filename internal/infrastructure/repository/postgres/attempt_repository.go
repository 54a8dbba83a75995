package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	qb "github.com/riskibarqy/team-resolver/internal/platform/querybuilder"
)

// AttemptRepository persists the append-only resolution attempt log in the
// mapping_attempts table and serves the reporting aggregates.
type AttemptRepository struct {
	db *sqlx.DB
}

func NewAttemptRepository(db *sqlx.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) Append(ctx context.Context, record mapping.AttemptRecord) error {
	matchedName := stringToNullString(record.MatchedName)
	alternatives, err := alternativesToNullString(record.Alternatives)
	if err != nil {
		return fmt.Errorf("encode attempt alternatives: %w", err)
	}

	attemptedAt := record.AttemptedAt
	if attemptedAt.IsZero() {
		attemptedAt = time.Now().UTC()
	}
	insertModel := attemptInsertModel{
		SourceName:   record.SourceName,
		MatchedName:  matchedName,
		Confidence:   record.Confidence,
		StrategyUsed: string(record.StrategyUsed),
		Success:      record.Success,
		ElapsedMs:    float64(record.Elapsed) / float64(time.Millisecond),
		Alternatives: alternatives,
		Context:      record.Context,
		AttemptedAt:  attemptedAt,
	}
	query, args, err := qb.InsertModel("mapping_attempts", insertModel, "")
	if err != nil {
		return fmt.Errorf("build append attempt query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}

	return nil
}

func (r *AttemptRepository) Stats(ctx context.Context, since time.Time) (mapping.WindowStats, error) {
	query, args, err := qb.Select(
		"COUNT(*) AS total_attempts",
		"COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0) AS successful",
		"COALESCE(AVG(confidence) FILTER (WHERE success), 0) AS avg_confidence",
		"COALESCE(AVG(elapsed_ms), 0) AS avg_elapsed_ms",
	).
		From("mapping_attempts").
		Where(qb.Gte("attempted_at", since)).
		ToSQL()
	if err != nil {
		return mapping.WindowStats{}, fmt.Errorf("build attempt stats query: %w", err)
	}

	var row struct {
		TotalAttempts int     `db:"total_attempts"`
		Successful    int     `db:"successful"`
		AvgConfidence float64 `db:"avg_confidence"`
		AvgElapsedMs  float64 `db:"avg_elapsed_ms"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return mapping.WindowStats{}, fmt.Errorf("get attempt stats: %w", err)
	}

	return mapping.WindowStats{
		TotalAttempts: row.TotalAttempts,
		Successful:    row.Successful,
		AvgConfidence: row.AvgConfidence,
		AvgElapsedMs:  row.AvgElapsedMs,
	}, nil
}

func (r *AttemptRepository) StatsByStrategy(ctx context.Context, since time.Time) ([]mapping.StrategyStats, error) {
	query, args, err := qb.Select(
		"strategy_used",
		"COUNT(*) AS attempts",
		"COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0) AS successes",
		"COALESCE(AVG(confidence) FILTER (WHERE success), 0) AS avg_confidence",
	).
		From("mapping_attempts").
		Where(qb.Gte("attempted_at", since)).
		GroupBy("strategy_used").
		OrderBy("successes DESC", "strategy_used").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build strategy stats query: %w", err)
	}

	var rows []struct {
		StrategyUsed  string  `db:"strategy_used"`
		Attempts      int     `db:"attempts"`
		Successes     int     `db:"successes"`
		AvgConfidence float64 `db:"avg_confidence"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select strategy stats: %w", err)
	}

	out := make([]mapping.StrategyStats, 0, len(rows))
	for _, row := range rows {
		stats := mapping.StrategyStats{
			Strategy:      mapping.Strategy(row.StrategyUsed),
			Attempts:      row.Attempts,
			Successes:     row.Successes,
			AvgConfidence: row.AvgConfidence,
		}
		if row.Attempts > 0 {
			stats.SuccessRate = float64(row.Successes) / float64(row.Attempts)
		}
		out = append(out, stats)
	}

	return out, nil
}

func (r *AttemptRepository) TopFailures(ctx context.Context, since time.Time, limit int) ([]mapping.FailureGroup, error) {
	query, args, err := qb.Select(
		"source_name",
		"context",
		"alternatives::text AS alternatives",
		"COUNT(*) AS failure_count",
	).
		From("mapping_attempts").
		Where(
			qb.Eq("success", false),
			qb.Gte("attempted_at", since),
		).
		GroupBy("source_name", "context", "alternatives").
		OrderBy("failure_count DESC", "source_name").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build top failures query: %w", err)
	}

	var rows []struct {
		SourceName   string         `db:"source_name"`
		Context      string         `db:"context"`
		FailureCount int            `db:"failure_count"`
		Alternatives sql.NullString `db:"alternatives"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select top failures: %w", err)
	}

	out := make([]mapping.FailureGroup, 0, len(rows))
	for _, row := range rows {
		alternatives, err := nullStringToAlternatives(row.Alternatives)
		if err != nil {
			return nil, fmt.Errorf("decode failure alternatives: %w", err)
		}
		out = append(out, mapping.FailureGroup{
			SourceName:   row.SourceName,
			Alternatives: alternatives,
			Context:      row.Context,
			Count:        row.FailureCount,
		})
	}

	return out, nil
}

func (r *AttemptRepository) RecentSuccesses(ctx context.Context, since time.Time, limit int) ([]mapping.AttemptRecord, error) {
	query, args, err := qb.Select("*").
		From("mapping_attempts").
		Where(
			qb.Eq("success", true),
			qb.Gte("attempted_at", since),
		).
		OrderBy("attempted_at DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build recent successes query: %w", err)
	}

	var rows []attemptTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select recent successes: %w", err)
	}

	out := make([]mapping.AttemptRecord, 0, len(rows))
	for _, row := range rows {
		alternatives, err := nullStringToAlternatives(row.Alternatives)
		if err != nil {
			return nil, fmt.Errorf("decode attempt alternatives: %w", err)
		}
		out = append(out, mapping.AttemptRecord{
			SourceName:   row.SourceName,
			MatchedName:  nullStringToString(row.MatchedName),
			Confidence:   row.Confidence,
			StrategyUsed: mapping.Strategy(row.StrategyUsed),
			Success:      row.Success,
			Elapsed:      time.Duration(row.ElapsedMs * float64(time.Millisecond)),
			Alternatives: alternatives,
			Context:      row.Context,
			AttemptedAt:  row.AttemptedAt,
		})
	}

	return out, nil
}
