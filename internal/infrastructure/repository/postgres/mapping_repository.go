package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	qb "github.com/riskibarqy/team-resolver/internal/platform/querybuilder"
)

// trustedConfidenceFloor gates unverified learned rows out of the resolver
// snapshot until they clear this confidence.
const trustedConfidenceFloor = 0.9

// LearnedRepository persists learned mappings in the team_mappings table.
type LearnedRepository struct {
	db *sqlx.DB
}

func NewLearnedRepository(db *sqlx.DB) *LearnedRepository {
	return &LearnedRepository{db: db}
}

func (r *LearnedRepository) ListTrusted(ctx context.Context) ([]mapping.LearnedMapping, error) {
	query, args, err := qb.Select("*").
		From("team_mappings").
		Where(qb.Expr("(verified = TRUE OR confidence > ?)", trustedConfidenceFloor)).
		OrderBy("confidence DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list trusted mappings query: %w", err)
	}

	var rows []learnedMappingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list trusted mappings: %w", err)
	}

	out := make([]mapping.LearnedMapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapping.LearnedMapping{
			SourceName:   row.SourceName,
			MatchedName:  row.MatchedName,
			Confidence:   row.Confidence,
			StrategyUsed: mapping.Strategy(row.StrategyUsed),
			Verified:     row.Verified,
			Context:      row.Context,
			CreatedAt:    row.CreatedAt,
		})
	}

	return out, nil
}

func (r *LearnedRepository) Upsert(ctx context.Context, entry mapping.LearnedMapping) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validate learned mapping: %w", err)
	}

	now := time.Now().UTC()
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	insertModel := learnedMappingInsertModel{
		SourceName:   entry.SourceName,
		MatchedName:  entry.MatchedName,
		Confidence:   entry.Confidence,
		StrategyUsed: string(entry.StrategyUsed),
		Verified:     entry.Verified,
		Context:      entry.Context,
		CreatedAt:    createdAt,
		UpdatedAt:    now,
	}
	query, args, err := qb.InsertModel("team_mappings", insertModel, `ON CONFLICT (source_name, matched_name, context)
DO UPDATE SET
    confidence = EXCLUDED.confidence,
    strategy_used = EXCLUDED.strategy_used,
    verified = EXCLUDED.verified,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert learned mapping query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert learned mapping: %w", err)
	}

	return nil
}

func (r *LearnedRepository) Delete(ctx context.Context, sourceName, matchedName string) error {
	query, args, err := qb.DeleteFrom("team_mappings").
		Where(
			qb.Eq("source_name", sourceName),
			qb.Eq("matched_name", matchedName),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete learned mapping query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete learned mapping: %w", err)
	}

	return nil
}

func (r *LearnedRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("team_mappings").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count learned mappings query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count learned mappings: %w", err)
	}

	return count, nil
}
