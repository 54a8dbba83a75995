package postgres

import (
	"database/sql"
	"time"

	"github.com/bytedance/sonic"
)

type attemptTableModel struct {
	ID           int64          `db:"id"`
	SourceName   string         `db:"source_name"`
	MatchedName  sql.NullString `db:"matched_name"`
	Confidence   float64        `db:"confidence"`
	StrategyUsed string         `db:"strategy_used"`
	Success      bool           `db:"success"`
	ElapsedMs    float64        `db:"elapsed_ms"`
	Alternatives sql.NullString `db:"alternatives"`
	Context      string         `db:"context"`
	AttemptedAt  time.Time      `db:"attempted_at"`
}

type attemptInsertModel struct {
	SourceName   string         `db:"source_name"`
	MatchedName  sql.NullString `db:"matched_name"`
	Confidence   float64        `db:"confidence"`
	StrategyUsed string         `db:"strategy_used"`
	Success      bool           `db:"success"`
	ElapsedMs    float64        `db:"elapsed_ms"`
	Alternatives sql.NullString `db:"alternatives"`
	Context      string         `db:"context"`
	AttemptedAt  time.Time      `db:"attempted_at"`
}

// Alternatives are stored as a jsonb array; an empty list is stored as NULL.
func alternativesToNullString(alternatives []string) (sql.NullString, error) {
	if len(alternatives) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := sonic.Marshal(alternatives)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func nullStringToAlternatives(value sql.NullString) ([]string, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	var out []string
	if err := sonic.Unmarshal([]byte(value.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func stringToNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullStringToString(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}
