package postgres

import "time"

type learnedMappingTableModel struct {
	ID           int64     `db:"id"`
	SourceName   string    `db:"source_name"`
	MatchedName  string    `db:"matched_name"`
	Confidence   float64   `db:"confidence"`
	StrategyUsed string    `db:"strategy_used"`
	Verified     bool      `db:"verified"`
	Context      string    `db:"context"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type learnedMappingInsertModel struct {
	SourceName   string    `db:"source_name"`
	MatchedName  string    `db:"matched_name"`
	Confidence   float64   `db:"confidence"`
	StrategyUsed string    `db:"strategy_used"`
	Verified     bool      `db:"verified"`
	Context      string    `db:"context"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
