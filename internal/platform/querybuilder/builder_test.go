package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := Select("source_name", "confidence").
		From("team_mappings").
		Where(Eq("context", "premier_league"), Gte("created_at", since)).
		OrderBy("confidence DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT source_name, confidence FROM team_mappings WHERE context = $1 AND created_at >= $2 ORDER BY confidence DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "premier_league" || args[1] != since {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderGroupBy(t *testing.T) {
	query, args, err := Select("strategy_used", "COUNT(*) AS attempts").
		From("mapping_attempts").
		Where(Expr("(verified = TRUE OR confidence > ?)", 0.9)).
		GroupBy("strategy_used").
		OrderBy("attempts DESC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT strategy_used, COUNT(*) AS attempts FROM mapping_attempts WHERE (verified = TRUE OR confidence > $1) GROUP BY strategy_used ORDER BY attempts DESC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != 0.9 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("team_mappings").
		Columns("source_name", "matched_name").
		Values("FC Barcelona", "Barcelona").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO team_mappings (source_name, matched_name) VALUES ($1, $2) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "FC Barcelona" || args[1] != "Barcelona" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderRejectsRaggedRow(t *testing.T) {
	_, _, err := InsertInto("team_mappings").
		Columns("source_name", "matched_name").
		Values("FC Barcelona").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for ragged row")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("team_mappings").
		Where(Eq("source_name", "FC Barcelona"), Eq("matched_name", "Barcelona")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM team_mappings WHERE source_name = $1 AND matched_name = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilderRequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("team_mappings").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without conditions")
	}
}
