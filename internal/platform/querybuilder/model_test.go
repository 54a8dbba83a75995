package querybuilder

import "testing"

func TestInsertModel(t *testing.T) {
	type row struct {
		SourceName  string `db:"source_name"`
		MatchedName string `db:"matched_name"`
		Confidence  float64
		unexported  string `db:"hidden"`
		Skipped     string `db:"-"`
	}
	_ = row{}.unexported

	query, args, err := InsertModel("team_mappings", row{
		SourceName:  "FC Barcelona",
		MatchedName: "Barcelona",
	}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO team_mappings (source_name, matched_name) VALUES ($1, $2) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "FC Barcelona" || args[1] != "Barcelona" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("team_mappings", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}

	var ptr *struct {
		ID int64 `db:"id"`
	}
	if _, _, err := InsertModel("team_mappings", ptr, ""); err == nil {
		t.Fatalf("expected error for nil pointer model")
	}
}
