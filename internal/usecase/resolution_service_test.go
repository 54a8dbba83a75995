package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	"github.com/riskibarqy/team-resolver/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-resolver/internal/platform/logging"
)

func newTestResolutionService(manual map[string]string, learning bool) (*ResolutionService, *memory.LearnedRepository, *memory.AttemptRepository) {
	learnedRepo := memory.NewLearnedRepository()
	attemptRepo := memory.NewAttemptRepository()
	svc := NewResolutionService(manual, learnedRepo, attemptRepo, ResolutionConfig{
		LearningEnabled: learning,
	}, logging.NewNop())

	return svc, learnedRepo, attemptRepo
}

func TestResolveCascadePriority(t *testing.T) {
	ctx := context.Background()

	t.Run("exact match dominates manual", func(t *testing.T) {
		svc, _, _ := newTestResolutionService(map[string]string{"Barcelona": "Blaugrana"}, false)

		got, err := svc.Resolve(ctx, "Barcelona", []string{"Blaugrana", "Barcelona"}, "la_liga")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyExactMatch || got.Confidence != 1.0 || got.MatchedName != "Barcelona" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("manual mapping", func(t *testing.T) {
		svc, _, _ := newTestResolutionService(map[string]string{"Manchester United": "Manchester Utd"}, false)

		got, err := svc.Resolve(ctx, "Manchester United", []string{"Manchester Utd", "Manchester City"}, "premier_league")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyManualMapping || got.Confidence != 0.95 || got.MatchedName != "Manchester Utd" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("learned mapping from store snapshot", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(nil, false)
		seed := mapping.LearnedMapping{
			SourceName:   "Spurs",
			MatchedName:  "Tottenham Hotspur",
			Confidence:   1.0,
			StrategyUsed: mapping.StrategyManualVerification,
			Verified:     true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := learnedRepo.Upsert(ctx, seed); err != nil {
			t.Fatalf("seed learned mapping: %v", err)
		}

		got, err := svc.Resolve(ctx, "Spurs", []string{"Tottenham Hotspur", "Arsenal"}, "premier_league")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyLearnedMapping || got.Confidence != 0.90 || got.MatchedName != "Tottenham Hotspur" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("normalized matching", func(t *testing.T) {
		svc, _, _ := newTestResolutionService(nil, false)

		got, err := svc.Resolve(ctx, "FC Barcelona", []string{"Barcelona", "Real Madrid"}, "la_liga")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyNormalizedMatching || got.Confidence != 0.85 || got.MatchedName != "Barcelona" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("fuzzy fallback below acceptance is still returned", func(t *testing.T) {
		svc, _, _ := newTestResolutionService(nil, false)

		got, err := svc.Resolve(ctx, "Borussia Monchengladbach", []string{"B. Monchengladbach", "Bayern Munchen"}, "bundesliga")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyFuzzyMatching {
			t.Fatalf("unexpected strategy: %+v", got)
		}
		if !got.MatchFound || got.MatchedName != "B. Monchengladbach" {
			t.Fatalf("expected fallback match, got %+v", got)
		}
		if got.Confidence < 0.45 || got.Confidence > 0.55 {
			t.Fatalf("confidence outside expected band: %v", got.Confidence)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		svc, _, _ := newTestResolutionService(nil, false)

		got, err := svc.Resolve(ctx, "Arsenal", nil, "")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.MatchFound || got.MatchedName != "" || got.Confidence != 0 {
			t.Fatalf("expected no match, got %+v", got)
		}
	})

	t.Run("empty source name", func(t *testing.T) {
		svc, _, _ := newTestResolutionService(nil, false)

		if _, err := svc.Resolve(ctx, "", []string{"Arsenal"}, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestResolveAppendsOneAttemptPerCall(t *testing.T) {
	ctx := context.Background()
	svc, _, attemptRepo := newTestResolutionService(nil, false)

	inputs := []string{"Arsenal", "FC Barcelona", "Nonexistent Team"}
	for _, source := range inputs {
		if _, err := svc.Resolve(ctx, source, []string{"Arsenal", "Barcelona"}, ""); err != nil {
			t.Fatalf("resolve %q: %v", source, err)
		}
	}

	stats, err := attemptRepo.Stats(ctx, time.Time{})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalAttempts != len(inputs) {
		t.Fatalf("unexpected attempt count: got=%d want=%d", stats.TotalAttempts, len(inputs))
	}
	if stats.Successful != 2 {
		t.Fatalf("unexpected success count: got=%d want=2", stats.Successful)
	}
}

func TestResolveLearning(t *testing.T) {
	ctx := context.Background()

	t.Run("high-confidence match is persisted", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(map[string]string{"Manchester United": "Manchester Utd"}, true)

		if _, err := svc.Resolve(ctx, "Manchester United", []string{"Manchester Utd"}, "premier_league"); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		count, err := learnedRepo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Fatalf("unexpected learned count: got=%d want=1", count)
		}

		trusted, err := learnedRepo.ListTrusted(ctx)
		if err != nil {
			t.Fatalf("list trusted: %v", err)
		}
		if len(trusted) != 1 || trusted[0].MatchedName != "Manchester Utd" || trusted[0].StrategyUsed != mapping.StrategyManualMapping {
			t.Fatalf("unexpected trusted entries: %+v", trusted)
		}
	})

	t.Run("learned entry serves a fresh service without the manual table", func(t *testing.T) {
		first, learnedRepo, _ := newTestResolutionService(map[string]string{"Manchester United": "Manchester Utd"}, true)
		if _, err := first.Resolve(ctx, "Manchester United", []string{"Manchester Utd"}, ""); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		second := NewResolutionService(nil, learnedRepo, memory.NewAttemptRepository(), ResolutionConfig{LearningEnabled: true}, logging.NewNop())
		got, err := second.Resolve(ctx, "Manchester United", []string{"Manchester Utd"}, "")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyLearnedMapping || got.Confidence != 0.90 {
			t.Fatalf("unexpected result: %+v", got)
		}

		// Serving from the learned store must not write the mapping back.
		count, err := learnedRepo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Fatalf("unexpected learned count after re-serve: got=%d want=1", count)
		}
	})

	t.Run("normalized match round-trips through the learned strategy", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(nil, true)

		if _, err := svc.Resolve(ctx, "FC Barcelona", []string{"Barcelona"}, "la_liga"); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		count, err := learnedRepo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Fatalf("unexpected learned count: got=%d want=1", count)
		}

		// The learning write lands in this service's snapshot immediately,
		// so the next call is served by the learned-mapping strategy.
		got, err := svc.Resolve(ctx, "FC Barcelona", []string{"Barcelona"}, "la_liga")
		if err != nil {
			t.Fatalf("resolve again: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyLearnedMapping || got.Confidence != 0.90 || got.MatchedName != "Barcelona" {
			t.Fatalf("expected learned serve on second call, got %+v", got)
		}
	})

	t.Run("unverified 0.85 entry does not survive a snapshot reload", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(nil, true)

		if _, err := svc.Resolve(ctx, "FC Barcelona", []string{"Barcelona"}, "la_liga"); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		trusted, err := learnedRepo.ListTrusted(ctx)
		if err != nil {
			t.Fatalf("list trusted: %v", err)
		}
		if len(trusted) != 0 {
			t.Fatalf("0.85 confidence should not be trusted on load: %+v", trusted)
		}

		// A fresh service rebuilds its snapshot through the trust filter,
		// so the unverified entry falls back to normalized matching.
		second := NewResolutionService(nil, learnedRepo, memory.NewAttemptRepository(), ResolutionConfig{LearningEnabled: true}, logging.NewNop())
		got, err := second.Resolve(ctx, "FC Barcelona", []string{"Barcelona"}, "la_liga")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyNormalizedMatching {
			t.Fatalf("unexpected strategy after reload: %+v", got)
		}
	})

	t.Run("low-confidence fallback is not learned", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(nil, true)

		if _, err := svc.Resolve(ctx, "Borussia Monchengladbach", []string{"B. Monchengladbach"}, ""); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		count, err := learnedRepo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatalf("unexpected learned count: got=%d want=0", count)
		}
	})

	t.Run("learning disabled", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(map[string]string{"Manchester United": "Manchester Utd"}, false)

		if _, err := svc.Resolve(ctx, "Manchester United", []string{"Manchester Utd"}, ""); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		count, err := learnedRepo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatalf("unexpected learned count: got=%d want=0", count)
		}
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("acceptance trusts the pair at full confidence", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(nil, false)

		if err := svc.Verify(ctx, "Gladbach", "B. Monchengladbach", true, "bundesliga"); err != nil {
			t.Fatalf("verify: %v", err)
		}

		trusted, err := learnedRepo.ListTrusted(ctx)
		if err != nil {
			t.Fatalf("list trusted: %v", err)
		}
		if len(trusted) != 1 {
			t.Fatalf("unexpected trusted entries: %+v", trusted)
		}
		entry := trusted[0]
		if !entry.Verified || entry.Confidence != 1.0 || entry.StrategyUsed != mapping.StrategyManualVerification {
			t.Fatalf("unexpected entry: %+v", entry)
		}

		got, err := svc.Resolve(ctx, "Gladbach", []string{"B. Monchengladbach"}, "bundesliga")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed != mapping.StrategyLearnedMapping || got.MatchedName != "B. Monchengladbach" {
			t.Fatalf("expected learned serve after acceptance, got %+v", got)
		}
	})

	t.Run("rejection removes the pair from the store", func(t *testing.T) {
		svc, learnedRepo, _ := newTestResolutionService(nil, false)

		if err := svc.Verify(ctx, "Gladbach", "B. Monchengladbach", true, "bundesliga"); err != nil {
			t.Fatalf("verify accept: %v", err)
		}
		if err := svc.Verify(ctx, "Gladbach", "B. Monchengladbach", false, "bundesliga"); err != nil {
			t.Fatalf("verify reject: %v", err)
		}

		count, err := learnedRepo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatalf("unexpected learned count after rejection: got=%d want=0", count)
		}

		got, err := svc.Resolve(ctx, "Gladbach", []string{"B. Monchengladbach"}, "bundesliga")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.StrategyUsed == mapping.StrategyLearnedMapping {
			t.Fatalf("rejected pair must not be served from the learned store: %+v", got)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		svc, _, _ := newTestResolutionService(nil, false)

		if err := svc.Verify(ctx, "", "B. Monchengladbach", true, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if err := svc.Verify(ctx, "Gladbach", "", false, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestResolveBatch(t *testing.T) {
	ctx := context.Background()
	svc, _, attemptRepo := newTestResolutionService(map[string]string{"Manchester United": "Manchester Utd"}, false)

	candidates := []string{"Manchester Utd", "Barcelona", "Arsenal"}
	items := []ResolveItem{
		{SourceName: "Arsenal", Candidates: candidates},
		{SourceName: "Manchester United", Candidates: candidates},
		{SourceName: "", Candidates: candidates},
		{SourceName: "FC Barcelona", Candidates: candidates},
	}

	results, err := svc.ResolveBatch(ctx, items, 2)
	if err != nil {
		t.Fatalf("resolve batch: %v", err)
	}
	if len(results) != len(items) {
		t.Fatalf("unexpected result count: got=%d want=%d", len(results), len(items))
	}

	for i, result := range results {
		if result.SourceName != items[i].SourceName {
			t.Fatalf("result %d out of order: got=%q want=%q", i, result.SourceName, items[i].SourceName)
		}
	}

	if results[0].Result.StrategyUsed != mapping.StrategyExactMatch {
		t.Fatalf("unexpected strategy for Arsenal: %+v", results[0].Result)
	}
	if results[1].Result.StrategyUsed != mapping.StrategyManualMapping {
		t.Fatalf("unexpected strategy for Manchester United: %+v", results[1].Result)
	}
	if !errors.Is(results[2].Err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty item, got %v", results[2].Err)
	}
	if results[3].Result.StrategyUsed != mapping.StrategyNormalizedMatching {
		t.Fatalf("unexpected strategy for FC Barcelona: %+v", results[3].Result)
	}

	// The invalid item never reaches the cascade, so only three attempts land.
	stats, err := attemptRepo.Stats(ctx, time.Time{})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalAttempts != 3 {
		t.Fatalf("unexpected attempt count: got=%d want=3", stats.TotalAttempts)
	}

	if _, err := svc.ResolveBatch(ctx, nil, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
}
