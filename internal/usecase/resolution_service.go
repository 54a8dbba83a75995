package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	"github.com/riskibarqy/team-resolver/internal/domain/resolver"
	"github.com/riskibarqy/team-resolver/internal/platform/logging"
	"github.com/riskibarqy/team-resolver/internal/platform/resilience"
)

const (
	// learnMinConfidence is the floor above which an accepted match is
	// promoted into the learned-mapping store.
	defaultLearnMinConfidence = 0.8

	batchDefaultWorkers = 4
	batchMaxWorkers     = 32
)

// ResolutionConfig carries the orchestrator knobs from service config.
type ResolutionConfig struct {
	LearningEnabled    bool
	LearnMinConfidence float64
	BatchWorkers       int
}

// ResolutionService runs the matching cascade against a shared knowledge
// base: the static manual table, the persisted learned mappings (served
// from an in-process snapshot), and the append-only attempt log.
type ResolutionService struct {
	manual       map[string]string
	learnedRepo  mapping.LearnedRepository
	attemptRepo  mapping.AttemptRepository
	strategies   []resolver.Strategy
	learning     bool
	learnFloor   float64
	batchWorkers int
	logger       *logging.Logger

	mu      sync.RWMutex
	learned map[string]string
	loaded  bool
	flight  resilience.SingleFlight
}

func NewResolutionService(
	manual map[string]string,
	learnedRepo mapping.LearnedRepository,
	attemptRepo mapping.AttemptRepository,
	cfg ResolutionConfig,
	logger *logging.Logger,
) *ResolutionService {
	if logger == nil {
		logger = logging.Default()
	}
	if manual == nil {
		manual = map[string]string{}
	}
	learnFloor := cfg.LearnMinConfidence
	if learnFloor <= 0 || learnFloor > 1 {
		learnFloor = defaultLearnMinConfidence
	}

	batchWorkers := cfg.BatchWorkers
	if batchWorkers <= 0 {
		batchWorkers = batchDefaultWorkers
	}
	if batchWorkers > batchMaxWorkers {
		batchWorkers = batchMaxWorkers
	}

	s := &ResolutionService{
		manual:       manual,
		learnedRepo:  learnedRepo,
		attemptRepo:  attemptRepo,
		learning:     cfg.LearningEnabled,
		learnFloor:   learnFloor,
		batchWorkers: batchWorkers,
		logger:       logger,
	}
	s.strategies = resolver.Cascade(s.lookupManual, s.lookupLearned)

	return s
}

// Resolve runs the cascade in priority order and stops at the first strategy
// whose result clears its own acceptance threshold. When every strategy
// fails, the last strategy's result is returned as-is, so callers always get
// the fuzzy matcher's best effort (possibly no match at all). Exactly one
// attempt record is appended per call; attempt and learning writes never
// fail the resolution itself.
func (s *ResolutionService) Resolve(ctx context.Context, sourceName string, candidates []string, leagueContext string) (mapping.MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.Resolve")
	defer span.End()

	if sourceName == "" {
		return mapping.MatchResult{}, fmt.Errorf("%w: source name is required", ErrInvalidInput)
	}

	started := time.Now()
	s.ensureLearnedLoaded(ctx)

	var result mapping.MatchResult
	for _, strategy := range s.strategies {
		result = strategy.Match(sourceName, candidates)
		if result.MatchFound && result.Confidence >= strategy.Threshold() {
			break
		}
	}
	result.Elapsed = time.Since(started)

	s.recordAttempt(ctx, result, leagueContext)
	s.maybeLearn(ctx, result, leagueContext)

	return result, nil
}

// ResolveItem is one independent source name in a batch resolution.
type ResolveItem struct {
	SourceName string
	Candidates []string
	Context    string
}

// BatchItemResult pairs a batch item with its outcome. Err is set when the
// item itself was invalid; the surrounding batch still completes.
type BatchItemResult struct {
	SourceName string
	Result     mapping.MatchResult
	Err        error
}

// ResolveBatch resolves independent source names concurrently over a worker
// pool, preserving input order in the returned slice.
func (s *ResolutionService) ResolveBatch(ctx context.Context, items []ResolveItem, maxWorkers int) ([]BatchItemResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.ResolveBatch")
	defer span.End()

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: batch items are required", ErrInvalidInput)
	}

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = s.batchWorkers
	}
	if workerCount > batchMaxWorkers {
		workerCount = batchMaxWorkers
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]BatchItemResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			result, resolveErr := s.Resolve(ctx, item.SourceName, item.Candidates, item.Context)
			results[i] = BatchItemResult{
				SourceName: item.SourceName,
				Result:     result,
				Err:        resolveErr,
			}
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	return results, nil
}

// Verify records an operator decision about a previously suggested pair.
// Acceptance upserts a verified mapping at full confidence; rejection
// deletes the pair so the learned-mapping strategy stops suggesting it.
// Other strategies may still rediscover the pair independently.
func (s *ResolutionService) Verify(ctx context.Context, sourceName, matchedName string, accepted bool, leagueContext string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.Verify")
	defer span.End()

	if sourceName == "" || matchedName == "" {
		return fmt.Errorf("%w: source and matched names are required", ErrInvalidInput)
	}
	if s.learnedRepo == nil {
		return fmt.Errorf("%w: learned mapping store is not configured", ErrDependencyUnavailable)
	}

	if accepted {
		entry := mapping.LearnedMapping{
			SourceName:   sourceName,
			MatchedName:  matchedName,
			Confidence:   1.0,
			StrategyUsed: mapping.StrategyManualVerification,
			Verified:     true,
			Context:      leagueContext,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.learnedRepo.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("upsert verified mapping: %w", err)
		}
	} else {
		if err := s.learnedRepo.Delete(ctx, sourceName, matchedName); err != nil {
			return fmt.Errorf("delete rejected mapping: %w", err)
		}
	}

	if err := s.refreshLearned(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh learned mappings after verification failed", "error", err)
	}

	s.logger.InfoContext(ctx, "mapping verification recorded",
		"source_name", sourceName,
		"matched_name", matchedName,
		"accepted", accepted,
	)

	return nil
}

// ManualMappingCount reports the size of the loaded manual table.
func (s *ResolutionService) ManualMappingCount() int {
	return len(s.manual)
}

func (s *ResolutionService) lookupManual(sourceName string) (string, bool) {
	// Exact, case-sensitive lookup on the raw provider string. The manual
	// table is keyed by provider naming, not by normalized form.
	mapped, ok := s.manual[sourceName]
	return mapped, ok
}

func (s *ResolutionService) lookupLearned(sourceName string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mapped, ok := s.learned[sourceName]
	return mapped, ok
}

func (s *ResolutionService) ensureLearnedLoaded(ctx context.Context) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return
	}

	if err := s.refreshLearned(ctx); err != nil {
		s.logger.WarnContext(ctx, "load learned mappings failed, continuing without them", "error", err)
	}
}

// refreshLearned rebuilds the learned snapshot from the store. The snapshot
// is replaced wholesale, never appended to, so deletions made by rejection
// take effect immediately. Concurrent refreshes collapse into one read.
func (s *ResolutionService) refreshLearned(ctx context.Context) error {
	if s.learnedRepo == nil {
		return nil
	}

	_, err, _ := s.flight.Do("learned-refresh", func() (any, error) {
		entries, err := s.learnedRepo.ListTrusted(ctx)
		if err != nil {
			return nil, err
		}

		// Entries arrive ordered by confidence descending; the first
		// write per source name wins.
		snapshot := make(map[string]string, len(entries))
		for _, entry := range entries {
			if _, ok := snapshot[entry.SourceName]; ok {
				continue
			}
			snapshot[entry.SourceName] = entry.MatchedName
		}

		s.mu.Lock()
		s.learned = snapshot
		s.loaded = true
		s.mu.Unlock()

		return nil, nil
	})

	return err
}

func (s *ResolutionService) recordAttempt(ctx context.Context, result mapping.MatchResult, leagueContext string) {
	if s.attemptRepo == nil {
		return
	}

	matchedName := ""
	if result.MatchFound {
		matchedName = result.MatchedName
	}
	record := mapping.AttemptRecord{
		SourceName:   result.SourceName,
		MatchedName:  matchedName,
		Confidence:   result.Confidence,
		StrategyUsed: result.StrategyUsed,
		Success:      result.MatchFound,
		Elapsed:      result.Elapsed,
		Alternatives: result.Alternatives,
		Context:      leagueContext,
		AttemptedAt:  time.Now().UTC(),
	}

	if err := s.attemptRepo.Append(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "append mapping attempt failed",
			"error", err,
			"source_name", record.SourceName,
			"strategy", record.StrategyUsed,
		)
	}
}

func (s *ResolutionService) maybeLearn(ctx context.Context, result mapping.MatchResult, leagueContext string) {
	if !s.learning || s.learnedRepo == nil {
		return
	}
	if !result.MatchFound || result.Confidence < s.learnFloor {
		return
	}
	// Re-learning a mapping we already served from the learned store adds
	// no information and would let the cascade reinforce itself.
	if result.StrategyUsed == mapping.StrategyLearnedMapping {
		return
	}

	entry := mapping.LearnedMapping{
		SourceName:   result.SourceName,
		MatchedName:  result.MatchedName,
		Confidence:   result.Confidence,
		StrategyUsed: result.StrategyUsed,
		Context:      leagueContext,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.learnedRepo.Upsert(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "persist learned mapping failed",
			"error", err,
			"source_name", entry.SourceName,
			"matched_name", entry.MatchedName,
		)
		return
	}

	// Install the pair into the snapshot directly so the next call in this
	// process serves it via the learned-mapping strategy. The store's trust
	// filter applies only when the snapshot is rebuilt from a load.
	s.mu.Lock()
	if s.learned == nil {
		s.learned = make(map[string]string)
	}
	s.learned[entry.SourceName] = entry.MatchedName
	s.mu.Unlock()
}
