package mapping

import (
	"fmt"
	"time"
)

// Strategy tags the algorithm that produced a match.
type Strategy string

const (
	StrategyExactMatch         Strategy = "exact_match"
	StrategyManualMapping      Strategy = "manual_mapping"
	StrategyLearnedMapping     Strategy = "learned_mapping"
	StrategyNormalizedMatching Strategy = "normalized_matching"
	StrategySubstringMatching  Strategy = "substring_matching"
	StrategyWordBasedMatching  Strategy = "word_based_matching"
	StrategyFuzzyMatching      Strategy = "fuzzy_matching"
	StrategyManualVerification Strategy = "manual_verification"
)

// MaxAlternatives caps the next-best guesses carried on a result.
const MaxAlternatives = 3

// MatchResult is the outcome of a single resolution attempt for one source name.
type MatchResult struct {
	SourceName   string
	MatchedName  string
	Confidence   float64
	StrategyUsed Strategy
	MatchFound   bool
	Alternatives []string
	Elapsed      time.Duration
}

// LearnedMapping is a mapping discovered at runtime and persisted for reuse.
// Unique per (SourceName, MatchedName, Context); the same pair may be learned
// under different league contexts.
type LearnedMapping struct {
	SourceName   string
	MatchedName  string
	Confidence   float64
	StrategyUsed Strategy
	Verified     bool
	Context      string
	CreatedAt    time.Time
}

func (m LearnedMapping) Validate() error {
	if m.SourceName == "" {
		return fmt.Errorf("learned mapping source name is required")
	}
	if m.MatchedName == "" {
		return fmt.Errorf("learned mapping matched name is required")
	}
	if m.Confidence < 0 || m.Confidence > 1 {
		return fmt.Errorf("learned mapping confidence must be in [0,1], got %v", m.Confidence)
	}

	return nil
}

// AttemptRecord is one append-only entry in the resolution attempt log.
// MatchedName is empty when the attempt failed.
type AttemptRecord struct {
	SourceName   string
	MatchedName  string
	Confidence   float64
	StrategyUsed Strategy
	Success      bool
	Elapsed      time.Duration
	Alternatives []string
	Context      string
	AttemptedAt  time.Time
}

// WindowStats aggregates attempts over a reporting window. AvgConfidence
// covers successful attempts only; AvgElapsedMs covers all attempts.
type WindowStats struct {
	TotalAttempts int
	Successful    int
	AvgConfidence float64
	AvgElapsedMs  float64
}

// StrategyStats is the per-strategy slice of a reporting window.
// AvgConfidence covers successful attempts only.
type StrategyStats struct {
	Strategy      Strategy
	Attempts      int
	Successes     int
	SuccessRate   float64
	AvgConfidence float64
}

// FailureGroup is a recurring unresolved source name, grouped with the
// alternatives and context it failed under.
type FailureGroup struct {
	SourceName   string
	Alternatives []string
	Context      string
	Count        int
}
