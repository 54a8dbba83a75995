package resolver

import (
	"sort"
	"strings"

	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
)

// LookupFunc resolves a source name against a mapping table, returning the
// canonical name when one is known.
type LookupFunc func(sourceName string) (string, bool)

// Strategy is one step of the resolution cascade. Match is a pure function
// of its inputs; the orchestrator accepts its result only when the returned
// confidence clears Threshold.
type Strategy interface {
	Tag() mapping.Strategy
	Threshold() float64
	Match(sourceName string, candidates []string) mapping.MatchResult
}

// Cascade returns the seven matching strategies in cascade priority order.
// manualLookup and learnedLookup back strategies 2 and 3.
func Cascade(manualLookup, learnedLookup LookupFunc) []Strategy {
	return []Strategy{
		exactStrategy{},
		lookupStrategy{
			tag:        mapping.StrategyManualMapping,
			threshold:  0.95,
			confidence: 0.95,
			lookup:     manualLookup,
		},
		lookupStrategy{
			tag:        mapping.StrategyLearnedMapping,
			threshold:  0.90,
			confidence: 0.90,
			lookup:     learnedLookup,
		},
		normalizedStrategy{},
		substringStrategy{},
		wordBasedStrategy{},
		fuzzyStrategy{},
	}
}

func noMatch(tag mapping.Strategy, sourceName string) mapping.MatchResult {
	return mapping.MatchResult{
		SourceName:   sourceName,
		StrategyUsed: tag,
	}
}

// exactStrategy: the source name literally equals a candidate, case included.
type exactStrategy struct{}

func (exactStrategy) Tag() mapping.Strategy { return mapping.StrategyExactMatch }
func (exactStrategy) Threshold() float64    { return 1.0 }

func (s exactStrategy) Match(sourceName string, candidates []string) mapping.MatchResult {
	for _, candidate := range candidates {
		if sourceName == candidate {
			return mapping.MatchResult{
				SourceName:   sourceName,
				MatchedName:  candidate,
				Confidence:   1.0,
				StrategyUsed: s.Tag(),
				MatchFound:   true,
			}
		}
	}

	return noMatch(s.Tag(), sourceName)
}

// lookupStrategy consults a mapping table (manual or learned) and accepts
// the mapped name only when it is present in the candidate set.
type lookupStrategy struct {
	tag        mapping.Strategy
	threshold  float64
	confidence float64
	lookup     LookupFunc
}

func (s lookupStrategy) Tag() mapping.Strategy { return s.tag }
func (s lookupStrategy) Threshold() float64    { return s.threshold }

func (s lookupStrategy) Match(sourceName string, candidates []string) mapping.MatchResult {
	if s.lookup == nil {
		return noMatch(s.tag, sourceName)
	}

	mapped, ok := s.lookup(sourceName)
	if !ok {
		return noMatch(s.tag, sourceName)
	}

	for _, candidate := range candidates {
		if mapped == candidate {
			return mapping.MatchResult{
				SourceName:   sourceName,
				MatchedName:  candidate,
				Confidence:   s.confidence,
				StrategyUsed: s.tag,
				MatchFound:   true,
			}
		}
	}

	return noMatch(s.tag, sourceName)
}

// normalizedStrategy: normalized forms are equal. Fixed confidence on any
// hit; the first hit in candidate order wins.
type normalizedStrategy struct{}

func (normalizedStrategy) Tag() mapping.Strategy { return mapping.StrategyNormalizedMatching }
func (normalizedStrategy) Threshold() float64    { return 0.85 }

func (s normalizedStrategy) Match(sourceName string, candidates []string) mapping.MatchResult {
	normalizedSource := Normalize(sourceName)

	for _, candidate := range candidates {
		if normalizedSource != "" && normalizedSource == Normalize(candidate) {
			return mapping.MatchResult{
				SourceName:   sourceName,
				MatchedName:  candidate,
				Confidence:   0.85,
				StrategyUsed: s.Tag(),
				MatchFound:   true,
			}
		}
	}

	return noMatch(s.Tag(), sourceName)
}

// substringStrategy: one normalized name contains the other. Confidence is
// the length ratio scaled by 0.75, so a near-total overlap is required to
// clear the acceptance threshold.
type substringStrategy struct{}

func (substringStrategy) Tag() mapping.Strategy { return mapping.StrategySubstringMatching }
func (substringStrategy) Threshold() float64    { return 0.75 }

func (s substringStrategy) Match(sourceName string, candidates []string) mapping.MatchResult {
	normalizedSource := Normalize(sourceName)
	if normalizedSource == "" {
		return noMatch(s.Tag(), sourceName)
	}

	bestMatch := ""
	bestConfidence := 0.0
	alternatives := make([]string, 0, mapping.MaxAlternatives)

	for _, candidate := range candidates {
		normalizedCandidate := Normalize(candidate)
		if normalizedCandidate == "" {
			continue
		}
		if !strings.Contains(normalizedSource, normalizedCandidate) && !strings.Contains(normalizedCandidate, normalizedSource) {
			continue
		}

		shorter := min(len(normalizedSource), len(normalizedCandidate))
		longer := max(len(normalizedSource), len(normalizedCandidate))
		confidence := float64(shorter) / float64(longer) * 0.75

		switch {
		case confidence > bestConfidence:
			if bestMatch != "" {
				alternatives = append(alternatives, bestMatch)
			}
			bestMatch = candidate
			bestConfidence = confidence
		case confidence > 0.5*0.75:
			alternatives = append(alternatives, candidate)
		}
	}

	return mapping.MatchResult{
		SourceName:   sourceName,
		MatchedName:  bestMatch,
		Confidence:   bestConfidence,
		StrategyUsed: s.Tag(),
		MatchFound:   bestConfidence > 0,
		Alternatives: capAlternatives(alternatives),
	}
}

// wordBasedStrategy: Jaccard similarity of normalized word sets, scaled by
// 0.7. Candidates above the 0.3 similarity floor that are not the best
// become alternatives.
type wordBasedStrategy struct{}

func (wordBasedStrategy) Tag() mapping.Strategy { return mapping.StrategyWordBasedMatching }
func (wordBasedStrategy) Threshold() float64    { return 0.70 }

func (s wordBasedStrategy) Match(sourceName string, candidates []string) mapping.MatchResult {
	normalizedSource := Normalize(sourceName)

	bestMatch := ""
	bestConfidence := 0.0
	alternatives := make([]string, 0, mapping.MaxAlternatives)

	for _, candidate := range candidates {
		similarity := jaccardWords(normalizedSource, Normalize(candidate))
		if similarity <= 0.3 {
			continue
		}
		confidence := similarity * 0.7

		if confidence > bestConfidence {
			if bestMatch != "" {
				alternatives = append(alternatives, bestMatch)
			}
			bestMatch = candidate
			bestConfidence = confidence
			continue
		}
		alternatives = append(alternatives, candidate)
	}

	return mapping.MatchResult{
		SourceName:   sourceName,
		MatchedName:  bestMatch,
		Confidence:   bestConfidence,
		StrategyUsed: s.Tag(),
		MatchFound:   bestConfidence > 0,
		Alternatives: capAlternatives(alternatives),
	}
}

// fuzzyStrategy: token-agnostic sequence similarity between normalized
// names, scaled by 0.6. Candidates below 0.4 raw similarity are ignored
// entirely; the best of the rest becomes the match and the next three its
// alternatives. This is the cascade's last resort and its result doubles
// as the fallback answer when every strategy fails.
type fuzzyStrategy struct{}

func (fuzzyStrategy) Tag() mapping.Strategy { return mapping.StrategyFuzzyMatching }
func (fuzzyStrategy) Threshold() float64    { return 0.60 }

func (s fuzzyStrategy) Match(sourceName string, candidates []string) mapping.MatchResult {
	normalizedSource := Normalize(sourceName)

	type scored struct {
		candidate  string
		similarity float64
	}
	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		similarity := sequenceRatio(normalizedSource, Normalize(candidate))
		if similarity > 0.4 {
			matches = append(matches, scored{candidate: candidate, similarity: similarity})
		}
	}

	if len(matches) == 0 {
		return noMatch(s.Tag(), sourceName)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	confidence := matches[0].similarity * 0.6
	alternatives := make([]string, 0, mapping.MaxAlternatives)
	for _, m := range matches[1:] {
		if len(alternatives) == mapping.MaxAlternatives {
			break
		}
		alternatives = append(alternatives, m.candidate)
	}

	return mapping.MatchResult{
		SourceName:   sourceName,
		MatchedName:  matches[0].candidate,
		Confidence:   confidence,
		StrategyUsed: s.Tag(),
		MatchFound:   confidence >= 0.3,
		Alternatives: alternatives,
	}
}

func capAlternatives(alternatives []string) []string {
	if len(alternatives) == 0 {
		return nil
	}
	if len(alternatives) > mapping.MaxAlternatives {
		alternatives = alternatives[:mapping.MaxAlternatives]
	}

	return alternatives
}
