// Package memory provides mutex-guarded in-memory repositories. They back
// tests and let the API boot without a database for local development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
)

// trustedConfidenceFloor mirrors the persistent store's trust filter:
// unverified entries must exceed it to feed the resolver snapshot.
const trustedConfidenceFloor = 0.9

type learnedKey struct {
	source  string
	matched string
	context string
}

// LearnedRepository is an in-memory mapping.LearnedRepository.
type LearnedRepository struct {
	mu      sync.RWMutex
	entries map[learnedKey]mapping.LearnedMapping
}

func NewLearnedRepository() *LearnedRepository {
	return &LearnedRepository{
		entries: make(map[learnedKey]mapping.LearnedMapping),
	}
}

func (r *LearnedRepository) ListTrusted(_ context.Context) ([]mapping.LearnedMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mapping.LearnedMapping, 0, len(r.entries))
	for _, entry := range r.entries {
		if !entry.Verified && entry.Confidence <= trustedConfidenceFloor {
			continue
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	return out, nil
}

func (r *LearnedRepository) Upsert(_ context.Context, entry mapping.LearnedMapping) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	key := learnedKey{source: entry.SourceName, matched: entry.MatchedName, context: entry.Context}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[key]; ok {
		entry.CreatedAt = existing.CreatedAt
	}
	r.entries[key] = entry

	return nil
}

func (r *LearnedRepository) Delete(_ context.Context, sourceName, matchedName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.entries {
		if key.source == sourceName && key.matched == matchedName {
			delete(r.entries, key)
		}
	}

	return nil
}

func (r *LearnedRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries), nil
}
