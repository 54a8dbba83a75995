package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	mappingmock "github.com/riskibarqy/team-resolver/internal/mocks/domain/mapping"
	"github.com/riskibarqy/team-resolver/internal/platform/logging"
)

func TestResolutionService_Resolve_ManualMappingUsingMockery(t *testing.T) {
	learnedRepo := mappingmock.NewLearnedRepository(t)
	attemptRepo := mappingmock.NewAttemptRepository(t)

	learnedRepo.
		On("ListTrusted", mock.Anything).
		Return([]mapping.LearnedMapping{}, nil).
		Once()
	attemptRepo.
		On("Append", mock.Anything, mock.MatchedBy(func(r mapping.AttemptRecord) bool {
			return r.SourceName == "Manchester United" &&
				r.MatchedName == "Manchester Utd" &&
				r.StrategyUsed == mapping.StrategyManualMapping &&
				r.Success
		})).
		Return(nil).
		Once()

	manual := map[string]string{"Manchester United": "Manchester Utd"}
	service := NewResolutionService(manual, learnedRepo, attemptRepo, ResolutionConfig{LearningEnabled: false}, logging.NewNop())

	got, err := service.Resolve(context.Background(), "Manchester United", []string{"Manchester Utd", "Liverpool"}, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.StrategyUsed != mapping.StrategyManualMapping {
		t.Fatalf("unexpected strategy: %s", got.StrategyUsed)
	}
	if got.MatchedName != "Manchester Utd" {
		t.Fatalf("unexpected matched name: %s", got.MatchedName)
	}
}

func TestResolutionService_Resolve_StoreFailuresDegradeUsingMockery(t *testing.T) {
	learnedRepo := mappingmock.NewLearnedRepository(t)
	attemptRepo := mappingmock.NewAttemptRepository(t)

	learnedRepo.
		On("ListTrusted", mock.Anything).
		Return(nil, errors.New("connection refused")).
		Once()
	attemptRepo.
		On("Append", mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).
		Once()

	service := NewResolutionService(
		map[string]string{},
		learnedRepo,
		attemptRepo,
		ResolutionConfig{LearningEnabled: false},
		logging.NewNop(),
	)

	got, err := service.Resolve(context.Background(), "Arsenal", []string{"Arsenal"}, "")
	if err != nil {
		t.Fatalf("resolve should survive store failures: %v", err)
	}
	if got.StrategyUsed != mapping.StrategyExactMatch || got.Confidence != 1.0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestResolutionService_Resolve_LearnsHighConfidenceMatchUsingMockery(t *testing.T) {
	learnedRepo := mappingmock.NewLearnedRepository(t)
	attemptRepo := mappingmock.NewAttemptRepository(t)

	// Only the initial snapshot load hits the store; the learning write
	// lands in the in-process snapshot without a reload.
	learnedRepo.
		On("ListTrusted", mock.Anything).
		Return([]mapping.LearnedMapping{}, nil).
		Once()
	learnedRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(m mapping.LearnedMapping) bool {
			return m.SourceName == "Arsenal" &&
				m.MatchedName == "Arsenal" &&
				m.Confidence == 1.0 &&
				m.StrategyUsed == mapping.StrategyExactMatch &&
				!m.Verified
		})).
		Return(nil).
		Once()
	attemptRepo.
		On("Append", mock.Anything, mock.Anything).
		Return(nil).
		Once()

	service := NewResolutionService(
		map[string]string{},
		learnedRepo,
		attemptRepo,
		ResolutionConfig{LearningEnabled: true, LearnMinConfidence: 0.8},
		logging.NewNop(),
	)

	if _, err := service.Resolve(context.Background(), "Arsenal", []string{"Arsenal"}, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}
