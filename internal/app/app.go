package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/team-resolver/internal/config"
	"github.com/riskibarqy/team-resolver/internal/domain/mapping"
	"github.com/riskibarqy/team-resolver/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-resolver/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/team-resolver/internal/interfaces/httpapi"
	"github.com/riskibarqy/team-resolver/internal/platform/logging"
	"github.com/riskibarqy/team-resolver/internal/usecase"
)

const (
	dbMaxOpenConns    = 25
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
)

// NewHTTPServer wires the knowledge base, resolution pipeline, and HTTP
// surface into a ready-to-run server. The returned cleanup releases the
// database pool and must be called after the server stops. An empty DB_URL
// swaps in the in-memory repositories, which is intended for local runs
// only: learned mappings and the attempt log do not survive a restart.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	manual, err := mapping.LoadManualMappings(cfg.ManualMappingsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load manual mappings: %w", err)
	}

	var (
		learnedRepo mapping.LearnedRepository
		attemptRepo mapping.AttemptRepository
		readiness   httpapi.ReadinessCheck
		cleanup     = func() error { return nil }
	)

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL empty, using in-memory repositories")
		learnedRepo = memory.NewLearnedRepository()
		attemptRepo = memory.NewAttemptRepository()
	} else {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		learnedRepo = postgres.NewLearnedRepository(db)
		attemptRepo = postgres.NewAttemptRepository(db)
		readiness = db.PingContext
		cleanup = db.Close
	}

	resolutionSvc := usecase.NewResolutionService(
		manual,
		learnedRepo,
		attemptRepo,
		usecase.ResolutionConfig{
			LearningEnabled:    cfg.LearningEnabled,
			LearnMinConfidence: cfg.LearnMinConfidence,
			BatchWorkers:       cfg.BatchMaxWorkers,
		},
		logger,
	)
	reportSvc := usecase.NewReportService(attemptRepo, learnedRepo, resolutionSvc.ManualMappingCount(), logger)

	handler := httpapi.NewHandler(resolutionSvc, reportSvc, readiness, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	return db, nil
}
