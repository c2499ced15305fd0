// Package store persists report rows in Postgres so successive runs can be
// compared. It is optional; the file report is always written.
package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gaurav-prasanna/articlescore/core"
)

const defaultTable = "article_metrics"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config controls the Postgres connection pool.
type Config struct {
	DSN      string
	Table    string
	MaxConns int32
}

type execCloser interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Close()
}

// MetricsStore writes report records into a Postgres table.
type MetricsStore struct {
	pool  execCloser
	table string
}

// New connects to Postgres using cfg.
func New(ctx context.Context, cfg Config) (*MetricsStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("report.postgres.dsn is required")
	}
	table, err := tableName(cfg.Table)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &MetricsStore{pool: pool, table: table}, nil
}

// NewWithPool constructs a store from an existing pool (primarily for testing).
func NewWithPool(pool execCloser, table string) (*MetricsStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}
	return &MetricsStore{pool: pool, table: name}, nil
}

func tableName(table string) (string, error) {
	if table == "" {
		table = defaultTable
	}
	if !validTableName.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	return table, nil
}

// Close releases the underlying pool resources.
func (s *MetricsStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// EnsureTable creates the metrics table when it does not exist.
func (s *MetricsStore) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	run_id                      TEXT             NOT NULL,
	url_id                      TEXT             NOT NULL,
	url                         TEXT             NOT NULL DEFAULT '',
	positive_score              INTEGER          NOT NULL,
	negative_score              INTEGER          NOT NULL,
	polarity_score              DOUBLE PRECISION NOT NULL,
	subjectivity_score          DOUBLE PRECISION NOT NULL,
	avg_sentence_length         DOUBLE PRECISION NOT NULL,
	percentage_complex_words    DOUBLE PRECISION NOT NULL,
	fog_index                   DOUBLE PRECISION NOT NULL,
	complex_word_count          INTEGER          NOT NULL,
	total_words                 INTEGER          NOT NULL,
	syllable_count              INTEGER          NOT NULL,
	personal_pronouns           INTEGER          NOT NULL,
	avg_word_length             DOUBLE PRECISION NOT NULL,
	created_at                  TIMESTAMPTZ      NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, url_id)
)`, s.table)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// SaveRecord inserts one report row for runID.
func (s *MetricsStore) SaveRecord(ctx context.Context, runID string, rec core.Record) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("metrics store is not configured")
	}
	if rec.URLID == "" {
		return fmt.Errorf("record url_id is required")
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	run_id,
	url_id,
	url,
	positive_score,
	negative_score,
	polarity_score,
	subjectivity_score,
	avg_sentence_length,
	percentage_complex_words,
	fog_index,
	complex_word_count,
	total_words,
	syllable_count,
	personal_pronouns,
	avg_word_length
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`, s.table)

	_, err := s.pool.Exec(ctx, query,
		runID,
		rec.URLID,
		rec.URL,
		rec.PositiveScore,
		rec.NegativeScore,
		rec.Polarity,
		rec.Subjectivity,
		rec.AvgSentenceLength,
		rec.PercentComplexWords,
		rec.FogIndex,
		rec.ComplexWordCount,
		rec.TotalWords,
		rec.SyllableCount,
		rec.PersonalPronouns,
		rec.AvgWordLength,
	)
	if err != nil {
		return fmt.Errorf("insert %s into %s: %w", rec.URLID, s.table, err)
	}
	return nil
}
