package repository

import (
	"context"
	"database/sql"
	"fmt"

	"JaxSpot/internal/domain/models"
	"JaxSpot/internal/domain/repository"
)

// ClickHouseAnalytics implements AnalyticsSink over ClickHouse. Transitions
// and app usage land in append-only tables for offline analysis.
type ClickHouseAnalytics struct {
	db               *sql.DB
	transitionsTable string
	usageTable       string
}

// NewClickHouseAnalytics creates the ClickHouse-backed sink.
func NewClickHouseAnalytics(db *sql.DB, transitionsTable, usageTable string) repository.AnalyticsSink {
	return &ClickHouseAnalytics{db: db, transitionsTable: transitionsTable, usageTable: usageTable}
}

// SchemaStatements returns the idempotent DDL for the sink's tables.
func SchemaStatements(transitionsTable, usageTable string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts DateTime64(3),
			symbol LowCardinality(String),
			from_stage LowCardinality(String),
			to_stage LowCardinality(String),
			direction LowCardinality(String),
			score Float64,
			seq UInt64
		) ENGINE = MergeTree ORDER BY (symbol, ts)`, transitionsTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts DateTime64(3),
			app_id LowCardinality(String),
			user_id String,
			action LowCardinality(String)
		) ENGINE = MergeTree ORDER BY (app_id, ts)`, usageTable),
	}
}

func (s *ClickHouseAnalytics) Init(ctx context.Context) error {
	for _, stmt := range SchemaStatements(s.transitionsTable, s.usageTable) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseAnalytics) StoreTransition(ctx context.Context, ev *models.TransitionEvent) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, symbol, from_stage, to_stage, direction, score, seq) VALUES (?, ?, ?, ?, ?, ?, ?)", s.transitionsTable)
	_, err := s.db.ExecContext(ctx, q,
		ev.At,
		ev.Symbol,
		string(ev.From),
		string(ev.To),
		string(ev.Direction),
		ev.Score,
		ev.Seq,
	)
	return err
}

func (s *ClickHouseAnalytics) StoreUsage(ctx context.Context, ev *models.UsageEvent) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, app_id, user_id, action) VALUES (?, ?, ?, ?)", s.usageTable)
	_, err := s.db.ExecContext(ctx, q,
		ev.At,
		ev.AppID,
		ev.UserID,
		ev.Action,
	)
	return err
}

func (s *ClickHouseAnalytics) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseAnalytics) Close() error {
	return nil // Managed by pkg
}
