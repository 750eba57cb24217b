package searchapi

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// auditSchema is the canonical DDL for the search_audit table. Applied
// idempotently on every startup, the same way the ingest tool recreates
// its ingest_state table.
const auditSchema = `
CREATE TABLE IF NOT EXISTS search_audit (
    id           BIGSERIAL   PRIMARY KEY,
    query        TEXT        NOT NULL,
    result_count INT         NOT NULL,
    build_id     TEXT        NOT NULL,
    queried_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// AuditLog records every evaluated search query to Postgres for later
// analysis (most common queries, queries that return nothing, etc.).
// It is an optional collaborator: a Service with a nil *AuditLog simply
// skips recording.
type AuditLog struct {
	pool *pgxpool.Pool
}

// NewAuditLog connects to Postgres at dsn and ensures search_audit exists.
func NewAuditLog(ctx context.Context, dsn string) (*AuditLog, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, auditSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create search_audit: %w", err)
	}
	return &AuditLog{pool: pool}, nil
}

// Close shuts down the connection pool.
func (a *AuditLog) Close() {
	a.pool.Close()
}

// Record inserts one row for an evaluated query. Failures are the
// caller's to decide how to handle — this package logs and moves on,
// since an audit-trail write must never block a search response.
func (a *AuditLog) Record(ctx context.Context, query string, resultCount int, buildID string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := a.pool.Exec(ctx,
		`INSERT INTO search_audit (query, result_count, build_id) VALUES ($1, $2, $3)`,
		query, resultCount, buildID)
	return err
}
