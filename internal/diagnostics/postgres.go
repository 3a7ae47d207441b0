package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octofit/dashboard/internal/models"
)

// PostgresStore keeps warnings in the load_warnings table
type PostgresStore struct {
	pool     *pgxpool.Pool
	capacity int
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN         string
	MaxConns    int32
	MaxLifetime time.Duration
	Capacity    int
}

// NewPostgresStore opens a pool, pings it and applies pending migrations
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	} else {
		poolConfig.MaxConns = 5
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	capacity := cfg.Capacity
	if capacity < 1 {
		capacity = 100
	}

	return &PostgresStore{pool: pool, capacity: capacity}, nil
}

// Record inserts w and prunes rows beyond the configured capacity
func (s *PostgresStore) Record(ctx context.Context, w models.Warning) error {
	query := `
		INSERT INTO load_warnings (id, load_id, resource, endpoint, shape, detail, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		w.ID,
		nullString(w.LoadID),
		w.Resource,
		w.Endpoint,
		w.Shape,
		nullString(w.Detail),
		w.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record warning: %w", err)
	}

	prune := `
		DELETE FROM load_warnings
		WHERE id NOT IN (
			SELECT id FROM load_warnings ORDER BY observed_at DESC LIMIT $1
		)
	`
	if _, err := s.pool.Exec(ctx, prune, s.capacity); err != nil {
		return fmt.Errorf("failed to prune warnings: %w", err)
	}

	return nil
}

// Recent returns up to limit warnings, newest first. limit <= 0 returns all.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]models.Warning, error) {
	if limit <= 0 {
		limit = s.capacity
	}

	query := `
		SELECT id::text, load_id, resource, endpoint, shape, detail, observed_at
		FROM load_warnings
		ORDER BY observed_at DESC
		LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}
	defer rows.Close()

	var out []models.Warning
	for rows.Next() {
		var w models.Warning
		var loadID, detail sql.NullString
		if err := rows.Scan(&w.ID, &loadID, &w.Resource, &w.Endpoint, &w.Shape, &detail, &w.ObservedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		w.LoadID = loadID.String
		w.Detail = detail.String
		out = append(out, w)
	}

	return out, rows.Err()
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
