// Package postgres provides a pgx-backed column source for the metadata
// registry, reading column lists from information_schema.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Konsultn-Engineering/sqlt/schema"
)

// Config describes the connection for Connect.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
	Pool     PoolConfig
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

func (c Config) dsn() string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.Username, c.Password, c.Host, c.Port, c.Database)
	if c.SSLMode != "" {
		dsn += "?sslmode=" + c.SSLMode
	}
	return dsn
}

// Connect opens a pgx pool and wraps it as a Source. The caller owns the
// source and must Close it.
func Connect(ctx context.Context, cfg Config) (*Source, error) {
	// apply defaults
	if cfg.Pool.MaxOpen <= 0 {
		cfg.Pool.MaxOpen = 10
	}
	if cfg.Pool.MaxIdle < 0 {
		cfg.Pool.MaxIdle = 5
	}
	if cfg.Pool.MaxLifetime == 0 {
		cfg.Pool.MaxLifetime = time.Hour
	}
	if cfg.Pool.MaxIdleTime == 0 {
		cfg.Pool.MaxIdleTime = 30 * time.Minute
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.dsn())
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MinConns = int32(cfg.Pool.MaxIdle)
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return NewSource(pool), nil
}

// Source reads column lists from information_schema.columns.
type Source struct {
	pool *pgxpool.Pool
}

// NewSource wraps an existing pool. The pool stays owned by the caller.
func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

const columnsQuery = `
SELECT column_name
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`

// Columns returns the table's columns in ordinal order. The schema defaults
// to "public". An unknown table is an error, not an empty list.
func (s *Source) Columns(ctx context.Context, schemaName, table string) ([]string, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	rows, err := s.pool.Query(ctx, columnsQuery, schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("relation %s.%s not found", schemaName, table)
	}
	return columns, nil
}

// Health verifies the connection is alive.
func (s *Source) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the underlying pool.
func (s *Source) Close() {
	s.pool.Close()
}

var _ schema.ColumnSource = (*Source)(nil)
