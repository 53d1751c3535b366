package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/config"
	"github.com/pawup/shelter-api/internal/repository"
)

// ErrNotConfigured is returned by probes on a backend that was never connected.
var ErrNotConfigured = errors.New("backend not configured")

// Postgres owns the shelter database pool. The zero value and nil are valid
// and report ErrNotConfigured from Ping.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects when DATABASE_URL is set and otherwise returns an
// unconnected Postgres.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("DATABASE_URL not set, running without postgres")
		return &Postgres{}, nil
	}

	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres ready",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &Postgres{pool: pool}, nil
}

func poolConfig(cfg config.PostgresConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = min(cfg.MinConns, poolCfg.MaxConns)
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
	return poolCfg, nil
}

// Pool returns the pgx pool, nil when postgres is not configured.
func (p *Postgres) Pool() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.pool
}

// DB returns the handle repositories query through. Without a pool every
// call fails with ErrNotConfigured.
func (p *Postgres) DB() repository.DB {
	if pool := p.Pool(); pool != nil {
		return pool
	}
	return unconfiguredDB{}
}

// Ping backs the readiness probe.
func (p *Postgres) Ping(ctx context.Context) error {
	if p.Pool() == nil {
		return fmt.Errorf("postgres: %w", ErrNotConfigured)
	}
	return p.pool.Ping(ctx)
}

// Close releases the pool.
func (p *Postgres) Close() {
	if pool := p.Pool(); pool != nil {
		pool.Close()
	}
}

type unconfiguredDB struct{}

func (unconfiguredDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, fmt.Errorf("postgres: %w", ErrNotConfigured)
}

func (unconfiguredDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("postgres: %w", ErrNotConfigured)
}

func (unconfiguredDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: fmt.Errorf("postgres: %w", ErrNotConfigured)}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
