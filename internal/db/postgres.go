package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sims/internal/config"
	"github.com/yigit/sims/internal/pkg/dberrors"
	"github.com/yigit/sims/internal/pkg/logger"
	"github.com/yigit/sims/internal/pkg/retry"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so repository code runs
// unchanged inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBTX is a Querier that can also open transactions.
type DBTX interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresDB owns the connection pool and the retry policy for retryable
// transactions.
type PostgresDB struct {
	Pool    *pgxpool.Pool
	conn    DBTX
	retrier *retry.Retrier
}

// NewPostgresDB creates the pgx pool described by cfg and verifies it with a ping.
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	pg := Wrap(pool,
		retry.WithMaxAttempts(cfg.Retry.MaxAttempts),
		retry.WithInitialDelay(cfg.Retry.InitialDelay),
		retry.WithMaxDelay(cfg.Retry.MaxDelay),
		retry.WithMultiplier(cfg.Retry.Multiplier),
	)
	pg.Pool = pool
	return pg, nil
}

// Wrap builds a PostgresDB around an existing connection. Retry options tune the
// policy used by WithRetryTransaction; errors are classified by dberrors.IsTransient.
func Wrap(conn DBTX, opts ...retry.Option) *PostgresDB {
	opts = append([]retry.Option{
		retry.WithRetryIf(dberrors.IsTransient),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn().Err(err).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Transient database failure, retrying transaction")
		}),
	}, opts...)

	return &PostgresDB{conn: conn, retrier: retry.New(opts...)}
}

// Conn returns the connection used outside of transactions.
func (db *PostgresDB) Conn() DBTX {
	return db.conn
}

func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return nil
	}
	return db.Pool.Ping(ctx)
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
