package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/dberrors"
	"github.com/yigit/sims/internal/pkg/logger"
)

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn inside a transaction. The transaction is rolled back
// when fn returns an error or panics and committed otherwise.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := db.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WithRetryTransaction runs fn in a fresh transaction, starting over from the
// beginning after each transient failure. fn must therefore be safe to run more
// than once. When the attempts are exhausted the last error is reported wrapped
// in apperrors.ErrTransientStorage; other errors are returned as they are.
func (db *PostgresDB) WithRetryTransaction(ctx context.Context, fn TransactionFn) error {
	err := db.retrier.Do(ctx, func(ctx context.Context) error {
		return db.WithTransaction(ctx, fn)
	})
	if err != nil && dberrors.IsTransient(err) {
		return fmt.Errorf("%w: gave up after %d attempts: %w", apperrors.ErrTransientStorage, db.retrier.MaxAttempts(), err)
	}
	return err
}
