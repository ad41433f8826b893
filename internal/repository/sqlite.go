package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

var (
	// ErrBusy surfaces after lock-contention retries are exhausted. Callers
	// may retry the whole operation.
	ErrBusy = errors.New("store busy")
	// ErrConflict marks constraint violations. Never retried.
	ErrConflict = errors.New("store rejected")
)

// SQLiteRepository is the shared persistence gateway embedded by every
// repository. Writes go through a bounded retry loop; readers run directly
// against the pool since WAL keeps them off the writer's lock.
type SQLiteRepository struct {
	db         *sql.DB
	retryCount int
	retryDelay time.Duration
	logger     zerolog.Logger
}

func NewSQLiteRepository(db *sql.DB, cfg config.DatabaseConfig, logger zerolog.Logger) *SQLiteRepository {
	retryCount := cfg.RetryCount
	if retryCount < 1 {
		retryCount = 1
	}

	return &SQLiteRepository{
		db:         db,
		retryCount: retryCount,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// Retry runs op up to the configured attempt bound, sleeping the fixed delay
// between attempts, and only for transient lock errors. Any other failure
// propagates immediately, with constraint violations tagged ErrConflict.
func (r *SQLiteRepository) Retry(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.retryCount; attempt++ {
		if attempt > 1 {
			r.logger.Warn().Int("attempt", attempt).Msg("Retrying statement after lock contention")
			select {
			case <-time.After(r.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := op()
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			if isConstraintError(err) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %d attempts exhausted: %v", ErrBusy, r.retryCount, lastErr)
}

// Exec executes a single write statement through the retry loop.
func (r *SQLiteRepository) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	var res sql.Result
	err := r.Retry(ctx, func() error {
		var execErr error
		res, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	return res, err
}

// WithTx runs fn inside a transaction. On a lock error the whole transaction
// is rolled back and retried from scratch; the rollback is deferred so the
// connection is released on every exit path.
func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return r.Retry(ctx, func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

func (r *SQLiteRepository) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return r.db.QueryRowContext(ctx, query, args...)
}

func (r *SQLiteRepository) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, query, args...)
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func isLockError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
