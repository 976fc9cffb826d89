package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"spottive/internal/core/tx"
	"spottive/pkg/logger"
)

// Querier is the subset of pgx used by repositories. Both pgxpool.Pool
// and pgx.Tx satisfy it, so repositories work inside and outside
// transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txContextKey struct{}

// TxManager implements tx.Manager on pgx. The active transaction is
// carried in the context; nested RunInTransaction calls join it.
type TxManager struct {
	pool             *pgxpool.Pool
	log              *logger.Logger
	tracer           trace.Tracer
	statementTimeout time.Duration
}

// TxManagerConfig holds transaction manager settings.
type TxManagerConfig struct {
	// StatementTimeout is applied per transaction via SET LOCAL.
	StatementTimeout time.Duration
}

// NewTxManager creates a TxManager.
func NewTxManager(pool *pgxpool.Pool, cfg TxManagerConfig, log *logger.Logger) *TxManager {
	if cfg.StatementTimeout <= 0 {
		cfg.StatementTimeout = 30 * time.Second
	}
	return &TxManager{
		pool:             pool,
		log:              log.WithComponent("tx-manager"),
		tracer:           otel.Tracer("spottive/storage/postgres"),
		statementTimeout: cfg.StatementTimeout,
	}
}

var _ tx.Manager = (*TxManager)(nil)

// RunInTransaction executes fn within a transaction. Joins an already
// active transaction if the context carries one.
func (m *TxManager) RunInTransaction(ctx context.Context, fn tx.TxFunc) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	ctx, span := m.tracer.Start(ctx, "postgres.transaction")
	defer span.End()

	pgxTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.SetStatus(codes.Error, "begin failed")
		return fmt.Errorf("begin transaction: %w", err)
	}

	timeout := fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", m.statementTimeout.Milliseconds())
	if _, err := pgxTx.Exec(ctx, timeout); err != nil {
		_ = pgxTx.Rollback(ctx)
		return fmt.Errorf("set statement timeout: %w", err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, pgxTx)
	if err := fn(txCtx); err != nil {
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			m.log.WithContext(ctx).Errorw("rollback failed", "error", rbErr)
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		span.SetStatus(codes.Error, "commit failed")
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInTransactionWithRetry retries fn on serialization failures and
// deadlocks (SQLSTATE 40001, 40P01).
func (m *TxManager) RunInTransactionWithRetry(ctx context.Context, maxRetries int, fn tx.TxFunc) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = m.RunInTransaction(ctx, fn)
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}
		m.log.WithContext(ctx).Warnw("retrying transaction",
			"attempt", attempt+1,
			"error", lastErr,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// GetQuerier returns the transaction from the context if present,
// otherwise the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if pgxTx := txFromContext(ctx); pgxTx != nil {
		return pgxTx
	}
	return m.pool
}

func txFromContext(ctx context.Context) pgx.Tx {
	pgxTx, _ := ctx.Value(txContextKey{}).(pgx.Tx)
	return pgxTx
}
