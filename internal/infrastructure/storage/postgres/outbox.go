package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"spottive/internal/core/id"
	"spottive/pkg/logger"
)

// OutboxChannel is the NOTIFY channel signalled after each committed
// catalog mutation.
const OutboxChannel = "catalog_changes"

// Outbox mutation kinds.
const (
	OutboxCreated = "created"
	OutboxUpdated = "updated"
	OutboxDeleted = "deleted"
)

// OutboxEntry is one committed mutation in the catalog mutation log.
// Seq is assigned at insert, not at commit: two overlapping
// transactions can commit in the opposite order of their seqs, so seq
// order is insert order and only approximates commit order. The
// refresh snapshot broadcast after every change carries the
// authoritative state, so a reordered pair never leaves consumers
// stale.
type OutboxEntry struct {
	Seq        int64      `db:"seq"`
	Kind       string     `db:"kind"`
	EntityID   id.ID      `db:"entity_id"`
	Payload    []byte     `db:"payload"`
	CreatedAt  time.Time  `db:"created_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
}

// Outbox is the transactional mutation log. Appends happen inside the
// mutating transaction, so the log entry commits atomically with the
// entity write and is never emitted for a rolled-back change.
type Outbox struct {
	txManager *TxManager
	log       *logger.Logger
	builder   sq.StatementBuilderType
}

// NewOutbox creates the outbox accessor.
func NewOutbox(txManager *TxManager, log *logger.Logger) *Outbox {
	return &Outbox{
		txManager: txManager,
		log:       log.WithComponent("outbox"),
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Append records a mutation. Must be called inside a transaction; the
// NOTIFY fires only when that transaction commits.
func (o *Outbox) Append(ctx context.Context, kind string, entityID id.ID, payload any) error {
	if txFromContext(ctx) == nil {
		return fmt.Errorf("outbox append outside transaction")
	}

	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal outbox payload: %w", err)
		}
	}

	q := o.txManager.GetQuerier(ctx)

	query, args, err := o.builder.
		Insert("catalog_outbox").
		Columns("kind", "entity_id", "payload").
		Values(kind, entityID, data).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return fmt.Errorf("build outbox insert: %w", err)
	}

	var seq int64
	if err := q.QueryRow(ctx, query, args...).Scan(&seq); err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}

	if _, err := q.Exec(ctx, "SELECT pg_notify($1, $2)", OutboxChannel, fmt.Sprint(seq)); err != nil {
		return fmt.Errorf("notify outbox channel: %w", err)
	}
	return nil
}

// Pending returns unconsumed entries in seq order.
func (o *Outbox) Pending(ctx context.Context, limit int) ([]OutboxEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := o.builder.
		Select("seq", "kind", "entity_id", "payload", "created_at", "consumed_at").
		From("catalog_outbox").
		Where(sq.Eq{"consumed_at": nil}).
		OrderBy("seq ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build outbox select: %w", err)
	}

	var entries []OutboxEntry
	if err := pgxscan.Select(ctx, o.txManager.GetQuerier(ctx), &entries, query, args...); err != nil {
		return nil, fmt.Errorf("select pending outbox entries: %w", err)
	}
	return entries, nil
}

// MarkConsumed marks an entry as delivered to the fan-out hub.
func (o *Outbox) MarkConsumed(ctx context.Context, seq int64) error {
	query, args, err := o.builder.
		Update("catalog_outbox").
		Set("consumed_at", sq.Expr("now()")).
		Where(sq.Eq{"seq": seq}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build outbox update: %w", err)
	}

	if _, err := o.txManager.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark outbox entry consumed: %w", err)
	}
	return nil
}

// Prune deletes consumed entries older than the retention window.
func (o *Outbox) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	query, args, err := o.builder.
		Delete("catalog_outbox").
		Where(sq.NotEq{"consumed_at": nil}).
		Where(sq.Expr("created_at < now() - make_interval(secs => ?)", retention.Seconds())).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build outbox prune: %w", err)
	}

	tag, err := o.txManager.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune outbox: %w", err)
	}
	return tag.RowsAffected(), nil
}
