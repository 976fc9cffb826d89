package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	appctx "spottive/internal/core/context"
	"spottive/internal/core/id"
	"spottive/pkg/logger"
)

// compressThreshold is the payload size above which audit snapshots
// are stored zstd-compressed.
const compressThreshold = 1024

// AuditEntry is one back-office action in the audit trail.
type AuditEntry struct {
	ID         id.ID     `db:"id" json:"id"`
	EntityType string    `db:"entity_type" json:"entityType"`
	EntityID   id.ID     `db:"entity_id" json:"entityId"`
	Action     string    `db:"action" json:"action"`
	Username   string    `db:"username" json:"username"`
	Snapshot   []byte    `db:"snapshot" json:"-"`
	Compressed bool      `db:"compressed" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Audit records who changed what. Records are written inside the
// mutating transaction so the trail never disagrees with the data.
type Audit struct {
	txManager *TxManager
	log       *logger.Logger
	builder   sq.StatementBuilderType

	encOnce sync.Once
	encoder *zstd.Encoder
	decOnce sync.Once
	decoder *zstd.Decoder
}

// NewAudit creates the audit accessor.
func NewAudit(txManager *TxManager, log *logger.Logger) *Audit {
	return &Audit{
		txManager: txManager,
		log:       log.WithComponent("audit"),
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Record writes an audit entry for an action on an entity. The entity
// state is stored as a JSON snapshot, compressed when large.
func (a *Audit) Record(ctx context.Context, action, entityType string, entityID id.ID, state any) error {
	snapshot, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal audit snapshot: %w", err)
	}

	compressed := false
	if len(snapshot) > compressThreshold {
		enc, err := a.getEncoder()
		if err == nil {
			snapshot = enc.EncodeAll(snapshot, nil)
			compressed = true
		} else {
			a.log.WithContext(ctx).Warnw("audit compression unavailable", "error", err)
		}
	}

	query, args, err := a.builder.
		Insert("catalog_audit").
		Columns("id", "entity_type", "entity_id", "action", "username", "snapshot", "compressed").
		Values(id.New(), entityType, entityID, action, appctx.Username(ctx), snapshot, compressed).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := a.txManager.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest audit entries, optionally filtered by
// entity type.
func (a *Audit) ListRecent(ctx context.Context, entityType string, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := a.builder.
		Select("id", "entity_type", "entity_id", "action", "username", "snapshot", "compressed", "created_at").
		From("catalog_audit").
		OrderBy("created_at DESC").
		Limit(uint64(limit))
	if entityType != "" {
		q = q.Where(sq.Eq{"entity_type": entityType})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit select: %w", err)
	}

	var entries []AuditEntry
	if err := pgxscan.Select(ctx, a.txManager.GetQuerier(ctx), &entries, query, args...); err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}
	return entries, nil
}

// DecodeSnapshot returns the entry's JSON snapshot, decompressing if
// needed.
func (a *Audit) DecodeSnapshot(entry AuditEntry) ([]byte, error) {
	if !entry.Compressed {
		return entry.Snapshot, nil
	}
	dec, err := a.getDecoder()
	if err != nil {
		return nil, err
	}
	return dec.DecodeAll(entry.Snapshot, nil)
}

func (a *Audit) getEncoder() (*zstd.Encoder, error) {
	var err error
	a.encOnce.Do(func() {
		a.encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	if a.encoder == nil {
		return nil, fmt.Errorf("zstd encoder unavailable: %w", err)
	}
	return a.encoder, nil
}

func (a *Audit) getDecoder() (*zstd.Decoder, error) {
	var err error
	a.decOnce.Do(func() {
		a.decoder, err = zstd.NewReader(nil)
	})
	if a.decoder == nil {
		return nil, fmt.Errorf("zstd decoder unavailable: %w", err)
	}
	return a.decoder, nil
}
