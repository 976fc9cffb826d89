package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"spottive/internal/domain/catalogs/product"
	"spottive/internal/domain/events"
	"spottive/internal/infrastructure/storage/postgres"
	"spottive/pkg/backoff"
	"spottive/pkg/logger"
)

// ProductSource provides the full catalog for refresh notifications.
type ProductSource interface {
	Snapshot(ctx context.Context) ([]*product.Product, error)
}

// CaptureConfig holds change capture settings.
type CaptureConfig struct {
	// MaxAttempts bounds consecutive failed subscription attempts
	// before capture gives up for the process lifetime.
	MaxAttempts int
	Backoff     backoff.Strategy
	BatchSize   int
}

// Capture tails the catalog mutation log and broadcasts each committed
// change through the hub, followed by a full snapshot. It holds a
// dedicated LISTEN connection and drains the log backlog in commit
// order, so changes committed while nobody was listening are still
// delivered.
type Capture struct {
	pool     *pgxpool.Pool
	outbox   *postgres.Outbox
	products ProductSource
	hub      *Hub
	cfg      CaptureConfig
	log      *logger.Logger
}

// NewCapture creates the change capture worker.
func NewCapture(
	pool *pgxpool.Pool,
	outbox *postgres.Outbox,
	products ProductSource,
	hub *Hub,
	cfg CaptureConfig,
	log *logger.Logger,
) *Capture {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Backoff == nil {
		cfg.Backoff = backoff.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Capture{
		pool:     pool,
		outbox:   outbox,
		products: products,
		hub:      hub,
		cfg:      cfg,
		log:      log.WithComponent("capture"),
	}
}

// Run blocks until ctx is cancelled or the subscription fails
// MaxAttempts times in a row. Mutations keep working either way; only
// live notification stops when Run returns early.
func (c *Capture) Run(ctx context.Context) {
	attempt := 0
	for {
		established, err := c.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if established {
			attempt = 0
		}
		attempt++
		if attempt >= c.cfg.MaxAttempts {
			c.log.Errorw("change capture disabled: subscription kept failing",
				"attempts", attempt,
				"error", err,
			)
			return
		}
		c.log.Warnw("change subscription lost, retrying",
			"attempt", attempt,
			"error", err,
		)
		if backoff.Sleep(ctx, c.cfg.Backoff, attempt-1) != nil {
			return
		}
	}
}

// listen holds one LISTEN connection. It reports whether the
// subscription was established before the returned error.
func (c *Capture) listen(ctx context.Context) (bool, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+postgres.OutboxChannel); err != nil {
		return false, fmt.Errorf("listen on %s: %w", postgres.OutboxChannel, err)
	}
	c.log.Infow("change capture subscribed", "channel", postgres.OutboxChannel)

	// Deliver whatever committed while nobody was listening.
	if err := c.drain(ctx); err != nil {
		return true, err
	}

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return true, fmt.Errorf("wait for notification: %w", err)
		}
		if err := c.drain(ctx); err != nil {
			return true, err
		}
	}
}

// drain delivers all pending mutation log entries in seq order.
// Each granular change is followed by a full catalog snapshot, so a
// client that misses or drops a change converges on the next refresh.
func (c *Capture) drain(ctx context.Context) error {
	for {
		entries, err := c.outbox.Pending(ctx, c.cfg.BatchSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		for _, entry := range entries {
			change, err := entryToChange(entry)
			if err != nil {
				// A malformed entry can never become deliverable;
				// consume it so it cannot wedge the log.
				c.log.Errorw("skipping malformed mutation log entry",
					"seq", entry.Seq,
					"error", err,
				)
			} else {
				c.hub.Broadcast(change)
				c.broadcastSnapshot(ctx)
			}

			if err := c.outbox.MarkConsumed(ctx, entry.Seq); err != nil {
				return err
			}
		}
	}
}

func (c *Capture) broadcastSnapshot(ctx context.Context) {
	snapshot, err := c.products.Snapshot(ctx)
	if err != nil {
		c.log.Errorw("failed to load catalog snapshot", "error", err)
		return
	}
	c.hub.Broadcast(events.Refresh(snapshot))
}

// entryToChange maps a mutation log entry onto the change union.
func entryToChange(entry postgres.OutboxEntry) (events.Change, error) {
	switch entry.Kind {
	case postgres.OutboxCreated, postgres.OutboxUpdated:
		var p product.Product
		if err := json.Unmarshal(entry.Payload, &p); err != nil {
			return events.Change{}, fmt.Errorf("decode product payload: %w", err)
		}
		if entry.Kind == postgres.OutboxCreated {
			return events.Created(&p), nil
		}
		return events.Updated(&p), nil
	case postgres.OutboxDeleted:
		return events.Deleted(entry.EntityID), nil
	default:
		return events.Change{}, fmt.Errorf("unknown mutation kind %q", entry.Kind)
	}
}
