// Package livefeed is the Go client for the live catalog feed: a
// reconnecting websocket consumer plus the reconciliation logic that
// keeps a local product list converged with the server.
package livefeed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"spottive/internal/domain/events"
	"spottive/pkg/backoff"
	"spottive/pkg/logger"
)

// ClientConfig holds feed client settings.
type ClientConfig struct {
	// URL is the websocket endpoint, e.g. ws://host/api/v1/live.
	URL string
	// Backoff paces reconnect attempts. Defaults to 1s doubling to 30s.
	Backoff backoff.Strategy
	// HandshakeTimeout bounds the websocket dial.
	HandshakeTimeout time.Duration
	// Buffer is the capacity of the delivered change channel.
	Buffer int
	Logger *logger.Logger
}

// Client consumes the live feed. It reconnects forever with backoff
// until closed; IsConnected reports the current link state.
type Client struct {
	cfg       ClientConfig
	dialer    *websocket.Dialer
	changes   chan events.Change
	connected atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a feed client and starts its connection loop.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Backoff == nil {
		cfg.Backoff = backoff.Default()
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		changes: make(chan events.Change, cfg.Buffer),
		ctx:     ctx,
		cancel:  cancel,
	}

	c.wg.Add(1)
	go c.run()
	return c
}

// Changes returns the delivered change stream. The channel closes when
// the client is closed.
func (c *Client) Changes() <-chan events.Change {
	return c.changes
}

// IsConnected reports whether the feed link is currently up.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Close stops the connection loop and closes the change stream.
func (c *Client) Close() {
	c.cancel()
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Client) run() {
	defer c.wg.Done()
	defer close(c.changes)

	attempt := 0
	for {
		if c.ctx.Err() != nil {
			return
		}

		if err := c.consume(); err == nil {
			// Connection was up and then lost; restart promptly.
			attempt = 0
		}
		if c.ctx.Err() != nil {
			return
		}

		if backoff.Sleep(c.ctx, c.cfg.Backoff, attempt) != nil {
			return
		}
		attempt++
	}
}

// consume holds one connection. A nil return means the link was
// established and later dropped; an error means the dial itself failed.
func (c *Client) consume() error {
	conn, _, err := c.dialer.DialContext(c.ctx, c.cfg.URL, nil)
	if err != nil {
		c.cfg.Logger.Debugw("feed dial failed", "url", c.cfg.URL, "error", err)
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.connected.Store(true)
	c.cfg.Logger.Infow("feed connected", "url", c.cfg.URL)
	defer func() {
		c.connected.Store(false)
		conn.Close()
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				c.cfg.Logger.Warnw("feed connection lost", "error", err)
			}
			return nil
		}

		change, err := events.Decode(data)
		if err != nil {
			c.cfg.Logger.Warnw("skipping malformed feed message", "error", err)
			continue
		}

		select {
		case c.changes <- change:
		case <-c.ctx.Done():
			return nil
		}
	}
}
