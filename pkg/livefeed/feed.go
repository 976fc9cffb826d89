package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"spottive/internal/domain/catalogs/product"
	"spottive/pkg/logger"
)

// FeedConfig holds feed settings.
type FeedConfig struct {
	// SnapshotURL is the HTTP endpoint serving the full catalog,
	// e.g. http://host/api/v1/products/snapshot.
	SnapshotURL string
	// FeedURL is the websocket endpoint, e.g. ws://host/api/v1/live.
	FeedURL    string
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Feed is the full client-side view of the catalog: an initial fetch
// for the current state plus live changes keeping it converged. It
// mirrors what the storefront renders: items, a loading flag, the
// last fetch error and whether live updates are flowing.
type Feed struct {
	cfg    FeedConfig
	client *Client
	list   *List

	mu       sync.RWMutex
	fetchErr error

	wg sync.WaitGroup
}

// NewFeed starts a feed: it fetches the initial snapshot, connects to
// the live endpoint and reconciles changes until Close.
func NewFeed(cfg FeedConfig) *Feed {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	f := &Feed{
		cfg:  cfg,
		list: NewList(),
		client: NewClient(ClientConfig{
			URL:    cfg.FeedURL,
			Logger: cfg.Logger,
		}),
	}

	f.wg.Add(2)
	go f.fetchInitial()
	go f.consume()
	return f
}

// Items returns the current product list, newest first.
func (f *Feed) Items() []*product.Product {
	return f.list.Items()
}

// Loading reports whether the first snapshot is still pending.
func (f *Feed) Loading() bool {
	return f.list.Loading()
}

// Err returns the last initial-fetch error, nil once a snapshot has
// been loaded.
func (f *Feed) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fetchErr
}

// Live reports whether the change feed is currently connected.
func (f *Feed) Live() bool {
	return f.client.IsConnected()
}

// Close stops the feed.
func (f *Feed) Close() {
	f.client.Close()
	f.wg.Wait()
}

func (f *Feed) fetchInitial() {
	defer f.wg.Done()

	items, err := f.fetchSnapshot()
	if err != nil {
		f.mu.Lock()
		f.fetchErr = err
		f.mu.Unlock()
		f.cfg.Logger.Warnw("initial catalog fetch failed", "error", err)
		// A refresh notification will still populate the list once
		// the live feed connects.
		return
	}

	f.mu.Lock()
	f.fetchErr = nil
	f.mu.Unlock()
	if !f.list.SeedSnapshot(items) {
		f.cfg.Logger.Debugw("discarding fetched snapshot, live refresh arrived first")
	}
}

func (f *Feed) fetchSnapshot() ([]*product.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.SnapshotURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}

	resp, err := f.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Items []*product.Product `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return payload.Items, nil
}

func (f *Feed) consume() {
	defer f.wg.Done()
	for change := range f.client.Changes() {
		f.list.Apply(change)
	}
}
