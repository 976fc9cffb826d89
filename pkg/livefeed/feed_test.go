package livefeed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/domain/catalogs/product"
	"spottive/internal/domain/events"
	"spottive/internal/infrastructure/http/v1/handlers"
	"spottive/internal/realtime"
	"spottive/pkg/logger"
)

// feedServer is a minimal live-feed backend: a snapshot endpoint plus
// the real websocket handler wired to a real hub.
type feedServer struct {
	server *httptest.Server
	hub    *realtime.Hub

	mu       sync.Mutex
	snapshot []*product.Product
}

func newFeedServer(t *testing.T) *feedServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := &feedServer{hub: realtime.NewHub(logger.Default())}
	live := handlers.NewLiveHandler(fs.hub, logger.Default())

	router := gin.New()
	router.GET("/snapshot", func(c *gin.Context) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"items": fs.snapshot})
	})
	router.GET("/live", live.Serve)

	fs.server = httptest.NewServer(router)
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *feedServer) setSnapshot(items []*product.Product) {
	fs.mu.Lock()
	fs.snapshot = items
	fs.mu.Unlock()
}

func (fs *feedServer) feedURL() string {
	return "ws" + strings.TrimPrefix(fs.server.URL, "http") + "/live"
}

func (fs *feedServer) snapshotURL() string {
	return fs.server.URL + "/snapshot"
}

func TestFeedEndToEnd(t *testing.T) {
	fs := newFeedServer(t)
	a := testProduct("existing camera")
	fs.setSnapshot([]*product.Product{a})

	feed := NewFeed(FeedConfig{
		SnapshotURL: fs.snapshotURL(),
		FeedURL:     fs.feedURL(),
		Logger:      logger.Default(),
	})
	defer feed.Close()

	// Initial fetch populates the list and the feed comes up live.
	require.Eventually(t, func() bool {
		return !feed.Loading() && feed.Live() && fs.hub.SubscriberCount() == 1
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, []string{"existing camera"}, names(feed.Items()))
	assert.NoError(t, feed.Err())

	// A creation flows through: granular change then refresh.
	b := testProduct("new recorder")
	fs.setSnapshot([]*product.Product{b, a})
	fs.hub.Broadcast(events.Created(b))
	fs.hub.Broadcast(events.Refresh([]*product.Product{b, a}))

	require.Eventually(t, func() bool {
		got := names(feed.Items())
		return len(got) == 2 && got[0] == "new recorder"
	}, 5*time.Second, 10*time.Millisecond)

	// A deletion removes the product.
	fs.hub.Broadcast(events.Deleted(a.ID))
	fs.hub.Broadcast(events.Refresh([]*product.Product{b}))

	require.Eventually(t, func() bool {
		got := names(feed.Items())
		return len(got) == 1 && got[0] == "new recorder"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFeedReconnects(t *testing.T) {
	fs := newFeedServer(t)
	fs.setSnapshot([]*product.Product{})

	feed := NewFeed(FeedConfig{
		SnapshotURL: fs.snapshotURL(),
		FeedURL:     fs.feedURL(),
		Logger:      logger.Default(),
	})
	defer feed.Close()

	require.Eventually(t, feed.Live, 5*time.Second, 10*time.Millisecond)

	// Kill the server side of the connection; the client notices and
	// dials again.
	fs.server.CloseClientConnections()

	require.Eventually(t, func() bool {
		return feed.Live() && fs.hub.SubscriberCount() == 1
	}, 10*time.Second, 20*time.Millisecond)

	// Changes broadcast after the reconnect still arrive.
	p := testProduct("post-reconnect")
	fs.hub.Broadcast(events.Refresh([]*product.Product{p}))
	require.Eventually(t, func() bool {
		got := names(feed.Items())
		return len(got) == 1 && got[0] == "post-reconnect"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFeedSurvivesSnapshotFailure(t *testing.T) {
	fs := newFeedServer(t)

	feed := NewFeed(FeedConfig{
		SnapshotURL: fs.server.URL + "/missing",
		FeedURL:     fs.feedURL(),
		Logger:      logger.Default(),
	})
	defer feed.Close()

	require.Eventually(t, func() bool {
		return feed.Err() != nil && feed.Live() && fs.hub.SubscriberCount() == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, feed.Loading())

	// The first refresh notification recovers the list without a
	// successful initial fetch.
	p := testProduct("recovered")
	fs.hub.Broadcast(events.Refresh([]*product.Product{p}))

	require.Eventually(t, func() bool {
		return !feed.Loading() && len(feed.Items()) == 1
	}, 5*time.Second, 10*time.Millisecond)
}
