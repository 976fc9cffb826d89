package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"spottive/internal/realtime"
	"spottive/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// LiveHandler upgrades clients onto the live change feed. Each
// connection gets its own hub subscription; the feed itself is public,
// like the product listing it mirrors.
type LiveHandler struct {
	hub      *realtime.Hub
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// NewLiveHandler creates the live feed handler.
func NewLiveHandler(hub *realtime.Hub, log *logger.Logger) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		log: log.WithComponent("live"),
		upgrader: websocket.Upgrader{
			// The storefront runs on a different origin than the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve serves GET /live.
func (h *LiveHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.WithContext(c.Request.Context()).Warnw("websocket upgrade failed", "error", err)
		return
	}

	sub := h.hub.Subscribe()
	done := make(chan struct{})

	go h.writePump(conn, sub, done)
	go h.readPump(conn, sub, done)
}

// writePump pushes changes and pings to the client until the
// subscription closes or a write fails.
func (h *LiveHandler) writePump(conn *websocket.Conn, sub *realtime.Subscription, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	for {
		select {
		case change, ok := <-sub.Events():
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(change); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readPump discards client frames; its job is detecting disconnects
// and answering pings.
func (h *LiveHandler) readPump(conn *websocket.Conn, sub *realtime.Subscription, done chan struct{}) {
	defer func() {
		close(done)
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
