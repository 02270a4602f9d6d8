package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/L-YS-Ayoussef/EchoPost/internal/bus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client is served from a different origin in development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WSHandler streams change events to live WebSocket clients. Each connection
// attaches an observer to the bus on upgrade and detaches when it closes.
// Clients joining later never see earlier events.
type WSHandler struct {
	Bus *bus.Bus
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(b *bus.Bus) *WSHandler {
	return &WSHandler{Bus: b}
}

// Stream godoc
// @Summary      Subscribe to live feed change events
// @Description  Upgrades the connection to WebSocket and streams change events as JSON
// @Tags         feed
// @Router       /ws/feed [get]
func (h *WSHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}

	observer := h.Bus.Attach()
	defer h.Bus.Detach(observer)
	defer conn.Close()

	log.Printf("[WS] Client connected: %s", conn.RemoteAddr())

	// Reader loop: we never expect client messages, but reading is required
	// to notice the peer closing the connection.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-observer.Events():
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("[WS] Write failed, dropping client %s: %v", conn.RemoteAddr(), err)
				return
			}
		case <-closed:
			log.Printf("[WS] Client disconnected: %s", conn.RemoteAddr())
			return
		}
	}
}
