// Package sse provides Server-Sent Events support for pushing cache
// invalidations to connected admin clients.
package sse

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pos_admin_backend/platform/logger"
)

// Invalidation tells a client which query it should refetch.
type Invalidation struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}

// Hub manages SSE connections and broadcasts invalidations to all of
// them. Connections are not scoped; every admin client sees every
// invalidation.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Invalidation]struct{}
	log     *logger.Logger
}

// NewHub creates a new SSE hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[chan Invalidation]struct{}),
		log:     log,
	}
}

// Subscribe registers a listener and returns its channel plus a cancel
// func that must be called when the listener goes away.
func (h *Hub) Subscribe() (<-chan Invalidation, func()) {
	ch := make(chan Invalidation, 32)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast sends the invalidation to every connected client. Clients
// with a full buffer are skipped rather than blocking the publisher.
func (h *Hub) Broadcast(inv Invalidation) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- inv:
		default:
			if h.log != nil {
				h.log.Warn("sse client buffer full, invalidation dropped", "topic", inv.Topic)
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handler returns a Gin handler for SSE connections.
func (h *Hub) Handler(getUserID func(*gin.Context) (uuid.UUID, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		events, cancel := h.Subscribe()
		defer cancel()

		c.SSEvent("connected", gin.H{"userId": userID})
		c.Writer.Flush()

		if h.log != nil {
			h.log.Debug("sse client connected", "user", userID)
		}

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				if h.log != nil {
					h.log.Debug("sse client disconnected", "user", userID)
				}
				return
			case inv, ok := <-events:
				if !ok {
					return
				}
				c.SSEvent("invalidate", inv)
				c.Writer.Flush()
			}
		}
	}
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		close(ch)
	}
	h.clients = make(map[chan Invalidation]struct{})
}
