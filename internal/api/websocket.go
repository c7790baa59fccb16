package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/scriptorium/core/citation"
	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/internal/logging"
	"github.com/FocuswithJustin/scriptorium/internal/server"
)

const (
	wsMaxMessageSize = 4096
	wsMessageRate    = 10 // messages per second, burst of twice that
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = 54 * time.Second
	wsWriteWait      = 10 * time.Second
)

// CitationReply answers one WebSocket citation frame.
type CitationReply struct {
	Reference string                      `json:"reference"`
	Canonical string                      `json:"canonical,omitempty"`
	Valid     bool                        `json:"valid"`
	Verses    []corpus.VerseWithReference `json:"verses,omitempty"`
	Error     string                      `json:"error,omitempty"`
}

// Client is one WebSocket connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *tokenBucket
}

// Hub tracks open WebSocket connections so shutdown can close them.
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.Mutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logging.WebSocketEvent("client_connected", n)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		logging.WebSocketEvent("client_disconnected", n)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll closes every connection. The pumps notice and unregister.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.conn.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if !s.cors.OriginAllowed(origin) {
		logging.SecurityEvent("websocket_origin_rejected", "api", "origin", origin)
		respondError(w, http.StatusForbidden, "FORBIDDEN", "origin not allowed")
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true }, // checked above
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:     s.hub,
		conn:    conn,
		send:    make(chan []byte, 16),
		limiter: newTokenBucket(2*wsMessageRate, wsMessageRate, time.Now),
	}
	s.hub.register(client)

	go client.writePump()
	go client.readPump(s.lookup)
}

// lookup answers a citation frame.
func (s *Server) lookup(text string) CitationReply {
	reply := CitationReply{Reference: text}

	rc, err := citation.Parse(text)
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	canonical, err := s.citations.Canonical(text)
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	reply.Canonical = canonical.String()
	reply.Valid = rc.IsValid(s.corpus)
	if reply.Valid {
		reply.Verses = slices.Collect(s.corpus.VersesMatching(rc))
	}
	return reply
}

// readPump reads citation frames and queues one reply per frame.
func (c *Client) readPump(lookup func(string) CitationReply) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(wsMaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("websocket closed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var reply CitationReply
		if !c.limiter.allow() {
			reply = CitationReply{Error: "rate limit exceeded"}
		} else {
			text := server.LimitStringLength(server.SanitizeUserInput(string(data)), wsMaxMessageSize)
			reply = lookup(text)
		}

		out, err := json.Marshal(reply)
		if err != nil {
			logging.Error("failed to marshal websocket reply", "error", err)
			continue
		}
		select {
		case c.send <- out:
		default:
			logging.Warn("websocket send queue full, dropping reply")
		}
	}
}

// writePump writes queued replies and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
