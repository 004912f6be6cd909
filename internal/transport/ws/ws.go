// Package ws implements session.Transport over gorilla/websocket: one Hub
// per server process, one Client goroutine pair per connection, following
// the register/unregister/send-channel pattern common across the example
// pack's websocket servers.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 16
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// MessageHandler is invoked for every inbound frame, with the sending
// connection's id. Satisfied by (*session.Dispatcher).HandleMessage.
type MessageHandler func(connID string, raw []byte)

// DisconnectHandler is invoked once a connection's pumps have stopped.
// Satisfied by (*session.Dispatcher).Disconnect.
type DisconnectHandler func(connID string)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub owns every live connection and implements session.Transport.
type Hub struct {
	log *zap.Logger

	onMessage    MessageHandler
	onDisconnect DisconnectHandler

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(log *zap.Logger, onMessage MessageHandler, onDisconnect DisconnectHandler) *Hub {
	return &Hub{
		log:          log,
		onMessage:    onMessage,
		onDisconnect: onDisconnect,
		clients:      map[string]*client{},
	}
}

// Upgrade promotes an HTTP request to a websocket connection and starts its
// read/write pumps, returning the connection's newly assigned id.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (string, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return "", err
	}
	connID := uuid.NewString()
	c := &client{id: connID, conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[connID] = c
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
	return connID, nil
}

func (h *Hub) readPump(c *client) {
	defer h.drop(c)
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		h.onMessage(c.id, message)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	h.log.Debug("websocket connection closed", zap.String("connId", c.id))
	if h.onDisconnect != nil {
		h.onDisconnect(c.id)
	}
}

// SendToConnection implements session.Transport.
func (h *Hub) SendToConnection(connID string, raw []byte) error {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	select {
	case c.send <- raw:
	default:
		h.log.Warn("dropping message to slow connection", zap.String("connId", connID))
	}
	return nil
}

// BroadcastToConnections implements session.Transport.
func (h *Hub) BroadcastToConnections(connIDs []string, raw []byte) error {
	for _, id := range connIDs {
		_ = h.SendToConnection(id, raw)
	}
	return nil
}
