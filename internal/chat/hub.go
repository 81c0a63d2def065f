// Package chat relays live chat messages between connected users. The hub is
// a pass-through router: persistence belongs to the message repository, the
// hub only decides which open connections a message is copied to.
package chat

import (
	"context"
	"encoding/json"
	"sync"

	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository"
)

// Outgoing is the frame pushed to recipients.
type Outgoing struct {
	Type    string         `json:"type"`
	Message models.Message `json:"message"`
}

// Incoming is the frame a connected client sends.
type Incoming struct {
	RecipientID int64  `json:"recipient_id"`
	PropertyID  *int64 `json:"property_id,omitempty"`
	Body        string `json:"body"`
}

// sendBuffer caps the per-connection outbound queue. A client that cannot
// drain its queue is dropped instead of blocking delivery to everyone else.
const sendBuffer = 32

// client pairs a connection with its outbound queue. The queue is drained by
// exactly one writer goroutine; gorilla/websocket allows a single concurrent
// writer per connection, so all writes funnel through it.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks live connections per user and fans messages out to them.
type Hub struct {
	messages repository.MessageRepo
	logger   *slog.Logger

	mu    sync.RWMutex
	conns map[int64]map[*websocket.Conn]*client
}

func NewHub(messages repository.MessageRepo, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		messages: messages,
		logger:   logger,
		conns:    make(map[int64]map[*websocket.Conn]*client),
	}
}

// Register adds a connection for userID and starts its writer.
func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]*client)
	}
	h.conns[userID][conn] = c
	h.mu.Unlock()
	go h.writeLoop(userID, c)
}

// Unregister removes a connection for userID and closes its outbound queue,
// which stops the writer. It does not close the connection; the read loop
// owns that.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[userID]
	if !ok {
		return
	}
	c, ok := set[conn]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, userID)
	}
	close(c.send)
}

// ConnCount returns how many live connections userID has.
func (h *Hub) ConnCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Deliver persists a chat message and copies it to every live connection of
// the recipient and the sender. Offline recipients still get the message on
// their next conversation fetch; delivery to live sockets is best-effort.
func (h *Hub) Deliver(ctx context.Context, msg *models.Message) error {
	id, err := h.messages.CreateMessage(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = id

	frame, err := json.Marshal(Outgoing{Type: "message", Message: *msg})
	if err != nil {
		return err
	}

	h.fanOut(msg.RecipientID, frame)
	if msg.SenderID != msg.RecipientID {
		h.fanOut(msg.SenderID, frame)
	}
	return nil
}

// fanOut queues the frame on every live connection of userID. The read lock
// excludes Unregister, so a queue can never be closed mid-send.
func (h *Hub) fanOut(userID int64, frame []byte) {
	var stalled []*websocket.Conn

	h.mu.RLock()
	for conn, c := range h.conns[userID] {
		select {
		case c.send <- frame:
		default:
			stalled = append(stalled, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range stalled {
		h.logger.Warn("drop stalled chat connection", "user", userID)
		h.Unregister(userID, conn)
		_ = conn.Close()
	}
}

// writeLoop is the sole writer for one connection. It runs until the
// outbound queue closes or a write fails.
func (h *Hub) writeLoop(userID int64, c *client) {
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.logger.Warn("drop dead chat connection", "user", userID, "err", err)
			h.Unregister(userID, c.conn)
			_ = c.conn.Close()
			for range c.send {
			}
			return
		}
	}
}

// ReadLoop consumes frames from one client connection until it closes,
// delivering each chat message through the hub.
func (h *Hub) ReadLoop(ctx context.Context, userID int64, conn *websocket.Conn) {
	defer func() {
		h.Unregister(userID, conn)
		_ = conn.Close()
	}()

	for {
		var in Incoming
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		if in.RecipientID <= 0 || in.Body == "" {
			continue
		}

		msg := &models.Message{
			SenderID:    userID,
			RecipientID: in.RecipientID,
			PropertyID:  in.PropertyID,
			Body:        in.Body,
		}
		if err := h.Deliver(ctx, msg); err != nil {
			h.logger.Error("deliver chat message", "err", err)
		}
	}
}
