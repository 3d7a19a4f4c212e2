package websocket

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"golang.org/x/time/rate"
)

// Maximum message size allowed from peer.
const maxMessageSize = 1024

// ClientConfig holds per-connection timings and limits.
type ClientConfig struct {
	// Time allowed to write a message to the peer.
	WriteWait time.Duration
	// Time allowed to read the next pong message from the peer.
	PongWait time.Duration
	// Send pings to peer with this period. Must be less than PongWait.
	PingInterval time.Duration
	SendBuffer   int
	// Control messages (join-room, leave-room) per second and burst.
	ControlRate  float64
	ControlBurst int
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongWait {
		c.PingInterval = (c.PongWait * 9) / 10
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 256
	}
	if c.ControlRate <= 0 {
		c.ControlRate = 10
	}
	if c.ControlBurst <= 0 {
		c.ControlBurst = 20
	}
	return c
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	ID    uuid.UUID
	Actor domain.Actor

	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of encoded outbound events. Closed by the hub.
	Send chan []byte

	closeOnce sync.Once
	limiter   *rate.Limiter
	cfg       ClientConfig
	logger    *slog.Logger
}

// NewClient creates a new WebSocket client for an authenticated actor.
func NewClient(hub *Hub, conn *websocket.Conn, actor domain.Actor) *Client {
	cfg := hub.clientConfig
	id := uuid.New()
	return &Client{
		ID:      id,
		Actor:   actor,
		hub:     hub,
		conn:    conn,
		Send:    make(chan []byte, cfg.SendBuffer),
		limiter: rate.NewLimiter(rate.Limit(cfg.ControlRate), cfg.ControlBurst),
		cfg:     cfg,
		logger: hub.logger.With(
			"connection_id", id.String(),
			"user_id", actor.UserID.String(),
			"tenant_id", actor.TenantID.String(),
		),
	}
}

// CloseSend safely closes the Send channel exactly once
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// ReadPump pumps messages from the websocket connection to the hub.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait)); err != nil {
			c.logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		if !c.limiter.Allow() {
			c.logger.Warn("control message rate exceeded, dropping")
			continue
		}

		c.handleIncomingMessage(message)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
// This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The hub closed the channel.
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to send close message", "error", err)
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// --- Incoming Message Handling ---

const (
	MessageJoinRoom  = "join-room"
	MessageLeaveRoom = "leave-room"
)

// ClientMessage is the structure for messages sent from the client.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RoomPayload is the object form of a join-room or leave-room payload.
type RoomPayload struct {
	Room string `json:"room"`
}

// roomFromPayload accepts either a bare string or {"room": "..."}.
func roomFromPayload(payload json.RawMessage) (string, bool) {
	var room string
	if err := json.Unmarshal(payload, &room); err == nil {
		return room, room != ""
	}

	var p RoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return "", false
	}
	return p.Room, p.Room != ""
}

// handleIncomingMessage processes messages received from the client
func (c *Client) handleIncomingMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Warn("failed to unmarshal client message", "error", err)
		return
	}

	switch strings.ToLower(msg.Type) {
	case MessageJoinRoom:
		room, ok := roomFromPayload(msg.Payload)
		if !ok {
			c.logger.Warn("join-room without a room")
			return
		}
		c.hub.join(c, room)

	case MessageLeaveRoom:
		room, ok := roomFromPayload(msg.Payload)
		if !ok {
			c.logger.Warn("leave-room without a room")
			return
		}
		c.hub.leave(c, room)

	default:
		c.logger.Debug("received unknown message type", "type", msg.Type)
	}
}
