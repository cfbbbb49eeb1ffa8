package realtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 256
)

// Client is a single websocket connection
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	UserID   uuid.UUID
	UserName string
	logger   *zap.Logger
}

// NewClient wraps an upgraded websocket connection
func NewClient(conn *websocket.Conn, userID uuid.UUID, userName string, logger *zap.Logger) *Client {
	return &Client{
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		UserID:   userID,
		UserName: userName,
		logger:   logger,
	}
}

// Send queues a message for delivery. Returns false when the client's
// buffer is full, meaning the message was dropped.
func (c *Client) Send(message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// Close closes the underlying connection
func (c *Client) Close() {
	c.conn.Close()
}

// WritePump drains the send channel onto the connection and keeps the
// connection alive with pings. Runs as a goroutine per client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump reads inbound frames, handing each to onMessage. onClose runs
// exactly once when the connection drops.
func (c *Client) ReadPump(onMessage func(client *Client, message []byte), onClose func(client *Client)) {
	defer func() {
		onClose(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		onMessage(c, message)
	}
}
