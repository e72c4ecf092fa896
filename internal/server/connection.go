package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Connection wraps one WebSocket client. After a create or join it is bound
// to a game and seat so state broadcasts can find it.
type Connection struct {
	conn      *websocket.Conn
	server    *Server
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	gameID    string
	seatToken string
}

// NewConnection creates a connection wrapper.
func NewConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		server: server,
		send:   make(chan *Message, 64),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the read and write pumps.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down. Safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Bind associates this connection with a game and seat.
func (c *Connection) Bind(gameID, seatToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = gameID
	c.seatToken = seatToken
}

// GameID returns the bound game id, if any.
func (c *Connection) GameID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID
}

// SeatToken returns the bound seat token, if any.
func (c *Connection) SeatToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seatToken
}

// Send queues a message for the client.
func (c *Connection) Send(msg *Message) error {
	defer func() {
		// The send channel closes during shutdown; dropping the frame then
		// is fine.
		if r := recover(); r != nil {
			c.logger.Debug("Send on closed connection", "recover", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// SendError reports a failed request back to the client.
func (c *Connection) SendError(message string) {
	c.sendPayload(TypeError, ErrorData{Message: message})
}

func (c *Connection) sendPayload(messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to encode message", "type", messageType, "error", err)
		return
	}
	if err := c.Send(msg); err != nil {
		c.logger.Debug("Failed to queue message", "type", messageType, "error", err)
	}
}

// readPump decodes client frames and hands them to the server until the
// connection drops.
func (c *Connection) readPump() {
	defer c.cancel()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("Read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.SendError("Malformed message.")
			continue
		}
		c.server.handleMessage(c, &msg)
	}
}

// writePump serializes queued messages and keeps the connection alive with
// pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("Write error", "error", err)
				c.cancel()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
