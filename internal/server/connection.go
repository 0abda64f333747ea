package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack-survival/internal/game"
	"github.com/lox/blackjack-survival/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = errors.New("connection closed")

// Connection is one WebSocket client and the game session it plays.
type Connection struct {
	id      string
	conn    *websocket.Conn
	send    chan any
	server  *Server
	session *game.Session // touched only by readPump after Start
	logger  *log.Logger
	idle    *quartz.Timer

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newConnection(id string, conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan any, 256),
		server: server,
		logger: server.logger.WithPrefix("conn").With("session", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID returns the session id sent to the client.
func (c *Connection) ID() string {
	return c.id
}

// Start sends the opening snapshot and begins handling the connection
func (c *Connection) Start() {
	c.idle = c.server.clock.AfterFunc(c.server.idleTimeout, func() {
		c.logger.Info("Closing idle connection", "timeout", c.server.idleTimeout)
		_ = c.Close()
	})
	c.sendSnapshot(c.session.Snapshot(), nil, "")

	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.idle != nil {
			c.idle.Stop()
		}
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg any) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.idle.Reset(c.server.idleTimeout)
		c.handleMessage(data)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// handleMessage decodes one client command and plays it
func (c *Connection) handleMessage(data []byte) {
	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		c.sendError(err, "")
		return
	}
	c.logger.Debug("Received message", "type", cmd.Type)

	intent, err := cmd.Intent()
	if err != nil {
		c.sendError(err, cmd.RequestID)
		return
	}

	snap, rejected := c.session.Dispatch(intent)
	c.sendSnapshot(snap, rejected, cmd.RequestID)
}

func (c *Connection) sendSnapshot(snap game.Snapshot, rejected error, requestID string) {
	msg := protocol.NewSnapshot(c.id, snap, rejected, c.server.clock.Now())
	msg.RequestID = requestID
	_ = c.SendMessage(msg) // Ignore send errors
}

// sendError sends an error message to the client
func (c *Connection) sendError(err error, requestID string) {
	c.logger.Debug("Rejected message", "error", err)
	msg := protocol.NewError(err)
	msg.RequestID = requestID
	_ = c.SendMessage(msg) // Ignore send errors during error handling
}
