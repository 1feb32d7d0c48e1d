package websocket

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024 * 1024

	sendBufferSize = 256
)

// Client is one live websocket connection. The identity and room binding
// are captured once from the handshake and never change for the lifetime
// of the connection.
type Client struct {
	relay *Relay
	conn  *websocket.Conn

	id       string
	username string
	roomID   string

	// Buffered channel of outbound frames.
	send chan []byte

	// Set before the client is removed from the room, so an in-flight
	// broadcast that snapshotted the membership earlier cannot deliver
	// to a connection whose teardown already completed.
	closed atomic.Bool
}

func newClient(relay *Relay, conn *websocket.Conn, username, roomID string) *Client {
	return &Client{
		relay:    relay,
		conn:     conn,
		id:       uuid.New().String(),
		username: username,
		roomID:   roomID,
		send:     make(chan []byte, sendBufferSize),
	}
}

// SessionID returns the connection-local identifier.
func (c *Client) SessionID() string { return c.id }

// Username returns the participant identity, empty if none was supplied.
func (c *Client) Username() string { return c.username }

// RoomID returns the room bound at connect time, empty if none.
func (c *Client) RoomID() string { return c.roomID }

// enqueue hands a frame to the write pump without blocking. Frames are
// dropped when the buffer is full or the client is already closed; the
// relay is best-effort and a stalled reader must not hold up the room.
func (c *Client) enqueue(data []byte) {
	if c.closed.Load() {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.relay.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.relay.log.Error("websocket read", "sessionId", c.id, "err", err)
			}
			return
		}
		c.relay.dispatcher.Handle(c, data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
