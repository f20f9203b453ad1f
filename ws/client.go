package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single socket write.
	writeWait = 10 * time.Second

	// pongWait is how long a client may stay silent. Clients heartbeat every
	// 30s, so three missed heartbeats close the connection.
	pongWait = 90 * time.Second

	// maxMessageSize caps inbound frames; clients only ever send heartbeats.
	maxMessageSize = 512

	sendBufferSize = 64
)

// Client is one WebSocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string // empty for anonymous viewers

	// send is the outbound queue. Only the hub closes it.
	send chan []byte
	mu   sync.Mutex // guards conn writes

	joinedAt chan int64
}

func newClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		userID:   userID,
		send:     make(chan []byte, sendBufferSize),
		joinedAt: make(chan int64, 1),
	}
}

// ReadPump reads client frames until the connection fails.
// It runs on the request goroutine and unregisters the client on exit.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug().Err(err).Str("user_id", c.userID).Msg("unexpected close")
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			continue
		}

		switch event.Op {
		case OpHeartbeat:
			if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				return
			}
			c.sendEvent(Event{Op: OpHeartbeatAck})
		default:
			c.hub.log.Debug().Str("op", event.Op).Msg("unknown op from client")
		}
	}
}

// WritePump drains the send queue onto the socket. When the hub closes the
// queue it sends a close frame and returns.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.writeMessage(websocket.CloseMessage, nil)
}

// sendEvent writes an event to this client only, bypassing the queue.
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	_ = c.writeMessage(websocket.TextMessage, data)
}

func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
