package realtime

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufSize    = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// authenticated clients may follow /admin views
	authenticated bool
}

// incomingMsg represents a command from the client.
type incomingMsg struct {
	Action string `json:"action"` // "subscribe"
	Path   string `json:"path"`
}

// outgoingMsg is the envelope sent to the client.
type outgoingMsg struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

func NewClient(hub *Hub, conn *websocket.Conn, authenticated bool) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, sendBufSize),
		authenticated: authenticated,
	}
}

func (c *Client) mayFollow(path string) bool {
	if path == "" || !strings.HasPrefix(path, "/") {
		return false
	}
	return c.authenticated || !strings.HasPrefix(path, "/admin")
}

// ReadPump reads messages from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn().Err(err).Msg("ws read error")
			}
			break
		}

		var msg incomingMsg
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.logger.Debug().Err(err).Msg("ws unmarshal error")
			continue
		}

		switch msg.Action {
		case "subscribe":
			if c.mayFollow(msg.Path) {
				c.hub.subscribe <- subscribeMsg{client: c, path: msg.Path}
			}
		default:
			c.hub.logger.Debug().Str("action", msg.Action).Msg("ws unknown action")
		}
	}
}

// WritePump writes messages to the WebSocket connection.
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
