package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/voin/voin-backend/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// EchoDestination 클라이언트가 에코를 요청하는 목적지
	EchoDestination = "/pub/notify"
)

// Client represents a single WebSocket connection
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	memberID string
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, conn *websocket.Conn, memberID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 32),
		memberID: memberID,
	}
}

// inboundFrame 클라이언트가 보내는 메시지
type inboundFrame struct {
	Destination string          `json:"destination"`
	Body        json.RawMessage `json:"body"`
}

// ReadPump reads frames until the connection closes. Frames sent to
// EchoDestination are returned to the sender as ECHO; others are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Destination != EchoDestination {
			continue
		}
		c.hub.sendDirect(c, domain.NewNotification(domain.NotificationEcho, echoMessage(frame.Body)))
	}
}

// body 가 문자열이면 그대로, 아니면 JSON 텍스트
func echoMessage(body json.RawMessage) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return string(body)
}

// WritePump sends messages to the WebSocket
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
