package hub

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST layer handles auth; the socket is open like the rest of
	// the public surface and carries no sensitive data beyond ids.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one WebSocket connection. Outbound messages go through a
// buffered channel so a slow consumer never blocks a publish.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// ServeWS upgrades the request and runs the connection until it closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Hub] Upgrade failed: %v", err)
		return
	}

	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)
	log.Printf("[Hub] Client connected: %s", conn.RemoteAddr())

	go c.writePump()
	go c.readPump()
}

// enqueue hands a pre-encoded frame to the writer, dropping it when the
// client's buffer is full. Callers hold the hub lock, so never block.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Printf("[Hub] Dropping event for slow client %s", c.conn.RemoteAddr())
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
		log.Printf("[Hub] Client disconnected: %s", c.conn.RemoteAddr())
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[Hub] Ignoring malformed message from %s: %v", c.conn.RemoteAddr(), err)
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg Message) {
	switch msg.Event {
	case "join_order":
		var orderID string
		if err := json.Unmarshal(msg.Data, &orderID); err != nil || orderID == "" {
			return
		}
		c.hub.subscribe(c, orderID)
		log.Printf("[Hub] Client %s joined channel for order %s", c.conn.RemoteAddr(), orderID)

	case "update_order_status":
		// Relay for admin dashboards driving status previews over the
		// socket. The authoritative path is the REST endpoint.
		var relay struct {
			OrderID string `json:"orderId"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(msg.Data, &relay); err != nil || relay.OrderID == "" {
			return
		}
		c.hub.PublishToOrder(relay.OrderID, "order_status_updated", relay)
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
