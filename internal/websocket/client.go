package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// driveSuppression is how long pose broadcasts to a screen stay muted
	// after its last "driving" message. Admin pose inputs send these while
	// dragging, so the live camera feed doesn't fight the fields being
	// edited; the debounce clears the mute shortly after input ends.
	driveSuppression = 750 * time.Millisecond
)

// Client is a middleman between one renderer screen and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// ScreenID identifies this renderer screen.
	ScreenID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	mu          sync.Mutex
	drivenUntil time.Time
}

// inbound is the only message shape screens send upstream.
type inbound struct {
	Type string `json:"type"`
}

func (c *Client) markDriven() {
	c.mu.Lock()
	c.drivenUntil = time.Now().Add(driveSuppression)
	c.mu.Unlock()
}

func (c *Client) driven() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Now().Before(c.drivenUntil)
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for screen %s: %v", c.ScreenID, err)
			}
			break
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type == "driving" {
			c.markDriven()
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain queued frames into the same websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs attaches a renderer screen connection to the hub.
func ServeWs(hub *Hub, c *websocket.Conn, screenID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, ScreenID: screenID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
