package realtime

import (
	"net/http"
	"time"

	"academyhub-backend/internal/logger"
	"academyhub-backend/internal/security"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// Client is one authenticated websocket connection. Its send channel is
// closed exclusively by Hub.disconnect; closed is guarded by the hub
// mutex.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID int32
	send   chan Event
	rooms  map[string]struct{}
	closed bool
}

// clientCommand is the only inbound message shape the relay accepts:
// joining and leaving channel rooms.
type clientCommand struct {
	Action    string `json:"action"` // "join" or "leave"
	ChannelID int32  `json:"channel_id"`
}

// ServeWS authenticates the connection with a login token passed as a
// query parameter, upgrades it and joins the caller's private room.
func ServeWS(hub *Hub, tm security.TokenManager, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := tm.Verify(security.PurposeLogin, r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}

		c := &Client{
			hub:    hub,
			conn:   conn,
			userID: claims.UserID,
			send:   make(chan Event, sendBufferSize),
			rooms:  make(map[string]struct{}),
		}
		hub.join(c, UserRoom(c.userID))

		go c.writePump()
		go c.readPump()
	}
}

func (c *Client) readPump() {
	defer c.hub.disconnect(c)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd clientCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			return
		}
		switch cmd.Action {
		case "join":
			c.hub.join(c, ChannelRoom(cmd.ChannelID))
		case "leave":
			c.hub.leave(c, ChannelRoom(cmd.ChannelID))
		}
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
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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
