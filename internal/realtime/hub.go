package realtime

import (
	"fmt"
	"sync"
)

// Event is what gets fanned out to room subscribers. Delivery is best
// effort: no acknowledgement, no replay, no ordering across rooms.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Publisher is the capability handed to services that need to emit
// events. Services receive it by injection; there is no package-level
// relay handle.
type Publisher interface {
	Publish(room string, event Event)
}

// UserRoom is the private room every authenticated connection joins.
func UserRoom(userID int32) string {
	return fmt.Sprintf("user-%d", userID)
}

// ChannelRoom is the shared room for one chat channel.
func ChannelRoom(channelID int32) string {
	return fmt.Sprintf("channel-%d", channelID)
}

// Hub maps rooms to connected clients and re-broadcasts events into
// them. A client whose send buffer is full is dropped rather than
// buffered without bound; it must re-fetch over REST on reconnect.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Publish fans the event out to every client in the room. Sends happen
// under the read lock and the send channel is closed only by disconnect,
// which holds the write lock, so a send can never race a close.
func (h *Hub) Publish(room string, event Event) {
	var slow []*Client
	h.mu.RLock()
	for c := range h.rooms[room] {
		select {
		case c.send <- event:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	// Slow consumers are disconnected instead of blocking the relay.
	for _, c := range slow {
		h.disconnect(c)
	}
}

func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if clients, ok := h.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// disconnect removes the client from every room and closes its send
// channel. This is the only place the channel is closed, and it happens
// under the write lock; the closed flag makes a second disconnect from a
// racing publisher and reader a no-op.
func (h *Hub) disconnect(c *Client) {
	h.mu.Lock()
	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	h.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
	}
}
