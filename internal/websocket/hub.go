package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"coderoom/pkg/collab"
)

// Hub tracks which connections are joined to which room and fans frames
// out to room members. Rooms exist only as non-empty member sets; the
// last leave deletes the entry.
type Hub struct {
	log *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:   log,
		rooms: make(map[string]map[*Client]bool),
	}
}

// Join adds a connection to a room, creating the member set if needed.
// An empty roomID means "not in any room" and never creates an entry.
func (h *Hub) Join(roomID string, c *Client) {
	if roomID == "" {
		return
	}

	h.mu.Lock()
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[roomID] = members
	}
	members[c] = true
	count := len(members)
	h.mu.Unlock()

	h.log.Info("client joined room", "room", roomID, "sessionId", c.id, "members", count)
}

// Leave removes a connection from a room and drops the room entry once
// it is empty.
func (h *Hub) Leave(roomID string, c *Client) {
	if roomID == "" {
		return
	}

	h.mu.Lock()
	members, ok := h.rooms[roomID]
	if ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	remaining := len(members)
	h.mu.Unlock()

	if !ok {
		return
	}
	if remaining == 0 {
		h.log.Info("room closed", "room", roomID)
	} else {
		h.log.Info("client left room", "room", roomID, "sessionId", c.id, "members", remaining)
	}
}

// Broadcast delivers msg to every current member of the room except the
// sender. The member set is snapshotted under the read lock and delivery
// happens outside it, so slow recipients never stall joins or leaves.
// Unknown or empty rooms are a logged no-op.
func (h *Hub) Broadcast(roomID string, sender *Client, msg collab.Outgoing) {
	if roomID == "" {
		h.log.Debug("broadcast without room", "event", msg.Event)
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("broadcast marshal", "event", msg.Event, "err", err)
		return
	}

	h.mu.RLock()
	members, ok := h.rooms[roomID]
	if !ok {
		h.mu.RUnlock()
		h.log.Debug("broadcast to unknown room", "room", roomID, "event", msg.Event)
		return
	}
	recipients := make([]*Client, 0, len(members))
	for c := range members {
		if c != sender {
			recipients = append(recipients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range recipients {
		c.enqueue(data)
	}
}

// RoomCount returns the number of rooms with at least one member.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// ClientCount returns the number of connections joined to any room.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, members := range h.rooms {
		total += len(members)
	}
	return total
}

// ActiveRooms returns member counts keyed by room ID.
func (h *Hub) ActiveRooms() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]int, len(h.rooms))
	for roomID, members := range h.rooms {
		out[roomID] = len(members)
	}
	return out
}
