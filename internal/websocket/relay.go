package websocket

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"coderoom/internal/registry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the deployed frontend origins
		return true
	},
}

// Relay owns the connection lifecycle: handshake capture, presence
// registration, room join, pump startup and ordered teardown.
type Relay struct {
	log        *slog.Logger
	hub        *Hub
	registry   *registry.Registry
	dispatcher *Dispatcher
}

func NewRelay(log *slog.Logger, hub *Hub, reg *registry.Registry) *Relay {
	return &Relay{
		log:        log,
		hub:        hub,
		registry:   reg,
		dispatcher: NewDispatcher(log, hub),
	}
}

// Hub exposes the membership store for stats handlers.
func (r *Relay) Hub() *Hub { return r.hub }

// Registry exposes the presence store.
func (r *Relay) Registry() *registry.Registry { return r.registry }

// ServeWS upgrades the request and wires the connection into the relay.
// Both handshake parameters are optional: a missing username just means
// the connection is not resolvable by identity, and a missing roomId
// means it never takes part in any broadcast.
func (r *Relay) ServeWS(w http.ResponseWriter, req *http.Request) {
	username := req.URL.Query().Get("username")
	roomID := req.URL.Query().Get("roomId")

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Error("websocket upgrade", "err", err)
		return
	}

	c := newClient(r, conn, username, roomID)
	r.log.Info("client connected", "sessionId", c.id, "username", username)

	if username != "" {
		r.registry.Register(username, c)
	} else {
		r.log.Debug("no username provided at connect", "sessionId", c.id)
	}

	if roomID != "" {
		r.hub.Join(roomID, c)
	} else {
		r.log.Debug("no roomId provided at connect", "sessionId", c.id, "username", username)
	}

	go c.writePump()
	go c.readPump()
}

// drop tears a connection down. Membership goes first so that no
// broadcast can pick the client up while the registry still resolves
// it; the closed flag stops deliveries from snapshots already taken.
func (r *Relay) drop(c *Client) {
	c.closed.Store(true)
	r.hub.Leave(c.roomID, c)
	if c.username != "" {
		r.registry.Unregister(c.username, c)
	}
	r.log.Info("client disconnected", "sessionId", c.id, "username", c.username)
}
