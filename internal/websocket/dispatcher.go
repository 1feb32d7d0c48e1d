package websocket

import (
	"encoding/json"
	"log/slog"
	"strings"

	"coderoom/pkg/collab"
)

// Dispatcher routes inbound frames to the hub. Everything here is
// best-effort: malformed or room-less events are dropped with a log
// line and never surface an error to the sender.
type Dispatcher struct {
	log *slog.Logger
	hub *Hub
}

func NewDispatcher(log *slog.Logger, hub *Hub) *Dispatcher {
	return &Dispatcher{log: log, hub: hub}
}

func (d *Dispatcher) Handle(c *Client, data []byte) {
	var env collab.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		d.log.Warn("invalid frame", "sessionId", c.id, "err", err)
		return
	}

	switch env.Event {
	case collab.EventCodeUpdate:
		d.handleCodeUpdate(c, env.Data)
	case collab.EventSendMessage:
		d.handleChatMessage(c, env.Data)
	default:
		d.log.Debug("unknown event", "sessionId", c.id, "event", env.Event)
	}
}

// handleCodeUpdate forwards the code blob to the sender's room. The
// room bound at connect time decides where the update goes; a client
// that never joined a room has its edits dropped.
func (d *Dispatcher) handleCodeUpdate(c *Client, data json.RawMessage) {
	if c.roomID == "" {
		d.log.Debug("code update without room", "sessionId", c.id, "username", c.username)
		return
	}

	var update collab.CodeUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		d.log.Warn("invalid code update", "sessionId", c.id, "err", err)
		return
	}

	d.hub.Broadcast(c.roomID, c, collab.Outgoing{
		Event: collab.EventUpdateCode,
		Data:  update,
	})
}

// handleChatMessage relays a chat line to the sender's room. Blank
// messages and messages without a room identifier are dropped.
func (d *Dispatcher) handleChatMessage(c *Client, data json.RawMessage) {
	var msg collab.ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		d.log.Warn("invalid chat message", "sessionId", c.id, "err", err)
		return
	}

	if strings.TrimSpace(msg.Message) == "" {
		return
	}
	if msg.RoomID == "" {
		d.log.Warn("chat message missing roomId", "sessionId", c.id, "username", msg.Username)
		return
	}

	d.hub.Broadcast(c.roomID, c, collab.Outgoing{
		Event: collab.EventReceiveMessage,
		Data:  collab.ChatDelivery{Username: msg.Username, Message: msg.Message},
	})
}
