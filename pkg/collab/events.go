package collab

import "encoding/json"

// Event names spoken over the websocket. Clients send code-update and
// send-message; the relay fans them out as update-code and receive-message.
const (
	EventCodeUpdate     = "code-update"
	EventSendMessage    = "send-message"
	EventUpdateCode     = "update-code"
	EventReceiveMessage = "receive-message"
)

// Envelope is an inbound frame. Data stays raw until the dispatcher
// knows which payload shape the event carries.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is a frame destined for room members.
type Outgoing struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// CodeUpdate carries the full code blob for a room. The blob is opaque
// to the relay; it is forwarded as-is, roomId included, so clients can
// discard frames for rooms they are not looking at.
type CodeUpdate struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// ChatMessage is the inbound chat payload.
type ChatMessage struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ChatDelivery is what room members receive for a chat message.
type ChatDelivery struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
