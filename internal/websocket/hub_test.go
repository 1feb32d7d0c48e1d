package websocket

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderoom/pkg/collab"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(id, roomID string) *Client {
	return &Client{
		id:     id,
		roomID: roomID,
		send:   make(chan []byte, sendBufferSize),
	}
}

func received(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case data := <-c.send:
			out = append(out, data)
		default:
			return out
		}
	}
}

func TestHub_BroadcastExcludesSender(t *testing.T) {
	h := NewHub(testLogger())
	alice := testClient("alice", "r1")
	bob := testClient("bob", "r1")
	carol := testClient("carol", "r1")
	h.Join("r1", alice)
	h.Join("r1", bob)
	h.Join("r1", carol)

	h.Broadcast("r1", alice, collab.Outgoing{
		Event: collab.EventUpdateCode,
		Data:  collab.CodeUpdate{RoomID: "r1", Code: "print(1)"},
	})

	assert.Empty(t, received(alice), "sender must not receive its own broadcast")
	require.Len(t, received(bob), 1)
	require.Len(t, received(carol), 1)
}

func TestHub_BroadcastPayloadShape(t *testing.T) {
	h := NewHub(testLogger())
	alice := testClient("alice", "r1")
	bob := testClient("bob", "r1")
	h.Join("r1", alice)
	h.Join("r1", bob)

	h.Broadcast("r1", alice, collab.Outgoing{
		Event: collab.EventUpdateCode,
		Data:  collab.CodeUpdate{RoomID: "r1", Code: "print(1)"},
	})

	frames := received(bob)
	require.Len(t, frames, 1)

	var env struct {
		Event string            `json:"event"`
		Data  collab.CodeUpdate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frames[0], &env))
	assert.Equal(t, collab.EventUpdateCode, env.Event)
	assert.Equal(t, "r1", env.Data.RoomID)
	assert.Equal(t, "print(1)", env.Data.Code)
}

func TestHub_BroadcastNoCrossRoomDelivery(t *testing.T) {
	h := NewHub(testLogger())
	alice := testClient("alice", "r1")
	eve := testClient("eve", "r2")
	h.Join("r1", alice)
	h.Join("r2", eve)

	h.Broadcast("r1", alice, collab.Outgoing{Event: collab.EventUpdateCode})

	assert.Empty(t, received(eve))
}

func TestHub_BroadcastUnknownRoomIsNoop(t *testing.T) {
	h := NewHub(testLogger())
	alice := testClient("alice", "r1")
	h.Join("r1", alice)

	h.Broadcast("missing", alice, collab.Outgoing{Event: collab.EventUpdateCode})

	assert.Empty(t, received(alice))
	assert.Equal(t, 1, h.RoomCount(), "broadcast must not create rooms")
}

func TestHub_BroadcastEmptyRoomIDIsNoop(t *testing.T) {
	h := NewHub(testLogger())
	alice := testClient("alice", "")

	h.Broadcast("", alice, collab.Outgoing{Event: collab.EventUpdateCode})

	assert.Equal(t, 0, h.RoomCount())
}

func TestHub_JoinEmptyRoomIDCreatesNothing(t *testing.T) {
	h := NewHub(testLogger())
	c := testClient("lurker", "")

	h.Join("", c)

	assert.Equal(t, 0, h.RoomCount())
	assert.Equal(t, 0, h.ClientCount())
	assert.Empty(t, h.ActiveRooms())
}

func TestHub_LeaveRemovesEmptyRoom(t *testing.T) {
	h := NewHub(testLogger())
	alice := testClient("alice", "r1")
	bob := testClient("bob", "r1")
	h.Join("r1", alice)
	h.Join("r1", bob)
	require.Equal(t, 1, h.RoomCount())

	h.Leave("r1", alice)
	assert.Equal(t, 1, h.RoomCount())
	assert.Equal(t, map[string]int{"r1": 1}, h.ActiveRooms())

	h.Leave("r1", bob)
	assert.Equal(t, 0, h.RoomCount())
	assert.Equal(t, 0, h.ClientCount())
}

func TestHub_LeaveUnknownRoomIsNoop(t *testing.T) {
	h := NewHub(testLogger())

	h.Leave("missing", testClient("alice", "missing"))

	assert.Equal(t, 0, h.RoomCount())
}

func TestHub_NoDeliveryAfterLeave(t *testing.T) {
	h := NewHub(testLogger())
	alice := testClient("alice", "r1")
	bob := testClient("bob", "r1")
	h.Join("r1", alice)
	h.Join("r1", bob)

	bob.closed.Store(true)
	h.Leave("r1", bob)

	h.Broadcast("r1", alice, collab.Outgoing{Event: collab.EventReceiveMessage})

	assert.Empty(t, received(bob))
}

func TestHub_ClosedClientDropsInFlightDelivery(t *testing.T) {
	bob := testClient("bob", "r1")

	// A broadcast snapshot may still hold the client after its teardown
	// completed; the closed flag must stop the late enqueue.
	bob.closed.Store(true)
	bob.enqueue([]byte("late frame"))

	assert.Empty(t, received(bob))
}

func TestHub_ConcurrentJoinLeaveBroadcast(t *testing.T) {
	h := NewHub(testLogger())
	sender := testClient("sender", "r1")
	h.Join("r1", sender)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := testClient(fmt.Sprintf("c-%d", i), "r1")
			h.Join("r1", c)
			h.Broadcast("r1", c, collab.Outgoing{Event: collab.EventUpdateCode})
			h.Leave("r1", c)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, h.ClientCount())
	assert.Equal(t, map[string]int{"r1": 1}, h.ActiveRooms())
}
