package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

func newTestHub(ids ...string) (*Hub, map[string]*Client) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(logger)

	clients := make(map[string]*Client, len(ids))
	for _, id := range ids {
		client := newClient(logger, id, nil, 8)
		hub.register(client)
		clients[id] = client
	}

	return hub, clients
}

func drain(client *Client) []Message {
	var messages []Message

	for {
		select {
		case data, ok := <-client.send:
			if !ok {
				return messages
			}

			var message Message
			if err := json.Unmarshal(data, &message); err == nil {
				messages = append(messages, message)
			}
		default:
			return messages
		}
	}
}

func TestHub_Broadcast(t *testing.T) {
	// Given: a and b share a group, c does not
	hub, clients := newTestHub("a", "b", "c")
	hub.Join("a", "ROOM1")
	hub.Join("b", "ROOM1")

	// When: the group is broadcast to
	hub.Broadcast("ROOM1", entity.ActionRematchStarted, nil)

	// Then: only the members receive it, without a payload
	for _, id := range []string{"a", "b"} {
		messages := drain(clients[id])
		require.Len(t, messages, 1)
		assert.Equal(t, entity.ActionRematchStarted, messages[0].Action)
		assert.Empty(t, messages[0].Payload)
	}
	assert.Empty(t, drain(clients["c"]))
}

func TestHub_Leave(t *testing.T) {
	// Given: a group of two
	hub, clients := newTestHub("a", "b")
	hub.Join("a", "ROOM1")
	hub.Join("b", "ROOM1")

	// When: b leaves and a is unregistered
	hub.Leave("b", "ROOM1")
	hub.unregister(clients["a"])
	hub.Broadcast("ROOM1", entity.ActionGameState, entity.RoomState{ID: "ROOM1"})

	// Then: nobody receives the broadcast and the group is gone
	assert.Empty(t, drain(clients["b"]))
	assert.Empty(t, hub.groups)
	assert.Equal(t, 1, hub.Count())

	_, open := <-clients["a"].send
	assert.False(t, open)
}

func TestHub_Send(t *testing.T) {
	// Given: a registered client
	hub, clients := newTestHub("a")

	// When: a targeted error is sent, plus one to an unknown id
	hub.Send("a", entity.ActionError, entity.ErrorMessage{Message: "room is full"})
	hub.Send("ghost", entity.ActionError, entity.ErrorMessage{Message: "ignored"})

	// Then: the client gets its message with the payload
	messages := drain(clients["a"])
	require.Len(t, messages, 1)
	assert.JSONEq(t, `{"message":"room is full"}`, string(messages[0].Payload))
}

func TestHub_JoinUnknownConnection(t *testing.T) {
	// Given: an empty hub
	hub, _ := newTestHub()

	// When: an unknown connection joins
	hub.Join("ghost", "ROOM1")

	// Then: no group is created
	assert.Empty(t, hub.groups)
}
