package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

func TestRedisPublisher_Publish(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a subscriber on the events channel
	sub := st.Redis.Subscribe(ctx, "rooms.test")
	t.Cleanup(func() { _ = sub.Close() })

	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewRedisPublisher(st.Redis, "rooms.test")

	state := entity.NewRoom("ABCDE").State()
	event := entity.NewRoomEvent(entity.EventRoomCreated, "ABCDE", "conn-1", &state)

	// When: an event is published
	err = publisher.Publish(ctx, event)

	// Then: the subscriber receives it as JSON
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		var received entity.RoomEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &received))
		assert.Equal(t, entity.EventRoomCreated, received.Type)
		assert.Equal(t, "ABCDE", received.RoomID)
		assert.Equal(t, "conn-1", received.ConnID)
		require.NotNil(t, received.State)
		assert.Equal(t, entity.OutcomeInProgress, received.State.Outcome)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}
}
