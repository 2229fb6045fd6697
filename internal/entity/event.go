package entity

import "time"

type EventType string

const (
	EventRoomCreated    EventType = "room.created"
	EventPlayerJoined   EventType = "player.joined"
	EventMoveApplied    EventType = "move.applied"
	EventRematchStarted EventType = "rematch.started"
	EventPlayerLeft     EventType = "player.left"
	EventRoomDestroyed  EventType = "room.destroyed"
)

// RoomEvent - notification about a room lifecycle change, published to external subscribers.
type RoomEvent struct {
	Type   EventType  `json:"type"`
	RoomID string     `json:"room_id"`
	ConnID string     `json:"conn_id,omitempty"`
	State  *RoomState `json:"state,omitempty"`
	At     time.Time  `json:"at"`
}

func NewRoomEvent(eventType EventType, roomID, connID string, state *RoomState) RoomEvent {
	return RoomEvent{
		Type:   eventType,
		RoomID: roomID,
		ConnID: connID,
		State:  state,
		At:     time.Now().UTC(),
	}
}
