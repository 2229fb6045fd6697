package websocket

import (
	"encoding/json"
	"fmt"
)

// Message - envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type MovePayload struct {
	Index *int `json:"index"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	message := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", action, err)
		}

		message.Payload = raw
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
