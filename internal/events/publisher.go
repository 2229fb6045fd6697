package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Publisher - delivers room events to external subscribers.
type Publisher interface {
	Publish(ctx context.Context, event entity.RoomEvent) error
	Close() error
}

type nopPublisher struct{}

// NewNop - publisher for deployments without an event feed.
func NewNop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, entity.RoomEvent) error {
	return nil
}

func (nopPublisher) Close() error {
	return nil
}

func encode(event entity.RoomEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("could not marshal room event: %w", err)
	}

	return data, nil
}
