package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/workerpool"
)

const publishTimeout = 5 * time.Second

type asyncPublisher struct {
	logger *slog.Logger
	next   Publisher
	pool   *workerpool.Pool
}

// NewAsync - hands events to next on a worker pool. Publish only fails when the queue is full.
func NewAsync(logger *slog.Logger, next Publisher, workers, queueSize int) Publisher {
	return &asyncPublisher{
		logger: logger.With("component", "events"),
		next:   next,
		pool:   workerpool.New(logger, workers, queueSize),
	}
}

func (that *asyncPublisher) Publish(_ context.Context, event entity.RoomEvent) error {
	err := that.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := that.next.Publish(ctx, event); err != nil {
			that.logger.Warn("room event dropped", "type", event.Type, "room_id", event.RoomID, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to queue room event: %w", err)
	}

	return nil
}

// Close - waits for queued events, then closes next.
func (that *asyncPublisher) Close() error {
	that.pool.Stop()

	return that.next.Close()
}
