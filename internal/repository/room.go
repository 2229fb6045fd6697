package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/ids"
)

const maxCodeAttempts = 64

type RoomRepository interface {
	Create(ctx context.Context) (*entity.Room, error)
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	FindWaiting(ctx context.Context) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
	Stats(ctx context.Context) entity.RoomStats
}

// memoryRooms - the process-wide room table. Lock order is registry first, then room.
type memoryRooms struct {
	mu       sync.RWMutex
	rooms    map[string]*entity.Room
	generate func() (string, error)
}

func NewRoomRepository() RoomRepository {
	return newMemoryRooms(ids.GenerateRoomCode)
}

func newMemoryRooms(generate func() (string, error)) *memoryRooms {
	return &memoryRooms{
		rooms:    make(map[string]*entity.Room),
		generate: generate,
	}
}

// Create - inserts an empty room under a code that no live room holds.
func (that *memoryRooms) Create(ctx context.Context) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for range maxCodeAttempts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("room creation canceled: %w", err)
		}

		code, err := that.generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}

		code = normalizeID(code)
		if _, taken := that.rooms[code]; taken {
			continue
		}

		room := entity.NewRoom(code)
		that.rooms[code] = room

		return room, nil
	}

	return nil, apperror.ErrRoomCodeExhausted
}

func (that *memoryRooms) GetByID(_ context.Context, id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[normalizeID(id)]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// FindWaiting - returns any room with a single seated player. The choice among several is arbitrary.
func (that *memoryRooms) FindWaiting(_ context.Context) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, room := range that.rooms {
		if room.IsAwaitingOpponent() {
			return room, nil
		}
	}

	return nil, apperror.ErrRoomNotFound
}

func (that *memoryRooms) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, normalizeID(id))

	return nil
}

func (that *memoryRooms) Stats(_ context.Context) entity.RoomStats {
	that.mu.RLock()
	defer that.mu.RUnlock()

	stats := entity.RoomStats{Rooms: len(that.rooms)}
	for _, room := range that.rooms {
		count := room.PlayerCount()
		stats.Players += count

		switch count {
		case 1:
			stats.Waiting++
		case 2:
			stats.Playing++
		}
	}

	return stats
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
