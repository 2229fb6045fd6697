package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

var ErrUnknownConnection = errors.New("unknown connection")

type roomRepo interface {
	Create(ctx context.Context) (*entity.Room, error)
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	FindWaiting(ctx context.Context) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
}

// connections - outbound side of the transport. Delivery is best effort and never blocks.
type connections interface {
	Send(connID, action string, payload any)
	Broadcast(group, action string, payload any)
	Join(connID, group string)
	Leave(connID, group string)
}

type eventPublisher interface {
	Publish(ctx context.Context, event entity.RoomEvent) error
}

// GameManager - handles every inbound action for every connection, keyed by connection id.
// Rejected actions are answered with a single error message to the requester.
type GameManager struct {
	logger    *slog.Logger
	rooms     roomRepo
	conns     connections
	publisher eventPublisher

	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

func NewGameManager(logger *slog.Logger, rooms roomRepo, conns connections, publisher eventPublisher) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		rooms:     rooms,
		conns:     conns,
		publisher: publisher,

		sessions: make(map[string]*entity.Session),
	}
}

func (that *GameManager) Connect(connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[connID] = entity.NewSession(connID)
}

// Disconnect - vacates the connection's room and forgets the session. Never fails.
func (that *GameManager) Disconnect(ctx context.Context, connID string) {
	that.mu.Lock()
	session, ok := that.sessions[connID]
	delete(that.sessions, connID)
	that.mu.Unlock()

	if !ok {
		return
	}

	if err := that.leave(ctx, session); err != nil {
		that.logger.Debug("cleanup on disconnect failed", "conn_id", connID, "error", err)
	}
}

func (that *GameManager) Connections() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

func (that *GameManager) QuickMatch(ctx context.Context, connID string) error {
	return that.report(connID, that.quickMatch(ctx, connID))
}

func (that *GameManager) CreateRoom(ctx context.Context, connID string) error {
	return that.report(connID, that.createRoom(ctx, connID))
}

func (that *GameManager) JoinRoom(ctx context.Context, connID, roomID string) error {
	return that.report(connID, that.joinRoom(ctx, connID, roomID))
}

func (that *GameManager) MakeMove(ctx context.Context, connID string, index int) error {
	return that.report(connID, that.makeMove(ctx, connID, index))
}

func (that *GameManager) PlayAgain(ctx context.Context, connID string) error {
	return that.report(connID, that.playAgain(ctx, connID))
}

func (that *GameManager) LeaveRoom(ctx context.Context, connID string) error {
	session, err := that.session(connID)
	if err != nil {
		return that.report(connID, err)
	}

	return that.report(connID, that.leave(ctx, session))
}

func (that *GameManager) quickMatch(ctx context.Context, connID string) error {
	session, err := that.session(connID)
	if err != nil {
		return err
	}

	if err = that.leave(ctx, session); err != nil {
		return err
	}

	room, err := that.rooms.FindWaiting(ctx)
	switch {
	case err == nil:
		err = that.seat(ctx, session, room)
		if err == nil {
			return nil
		}

		// somebody else claimed or closed the room first
		if !errors.Is(err, apperror.ErrRoomFull) && !errors.Is(err, apperror.ErrRoomNotFound) {
			return err
		}

		that.logger.Debug("waiting room taken, creating a new one", "conn_id", connID, "room_id", room.ID())
	case !errors.Is(err, apperror.ErrRoomNotFound):
		return fmt.Errorf("failed to find waiting room: %w", err)
	}

	return that.createAndSeat(ctx, session)
}

func (that *GameManager) createRoom(ctx context.Context, connID string) error {
	session, err := that.session(connID)
	if err != nil {
		return err
	}

	if err = that.leave(ctx, session); err != nil {
		return err
	}

	return that.createAndSeat(ctx, session)
}

func (that *GameManager) joinRoom(ctx context.Context, connID, roomID string) error {
	session, err := that.session(connID)
	if err != nil {
		return err
	}

	room, err := that.rooms.GetByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to find room %q: %w", roomID, err)
	}

	if session.RoomID == room.ID() {
		state := room.State()
		that.conns.Send(connID, entity.ActionJoinedRoom, entity.JoinedRoom{RoomID: room.ID(), Mark: session.Mark})
		that.conns.Send(connID, entity.ActionGameState, state)

		return nil
	}

	return that.seat(ctx, session, room)
}

func (that *GameManager) makeMove(ctx context.Context, connID string, index int) error {
	session, room, ok := that.currentRoom(ctx, connID)
	if !ok {
		return nil
	}

	state, err := room.ApplyMove(session.ConnID, index)
	if err != nil {
		return fmt.Errorf("failed to apply move %d in room %s: %w", index, room.ID(), err)
	}

	that.announce(room, state)
	that.publish(ctx, entity.EventMoveApplied, connID, state)

	return nil
}

func (that *GameManager) playAgain(ctx context.Context, connID string) error {
	_, room, ok := that.currentRoom(ctx, connID)
	if !ok {
		return nil
	}

	state, err := room.RequestRematch()
	if err != nil {
		return fmt.Errorf("failed to start rematch in room %s: %w", room.ID(), err)
	}

	room.Announce(state, func(state entity.RoomState) {
		that.conns.Broadcast(room.ID(), entity.ActionRematchStarted, nil)
		that.conns.Broadcast(room.ID(), entity.ActionGameState, state)
	})
	that.publish(ctx, entity.EventRematchStarted, connID, state)

	return nil
}

// leave - vacates the session's room if it has one. Destroys the room when nobody is left.
func (that *GameManager) leave(ctx context.Context, session *entity.Session) error {
	if !session.InRoom() {
		return nil
	}

	roomID := session.RoomID
	session.Clear()
	that.conns.Leave(session.ConnID, roomID)

	room, err := that.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil //nolint:nilerr // the room is already gone
	}

	state, remaining, err := room.RemovePlayer(session.ConnID)
	if errors.Is(err, apperror.ErrNotInRoom) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to leave room %s: %w", roomID, err)
	}

	that.publish(ctx, entity.EventPlayerLeft, session.ConnID, state)

	if remaining == 0 {
		if err = that.rooms.DeleteByID(ctx, roomID); err != nil {
			return fmt.Errorf("failed to destroy room %s: %w", roomID, err)
		}

		that.logger.Info("room destroyed", "room_id", roomID)
		that.publish(ctx, entity.EventRoomDestroyed, session.ConnID, state)

		return nil
	}

	that.announce(room, state)

	return nil
}

func (that *GameManager) createAndSeat(ctx context.Context, session *entity.Session) error {
	room, err := that.rooms.Create(ctx)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	that.logger.Info("room created", "room_id", room.ID(), "conn_id", session.ConnID)
	that.publish(ctx, entity.EventRoomCreated, session.ConnID, room.State())

	if err = that.seat(ctx, session, room); err != nil {
		if delErr := that.rooms.DeleteByID(ctx, room.ID()); delErr != nil {
			that.logger.Error("failed to drop unused room", "room_id", room.ID(), "error", delErr)
		}

		return err
	}

	return nil
}

// seat - takes a seat in room, then vacates the session's previous room.
// A rejected seat leaves the previous room untouched.
func (that *GameManager) seat(ctx context.Context, session *entity.Session, room *entity.Room) error {
	mark, state, err := room.AddPlayer(session.ConnID)
	if err != nil {
		return fmt.Errorf("failed to seat player in room %s: %w", room.ID(), err)
	}

	if err = that.leave(ctx, session); err != nil {
		that.logger.Error("failed to vacate previous room", "conn_id", session.ConnID, "error", err)
	}

	session.Seat(room.ID(), mark)

	that.conns.Join(session.ConnID, room.ID())
	that.conns.Send(session.ConnID, entity.ActionJoinedRoom, entity.JoinedRoom{RoomID: room.ID(), Mark: mark})

	// states announced between AddPlayer and Join never reached the newcomer
	room.Resync(func(latest entity.RoomState, fresh bool) {
		if fresh {
			that.conns.Broadcast(room.ID(), entity.ActionGameState, latest)
			return
		}

		that.conns.Send(session.ConnID, entity.ActionGameState, latest)
	})

	that.publish(ctx, entity.EventPlayerJoined, session.ConnID, state)

	return nil
}

// currentRoom - resolves the session's room. A missing session or room is not an error for the caller.
func (that *GameManager) currentRoom(ctx context.Context, connID string) (*entity.Session, *entity.Room, bool) {
	session, err := that.session(connID)
	if err != nil || !session.InRoom() {
		return nil, nil, false
	}

	room, err := that.rooms.GetByID(ctx, session.RoomID)
	if err != nil {
		that.logger.Debug("tracked room is gone", "conn_id", connID, "room_id", session.RoomID)
		session.Clear()

		return nil, nil, false
	}

	return session, room, true
}

func (that *GameManager) session(connID string) (*entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[connID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConnection, connID)
	}

	return session, nil
}

func (that *GameManager) report(connID string, err error) error {
	if err == nil {
		return nil
	}

	that.conns.Send(connID, entity.ActionError, entity.ErrorMessage{Message: apperror.Message(err)})

	return err
}

// announce - broadcasts state to the room unless a newer one already went out.
func (that *GameManager) announce(room *entity.Room, state entity.RoomState) {
	room.Announce(state, func(state entity.RoomState) {
		that.conns.Broadcast(room.ID(), entity.ActionGameState, state)
	})
}

func (that *GameManager) publish(ctx context.Context, eventType entity.EventType, connID string, state entity.RoomState) {
	event := entity.NewRoomEvent(eventType, state.ID, connID, &state)

	if err := that.publisher.Publish(ctx, event); err != nil {
		that.logger.Warn("failed to publish room event", "type", eventType, "room_id", state.ID, "error", err)
	}
}
