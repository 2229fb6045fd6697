package entity

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"
)

type Outcome string

const (
	OutcomeInProgress   Outcome = "in-progress"
	OutcomeXWins        Outcome = "x-wins"
	OutcomeOWins        Outcome = "o-wins"
	OutcomeDraw         Outcome = "draw"
	OutcomeOpponentLeft Outcome = "opponent-left"
)

const maxPlayers = 2

const noMove = -1

// Room - authoritative state of a single match. All methods are safe for concurrent use.
type Room struct {
	mu sync.Mutex

	id       string
	board    tictactoe.Board
	players  map[string]tictactoe.Mark
	turn     tictactoe.Mark
	opener   tictactoe.Mark
	outcome  Outcome
	winLine  []int
	lastMove int
	started  bool
	closed   bool
	version  uint64

	announceMu sync.Mutex
	announced  uint64
}

func NewRoom(id string) *Room {
	return &Room{
		id:       id,
		players:  make(map[string]tictactoe.Mark, maxPlayers),
		turn:     tictactoe.PlayerX,
		opener:   tictactoe.PlayerX,
		outcome:  OutcomeInProgress,
		lastMove: noMove,
	}
}

func (that *Room) ID() string {
	return that.id
}

// AddPlayer - seats the connection and returns its mark.
func (that *Room) AddPlayer(connID string) (tictactoe.Mark, RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return tictactoe.EmptyCell, that.snapshot(), apperror.ErrRoomNotFound
	}

	if mark, ok := that.players[connID]; ok {
		return mark, that.snapshot(), nil
	}

	if len(that.players) >= maxPlayers {
		return tictactoe.EmptyCell, that.snapshot(), apperror.ErrRoomFull
	}

	mark := tictactoe.PlayerX
	if that.holds(tictactoe.PlayerX) {
		mark = tictactoe.PlayerO
	}

	that.players[connID] = mark

	if len(that.players) == maxPlayers {
		if that.outcome == OutcomeOpponentLeft {
			that.resetBoard()
			that.opener = tictactoe.PlayerX
			that.turn = that.opener
		}

		that.started = true
	}

	that.version++

	return mark, that.snapshot(), nil
}

// ApplyMove - validates the whole move before touching the board.
func (that *Room) ApplyMove(connID string, index int) (RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.outcome != OutcomeInProgress || len(that.players) != maxPlayers {
		return that.snapshot(), apperror.ErrGameNotActive
	}

	if !tictactoe.InBounds(index) {
		return that.snapshot(), apperror.ErrIndexOutOfRange
	}

	mark, ok := that.players[connID]
	if !ok {
		return that.snapshot(), apperror.ErrNotInRoom
	}

	if mark != that.turn {
		return that.snapshot(), apperror.ErrNotYourTurn
	}

	if !that.board.IsEmptyCell(index) {
		return that.snapshot(), apperror.ErrCellOccupied
	}

	that.board[index] = mark
	that.lastMove = index

	switch winner, line, won := tictactoe.DetectWin(that.board); {
	case won:
		that.outcome = winOutcome(winner)
		that.winLine = line[:]
	case tictactoe.DetectDraw(that.board):
		that.outcome = OutcomeDraw
	default:
		that.turn = tictactoe.Opponent(that.turn)
	}

	that.version++

	return that.snapshot(), nil
}

// RequestRematch - clears the board and hands the opening move to the other mark.
func (that *Room) RequestRematch() (RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.players) != maxPlayers {
		return that.snapshot(), apperror.ErrNotEnoughPlayers
	}

	that.resetBoard()
	that.opener = tictactoe.Opponent(that.opener)
	that.turn = that.opener
	that.version++

	return that.snapshot(), nil
}

// RemovePlayer - vacates the connection's seat and returns how many players remain.
// An empty room is closed for good and must be dropped from the registry.
func (that *Room) RemovePlayer(connID string) (RoomState, int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.players[connID]; !ok {
		return that.snapshot(), len(that.players), apperror.ErrNotInRoom
	}

	delete(that.players, connID)

	if len(that.players) == 0 {
		that.closed = true
	} else {
		that.outcome = OutcomeOpponentLeft
		that.winLine = nil
		that.started = false
	}

	that.version++

	return that.snapshot(), len(that.players), nil
}

func (that *Room) State() RoomState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Room) PlayerCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.players)
}

// IsAwaitingOpponent - true for an open room with exactly one seated player.
func (that *Room) IsAwaitingOpponent() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return !that.closed && len(that.players) == 1
}

// Announce - hands state to deliver unless a state at least as new was delivered before.
// Deliveries of one room are serialized, so the states they see only move forward.
func (that *Room) Announce(state RoomState, deliver func(RoomState)) bool {
	that.announceMu.Lock()
	defer that.announceMu.Unlock()

	if state.Version <= that.announced {
		return false
	}

	that.announced = state.Version
	deliver(state)

	return true
}

// Resync - hands the current state to deliver, serialized with Announce.
// fresh is true when that state has not been announced yet; it counts as announced afterwards.
func (that *Room) Resync(deliver func(latest RoomState, fresh bool)) {
	that.announceMu.Lock()
	defer that.announceMu.Unlock()

	latest := that.State()
	fresh := latest.Version > that.announced

	if fresh {
		that.announced = latest.Version
	}

	deliver(latest, fresh)
}

func (that *Room) holds(mark tictactoe.Mark) bool {
	for _, held := range that.players {
		if held == mark {
			return true
		}
	}

	return false
}

func (that *Room) resetBoard() {
	that.board = tictactoe.Board{}
	that.winLine = nil
	that.lastMove = noMove
	that.outcome = OutcomeInProgress
}

// snapshot - must be called with mu held.
func (that *Room) snapshot() RoomState {
	state := RoomState{
		ID:               that.id,
		Board:            that.board,
		Turn:             that.turn,
		Outcome:          that.outcome,
		Started:          that.started,
		PlayerCount:      len(that.players),
		AwaitingOpponent: len(that.players) < maxPlayers,
		Version:          that.version,
	}

	if that.winLine != nil {
		state.WinLine = append([]int(nil), that.winLine...)
	}

	if that.lastMove != noMove {
		lastMove := that.lastMove
		state.LastMoveIndex = &lastMove
	}

	for connID, mark := range that.players {
		switch mark {
		case tictactoe.PlayerX:
			state.Players.X = connID
		case tictactoe.PlayerO:
			state.Players.O = connID
		}
	}

	return state
}

func winOutcome(mark tictactoe.Mark) Outcome {
	if mark == tictactoe.PlayerX {
		return OutcomeXWins
	}

	return OutcomeOWins
}
