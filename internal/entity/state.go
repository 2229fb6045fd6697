package entity

import "github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"

// RoomState - point-in-time copy of a room, safe to share and serialize.
type RoomState struct {
	ID               string          `json:"id"`
	Board            tictactoe.Board `json:"board"`
	Turn             tictactoe.Mark  `json:"turn"`
	Outcome          Outcome         `json:"outcome"`
	WinLine          []int           `json:"winLine"`
	Started          bool            `json:"started"`
	PlayerCount      int             `json:"playerCount"`
	AwaitingOpponent bool            `json:"awaitingOpponent"`
	Players          Seats           `json:"players"`
	LastMoveIndex    *int            `json:"lastMoveIndex"`
	Version          uint64          `json:"version"`
}

// Seats - connection ids by mark, empty when the seat is free.
type Seats struct {
	X string `json:"X"`
	O string `json:"O"`
}

func (that RoomState) IsFinished() bool {
	switch that.Outcome {
	case OutcomeXWins, OutcomeOWins, OutcomeDraw:
		return true
	default:
		return false
	}
}

// RoomStats - registry-wide counters.
type RoomStats struct {
	Rooms   int `json:"rooms"`
	Waiting int `json:"waiting"`
	Playing int `json:"playing"`
	Players int `json:"players"`
}
