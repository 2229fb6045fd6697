package entity

import "github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"

// Inbound actions.
const (
	ActionQuickMatch = "quick-match"
	ActionCreateRoom = "create-room"
	ActionJoinRoom   = "join-room-by-id"
	ActionMakeMove   = "make-move"
	ActionPlayAgain  = "play-again"
	ActionLeaveRoom  = "leave-room"
)

// Outbound actions.
const (
	ActionJoinedRoom     = "joined-room"
	ActionGameState      = "game-state"
	ActionRematchStarted = "rematch-started"
	ActionError          = "error"
)

type JoinedRoom struct {
	RoomID string         `json:"roomId"`
	Mark   tictactoe.Mark `json:"mark"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}
