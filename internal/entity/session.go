package entity

import "github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"

// Session - per-connection context. It is only touched from its own connection's read loop.
type Session struct {
	ConnID string
	RoomID string
	Mark   tictactoe.Mark
}

func NewSession(connID string) *Session {
	return &Session{ConnID: connID}
}

func (that *Session) InRoom() bool {
	return that.RoomID != ""
}

func (that *Session) Seat(roomID string, mark tictactoe.Mark) {
	that.RoomID = roomID
	that.Mark = mark
}

func (that *Session) Clear() {
	that.RoomID = ""
	that.Mark = tictactoe.EmptyCell
}
