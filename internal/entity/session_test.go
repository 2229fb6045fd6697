package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"
	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	// Given: a fresh session
	session := NewSession("conn-1")
	assert.False(t, session.InRoom())

	// When: it is seated
	session.Seat("ABCDE", tictactoe.PlayerO)

	// Then: it tracks the room and mark
	assert.True(t, session.InRoom())
	assert.Equal(t, "ABCDE", session.RoomID)
	assert.Equal(t, tictactoe.PlayerO, session.Mark)

	// When: it is cleared
	session.Clear()

	// Then: nothing is tracked
	assert.False(t, session.InRoom())
	assert.Equal(t, tictactoe.EmptyCell, session.Mark)
}
