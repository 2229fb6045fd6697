package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectWin(t *testing.T) {
	t.Run("Every line is detected for both marks", func(t *testing.T) {
		for _, mark := range []Mark{PlayerX, PlayerO} {
			for _, combo := range WinCombos {
				// Given: a board with a single line filled by one mark
				var board Board
				for _, index := range combo {
					board[index] = mark
				}

				// When: detecting a win
				winner, line, won := DetectWin(board)

				// Then: the mark and the exact line are reported
				require.True(t, won, "line %v", combo)
				assert.Equal(t, mark, winner)
				assert.Equal(t, combo, line)
			}
		}
	})

	t.Run("Empty board has no winner", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: detecting a win
		winner, _, won := DetectWin(board)

		// Then: no win is reported
		assert.False(t, won)
		assert.Equal(t, EmptyCell, winner)
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		// Given: a board where no line has three equal marks
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, EmptyCell,
			PlayerO, PlayerX, EmptyCell,
		}

		// When: detecting a win
		_, _, won := DetectWin(board)

		// Then: no win is reported
		assert.False(t, won)
	})

	t.Run("First line in fixed order wins", func(t *testing.T) {
		// Given: a board where the top row and the left column both hold X
		board := Board{
			PlayerX, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerX, PlayerO, PlayerO,
		}

		// When: detecting a win
		_, line, won := DetectWin(board)

		// Then: the row is reported since rows are checked first
		require.True(t, won)
		assert.Equal(t, [3]int{0, 1, 2}, line)
	})
}

func TestDetectDraw(t *testing.T) {
	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a full board with no three in a row
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// When/Then: it is a draw
		assert.True(t, DetectDraw(board))
	})

	t.Run("Full board with a line is not a draw", func(t *testing.T) {
		// Given: a full board where X completes the main diagonal
		board := Board{
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerX,
		}

		// When/Then: it is not a draw
		assert.False(t, DetectDraw(board))
	})

	t.Run("Board with an empty cell is not a draw", func(t *testing.T) {
		// Given: a board with one empty cell
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, EmptyCell,
		}

		// When/Then: it is not a draw
		assert.False(t, DetectDraw(board))
	})
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, PlayerO, Opponent(PlayerX))
	assert.Equal(t, PlayerX, Opponent(PlayerO))
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0))
	assert.True(t, InBounds(8))
	assert.False(t, InBounds(-1))
	assert.False(t, InBounds(9))
}
