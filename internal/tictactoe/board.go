package tictactoe

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const BoardSize = 9

type Board [BoardSize]Mark

// WinCombos - rows, then columns, then diagonals. DetectWin relies on this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// DetectWin - returns the first line of three identical non-empty cells.
func DetectWin(board Board) (Mark, [3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, combo, true
		}
	}

	return EmptyCell, [3]int{}, false
}

// DetectDraw - true when nobody has won and there is no empty cell left.
func DetectDraw(board Board) bool {
	if _, _, won := DetectWin(board); won {
		return false
	}

	return board.IsFull()
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) IsEmptyCell(index int) bool {
	return that[index] == EmptyCell
}

func InBounds(index int) bool {
	return index >= 0 && index < BoardSize
}

func Opponent(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}

	return PlayerX
}
