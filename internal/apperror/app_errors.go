package apperror

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrGameNotActive     = errors.New("game is not active")
	ErrNotEnoughPlayers  = errors.New("not enough players for a rematch")
	ErrIndexOutOfRange   = errors.New("cell index is out of range")
	ErrNotInRoom         = errors.New("player is not in this room")
	ErrRoomCodeExhausted = errors.New("could not generate a unique room code")
	ErrBadRequest        = errors.New("bad request")
)

const internalMessage = "internal server error"

var known = []error{
	ErrRoomNotFound,
	ErrRoomFull,
	ErrNotYourTurn,
	ErrCellOccupied,
	ErrGameNotActive,
	ErrNotEnoughPlayers,
	ErrIndexOutOfRange,
	ErrNotInRoom,
	ErrRoomCodeExhausted,
	ErrBadRequest,
}

// Message - returns the client-facing text for err. Wrapping context is stripped,
// errors outside the taxonomy collapse to a generic message.
func Message(err error) string {
	for _, sentinel := range known {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return internalMessage
}
