package ids

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	RoomCodeLength   = 5
)

// GenerateRoomCode - generates a short uppercase alphanumeric room code.
func GenerateRoomCode() (string, error) {
	code := make([]byte, RoomCodeLength)
	limit := big.NewInt(int64(len(roomCodeAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}

		code[i] = roomCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// NewConnectionID - generates a new unique connection id.
func NewConnectionID() string {
	return uuid.NewString()
}
