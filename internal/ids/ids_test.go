package ids

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)

func TestGenerateRoomCode(t *testing.T) {
	for range 200 {
		// When: a room code is generated
		code, err := GenerateRoomCode()

		// Then: it is five uppercase alphanumeric characters
		require.NoError(t, err)
		assert.Regexp(t, roomCodePattern, code)
	}
}

func TestNewConnectionID(t *testing.T) {
	// When: two connection ids are generated
	first, second := NewConnectionID(), NewConnectionID()

	// Then: both are valid and distinct
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
