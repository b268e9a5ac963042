package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGame_IsFull(t *testing.T) {
	game := Game{MaxPlayers: 2}

	assert.False(t, game.IsFull())

	game.CurrentPlayers = 1
	assert.False(t, game.IsFull())

	game.CurrentPlayers = 2
	assert.True(t, game.IsFull())
}

func TestGame_AvailableNumbers(t *testing.T) {
	game := Game{}

	pool := game.AvailableNumbers()
	assert.Len(t, pool, MaxNumber)
	assert.Equal(t, MinNumber, pool[0])
	assert.Equal(t, MaxNumber, pool[len(pool)-1])

	game.DrawnNumbers = []int{1, 25, 50}
	pool = game.AvailableNumbers()
	assert.Len(t, pool, MaxNumber-3)
	assert.NotContains(t, pool, 1)
	assert.NotContains(t, pool, 25)
	assert.NotContains(t, pool, 50)
	assert.Equal(t, 2, pool[0])
}

func TestPlayer_MatchesDraw(t *testing.T) {
	player := Player{SelectedNumbers: []int{5, 4, 3, 2, 1}}

	// Comparison is set-based; draw order does not matter.
	assert.True(t, player.MatchesDraw([]int{1, 2, 3, 4, 5}))
	assert.True(t, player.MatchesDraw([]int{3, 1, 5, 2, 4}))

	assert.False(t, player.MatchesDraw([]int{1, 2, 3, 4, 6}))
	assert.False(t, player.MatchesDraw([]int{1, 2, 3, 4}))
	assert.False(t, player.MatchesDraw(nil))

	short := Player{SelectedNumbers: []int{1, 2}}
	assert.False(t, short.MatchesDraw([]int{1, 2, 3, 4, 5}))
}
