package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
)

func TestJoinGame(t *testing.T) {
	svc, _, recorder := newTestService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "ROOM01", 4)
	require.NoError(t, err)

	player, err := svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})

	require.NoError(t, err)
	assert.NotZero(t, player.ID)
	assert.Equal(t, game.ID, player.GameID)
	assert.Equal(t, "Alice", player.PlayerName)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, player.SelectedNumbers)
	assert.False(t, player.IsWinner)

	updated, err := svc.GetGameState(ctx, "ROOM01")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Game.CurrentPlayers)

	assert.Equal(t, []EventType{EventPlayerJoined}, recorder.types())
}

func TestJoinGame_GameNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.JoinGame(context.Background(), "NOSUCH", "Alice", []int{1, 2, 3, 4, 5})

	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestJoinGame_GameFull(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateGame(ctx, "ROOM01", 2)
	require.NoError(t, err)

	_, err = svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = svc.JoinGame(ctx, "ROOM01", "Bob", []int{6, 7, 8, 9, 10})
	require.NoError(t, err)

	_, err = svc.JoinGame(ctx, "ROOM01", "Carol", []int{11, 12, 13, 14, 15})
	assert.True(t, errors.Is(err, ErrGameFull))
}

func TestJoinGame_GameAlreadyStarted(t *testing.T) {
	svc, _, _ := newTestService()

	startGameWithTwoPlayers(t, svc, "ROOM01")

	_, err := svc.JoinGame(context.Background(), "ROOM01", "Carol", []int{11, 12, 13, 14, 15})

	assert.True(t, errors.Is(err, ErrGameNotAccepting))
}

func TestLeaveGame(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "ROOM01", 4)
	require.NoError(t, err)

	alice, err := svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = svc.JoinGame(ctx, "ROOM01", "Bob", []int{6, 7, 8, 9, 10})
	require.NoError(t, err)

	err = svc.LeaveGame(ctx, game.ID, alice.ID)

	require.NoError(t, err)

	state, err := svc.GetGameState(ctx, "ROOM01")
	require.NoError(t, err)
	assert.Equal(t, 1, state.Game.CurrentPlayers)
	require.Len(t, state.Players, 1)
	assert.Equal(t, "Bob", state.Players[0].PlayerName)
}

func TestLeaveGame_LastPlayerDeletesGame(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "ROOM01", 4)
	require.NoError(t, err)

	alice, err := svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	err = svc.LeaveGame(ctx, game.ID, alice.ID)
	require.NoError(t, err)

	_, err = svc.GetGameState(ctx, "ROOM01")
	assert.True(t, errors.Is(err, ErrGameNotFound))

	// The room code is free for reuse once the game is gone.
	_, err = svc.CreateGame(ctx, "ROOM01", 4)
	assert.NoError(t, err)
}

func TestLeaveGame_NotWaiting(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	game := startGameWithTwoPlayers(t, svc, "ROOM01")

	state, err := svc.GetGameState(ctx, "ROOM01")
	require.NoError(t, err)

	err = svc.LeaveGame(ctx, game.ID, state.Players[0].ID)

	assert.True(t, errors.Is(err, ErrLeaveNotWaiting))
}

func TestLeaveGame_PlayerNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "ROOM01", 4)
	require.NoError(t, err)

	_, err = svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	err = svc.LeaveGame(ctx, game.ID, 9999)

	assert.True(t, errors.Is(err, ErrPlayerNotFound))
}

func TestStartGame(t *testing.T) {
	svc, _, recorder := newTestService()
	ctx := context.Background()

	_, err := svc.CreateGame(ctx, "ROOM01", 4)
	require.NoError(t, err)

	_, err = svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = svc.JoinGame(ctx, "ROOM01", "Bob", []int{6, 7, 8, 9, 10})
	require.NoError(t, err)

	game, err := svc.StartGame(ctx, "ROOM01")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, game.Status)
	assert.Equal(t, 2, game.CurrentPlayers)
	assert.NotNil(t, game.StartedAt)
	assert.Empty(t, game.DrawnNumbers)
	assert.Equal(t, 0, game.DrawOrder)

	assert.Equal(t, []EventType{EventPlayerJoined, EventPlayerJoined, EventGameStarted}, recorder.types())
}

func TestStartGame_InsufficientPlayers(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateGame(ctx, "ROOM01", 4)
	require.NoError(t, err)

	_, err = svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	_, err = svc.StartGame(ctx, "ROOM01")

	assert.True(t, errors.Is(err, ErrInsufficientPlayers))
}

func TestStartGame_AlreadyStarted(t *testing.T) {
	svc, _, _ := newTestService()

	startGameWithTwoPlayers(t, svc, "ROOM01")

	_, err := svc.StartGame(context.Background(), "ROOM01")

	assert.True(t, errors.Is(err, ErrGameAlreadyStarted))
}

func TestStartGame_GameNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.StartGame(context.Background(), "NOSUCH")

	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestStartGame_HealsPlayerCount(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "ROOM01", 4)
	require.NoError(t, err)

	_, err = svc.JoinGame(ctx, "ROOM01", "Alice", []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = svc.JoinGame(ctx, "ROOM01", "Bob", []int{6, 7, 8, 9, 10})
	require.NoError(t, err)

	// Drift the counter out from under the service.
	game, err = repo.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	game.CurrentPlayers = 7
	_, err = repo.UpdateGame(ctx, game)
	require.NoError(t, err)

	started, err := svc.StartGame(ctx, "ROOM01")

	require.NoError(t, err)
	assert.Equal(t, 2, started.CurrentPlayers)
}

func TestJoinGame_ConcurrentJoinsRespectCapacity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateGame(ctx, "ROOM01", 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			numbers := []int{i + 1, i + 11, i + 21, i + 31, i + 41}
			_, errs[i] = svc.JoinGame(ctx, "ROOM01", fmt.Sprintf("Player%d", i), numbers)
		}(i)
	}
	wg.Wait()

	joined := 0
	for _, err := range errs {
		if err == nil {
			joined++
		} else {
			assert.True(t, errors.Is(err, ErrGameFull))
		}
	}
	assert.Equal(t, 3, joined)

	state, err := svc.GetGameState(ctx, "ROOM01")
	require.NoError(t, err)
	assert.Equal(t, 3, state.Game.CurrentPlayers)
	assert.Len(t, state.Players, 3)
}
