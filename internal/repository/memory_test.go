package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
)

func newWaitingGame(roomCode string) domain.Game {
	return domain.Game{
		RoomCode:     roomCode,
		Status:       domain.StatusWaiting,
		MaxPlayers:   4,
		DrawnNumbers: []int{},
		CreatedAt:    time.Now(),
	}
}

func TestMemoryRepository_CreateGame(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))

	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.GetGameByRoomCode(ctx, "ROOM01")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	byID, err := repo.GetGameByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ROOM01", byID.RoomCode)
}

func TestMemoryRepository_CreateGame_DuplicateRoomCode(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	_, err = repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	assert.True(t, errors.Is(err, ErrRoomCodeExists))
}

func TestMemoryRepository_GetGame_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.GetGameByRoomCode(ctx, "NOSUCH")
	assert.True(t, errors.Is(err, ErrGameNotFound))

	_, err = repo.GetGameByID(ctx, 42)
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestMemoryRepository_AddPlayer(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	player, err := repo.AddPlayer(ctx, domain.Player{
		GameID:          game.ID,
		PlayerName:      "Alice",
		SelectedNumbers: []int{1, 2, 3, 4, 5},
		JoinedAt:        time.Now(),
	})

	require.NoError(t, err)
	assert.NotZero(t, player.ID)

	updated, err := repo.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentPlayers)
}

func TestMemoryRepository_RemovePlayer(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	alice, err := repo.AddPlayer(ctx, domain.Player{GameID: game.ID, PlayerName: "Alice"})
	require.NoError(t, err)
	_, err = repo.AddPlayer(ctx, domain.Player{GameID: game.ID, PlayerName: "Bob"})
	require.NoError(t, err)

	remaining, gameDeleted, err := repo.RemovePlayer(ctx, game.ID, alice.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
	assert.False(t, gameDeleted)

	updated, err := repo.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentPlayers)

	players, err := repo.ListPlayers(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Bob", players[0].PlayerName)
}

func TestMemoryRepository_RemovePlayer_LastPlayerDeletesGame(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	alice, err := repo.AddPlayer(ctx, domain.Player{GameID: game.ID, PlayerName: "Alice"})
	require.NoError(t, err)

	remaining, gameDeleted, err := repo.RemovePlayer(ctx, game.ID, alice.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.True(t, gameDeleted)

	_, err = repo.GetGameByID(ctx, game.ID)
	assert.True(t, errors.Is(err, ErrGameNotFound))
	_, err = repo.GetGameByRoomCode(ctx, "ROOM01")
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestMemoryRepository_RemovePlayer_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	_, _, err = repo.RemovePlayer(ctx, game.ID, 9999)
	assert.True(t, errors.Is(err, ErrPlayerNotFound))

	_, _, err = repo.RemovePlayer(ctx, 9999, 1)
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestMemoryRepository_RecordDraw(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	game.DrawnNumbers = []int{17}
	game.DrawOrder = 1

	event, err := repo.RecordDraw(ctx, game, domain.DrawEvent{
		GameID:       game.ID,
		DrawnNumber:  17,
		DrawPosition: 1,
		DrawnAt:      time.Now(),
	})

	require.NoError(t, err)
	assert.NotZero(t, event.ID)

	stored, err := repo.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{17}, stored.DrawnNumbers)
	assert.Equal(t, 1, stored.DrawOrder)
}

func TestMemoryRepository_GameSnapshot(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	alice, err := repo.AddPlayer(ctx, domain.Player{GameID: game.ID, PlayerName: "Alice"})
	require.NoError(t, err)
	bob, err := repo.AddPlayer(ctx, domain.Player{GameID: game.ID, PlayerName: "Bob"})
	require.NoError(t, err)

	state, err := repo.GameSnapshot(ctx, "ROOM01")
	require.NoError(t, err)
	require.Len(t, state.Players, 2)
	assert.Equal(t, alice.ID, state.Players[0].ID)
	assert.Equal(t, bob.ID, state.Players[1].ID)
	assert.Nil(t, state.LatestDraw)

	game.DrawnNumbers = []int{3, 41}
	game.DrawOrder = 2
	_, err = repo.RecordDraw(ctx, game, domain.DrawEvent{GameID: game.ID, DrawnNumber: 3, DrawPosition: 1})
	require.NoError(t, err)
	_, err = repo.RecordDraw(ctx, game, domain.DrawEvent{GameID: game.ID, DrawnNumber: 41, DrawPosition: 2})
	require.NoError(t, err)

	state, err = repo.GameSnapshot(ctx, "ROOM01")
	require.NoError(t, err)
	require.NotNil(t, state.LatestDraw)
	assert.Equal(t, 41, state.LatestDraw.DrawnNumber)
	assert.Equal(t, 2, state.LatestDraw.DrawPosition)
}

func TestMemoryRepository_FinalizeGame(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game, err := repo.CreateGame(ctx, newWaitingGame("ROOM01"))
	require.NoError(t, err)

	alice, err := repo.AddPlayer(ctx, domain.Player{GameID: game.ID, PlayerName: "Alice"})
	require.NoError(t, err)
	_, err = repo.AddPlayer(ctx, domain.Player{GameID: game.ID, PlayerName: "Bob"})
	require.NoError(t, err)

	completedAt := time.Now()
	game.Status = domain.StatusCompleted
	game.CompletedAt = &completedAt

	err = repo.FinalizeGame(ctx, game, []uint{alice.ID})
	require.NoError(t, err)

	players, err := repo.ListPlayers(ctx, game.ID)
	require.NoError(t, err)
	assert.True(t, players[0].IsWinner)
	assert.False(t, players[1].IsWinner)

	stored, err := repo.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.CompletedAt.Equal(completedAt))

	// A second finalize must not move completed_at.
	later := completedAt.Add(time.Hour)
	game.CompletedAt = &later
	err = repo.FinalizeGame(ctx, game, []uint{alice.ID})
	require.NoError(t, err)

	stored, err = repo.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.True(t, stored.CompletedAt.Equal(completedAt))
}

func TestMemoryRepository_ListCompletedGames(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, code := range []string{"ROOMA1", "ROOMB2", "ROOMC3"} {
		game, err := repo.CreateGame(ctx, newWaitingGame(code))
		require.NoError(t, err)

		completedAt := base.Add(time.Duration(i) * time.Minute)
		game.Status = domain.StatusCompleted
		game.CompletedAt = &completedAt
		_, err = repo.UpdateGame(ctx, game)
		require.NoError(t, err)
	}
	_, err := repo.CreateGame(ctx, newWaitingGame("ROOMD4"))
	require.NoError(t, err)

	games, err := repo.ListCompletedGames(ctx, 2)

	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "ROOMC3", games[0].RoomCode)
	assert.Equal(t, "ROOMB2", games[1].RoomCode)
}

func TestMemoryRepository_CopiesAreIsolated(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	game := newWaitingGame("ROOM01")
	game.DrawnNumbers = []int{7}
	created, err := repo.CreateGame(ctx, game)
	require.NoError(t, err)

	// Mutating the returned slice must not leak into the store.
	created.DrawnNumbers[0] = 99

	stored, err := repo.GetGameByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, stored.DrawnNumbers)
}
