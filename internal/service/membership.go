package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
)

// JoinGame admits a player to a waiting game. The player record and the
// game's player count change as one unit in the repository.
func (s *GameService) JoinGame(ctx context.Context, roomCode, playerName string, selectedNumbers []int) (domain.Player, error) {
	game, err := s.repo.GetGameByRoomCode(ctx, roomCode)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return domain.Player{}, ErrGameNotFound
		}

		return domain.Player{}, fmt.Errorf("s.repo.GetGameByRoomCode -> %w", err)
	}

	lock := s.locks.acquire(game.ID)
	defer lock.Unlock()

	// Re-read under the lock; the game may have started or filled up since
	// the lookup.
	game, err = s.repo.GetGameByID(ctx, game.ID)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return domain.Player{}, ErrGameNotFound
		}

		return domain.Player{}, fmt.Errorf("s.repo.GetGameByID -> %w", err)
	}

	if game.Status != domain.StatusWaiting {
		return domain.Player{}, ErrGameNotAccepting
	}
	if game.IsFull() {
		return domain.Player{}, ErrGameFull
	}

	player := domain.Player{
		GameID:          game.ID,
		PlayerName:      playerName,
		SelectedNumbers: append([]int(nil), selectedNumbers...),
		IsWinner:        false,
		JoinedAt:        time.Now(),
	}

	created, err := s.repo.AddPlayer(ctx, player)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.AddPlayer -> %w", err)
	}

	s.notifier.Notify(game.RoomCode, Event{Type: EventPlayerJoined, Data: created})

	return created, nil
}

// LeaveGame removes a player from a waiting game. When the last player
// leaves, the game is deleted along with everything it owns.
func (s *GameService) LeaveGame(ctx context.Context, gameID, playerID uint) error {
	lock := s.locks.acquire(gameID)
	defer lock.Unlock()

	game, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return ErrGameNotFound
		}

		return fmt.Errorf("s.repo.GetGameByID -> %w", err)
	}

	if game.Status != domain.StatusWaiting {
		return ErrLeaveNotWaiting
	}

	_, gameDeleted, err := s.repo.RemovePlayer(ctx, gameID, playerID)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}

		return fmt.Errorf("s.repo.RemovePlayer -> %w", err)
	}

	if gameDeleted {
		s.locks.forget(gameID)
	}

	return nil
}

// StartGame moves a waiting game to in_progress. The player count is
// recomputed from the live player records before the transition; direct
// record manipulation can leave the counter out of step, and starting is the
// point where it gets healed.
func (s *GameService) StartGame(ctx context.Context, roomCode string) (domain.Game, error) {
	game, err := s.repo.GetGameByRoomCode(ctx, roomCode)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return domain.Game{}, ErrGameNotFound
		}

		return domain.Game{}, fmt.Errorf("s.repo.GetGameByRoomCode -> %w", err)
	}

	lock := s.locks.acquire(game.ID)
	defer lock.Unlock()

	game, err = s.repo.GetGameByID(ctx, game.ID)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return domain.Game{}, ErrGameNotFound
		}

		return domain.Game{}, fmt.Errorf("s.repo.GetGameByID -> %w", err)
	}

	if game.Status != domain.StatusWaiting {
		return domain.Game{}, ErrGameAlreadyStarted
	}

	players, err := s.repo.ListPlayers(ctx, game.ID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.ListPlayers -> %w", err)
	}

	if len(players) < domain.MinPlayersToStart {
		return domain.Game{}, ErrInsufficientPlayers
	}

	now := time.Now()
	game.CurrentPlayers = len(players)
	game.Status = domain.StatusInProgress
	game.StartedAt = &now
	game.DrawOrder = 0
	game.DrawnNumbers = []int{}

	updated, err := s.repo.UpdateGame(ctx, game)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.UpdateGame -> %w", err)
	}

	s.notifier.Notify(updated.RoomCode, Event{Type: EventGameStarted, Data: updated})

	return updated, nil
}
