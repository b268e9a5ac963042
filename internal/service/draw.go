package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
)

// DrawNumber draws one number for an in-progress game, picked uniformly at
// random from the numbers not yet drawn. Recording the fifth draw triggers
// winner evaluation before the call returns, so the terminal state is
// visible on the same response path.
func (s *GameService) DrawNumber(ctx context.Context, gameID uint) (domain.DrawEvent, error) {
	lock := s.locks.acquire(gameID)
	defer lock.Unlock()

	game, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return domain.DrawEvent{}, ErrGameNotFound
		}

		return domain.DrawEvent{}, fmt.Errorf("s.repo.GetGameByID -> %w", err)
	}

	if game.Status != domain.StatusInProgress {
		return domain.DrawEvent{}, ErrGameNotInProgress
	}
	if game.DrawOrder >= domain.NumbersPerGame {
		return domain.DrawEvent{}, ErrAllNumbersDrawn
	}

	pool := game.AvailableNumbers()
	if len(pool) == 0 {
		// Unreachable with the five-draw limit, but guards against a game
		// whose drawn_numbers were corrupted out-of-band.
		return domain.DrawEvent{}, ErrNoAvailableNumbers
	}

	number := pool[s.rng.Intn(len(pool))]

	game.DrawnNumbers = append(game.DrawnNumbers, number)
	game.DrawOrder++

	event := domain.DrawEvent{
		GameID:       game.ID,
		DrawnNumber:  number,
		DrawPosition: game.DrawOrder,
		DrawnAt:      time.Now(),
	}

	created, err := s.repo.RecordDraw(ctx, game, event)
	if err != nil {
		return domain.DrawEvent{}, fmt.Errorf("s.repo.RecordDraw -> %w", err)
	}

	s.notifier.Notify(game.RoomCode, Event{Type: EventNumberDrawn, Data: created})

	if game.DrawOrder == domain.NumbersPerGame {
		if _, err := s.evaluateWinners(ctx, game); err != nil {
			return domain.DrawEvent{}, fmt.Errorf("s.evaluateWinners -> %w", err)
		}
	}

	return created, nil
}

// CheckWinners evaluates a game whose five numbers have been drawn. It runs
// automatically after the fifth draw and is safe to call again: winners stay
// winners, losers stay losers and completed_at keeps its first value.
func (s *GameService) CheckWinners(ctx context.Context, gameID uint) ([]domain.Player, error) {
	lock := s.locks.acquire(gameID)
	defer lock.Unlock()

	game, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return nil, ErrGameNotFound
		}

		return nil, fmt.Errorf("s.repo.GetGameByID -> %w", err)
	}

	return s.evaluateWinners(ctx, game)
}

// evaluateWinners requires the game's lock to be held.
func (s *GameService) evaluateWinners(ctx context.Context, game domain.Game) ([]domain.Player, error) {
	if !drawComplete(game.DrawnNumbers) {
		return nil, ErrDrawIncomplete
	}

	players, err := s.repo.ListPlayers(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPlayers -> %w", err)
	}

	winners := make([]domain.Player, 0)
	winnerIDs := make([]uint, 0)
	for _, p := range players {
		if p.MatchesDraw(game.DrawnNumbers) {
			p.IsWinner = true
			winners = append(winners, p)
			winnerIDs = append(winnerIDs, p.ID)
		}
	}

	alreadyCompleted := game.Status == domain.StatusCompleted
	if !alreadyCompleted {
		now := time.Now()
		game.Status = domain.StatusCompleted
		game.CompletedAt = &now
	}

	if err := s.repo.FinalizeGame(ctx, game, winnerIDs); err != nil {
		return nil, fmt.Errorf("s.repo.FinalizeGame -> %w", err)
	}

	if !alreadyCompleted {
		s.notifier.Notify(game.RoomCode, Event{Type: EventGameCompleted, Data: game})
		s.notifier.Notify(game.RoomCode, Event{Type: EventWinnersAnnounced, Data: winners})
	}

	return winners, nil
}

func drawComplete(drawnNumbers []int) bool {
	if len(drawnNumbers) != domain.NumbersPerGame {
		return false
	}

	seen := make(map[int]bool, len(drawnNumbers))
	for _, n := range drawnNumbers {
		if seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}
