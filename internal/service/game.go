package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/repository"
)

var (
	ErrGameNotFound   = repository.ErrGameNotFound
	ErrPlayerNotFound = repository.ErrPlayerNotFound
	ErrRoomCodeExists = repository.ErrRoomCodeExists

	ErrGameNotAccepting    = errors.New("game is not accepting new players")
	ErrGameAlreadyStarted  = errors.New("game already started or completed")
	ErrLeaveNotWaiting     = errors.New("cannot leave game that is not waiting")
	ErrGameNotInProgress   = errors.New("game is not in progress")
	ErrGameFull            = errors.New("game is full")
	ErrInsufficientPlayers = errors.New("not enough players to start the game")
	ErrAllNumbersDrawn     = errors.New("all numbers have already been drawn")
	ErrNoAvailableNumbers  = errors.New("no numbers left in the draw pool")
	ErrDrawIncomplete      = errors.New("winners cannot be evaluated before the draw is complete")
)

// historyLimit caps GetGameHistory to bound response sizes.
const historyLimit = 100

type GameRepository interface {
	CreateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	GetGameByRoomCode(ctx context.Context, roomCode string) (domain.Game, error)
	GetGameByID(ctx context.Context, id uint) (domain.Game, error)
	UpdateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	AddPlayer(ctx context.Context, player domain.Player) (domain.Player, error)
	RemovePlayer(ctx context.Context, gameID, playerID uint) (int, bool, error)
	ListPlayers(ctx context.Context, gameID uint) ([]domain.Player, error)
	RecordDraw(ctx context.Context, game domain.Game, event domain.DrawEvent) (domain.DrawEvent, error)
	FinalizeGame(ctx context.Context, game domain.Game, winnerIDs []uint) error
	GameSnapshot(ctx context.Context, roomCode string) (domain.GameState, error)
	ListCompletedGames(ctx context.Context, limit int) ([]domain.Game, error)
}

// GameService drives the game lifecycle: room creation, membership, draw
// progression and winner evaluation. Every mutation of a single game runs
// under that game's lock, so concurrent joins, leaves and draws cannot
// interleave.
type GameService struct {
	repo     GameRepository
	rng      RandomSource
	notifier Notifier
	locks    gameLocks
}

func NewGameService(repo GameRepository, rng RandomSource, notifier Notifier) *GameService {
	if rng == nil {
		rng = SystemRandom()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &GameService{
		repo:     repo,
		rng:      rng,
		notifier: notifier,
		locks:    newGameLocks(),
	}
}

func (s *GameService) CreateGame(ctx context.Context, roomCode string, maxPlayers int) (domain.Game, error) {
	if maxPlayers <= 0 {
		maxPlayers = domain.DefaultMaxPlayers
	}

	game := domain.Game{
		RoomCode:       roomCode,
		Status:         domain.StatusWaiting,
		MaxPlayers:     maxPlayers,
		CurrentPlayers: 0,
		DrawnNumbers:   []int{},
		DrawOrder:      0,
		CreatedAt:      time.Now(),
	}

	created, err := s.repo.CreateGame(ctx, game)
	if err != nil {
		if errors.Is(err, ErrRoomCodeExists) {
			return domain.Game{}, ErrRoomCodeExists
		}

		return domain.Game{}, fmt.Errorf("s.repo.CreateGame -> %w", err)
	}

	return created, nil
}

func (s *GameService) GetGameState(ctx context.Context, roomCode string) (domain.GameState, error) {
	state, err := s.repo.GameSnapshot(ctx, roomCode)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return domain.GameState{}, ErrGameNotFound
		}

		return domain.GameState{}, fmt.Errorf("s.repo.GameSnapshot -> %w", err)
	}

	return state, nil
}

func (s *GameService) GetGameHistory(ctx context.Context) ([]domain.Game, error) {
	games, err := s.repo.ListCompletedGames(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListCompletedGames -> %w", err)
	}

	return games, nil
}
