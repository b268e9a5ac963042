package repository

import (
	"context"

	"gorm.io/datatypes"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/repository/dao"
)

var (
	ErrRoomCodeExists = dao.ErrRoomCodeExists
	ErrGameNotFound   = dao.ErrGameNotFound
	ErrPlayerNotFound = dao.ErrPlayerNotFound
)

type GameDAO interface {
	Insert(ctx context.Context, game dao.Game) (dao.Game, error)
	GetByRoomCode(ctx context.Context, roomCode string) (dao.Game, error)
	GetByID(ctx context.Context, id uint) (dao.Game, error)
	Update(ctx context.Context, game dao.Game) (dao.Game, error)
	AddPlayer(ctx context.Context, player dao.Player) (dao.Player, error)
	RemovePlayer(ctx context.Context, gameID, playerID uint) (int, bool, error)
	ListPlayers(ctx context.Context, gameID uint) ([]dao.Player, error)
	RecordDraw(ctx context.Context, game dao.Game, event dao.DrawEvent) (dao.DrawEvent, error)
	FinalizeGame(ctx context.Context, game dao.Game, winnerIDs []uint) error
	Snapshot(ctx context.Context, roomCode string) (dao.Game, []dao.Player, *dao.DrawEvent, error)
	ListCompleted(ctx context.Context, limit int) ([]dao.Game, error)
}

// GameRepository is the Postgres-backed store. It translates between domain
// records and DAO rows; all transactional guarantees live in the DAO.
type GameRepository struct {
	dao GameDAO
}

func NewGameRepository(dao GameDAO) *GameRepository {
	return &GameRepository{
		dao: dao,
	}
}

func (r *GameRepository) gameDomainToDao(g domain.Game) dao.Game {
	return dao.Game{
		ID:             g.ID,
		RoomCode:       g.RoomCode,
		Status:         string(g.Status),
		MaxPlayers:     g.MaxPlayers,
		CurrentPlayers: g.CurrentPlayers,
		DrawnNumbers:   datatypes.JSONSlice[int](g.DrawnNumbers),
		DrawOrder:      g.DrawOrder,
		CreatedAt:      g.CreatedAt,
		StartedAt:      g.StartedAt,
		CompletedAt:    g.CompletedAt,
	}
}

func (r *GameRepository) gameDaoToDomain(g dao.Game) domain.Game {
	return domain.Game{
		ID:             g.ID,
		RoomCode:       g.RoomCode,
		Status:         domain.GameStatus(g.Status),
		MaxPlayers:     g.MaxPlayers,
		CurrentPlayers: g.CurrentPlayers,
		DrawnNumbers:   []int(g.DrawnNumbers),
		DrawOrder:      g.DrawOrder,
		CreatedAt:      g.CreatedAt,
		StartedAt:      g.StartedAt,
		CompletedAt:    g.CompletedAt,
	}
}

func (r *GameRepository) playerDomainToDao(p domain.Player) dao.Player {
	return dao.Player{
		ID:              p.ID,
		GameID:          p.GameID,
		PlayerName:      p.PlayerName,
		SelectedNumbers: datatypes.JSONSlice[int](p.SelectedNumbers),
		IsWinner:        p.IsWinner,
		JoinedAt:        p.JoinedAt,
	}
}

func (r *GameRepository) playerDaoToDomain(p dao.Player) domain.Player {
	return domain.Player{
		ID:              p.ID,
		GameID:          p.GameID,
		PlayerName:      p.PlayerName,
		SelectedNumbers: []int(p.SelectedNumbers),
		IsWinner:        p.IsWinner,
		JoinedAt:        p.JoinedAt,
	}
}

func (r *GameRepository) playersDaoToDomain(players []dao.Player) []domain.Player {
	domainPlayers := make([]domain.Player, len(players))
	for i, p := range players {
		domainPlayers[i] = r.playerDaoToDomain(p)
	}
	return domainPlayers
}

func (r *GameRepository) eventDomainToDao(e domain.DrawEvent) dao.DrawEvent {
	return dao.DrawEvent{
		ID:           e.ID,
		GameID:       e.GameID,
		DrawnNumber:  e.DrawnNumber,
		DrawPosition: e.DrawPosition,
		DrawnAt:      e.DrawnAt,
	}
}

func (r *GameRepository) eventDaoToDomain(e dao.DrawEvent) domain.DrawEvent {
	return domain.DrawEvent{
		ID:           e.ID,
		GameID:       e.GameID,
		DrawnNumber:  e.DrawnNumber,
		DrawPosition: e.DrawPosition,
		DrawnAt:      e.DrawnAt,
	}
}

func (r *GameRepository) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	created, err := r.dao.Insert(ctx, r.gameDomainToDao(game))
	if err != nil {
		return domain.Game{}, err
	}

	return r.gameDaoToDomain(created), nil
}

func (r *GameRepository) GetGameByRoomCode(ctx context.Context, roomCode string) (domain.Game, error) {
	game, err := r.dao.GetByRoomCode(ctx, roomCode)
	if err != nil {
		return domain.Game{}, err
	}

	return r.gameDaoToDomain(game), nil
}

func (r *GameRepository) GetGameByID(ctx context.Context, id uint) (domain.Game, error) {
	game, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Game{}, err
	}

	return r.gameDaoToDomain(game), nil
}

func (r *GameRepository) UpdateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	updated, err := r.dao.Update(ctx, r.gameDomainToDao(game))
	if err != nil {
		return domain.Game{}, err
	}

	return r.gameDaoToDomain(updated), nil
}

func (r *GameRepository) AddPlayer(ctx context.Context, player domain.Player) (domain.Player, error) {
	created, err := r.dao.AddPlayer(ctx, r.playerDomainToDao(player))
	if err != nil {
		return domain.Player{}, err
	}

	return r.playerDaoToDomain(created), nil
}

func (r *GameRepository) RemovePlayer(ctx context.Context, gameID, playerID uint) (int, bool, error) {
	return r.dao.RemovePlayer(ctx, gameID, playerID)
}

func (r *GameRepository) ListPlayers(ctx context.Context, gameID uint) ([]domain.Player, error) {
	players, err := r.dao.ListPlayers(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return r.playersDaoToDomain(players), nil
}

func (r *GameRepository) RecordDraw(ctx context.Context, game domain.Game, event domain.DrawEvent) (domain.DrawEvent, error) {
	created, err := r.dao.RecordDraw(ctx, r.gameDomainToDao(game), r.eventDomainToDao(event))
	if err != nil {
		return domain.DrawEvent{}, err
	}

	return r.eventDaoToDomain(created), nil
}

func (r *GameRepository) FinalizeGame(ctx context.Context, game domain.Game, winnerIDs []uint) error {
	return r.dao.FinalizeGame(ctx, r.gameDomainToDao(game), winnerIDs)
}

func (r *GameRepository) GameSnapshot(ctx context.Context, roomCode string) (domain.GameState, error) {
	game, players, latest, err := r.dao.Snapshot(ctx, roomCode)
	if err != nil {
		return domain.GameState{}, err
	}

	state := domain.GameState{
		Game:    r.gameDaoToDomain(game),
		Players: r.playersDaoToDomain(players),
	}
	if latest != nil {
		event := r.eventDaoToDomain(*latest)
		state.LatestDraw = &event
	}

	return state, nil
}

func (r *GameRepository) ListCompletedGames(ctx context.Context, limit int) ([]domain.Game, error) {
	games, err := r.dao.ListCompleted(ctx, limit)
	if err != nil {
		return nil, err
	}

	domainGames := make([]domain.Game, len(games))
	for i, g := range games {
		domainGames[i] = r.gameDaoToDomain(g)
	}
	return domainGames, nil
}
