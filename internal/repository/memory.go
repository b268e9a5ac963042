package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
)

// MemoryRepository is an in-memory store with the same transactional
// behavior as the Postgres-backed GameRepository. It backs unit tests and
// keeps the game state machine runnable without a database.
type MemoryRepository struct {
	mu sync.RWMutex

	games        map[uint]domain.Game
	gamesByCode  map[string]uint
	players      map[uint][]domain.Player // gameID -> players in join order
	events       map[uint][]domain.DrawEvent
	nextGameID   uint
	nextPlayerID uint
	nextEventID  uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		games:        make(map[uint]domain.Game),
		gamesByCode:  make(map[string]uint),
		players:      make(map[uint][]domain.Player),
		events:       make(map[uint][]domain.DrawEvent),
		nextGameID:   1,
		nextPlayerID: 1,
		nextEventID:  1,
	}
}

func copyGame(g domain.Game) domain.Game {
	g.DrawnNumbers = append([]int(nil), g.DrawnNumbers...)
	return g
}

func copyPlayer(p domain.Player) domain.Player {
	p.SelectedNumbers = append([]int(nil), p.SelectedNumbers...)
	return p
}

func (r *MemoryRepository) CreateGame(_ context.Context, game domain.Game) (domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gamesByCode[game.RoomCode]; exists {
		return domain.Game{}, ErrRoomCodeExists
	}

	game.ID = r.nextGameID
	r.nextGameID++

	r.games[game.ID] = copyGame(game)
	r.gamesByCode[game.RoomCode] = game.ID
	return copyGame(game), nil
}

func (r *MemoryRepository) GetGameByRoomCode(_ context.Context, roomCode string) (domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.gamesByCode[roomCode]
	if !exists {
		return domain.Game{}, ErrGameNotFound
	}
	return copyGame(r.games[id]), nil
}

func (r *MemoryRepository) GetGameByID(_ context.Context, id uint) (domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, exists := r.games[id]
	if !exists {
		return domain.Game{}, ErrGameNotFound
	}
	return copyGame(game), nil
}

func (r *MemoryRepository) UpdateGame(_ context.Context, game domain.Game) (domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[game.ID]; !exists {
		return domain.Game{}, ErrGameNotFound
	}

	r.games[game.ID] = copyGame(game)
	return copyGame(game), nil
}

func (r *MemoryRepository) AddPlayer(_ context.Context, player domain.Player) (domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, exists := r.games[player.GameID]
	if !exists {
		return domain.Player{}, ErrGameNotFound
	}

	player.ID = r.nextPlayerID
	r.nextPlayerID++

	r.players[game.ID] = append(r.players[game.ID], copyPlayer(player))
	game.CurrentPlayers++
	r.games[game.ID] = game

	return copyPlayer(player), nil
}

func (r *MemoryRepository) RemovePlayer(_ context.Context, gameID, playerID uint) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, exists := r.games[gameID]
	if !exists {
		return 0, false, ErrGameNotFound
	}

	players := r.players[gameID]
	idx := -1
	for i, p := range players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false, ErrPlayerNotFound
	}

	players = append(players[:idx], players[idx+1:]...)
	r.players[gameID] = players

	if len(players) == 0 {
		delete(r.games, gameID)
		delete(r.gamesByCode, game.RoomCode)
		delete(r.players, gameID)
		delete(r.events, gameID)
		return 0, true, nil
	}

	if game.CurrentPlayers > 0 {
		game.CurrentPlayers--
	}
	r.games[gameID] = game

	return len(players), false, nil
}

func (r *MemoryRepository) ListPlayers(_ context.Context, gameID uint) ([]domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]domain.Player, 0, len(r.players[gameID]))
	for _, p := range r.players[gameID] {
		players = append(players, copyPlayer(p))
	}
	return players, nil
}

func (r *MemoryRepository) RecordDraw(_ context.Context, game domain.Game, event domain.DrawEvent) (domain.DrawEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.games[game.ID]
	if !exists {
		return domain.DrawEvent{}, ErrGameNotFound
	}

	event.ID = r.nextEventID
	r.nextEventID++

	r.events[game.ID] = append(r.events[game.ID], event)

	stored.DrawnNumbers = append([]int(nil), game.DrawnNumbers...)
	stored.DrawOrder = game.DrawOrder
	r.games[game.ID] = stored

	return event, nil
}

func (r *MemoryRepository) FinalizeGame(_ context.Context, game domain.Game, winnerIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.games[game.ID]
	if !exists {
		return ErrGameNotFound
	}

	winners := make(map[uint]bool, len(winnerIDs))
	for _, id := range winnerIDs {
		winners[id] = true
	}
	for i, p := range r.players[game.ID] {
		if winners[p.ID] {
			r.players[game.ID][i].IsWinner = true
		}
	}

	if stored.Status != domain.StatusCompleted {
		stored.Status = game.Status
		stored.CompletedAt = game.CompletedAt
		r.games[game.ID] = stored
	}

	return nil
}

func (r *MemoryRepository) GameSnapshot(_ context.Context, roomCode string) (domain.GameState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.gamesByCode[roomCode]
	if !exists {
		return domain.GameState{}, ErrGameNotFound
	}

	state := domain.GameState{
		Game:    copyGame(r.games[id]),
		Players: make([]domain.Player, 0, len(r.players[id])),
	}
	for _, p := range r.players[id] {
		state.Players = append(state.Players, copyPlayer(p))
	}

	if events := r.events[id]; len(events) > 0 {
		latest := events[len(events)-1]
		state.LatestDraw = &latest
	}

	return state, nil
}

func (r *MemoryRepository) ListCompletedGames(_ context.Context, limit int) ([]domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var games []domain.Game
	for _, g := range r.games {
		if g.Status == domain.StatusCompleted {
			games = append(games, copyGame(g))
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CompletedAt.After(*games[j].CompletedAt)
	})

	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}
