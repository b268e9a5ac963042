package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrRoomCodeExists = errors.New("room code already in use")
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
)

type Game struct {
	ID uint `gorm:"primaryKey"`

	RoomCode string `gorm:"unique;size:10;not null"`
	Status   string `gorm:"not null;default:waiting"`

	MaxPlayers     int `gorm:"not null"`
	CurrentPlayers int `gorm:"not null;default:0"`

	DrawnNumbers datatypes.JSONSlice[int]
	DrawOrder    int `gorm:"not null;default:0"`

	Players    []Player    `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	DrawEvents []DrawEvent `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`

	CreatedAt   time.Time `gorm:"not null"`
	StartedAt   *time.Time
	CompletedAt *time.Time
}

type GameDAO struct {
	db *gorm.DB
}

func NewGameDAO(db *gorm.DB) *GameDAO {
	return &GameDAO{
		db: db,
	}
}

func (d *GameDAO) Insert(ctx context.Context, game Game) (Game, error) {
	result := d.db.WithContext(ctx).Create(&game)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_games_room_code"`) {
			return Game{}, ErrRoomCodeExists
		}

		return Game{}, result.Error
	}

	return game, nil
}

func (d *GameDAO) GetByRoomCode(ctx context.Context, roomCode string) (Game, error) {
	var game Game
	result := d.db.WithContext(ctx).Where("room_code = ?", roomCode).First(&game)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Game{}, ErrGameNotFound
		}

		return Game{}, result.Error
	}

	return game, nil
}

func (d *GameDAO) GetByID(ctx context.Context, id uint) (Game, error) {
	var game Game
	result := d.db.WithContext(ctx).First(&game, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Game{}, ErrGameNotFound
		}

		return Game{}, result.Error
	}

	return game, nil
}

func (d *GameDAO) Update(ctx context.Context, game Game) (Game, error) {
	result := d.db.WithContext(ctx).Save(&game)
	if result.Error != nil {
		return Game{}, result.Error
	}

	return game, nil
}

// FinalizeGame marks the given players as winners and completes the game in
// one transaction. The status guard keeps completed_at from being overwritten
// when a finished game is evaluated again.
func (d *GameDAO) FinalizeGame(ctx context.Context, game Game, winnerIDs []uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(winnerIDs) > 0 {
			err := tx.Model(&Player{}).
				Where("game_id = ? AND id IN ?", game.ID, winnerIDs).
				Update("is_winner", true).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&Game{}).
			Where("id = ? AND status <> ?", game.ID, "completed").
			Updates(map[string]interface{}{
				"status":       game.Status,
				"completed_at": game.CompletedAt,
			}).Error
	})
}

// Snapshot reads the game, its players in join order and the latest draw
// event inside one transaction, so callers never observe a game whose
// draw_order disagrees with its draw events.
func (d *GameDAO) Snapshot(ctx context.Context, roomCode string) (Game, []Player, *DrawEvent, error) {
	var (
		game    Game
		players []Player
		latest  *DrawEvent
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("room_code = ?", roomCode).First(&game)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}

			return result.Error
		}

		if err := tx.Where("game_id = ?", game.ID).Order("id ASC").Find(&players).Error; err != nil {
			return err
		}

		var event DrawEvent
		result = tx.Where("game_id = ?", game.ID).Order("draw_position DESC").First(&event)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}

			return result.Error
		}

		latest = &event
		return nil
	})
	if err != nil {
		return Game{}, nil, nil, err
	}

	return game, players, latest, nil
}

func (d *GameDAO) ListCompleted(ctx context.Context, limit int) ([]Game, error) {
	var games []Game
	err := d.db.WithContext(ctx).
		Where("status = ?", "completed").
		Order("completed_at DESC").
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, err
	}

	return games, nil
}
