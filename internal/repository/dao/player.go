package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Player struct {
	ID     uint `gorm:"primaryKey"`
	GameID uint `gorm:"index;not null"`

	PlayerName      string `gorm:"not null"`
	SelectedNumbers datatypes.JSONSlice[int]
	IsWinner        bool `gorm:"not null;default:false"`

	JoinedAt time.Time `gorm:"not null"`
}

// AddPlayer inserts the player and bumps the owning game's player count as
// one transaction, so no reader can see the record without the count or the
// count without the record.
func (d *GameDAO) AddPlayer(ctx context.Context, player Player) (Player, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&player).Error; err != nil {
			return err
		}

		return tx.Model(&Game{}).
			Where("id = ?", player.GameID).
			UpdateColumn("current_players", gorm.Expr("current_players + 1")).Error
	})
	if err != nil {
		return Player{}, err
	}

	return player, nil
}

// RemovePlayer deletes the player and decrements the game's player count
// (floored at zero) in one transaction. When the last player leaves, the
// game itself is deleted and its remaining rows go with it via the cascade.
func (d *GameDAO) RemovePlayer(ctx context.Context, gameID, playerID uint) (int, bool, error) {
	var (
		remaining   int64
		gameDeleted bool
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player Player
		result := tx.Where("id = ? AND game_id = ?", playerID, gameID).First(&player)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}

			return result.Error
		}

		if err := tx.Delete(&player).Error; err != nil {
			return err
		}

		if err := tx.Model(&Player{}).Where("game_id = ?", gameID).Count(&remaining).Error; err != nil {
			return err
		}

		if remaining == 0 {
			gameDeleted = true
			return tx.Delete(&Game{}, gameID).Error
		}

		return tx.Model(&Game{}).
			Where("id = ?", gameID).
			UpdateColumn("current_players", gorm.Expr("GREATEST(current_players - 1, 0)")).Error
	})
	if err != nil {
		return 0, false, err
	}

	return int(remaining), gameDeleted, nil
}

func (d *GameDAO) ListPlayers(ctx context.Context, gameID uint) ([]Player, error) {
	var players []Player
	err := d.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	return players, nil
}
