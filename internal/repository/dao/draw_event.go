package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type DrawEvent struct {
	ID     uint `gorm:"primaryKey"`
	GameID uint `gorm:"index;not null"`

	DrawnNumber  int `gorm:"not null"`
	DrawPosition int `gorm:"not null"`

	DrawnAt time.Time `gorm:"not null"`
}

// RecordDraw appends a draw event and writes the game's updated
// drawn_numbers and draw_order in one transaction.
func (d *GameDAO) RecordDraw(ctx context.Context, game Game, event DrawEvent) (DrawEvent, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Model(&Game{}).
			Where("id = ?", game.ID).
			Updates(map[string]interface{}{
				"drawn_numbers": game.DrawnNumbers,
				"draw_order":    game.DrawOrder,
			}).Error
	})
	if err != nil {
		return DrawEvent{}, err
	}

	return event, nil
}

func (d *GameDAO) LatestDraw(ctx context.Context, gameID uint) (*DrawEvent, error) {
	var event DrawEvent
	result := d.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("draw_position DESC").
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &event, nil
}
