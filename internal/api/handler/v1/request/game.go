package request

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{4,10}$`)

type CreateGameRequest struct {
	RoomCode   string `json:"room_code" binding:"required"`
	MaxPlayers int    `json:"max_players"`
}

func (req *CreateGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoomCode, validation.Required, validation.Match(roomCodePattern).
			Error("must be 4-10 uppercase letters or digits")),
		validation.Field(&req.MaxPlayers, validation.Required, validation.Min(domain.MinPlayersToStart)),
	)
}

type JoinGameRequest struct {
	PlayerName      string `json:"player_name" binding:"required"`
	SelectedNumbers []int  `json:"selected_numbers" binding:"required"`
}

func (req *JoinGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PlayerName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.SelectedNumbers, validation.Required, validation.By(checkSelectedNumbers)),
	)
}

func checkSelectedNumbers(value interface{}) error {
	numbers, ok := value.([]int)
	if !ok {
		return errors.New("must be a list of numbers")
	}

	if len(numbers) != domain.NumbersPerGame {
		return fmt.Errorf("exactly %v numbers must be selected", domain.NumbersPerGame)
	}

	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if n < domain.MinNumber || n > domain.MaxNumber {
			return fmt.Errorf("numbers must be between %v and %v", domain.MinNumber, domain.MaxNumber)
		}
		if seen[n] {
			return fmt.Errorf("number %v is selected more than once", n)
		}
		seen[n] = true
	}

	return nil
}

type DrawNumberRequest struct {
	GameID uint `json:"game_id" binding:"required"`
}

func (req *DrawNumberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GameID, validation.Required, validation.Min(uint(1))),
	)
}

type CheckWinnersRequest struct {
	GameID uint `json:"game_id" binding:"required"`
}

func (req *CheckWinnersRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GameID, validation.Required, validation.Min(uint(1))),
	)
}

type LeaveGameRequest struct {
	GameID   uint `json:"game_id" binding:"required"`
	PlayerID uint `json:"player_id" binding:"required"`
}

func (req *LeaveGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GameID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.PlayerID, validation.Required, validation.Min(uint(1))),
	)
}
