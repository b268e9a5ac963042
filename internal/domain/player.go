package domain

import "time"

type Player struct {
	ID              uint      `json:"id"`
	GameID          uint      `json:"game_id"`
	PlayerName      string    `json:"player_name"`
	SelectedNumbers []int     `json:"selected_numbers"`
	IsWinner        bool      `json:"is_winner"`
	JoinedAt        time.Time `json:"joined_at"`
}

// MatchesDraw reports whether every selected number is a member of the drawn
// set. Selections and draws are compared as sets; the order numbers were
// drawn in is irrelevant.
func (p Player) MatchesDraw(drawnNumbers []int) bool {
	drawn := make(map[int]bool, len(drawnNumbers))
	for _, n := range drawnNumbers {
		drawn[n] = true
	}

	for _, n := range p.SelectedNumbers {
		if !drawn[n] {
			return false
		}
	}
	return len(p.SelectedNumbers) == NumbersPerGame
}
