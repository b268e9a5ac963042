package domain

import "time"

// GameStatus is the lifecycle state of a game. Transitions are monotonic:
// waiting -> in_progress -> completed.
type GameStatus string

const (
	StatusWaiting    GameStatus = "waiting"
	StatusInProgress GameStatus = "in_progress"
	StatusCompleted  GameStatus = "completed"
)

const (
	// MinNumber and MaxNumber bound the drawable pool.
	MinNumber = 1
	MaxNumber = 50

	// NumbersPerGame is how many numbers are drawn before a game completes,
	// and how many numbers each player selects.
	NumbersPerGame = 5

	// MinPlayersToStart is the live player count required by StartGame.
	MinPlayersToStart = 2

	// DefaultMaxPlayers applies when a game is created without a limit.
	DefaultMaxPlayers = 10
)

type Game struct {
	ID             uint       `json:"id"`
	RoomCode       string     `json:"room_code"`
	Status         GameStatus `json:"status"`
	MaxPlayers     int        `json:"max_players"`
	CurrentPlayers int        `json:"current_players"`
	DrawnNumbers   []int      `json:"drawn_numbers"`
	DrawOrder      int        `json:"draw_order"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// IsFull reports whether the game has reached its player limit.
func (g Game) IsFull() bool {
	return g.CurrentPlayers >= g.MaxPlayers
}

// AvailableNumbers returns the drawable pool: every number in
// [MinNumber, MaxNumber] that has not been drawn yet, in ascending order.
func (g Game) AvailableNumbers() []int {
	drawn := make(map[int]bool, len(g.DrawnNumbers))
	for _, n := range g.DrawnNumbers {
		drawn[n] = true
	}

	pool := make([]int, 0, MaxNumber-len(drawn))
	for n := MinNumber; n <= MaxNumber; n++ {
		if !drawn[n] {
			pool = append(pool, n)
		}
	}
	return pool
}
