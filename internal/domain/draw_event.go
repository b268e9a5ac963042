package domain

import "time"

// DrawEvent records a single drawn number. Events are immutable and
// append-only per game; DrawPosition is strictly increasing starting at 1.
type DrawEvent struct {
	ID           uint      `json:"id"`
	GameID       uint      `json:"game_id"`
	DrawnNumber  int       `json:"drawn_number"`
	DrawPosition int       `json:"draw_position"`
	DrawnAt      time.Time `json:"drawn_at"`
}

// GameState is the read-only snapshot assembled for clients: the game, its
// players in join order, and the most recent draw event (nil before the
// first draw).
type GameState struct {
	Game       Game       `json:"game"`
	Players    []Player   `json:"players"`
	LatestDraw *DrawEvent `json:"latest_draw"`
}
