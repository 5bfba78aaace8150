// models/models.go
package models

import (
	"time"
)

// GameRecord is the archived result of a finished game.
type GameRecord struct {
	RoomCode    string         `json:"room_code"`
	Category    string         `json:"category"`
	TotalRounds int            `json:"total_rounds"`
	Players     []PlayerResult `json:"players"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// PlayerResult 玩家最终得分
type PlayerResult struct {
	ConnectionID string `json:"connection_id"`
	Name         string `json:"name"`
	Points       int    `json:"points"`
}

// Winner returns the highest scorer; ties go to the earlier seat.
func (r GameRecord) Winner() (PlayerResult, bool) {
	if len(r.Players) == 0 {
		return PlayerResult{}, false
	}
	best := r.Players[0]
	for _, p := range r.Players[1:] {
		if p.Points > best.Points {
			best = p
		}
	}
	return best, true
}
