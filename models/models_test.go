package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameRecord_Winner(t *testing.T) {
	r := GameRecord{Players: []PlayerResult{
		{ConnectionID: "a", Points: 2000},
		{ConnectionID: "b", Points: 3000},
		{ConnectionID: "c", Points: 3000},
	}}
	w, ok := r.Winner()
	assert.True(t, ok)
	assert.Equal(t, "b", w.ConnectionID)

	_, ok = GameRecord{}.Winner()
	assert.False(t, ok)
}

func TestNewGormGameRecord(t *testing.T) {
	r := GameRecord{
		RoomCode:    "K2M9QX",
		Category:    "blending",
		TotalRounds: 3,
		Players:     []PlayerResult{{ConnectionID: "a", Name: "ann", Points: 1000}},
		FinishedAt:  time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, r, NewGormGameRecord(r).Record())
	assert.Equal(t, "game_records", GormGameRecord{}.TableName())
}
