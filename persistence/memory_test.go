package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/drawguess/models"
)

func record(code string, finished time.Time) models.GameRecord {
	return models.GameRecord{
		RoomCode:    code,
		Category:    "blending",
		TotalRounds: 3,
		Players:     []models.PlayerResult{{ConnectionID: "a", Name: "ann", Points: 3000}},
		FinishedAt:  finished,
	}
}

func TestMemory_RecentGameRecords(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.SaveGameRecord(ctx, record("OLDEST", base)))
	require.NoError(t, db.SaveGameRecord(ctx, record("NEWEST", base.Add(2*time.Minute))))
	require.NoError(t, db.SaveGameRecord(ctx, record("MIDDLE", base.Add(time.Minute))))

	got, err := db.RecentGameRecords(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "NEWEST", got[0].RoomCode)
	assert.Equal(t, "MIDDLE", got[1].RoomCode)

	all, err := db.RecentGameRecords(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.NoError(t, db.Close())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("sqlite", "localhost", 5432, "u", "p", "d")
	assert.ErrorIs(t, err, ErrUnknownDriver)

	db, err := Open("memory", "", 0, "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, db)
}
