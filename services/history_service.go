// services/history_service.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/persistence"
)

const saveTimeout = 5 * time.Second

// HistoryService archives finished games without blocking the caller.
type HistoryService struct {
	db      persistence.Database
	pending sync.WaitGroup
}

func NewHistoryService(db persistence.Database) *HistoryService {
	return &HistoryService{db: db}
}

// RecordGame saves the record in the background; failures are logged.
func (s *HistoryService) RecordGame(record models.GameRecord) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := s.db.SaveGameRecord(ctx, record); err != nil {
			logger.Log.Errorf("Failed to save game record for room %s: %v", record.RoomCode, err)
			return
		}
		if w, ok := record.Winner(); ok {
			logger.Log.Infof("Recorded game %s, winner %s with %d points", record.RoomCode, w.Name, w.Points)
		}
	}()
}

// RecentGames 获取最近的游戏记录
func (s *HistoryService) RecentGames(ctx context.Context, limit int) ([]models.GameRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.db.RecentGameRecords(ctx, limit)
}

// Wait blocks until every queued save has finished.
func (s *HistoryService) Wait() {
	s.pending.Wait()
}
