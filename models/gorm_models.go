// models/gorm_models.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// GormGameRecord 游戏记录模型
type GormGameRecord struct {
	gorm.Model
	RoomCode    string         `gorm:"index;not null"`
	Category    string         `gorm:"not null"`
	TotalRounds int            `gorm:"not null"`
	Players     []PlayerResult `gorm:"serializer:json;type:jsonb;not null"`
	FinishedAt  time.Time      `gorm:"index;not null"`
}

func (GormGameRecord) TableName() string {
	return "game_records"
}

func NewGormGameRecord(r GameRecord) *GormGameRecord {
	return &GormGameRecord{
		RoomCode:    r.RoomCode,
		Category:    r.Category,
		TotalRounds: r.TotalRounds,
		Players:     r.Players,
		FinishedAt:  r.FinishedAt,
	}
}

func (m GormGameRecord) Record() GameRecord {
	return GameRecord{
		RoomCode:    m.RoomCode,
		Category:    m.Category,
		TotalRounds: m.TotalRounds,
		Players:     m.Players,
		FinishedAt:  m.FinishedAt,
	}
}
