// persistence/interface.go
package persistence

import (
	"context"
	"fmt"

	"github.com/wfunc/drawguess/models"
)

// Database 数据库接口
type Database interface {
	SaveGameRecord(ctx context.Context, record models.GameRecord) error
	// RecentGameRecords returns at most limit records, newest first.
	RecentGameRecords(ctx context.Context, limit int) ([]models.GameRecord, error)
	Close() error
}

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = fmt.Errorf("unknown database driver")

// Open selects a store by driver name: "gorm", "pq", or "memory".
func Open(driver, host string, port int, user, password, dbname string) (Database, error) {
	switch driver {
	case "gorm", "":
		return NewGormPostgreSQL(host, port, user, password, dbname)
	case "pq":
		return NewPostgreSQL(host, port, user, password, dbname)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

func dsn(host string, port int, user, password, dbname string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}
