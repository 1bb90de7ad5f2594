package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cod3gen/zeekr-homeassistant/util"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens the sqlite database at path and migrates the schema
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: &adapter{log: util.NewLogger("db")},
	})
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := db.AutoMigrate(new(Counters), new(Command)); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
