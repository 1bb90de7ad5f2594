package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/cod3gen/zeekr-homeassistant/core/storage"
	"github.com/cod3gen/zeekr-homeassistant/vehicle/zeekr"
	"gorm.io/gorm"
)

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return strings.TrimPrefix(path, "~/")
	}

	return filepath.Join(home, path[2:])
}

func configureClient(conf config) (api.Client, error) {
	return zeekr.NewClientFromConfig(conf.Zeekr)
}

// configureDatabase opens the database. Without database the bridge keeps counters in memory only.
func configureDatabase(conf config) *gorm.DB {
	db, err := storage.Open(expandHome(conf.Database))
	if err != nil {
		log.ERROR.Printf("database: %v", err)
		return nil
	}

	return db
}

func configureStats(db *gorm.DB, clk clock.Clock) *stats.Stats {
	var store stats.Store
	if db != nil {
		store = storage.NewStatsStore(db, stats.StorageKey)
	}

	return stats.New(store, clk)
}

func configureCoordinator(conf config, client api.Client, db *gorm.DB) *coordinator.Coordinator {
	clk := clock.New()

	site := coordinator.New(
		client,
		configureStats(db, clk),
		coordinator.NewSettings(conf.Settings),
		clk,
		coordinator.Config{
			Interval:       conf.Interval,
			RetainSubtrees: conf.Coordinator.RetainSubtrees,
			SecurityDelay:  conf.Coordinator.SecurityDelay,
		},
	)

	if db != nil {
		site.WithJournal(storage.NewJournal(db, clk))
	}

	return site
}
