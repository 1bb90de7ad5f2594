package storage

import (
	"errors"

	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counters is the persisted form of stats.Counters
type Counters struct {
	Name          string `gorm:"primaryKey"`
	RequestsToday int    `gorm:"column:api_requests_today"`
	InvokesToday  int    `gorm:"column:api_invokes_today"`
	RequestsTotal int    `gorm:"column:api_requests_total"`
	InvokesTotal  int    `gorm:"column:api_invokes_total"`
	LastReset     string `gorm:"column:last_reset"`
}

type statsStore struct {
	db   *gorm.DB
	name string
}

var _ stats.Store = (*statsStore)(nil)

// NewStatsStore persists request statistics under the given name
func NewStatsStore(db *gorm.DB, name string) stats.Store {
	return &statsStore{
		db:   db,
		name: name,
	}
}

func (s *statsStore) Load() (*stats.Counters, error) {
	var rec Counters

	if err := s.db.Where("name = ?", s.name).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &stats.Counters{
		RequestsToday: rec.RequestsToday,
		InvokesToday:  rec.InvokesToday,
		RequestsTotal: rec.RequestsTotal,
		InvokesTotal:  rec.InvokesTotal,
		LastReset:     rec.LastReset,
	}, nil
}

func (s *statsStore) Save(c stats.Counters) error {
	rec := Counters{
		Name:          s.name,
		RequestsToday: c.RequestsToday,
		InvokesToday:  c.InvokesToday,
		RequestsTotal: c.RequestsTotal,
		InvokesTotal:  c.InvokesTotal,
		LastReset:     c.LastReset,
	}

	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}
