package storage

import (
	"time"

	"github.com/benbjohnson/clock"
	"gorm.io/gorm"
)

// Command is a journaled remote control command
type Command struct {
	ID       uint64    `gorm:"primaryKey" json:"id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	VIN      string    `gorm:"column:vin;index" json:"vin"`
	Verb     string    `json:"verb"`
	Service  string    `json:"service"`
	Params   string    `json:"params"`
	Error    string    `json:"error,omitempty"`
}

// Transaction is a single command journal entry
type Transaction interface {
	Stop(err error) error
}

type storer struct {
	db    *gorm.DB
	clock clock.Clock
	ref   *Command
}

var _ Transaction = (*storer)(nil)

// Journal records remote control commands
type Journal struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewJournal creates a command journal
func NewJournal(db *gorm.DB, clock clock.Clock) *Journal {
	return &Journal{
		db:    db,
		clock: clock,
	}
}

// Start creates the journal entry for a command about to be sent
func (j *Journal) Start(vin, verb, service, params string) (Transaction, error) {
	s := &storer{
		db:    j.db,
		clock: j.clock,
		ref: &Command{
			Started: j.clock.Now(),
			VIN:     vin,
			Verb:    verb,
			Service: service,
			Params:  params,
		},
	}

	tx := j.db.Create(s.ref)
	return s, tx.Error
}

// Recent returns the latest commands, newest first. An empty vin matches all vehicles.
func (j *Journal) Recent(vin string, limit int) ([]Command, error) {
	var res []Command

	tx := j.db.Order("id desc").Limit(limit)
	if vin != "" {
		tx = tx.Where("vin = ?", vin)
	}

	err := tx.Find(&res).Error
	return res, err
}

func (s *storer) Stop(err error) error {
	rec := &Command{
		Finished: s.clock.Now(),
	}

	if err != nil {
		rec.Error = err.Error()
	}

	tx := s.db.Model(s.ref).Updates(rec) // non-zero fields
	return tx.Error
}
