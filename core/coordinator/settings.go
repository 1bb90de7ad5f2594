package coordinator

import (
	"fmt"
	"sync"
)

//go:generate enumer -type SettingKey -transform=snake

// SettingKey addresses a single operation duration
type SettingKey int

const (
	SeatDuration SettingKey = iota
	ACDuration
	SteeringWheelDuration
)

// Duration limits in minutes
const (
	MinDuration     = 0
	MaxDuration     = 15
	DefaultDuration = 15
)

// Durations are the configured operation durations in minutes
type Durations struct {
	SeatDuration          int `json:"seatDuration" mapstructure:"seatDuration"`
	ACDuration            int `json:"acDuration" mapstructure:"acDuration"`
	SteeringWheelDuration int `json:"steeringWheelDuration" mapstructure:"steeringWheelDuration"`
}

// DefaultDurations returns the defaults for all durations
func DefaultDurations() Durations {
	return Durations{
		SeatDuration:          DefaultDuration,
		ACDuration:            DefaultDuration,
		SteeringWheelDuration: DefaultDuration,
	}
}

// Settings holds the operation durations used by climate commands
type Settings struct {
	mu sync.RWMutex
	d  Durations
}

// NewSettings creates settings from the given durations
func NewSettings(d Durations) *Settings {
	return &Settings{d: d}
}

func (s *Settings) field(key SettingKey) *int {
	switch key {
	case SeatDuration:
		return &s.d.SeatDuration
	case ACDuration:
		return &s.d.ACDuration
	case SteeringWheelDuration:
		return &s.d.SteeringWheelDuration
	default:
		return nil
	}
}

// Get returns the setting's value
func (s *Settings) Get(key SettingKey) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := s.field(key)
	if f == nil {
		return 0, fmt.Errorf("invalid setting: %v", key)
	}

	return *f, nil
}

// Duration returns the setting's value, falling back to the default for invalid keys
func (s *Settings) Duration(key SettingKey) int {
	if v, err := s.Get(key); err == nil {
		return v
	}
	return DefaultDuration
}

// Set updates the setting's value
func (s *Settings) Set(key SettingKey, val int) error {
	if val < MinDuration || val > MaxDuration {
		return fmt.Errorf("%s: %d out of range %d..%d", key, val, MinDuration, MaxDuration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.field(key)
	if f == nil {
		return fmt.Errorf("invalid setting: %v", key)
	}

	*f = val

	return nil
}

// Durations returns a copy of all durations
func (s *Settings) Durations() Durations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.d
}
