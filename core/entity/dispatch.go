package entity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Actions accepted by Dispatch
const (
	ActionTurnOn  = "turn_on"
	ActionTurnOff = "turn_off"
	ActionSelect  = "select"
	ActionSet     = "set"
	ActionOpen    = "open"
	ActionClose   = "close"
	ActionLock    = "lock"
	ActionUnlock  = "unlock"
	ActionPress   = "press"
)

var (
	// ErrNotSupported indicates an action the entity does not support
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidValue indicates an option or value the entity does not accept
	ErrInvalidValue = errors.New("invalid value")
)

// Dispatch invokes the named action on the entity
func Dispatch(ctx context.Context, e Entity, action, value string) error {
	unsupported := fmt.Errorf("%s: %s %w", e.UniqueID(), action, ErrNotSupported)

	switch action {
	case ActionTurnOn, ActionTurnOff:
		s, ok := e.(Switcher)
		if !ok {
			return unsupported
		}
		if action == ActionTurnOn {
			return s.TurnOn(ctx)
		}
		return s.TurnOff(ctx)

	case ActionSelect:
		s, ok := e.(Selector)
		if !ok {
			return unsupported
		}
		return s.Select(ctx, value)

	case ActionSet:
		s, ok := e.(Setter)
		if !ok {
			return unsupported
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w: %s", e.UniqueID(), ErrInvalidValue, value)
		}
		return s.Set(ctx, v)

	case ActionOpen, ActionClose:
		s, ok := e.(Opener)
		if !ok {
			return unsupported
		}
		if action == ActionOpen {
			return s.Open(ctx)
		}
		return s.Close(ctx)

	case ActionLock, ActionUnlock:
		s, ok := e.(Locker)
		if !ok {
			return unsupported
		}
		if action == ActionLock {
			return s.Lock(ctx)
		}
		return s.Unlock(ctx)

	case ActionPress:
		s, ok := e.(Presser)
		if !ok {
			return unsupported
		}
		return s.Press(ctx)

	default:
		return unsupported
	}
}

// Description is the serializable view of an entity
type Description struct {
	UniqueID string      `json:"uniqueId"`
	Key      string      `json:"key"`
	VIN      string      `json:"vin,omitempty"`
	Name     string      `json:"name"`
	Platform Platform    `json:"platform"`
	State    interface{} `json:"state"`
	Options  []string    `json:"options,omitempty"`
	Min      *float64    `json:"min,omitempty"`
	Max      *float64    `json:"max,omitempty"`
	Step     *float64    `json:"step,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	Position *int        `json:"position,omitempty"`
	Device   Device      `json:"device"`
}

// Describe returns the entity's description including its current state
func Describe(e Entity) Description {
	d := Description{
		UniqueID: e.UniqueID(),
		Key:      e.Key(),
		VIN:      e.VIN(),
		Name:     e.Name(),
		Platform: e.Platform(),
		State:    e.State(),
		Device:   e.Device(),
	}

	if s, ok := e.(Selector); ok {
		d.Options = s.Options()
	}

	if s, ok := e.(Setter); ok {
		min, max, step := s.Range()
		d.Min, d.Max, d.Step = &min, &max, &step
		d.Unit = s.Unit()
	}

	if s, ok := e.(*Sunshade); ok {
		if pos, ok := s.Position(); ok {
			d.Position = &pos
		}
	}

	return d
}
