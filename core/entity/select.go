package entity

import (
	"context"
	"fmt"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/codec"
	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
)

// Seat options
const (
	OptionOff    = "Off"
	OptionLevel1 = "Level 1"
	OptionLevel2 = "Level 2"
	OptionLevel3 = "Level 3"
)

var seatOptions = []string{OptionOff, OptionLevel1, OptionLevel2, OptionLevel3}

// Selector is implemented by entities with a fixed set of options
type Selector interface {
	Options() []string
	Select(ctx context.Context, option string) error
}

// SeatSelect controls seat heating or ventilation levels
type SeatSelect struct {
	base
	field codec.Field
	code  string
}

var _ Selector = (*SeatSelect)(nil)

// Options implements Selector
func (e *SeatSelect) Options() []string {
	return seatOptions
}

// Level returns the current intensity
func (e *SeatSelect) Level() (int, bool) {
	return e.field.Level(e.tree())
}

func (e *SeatSelect) State() interface{} {
	if level, ok := e.Level(); ok {
		return seatOptions[level]
	}
	return nil
}

func levelOf(option string) (int, error) {
	for level, o := range seatOptions {
		if o == option {
			return level, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidValue, option)
}

// Select implements Selector
func (e *SeatSelect) Select(ctx context.Context, option string) error {
	level, err := levelOf(option)
	if err != nil {
		return err
	}

	params := []api.ServiceParameter{api.Param(e.code, "false")}
	if level > 0 {
		params = []api.ServiceParameter{
			api.Param(e.code, "true"),
			api.Param(e.code+".level", fmt.Sprint(level)),
			api.Param(e.code+".duration", e.duration(coordinator.SeatDuration)),
		}
	}

	return e.execute(ctx, cmd{api.Start, api.ServiceClimate, params}, func(t state.Tree) {
		e.field.SetLevel(t, level)
	}, 0)
}
