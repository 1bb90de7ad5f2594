package entity

import (
	"context"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/core/codec"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
)

// Switcher is implemented by entities that can be turned on and off
type Switcher interface {
	TurnOn(ctx context.Context) error
	TurnOff(ctx context.Context) error
}

// Switch is a binary status field with start/stop commands
type Switch struct {
	base
	field codec.Field
	on    func() *cmd // nil if the command is not supported remotely
	off   func() *cmd
	delay time.Duration
}

var _ Switcher = (*Switch)(nil)

// IsOn returns the switch position
func (e *Switch) IsOn() (bool, bool) {
	return e.field.Bool(e.tree())
}

func (e *Switch) State() interface{} {
	if on, ok := e.IsOn(); ok {
		return onOff(on, "on", "off")
	}
	return nil
}

func (e *Switch) set(ctx context.Context, on bool) error {
	build := e.off
	if on {
		build = e.on
	}

	if build == nil {
		log.WARN.Printf("%s: cannot be turned %s remotely", e.UniqueID(), onOff(on, "on", "off"))
		return nil
	}

	return e.execute(ctx, *build(), func(t state.Tree) {
		e.field.SetBool(t, on)
	}, e.delay)
}

// TurnOn implements Switcher
func (e *Switch) TurnOn(ctx context.Context) error {
	return e.set(ctx, true)
}

// TurnOff implements Switcher
func (e *Switch) TurnOff(ctx context.Context) error {
	return e.set(ctx, false)
}
