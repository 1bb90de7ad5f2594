package entity

import (
	"context"

	"github.com/cod3gen/zeekr-homeassistant/core/codec"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
)

// Locker is implemented by locks
type Locker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// Lock is a lockable or closable part of the vehicle
type Lock struct {
	base
	field  codec.Field // on means locked
	lock   cmd
	unlock cmd
}

var _ Locker = (*Lock)(nil)

// IsLocked returns the lock status
func (e *Lock) IsLocked() (bool, bool) {
	return e.field.Bool(e.tree())
}

func (e *Lock) State() interface{} {
	if locked, ok := e.IsLocked(); ok {
		return onOff(locked, "locked", "unlocked")
	}
	return nil
}

func (e *Lock) set(ctx context.Context, locked bool) error {
	c := e.unlock
	if locked {
		c = e.lock
	}

	return e.execute(ctx, c, func(t state.Tree) {
		e.field.SetBool(t, locked)
	}, 0)
}

// Lock implements Locker
func (e *Lock) Lock(ctx context.Context) error {
	return e.set(ctx, true)
}

// Unlock implements Locker
func (e *Lock) Unlock(ctx context.Context) error {
	return e.set(ctx, false)
}
