package entity

import (
	"context"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/codec"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
)

// Opener is implemented by covers
type Opener interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}

// Sunshade is the panorama roof curtain
type Sunshade struct {
	base
	closed   codec.Field
	position codec.Field
}

var _ Opener = (*Sunshade)(nil)

// IsClosed returns the curtain status
func (e *Sunshade) IsClosed() (bool, bool) {
	return e.closed.Bool(e.tree())
}

// Position returns the curtain position, 0 is closed and 100 is open
func (e *Sunshade) Position() (int, bool) {
	pos, ok := e.position.Float(e.tree())
	return int(pos), ok
}

func (e *Sunshade) State() interface{} {
	if closed, ok := e.IsClosed(); ok {
		return onOff(closed, "closed", "open")
	}
	return nil
}

func (e *Sunshade) move(ctx context.Context, open bool) error {
	verb, pos := api.Stop, 0
	if open {
		verb, pos = api.Start, 100
	}

	c := cmd{verb, api.ServiceSunshade, []api.ServiceParameter{api.Param("target", "sunshade")}}

	return e.execute(ctx, c, func(t state.Tree) {
		e.closed.SetBool(t, !open)
		state.Set(t, e.position.Path, pos)
	}, 0)
}

// Open implements Opener
func (e *Sunshade) Open(ctx context.Context) error {
	return e.move(ctx, true)
}

// Close implements Opener
func (e *Sunshade) Close(ctx context.Context) error {
	return e.move(ctx, false)
}
