package entity

import (
	"context"
)

// Presser is implemented by buttons
type Presser interface {
	Press(ctx context.Context) error
}

// Button triggers a single action
type Button struct {
	base
	press func(ctx context.Context) error
}

var _ Presser = (*Button)(nil)

func (e *Button) State() interface{} {
	return nil
}

// Press implements Presser
func (e *Button) Press(ctx context.Context) error {
	return e.press(ctx)
}
