package command

import (
	"context"
	"fmt"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/util"
)

var log = util.NewLogger("command")

// Host is the coordinator surface used by remote commands
type Host interface {
	Vehicle(vin string) (api.Vehicle, bool)
	Store() state.Store
	IncInvoke()
	WriteState(vin string)
	RequestRefresh()
	RequestRefreshAfter(d time.Duration)
}

// Recorder is implemented by hosts that journal remote commands.
// The returned function is called with the command's result.
type Recorder interface {
	Record(vin, verb, serviceID string, setting api.RemoteSetting) func(error)
}

// Request is a remote command together with its expected effect on the vehicle state
type Request struct {
	VIN       string
	Verb      string
	ServiceID string
	Params    []api.ServiceParameter

	// Patch applies the intended end state to the cached tree
	Patch func(state.Tree)

	// Delay postpones the follow-up refresh for commands the server is slow to reflect
	Delay time.Duration
}

// Execute sends the command and optimistically patches the cached state.
// Unknown vehicles are ignored. On command failure the state is left untouched
// and no refresh is requested; the invoke is still counted.
func Execute(ctx context.Context, host Host, req Request) error {
	vehicle, ok := host.Vehicle(req.VIN)
	if !ok {
		log.DEBUG.Printf("%s: vehicle not found, skipping %s %s", req.VIN, req.Verb, req.ServiceID)
		return nil
	}

	host.IncInvoke()

	setting := api.NewRemoteSetting(req.Params...)

	var done func(error)
	if rec, ok := host.(Recorder); ok {
		done = rec.Record(req.VIN, req.Verb, req.ServiceID, setting)
	}

	errC := make(chan error, 1)
	go func() {
		errC <- vehicle.RemoteControl(req.Verb, req.ServiceID, setting)
	}()

	var err error
	select {
	case err = <-errC:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if done != nil {
		done(err)
	}

	if err != nil {
		return fmt.Errorf("%s %s: %w", req.ServiceID, req.Verb, err)
	}

	log.DEBUG.Printf("%s: %s %s %v", req.VIN, req.ServiceID, req.Verb, setting.ServiceParameters)

	if req.Patch != nil && !host.Store().Patch(req.VIN, req.Patch) {
		log.DEBUG.Printf("%s: no cached state to patch", req.VIN)
	}

	host.WriteState(req.VIN)

	if req.Delay > 0 {
		host.RequestRefreshAfter(req.Delay)
	} else {
		host.RequestRefresh()
	}

	return nil
}
