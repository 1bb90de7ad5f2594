package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type host struct {
	vehicles map[string]api.Vehicle
	store    state.Store
	invokes  int
	writes   []string
	refresh  int
	delayed  []time.Duration
	records  []error
}

func newHost() *host {
	return &host{
		vehicles: make(map[string]api.Vehicle),
		store:    state.NewStore(),
	}
}

func (h *host) Vehicle(vin string) (api.Vehicle, bool) {
	v, ok := h.vehicles[vin]
	return v, ok
}

func (h *host) Store() state.Store                  { return h.store }
func (h *host) IncInvoke()                          { h.invokes++ }
func (h *host) WriteState(vin string)               { h.writes = append(h.writes, vin) }
func (h *host) RequestRefresh()                     { h.refresh++ }
func (h *host) RequestRefreshAfter(d time.Duration) { h.delayed = append(h.delayed, d) }

type recordingHost struct {
	*host
}

func (h recordingHost) Record(vin, verb, serviceID string, setting api.RemoteSetting) func(error) {
	return func(err error) {
		h.records = append(h.records, err)
	}
}

const path = "additionalVehicleStatus.climateStatus.defrost"

func defrost(vin string, on bool) Request {
	value, raw := "false", "0"
	if on {
		value, raw = "true", "1"
	}

	return Request{
		VIN:       vin,
		Verb:      api.Start,
		ServiceID: api.ServiceClimate,
		Params:    []api.ServiceParameter{api.Param("DF", value)},
		Patch: func(t state.Tree) {
			state.Set(t, path, raw)
		},
	}
}

func TestExecute(t *testing.T) {
	ctrl := gomock.NewController(t)

	v := api.NewMockVehicle(ctrl)
	v.EXPECT().RemoteControl(api.Start, api.ServiceClimate, api.RemoteSetting{
		ServiceParameters: []api.ServiceParameter{{Key: "DF", Value: "true"}},
	}).Return(nil).Times(2)

	h := newHost()
	h.vehicles["VIN1"] = v
	h.store.Replace("VIN1", state.Tree{})

	// twice before any refresh completes
	for i := 0; i < 2; i++ {
		require.NoError(t, Execute(context.Background(), h, defrost("VIN1", true)))

		tree, _ := h.store.Get("VIN1")
		val, ok := state.Lookup(tree, path)
		require.True(t, ok)
		assert.Equal(t, "1", val)
	}

	assert.Equal(t, 2, h.invokes)
	assert.Equal(t, []string{"VIN1", "VIN1"}, h.writes)
	assert.Equal(t, 2, h.refresh)
	assert.Empty(t, h.delayed)
}

func TestExecuteRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)

	v := api.NewMockVehicle(ctrl)
	v.EXPECT().RemoteControl(api.Start, api.ServiceClimate, gomock.Any()).Return(nil).Times(3)

	h := newHost()
	h.vehicles["VIN1"] = v

	tree := state.Tree{}
	state.Set(tree, path, "1")
	h.store.Replace("VIN1", tree)

	for _, on := range []bool{true, false, true} {
		require.NoError(t, Execute(context.Background(), h, defrost("VIN1", on)))
	}

	got, _ := h.store.Get("VIN1")
	assert.Equal(t, tree, got)
}

func TestExecuteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	v := api.NewMockVehicle(ctrl)
	v.EXPECT().RemoteControl(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("offline"))

	h := newHost()
	h.vehicles["VIN1"] = v
	h.store.Replace("VIN1", state.Tree{})

	err := Execute(context.Background(), recordingHost{h}, defrost("VIN1", true))
	assert.EqualError(t, err, "ZAF start: offline")

	// counted but not patched
	assert.Equal(t, 1, h.invokes)
	tree, _ := h.store.Get("VIN1")
	assert.Empty(t, tree)
	assert.Empty(t, h.writes)
	assert.Zero(t, h.refresh)

	require.Len(t, h.records, 1)
	assert.EqualError(t, h.records[0], "offline")
}

func TestExecuteUnknownVehicle(t *testing.T) {
	h := newHost()

	require.NoError(t, Execute(context.Background(), h, defrost("VIN1", true)))
	assert.Zero(t, h.invokes)
	assert.Empty(t, h.writes)
}

func TestExecuteDelayed(t *testing.T) {
	ctrl := gomock.NewController(t)

	v := api.NewMockVehicle(ctrl)
	v.EXPECT().RemoteControl(api.Start, api.ServiceSentry, api.NewRemoteSetting(api.Param("rsm", "6"))).Return(nil)

	h := newHost()
	h.vehicles["VIN1"] = v

	// no cached entry, nothing to patch
	err := Execute(context.Background(), h, Request{
		VIN:       "VIN1",
		Verb:      api.Start,
		ServiceID: api.ServiceSentry,
		Params:    []api.ServiceParameter{api.Param("rsm", "6")},
		Patch:     func(state.Tree) { t.Fatal("unexpected patch") },
		Delay:     10 * time.Second,
	})
	require.NoError(t, err)

	assert.Zero(t, h.refresh)
	assert.Equal(t, []time.Duration{10 * time.Second}, h.delayed)
}

func TestExecuteCancel(t *testing.T) {
	ctrl := gomock.NewController(t)

	release := make(chan struct{})
	defer close(release)

	v := api.NewMockVehicle(ctrl)
	v.EXPECT().RemoteControl(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(string, string, api.RemoteSetting) error {
		<-release
		return nil
	}).AnyTimes()

	h := newHost()
	h.vehicles["VIN1"] = v

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Execute(ctx, h, defrost("VIN1", true))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, h.refresh)
}
