package cmd

import (
	"bytes"
	"testing"

	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree() state.Tree {
	t := state.Tree{}
	state.Set(t, state.Join(state.Climate, "defrost"), "1")
	state.Set(t, "chargingLimit.soc", "800")
	return t
}

func TestDumpTree(t *testing.T) {
	var buf bytes.Buffer
	d := &dumper{w: &buf}

	d.Header("VIN1")
	require.NoError(t, d.Tree(tree()))

	out := buf.String()
	assert.Contains(t, out, "VIN1\n----\n")
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "additionalVehicleStatus.climateStatus.defrost")
	assert.Contains(t, out, "chargingLimit.soc")
	assert.Contains(t, out, "800")
}

func TestDumpTreeYaml(t *testing.T) {
	var buf bytes.Buffer
	d := &dumper{w: &buf, yaml: true}

	require.NoError(t, d.Tree(tree()))
	assert.Contains(t, buf.String(), "chargingLimit:\n  soc: \"800\"\n")
}

func TestDumpStats(t *testing.T) {
	var buf bytes.Buffer
	d := &dumper{w: &buf}

	d.Stats(stats.Counters{
		RequestsToday: 42,
		RequestsTotal: 12345,
		InvokesTotal:  3,
		LastReset:     "2024-01-02",
	})

	out := buf.String()
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Last reset: 2024-01-02")
}
