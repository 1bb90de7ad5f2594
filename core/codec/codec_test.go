package codec

import (
	"testing"

	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/stretchr/testify/assert"
)

func tree(path string, v interface{}) state.Tree {
	t := state.Tree{}
	state.Set(t, path, v)
	return t
}

func TestToggle(t *testing.T) {
	tc := []struct {
		field string
		raw   interface{}
		on    bool
	}{
		{"defrost", "1", true},
		{"defrost", "0", false},
		{"steeringWheelHeat", "1", true},
		{"steeringWheelHeat", "2", false},
		{"preClimate", true, true},
		{"preClimate", "false", false},
		{"charging", float64(1), true},
		{"centralLocking", "1", true},
		{"centralLocking", "0", false},
	}

	for _, tc := range tc {
		f := Get(tc.field)
		on, ok := f.Bool(tree(f.Path, tc.raw))
		assert.True(t, ok, tc.field)
		assert.Equal(t, tc.on, on, "%s: %v", tc.field, tc.raw)
	}
}

func TestToggleUnknown(t *testing.T) {
	f := Get("defrost")

	_, ok := f.Bool(state.Tree{})
	assert.False(t, ok)

	_, ok = f.Bool(tree(f.Path, nil))
	assert.False(t, ok)
}

func TestOpenStatus(t *testing.T) {
	f := Get("trunkClosed")

	closed, ok := f.Bool(tree(f.Path, "1"))
	assert.True(t, ok)
	assert.False(t, closed)

	closed, ok = f.Bool(tree(f.Path, "0"))
	assert.True(t, ok)
	assert.True(t, closed)

	// anything but open is closed
	closed, _ = f.Bool(tree(f.Path, "3"))
	assert.True(t, closed)

	assert.Equal(t, "1", f.Encode(false))
	assert.Equal(t, "0", f.Encode(true))
}

func TestChargeLid(t *testing.T) {
	f := Get("chargeLidClosed")

	closed, ok := f.Bool(tree(f.Path, "1"))
	assert.True(t, ok)
	assert.False(t, closed)

	closed, ok = f.Bool(tree(f.Path, "2"))
	assert.True(t, ok)
	assert.True(t, closed)

	_, ok = f.Bool(tree(f.Path, "0"))
	assert.False(t, ok)
}

func TestCurtain(t *testing.T) {
	f := Get("curtainClosed")

	closed, _ := f.Bool(tree(f.Path, "1"))
	assert.True(t, closed)

	closed, _ = f.Bool(tree(f.Path, "2"))
	assert.False(t, closed)

	pos := Get("curtainPos")
	v, ok := pos.Float(tree(pos.Path, float64(100)))
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)
}

func TestChargingLimitScaling(t *testing.T) {
	f := Get("chargingLimit")

	assert.Equal(t, "800", f.EncodeFloat(80.0))
	assert.Equal(t, "575", f.EncodeFloat(57.5))

	v, ok := f.Float(tree(f.Path, "800"))
	assert.True(t, ok)
	assert.Equal(t, 80.0, v)

	// round trip through a patch
	tr := state.Tree{}
	f.SetFloat(tr, 65)
	v, ok = f.Float(tr)
	assert.True(t, ok)
	assert.Equal(t, 65.0, v)

	_, ok = f.Float(tree(f.Path, "n/a"))
	assert.False(t, ok)
}

func TestSeatHeat(t *testing.T) {
	f := Get("seatHeatDriver")

	for raw, level := range map[interface{}]int{
		"0": 0, "1": 1, "3": 3, float64(2): 2, "7": 0, "-1": 0, "x": 0,
	} {
		n, ok := f.Level(tree(f.Path, raw))
		assert.True(t, ok)
		assert.Equal(t, level, n, "%v", raw)
	}

	_, ok := f.Level(state.Tree{})
	assert.False(t, ok)
}

func TestSeatVent(t *testing.T) {
	f := Get("seatVentDriver")

	tr := state.Tree{}
	state.Set(tr, f.Path, "1")
	state.Set(tr, f.Detail, "2")

	n, ok := f.Level(tr)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	// off regardless of detail
	state.Set(tr, f.Path, "2")
	n, ok = f.Level(tr)
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	// on without detail
	tr = tree(f.Path, float64(1))
	n, _ = f.Level(tr)
	assert.Equal(t, 0, n)
}

func TestSetLevel(t *testing.T) {
	vent := Get("seatVentPassenger")
	tr := state.Tree{}

	vent.SetLevel(tr, 3)
	n, _ := vent.Level(tr)
	assert.Equal(t, 3, n)

	vent.SetLevel(tr, 0)
	n, _ = vent.Level(tr)
	assert.Equal(t, 0, n)
	detail, _ := state.Lookup(tr, vent.Detail)
	assert.Equal(t, 0, detail)

	heat := Get("seatHeatRearLeft")
	heat.SetLevel(tr, 2)
	n, _ = heat.Level(tr)
	assert.Equal(t, 2, n)
}

func TestGetUnknown(t *testing.T) {
	assert.Panics(t, func() { Get("foo") })
}
