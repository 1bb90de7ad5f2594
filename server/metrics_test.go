package server

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c, _ := newSite(t, true)
	c.IncInvoke()

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(NewCollector(c)))

	mfs, err := registry.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range mfs {
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]

		if mf.GetType().String() == "COUNTER" {
			values[mf.GetName()] = m.GetCounter().GetValue()
		} else {
			values[mf.GetName()] = m.GetGauge().GetValue()
		}
	}

	assert.Equal(t, 3.0, values["zeekr_api_requests_today"])
	assert.Equal(t, 1.0, values["zeekr_api_invokes_today"])
	assert.Equal(t, 3.0, values["zeekr_api_requests_total"])
	assert.Equal(t, 1.0, values["zeekr_api_invokes_total"])
	assert.Equal(t, 1.0, values["zeekr_vehicle_data_available"])
	assert.Equal(t, 1.0, values["zeekr_vehicles"])
	assert.Equal(t, float64(c.Updated().Unix()), values["zeekr_vehicle_data_updated_timestamp_seconds"])
}

func TestCollectorUnavailable(t *testing.T) {
	c, _ := newSite(t, false)

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(NewCollector(c)))

	mfs, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}

	assert.Contains(t, names, "zeekr_vehicle_data_available")
	assert.NotContains(t, names, "zeekr_vehicle_data_updated_timestamp_seconds")
}
