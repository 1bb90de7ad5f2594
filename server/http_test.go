package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/cod3gen/zeekr-homeassistant/core/storage"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vin = "LVXXXXXXXXXX12345"

func status() map[string]interface{} {
	return map[string]interface{}{
		"additionalVehicleStatus": map[string]interface{}{
			"climateStatus": map[string]interface{}{
				"defrost": "1",
			},
			"electricVehicleStatus": map[string]interface{}{
				"chargerState": "0",
			},
		},
	}
}

// newSite returns a coordinator with a single vehicle. The vehicle has been polled if refresh is set.
func newSite(t *testing.T, refresh bool) (*coordinator.Coordinator, *api.MockVehicle) {
	ctrl := gomock.NewController(t)

	v := api.NewMockVehicle(ctrl)
	v.EXPECT().VIN().Return(vin).AnyTimes()
	v.EXPECT().Status().Return(status(), nil).AnyTimes()
	v.EXPECT().ChargingLimit().Return(map[string]interface{}{"soc": "800"}, nil).AnyTimes()

	client := api.NewMockClient(ctrl)
	client.EXPECT().Vehicles().Return([]api.Vehicle{v}, nil).AnyTimes()

	clk := clock.NewMock()
	clk.Set(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))

	c := coordinator.New(client, stats.New(nil, clk), coordinator.NewSettings(coordinator.DefaultDurations()), clk, coordinator.DefaultConfig())
	t.Cleanup(c.Stop)

	if refresh {
		_, err := c.Refresh(context.Background())
		require.NoError(t, err)
	}

	return c, v
}

func request(h http.Handler, method, uri string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, uri, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func result(t *testing.T, w *httptest.ResponseRecorder, res interface{}) {
	t.Helper()

	var body struct {
		Result json.RawMessage `json:"result"`
		Error  string          `json:"error"`
	}

	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Empty(t, body.Error)
	require.NoError(t, json.Unmarshal(body.Result, res))
}

func TestHealth(t *testing.T) {
	c, _ := newSite(t, false)
	h := NewHTTPd(":0", c, NewSocketHub(), util.NewCache()).Handler

	w := request(h, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	w = request(h, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK\n", w.Body.String())
}

func TestState(t *testing.T) {
	c, _ := newSite(t, true)

	cache := util.NewCache()
	cache.Add("a", util.Param{VIN: vin, Key: "defrost", Val: "on"})
	cache.Add("b", util.Param{Key: "seat_operation_duration", Val: 15.0})

	h := NewHTTPd(":0", c, NewSocketHub(), cache).Handler

	w := request(h, http.MethodGet, "/api/state")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var res map[string]interface{}
	result(t, w, &res)

	assert.Equal(t, map[string]interface{}{
		vin + "_defrost":          "on",
		"seat_operation_duration": 15.0,
	}, res)
}

func TestVehicles(t *testing.T) {
	c, _ := newSite(t, true)
	h := NewHTTPd(":0", c, NewSocketHub(), util.NewCache()).Handler

	var list []vehicleInfo
	result(t, request(h, http.MethodGet, "/api/vehicles"), &list)
	require.Len(t, list, 1)
	assert.Equal(t, vin, list[0].VIN)
	assert.True(t, list[0].Available)
	assert.NotEmpty(t, list[0].Updated)

	// case insensitive
	var tree map[string]interface{}
	result(t, request(h, http.MethodGet, "/api/vehicles/"+strings.ToLower(vin)), &tree)
	assert.Contains(t, tree, "additionalVehicleStatus")
	assert.Contains(t, tree, "chargingLimit")

	var leaves map[string]interface{}
	result(t, request(h, http.MethodGet, "/api/vehicles/"+vin+"/status"), &leaves)
	assert.Equal(t, "1", leaves["additionalVehicleStatus.climateStatus.defrost"])
	assert.Equal(t, "800", leaves["chargingLimit.soc"])

	w := request(h, http.MethodGet, "/api/vehicles/UNKNOWN")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStats(t *testing.T) {
	c, _ := newSite(t, true)
	h := NewHTTPd(":0", c, NewSocketHub(), util.NewCache()).Handler

	var res stats.Counters
	result(t, request(h, http.MethodGet, "/api/stats"), &res)

	// listing, status, limit
	assert.Equal(t, 3, res.RequestsToday)
	assert.Equal(t, "2024-01-01", res.LastReset)
}

func TestSettings(t *testing.T) {
	c, _ := newSite(t, true)
	h := NewHTTPd(":0", c, NewSocketHub(), util.NewCache()).Handler

	var written []string
	require.NoError(t, c.Subscribe(func(vin string) {
		written = append(written, vin)
	}))

	var d coordinator.Durations
	result(t, request(h, http.MethodGet, "/api/settings"), &d)
	assert.Equal(t, coordinator.DefaultDurations(), d)

	var val int
	result(t, request(h, http.MethodPost, "/api/settings/ac_duration/10"), &val)
	assert.Equal(t, 10, val)
	assert.Equal(t, 10, c.Settings().Duration(coordinator.ACDuration))
	assert.Equal(t, []string{""}, written)

	w := request(h, http.MethodPost, "/api/settings/ac_duration/16")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(h, http.MethodPost, "/api/settings/unknown/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefresh(t *testing.T) {
	c, _ := newSite(t, true)
	h := NewHTTPd(":0", c, NewSocketHub(), util.NewCache()).Handler

	w := request(h, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestEntities(t *testing.T) {
	c, v := newSite(t, true)

	srv := NewHTTPd(":0", c, NewSocketHub(), util.NewCache())
	srv.RegisterEntities(entity.Setup(c))
	h := srv.Handler

	var all []entity.Description
	result(t, request(h, http.MethodGet, "/api/entities"), &all)

	var globals []entity.Description
	result(t, request(h, http.MethodGet, "/api/entities?vin="), &globals)
	assert.Len(t, globals, 3)

	var vehicle []entity.Description
	result(t, request(h, http.MethodGet, "/api/entities?vin="+vin), &vehicle)
	assert.Len(t, all, len(globals)+len(vehicle))

	var d entity.Description
	result(t, request(h, http.MethodGet, "/api/entities/"+vin+"_defrost"), &d)
	assert.Equal(t, "on", d.State)
	assert.Equal(t, entity.PlatformSwitch, d.Platform)

	v.EXPECT().RemoteControl(api.Start, api.ServiceClimate, api.NewRemoteSetting(api.Param("DF", "false"))).Return(nil)

	result(t, request(h, http.MethodPost, "/api/entities/"+vin+"_defrost/turn_off"), &d)
	assert.Equal(t, "off", d.State)
	assert.Equal(t, 1, c.Stats().Counters().InvokesToday)

	w := request(h, http.MethodPost, "/api/entities/"+vin+"_poll/turn_on")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(h, http.MethodPost, "/api/entities/unknown/press")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(h, http.MethodPost, "/api/entities/"+vin+"_charging_limit/set/82")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(h, http.MethodPost, "/api/entities/"+vin+"_seat_heat_driver/select?value=Level+9")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	result(t, request(h, http.MethodPost, "/api/entities/ac_operation_duration/set/5"), &d)
	assert.Equal(t, 5.0, d.State)

	v.EXPECT().RemoteControl(api.Start, api.ServiceCharging, gomock.Any()).Return(errors.New("offline"))

	w = request(h, http.MethodPost, "/api/entities/"+vin+"_charging_limit/set?value=90")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCommands(t *testing.T) {
	c, _ := newSite(t, true)

	db, err := storage.Open(filepath.Join(t.TempDir(), "zeekr.db"))
	require.NoError(t, err)

	journal := storage.NewJournal(db, clock.NewMock())

	tx, err := journal.Start(vin, api.Start, api.ServiceHonkLight, "rhl=light-flash")
	require.NoError(t, err)
	require.NoError(t, tx.Stop(nil))

	srv := NewHTTPd(":0", c, NewSocketHub(), util.NewCache())
	srv.RegisterJournal(journal)
	h := srv.Handler

	var res []storage.Command
	result(t, request(h, http.MethodGet, "/api/commands?vin="+vin), &res)
	require.Len(t, res, 1)
	assert.Equal(t, api.ServiceHonkLight, res[0].Service)
	assert.Equal(t, "rhl=light-flash", res[0].Params)

	result(t, request(h, http.MethodGet, "/api/commands?vin=OTHER"), &res)
	assert.Empty(t, res)

	w := request(h, http.MethodGet, "/api/commands?limit=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
