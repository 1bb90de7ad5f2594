package server

import (
	"sync"
	"testing"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/cod3gen/zeekr-homeassistant/util"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type token struct {
	paho.Token
}

func (t *token) Wait() bool                     { return true }
func (t *token) WaitTimeout(time.Duration) bool { return true }
func (t *token) Error() error                   { return nil }

// stuckToken never completes until released
type stuckToken struct {
	paho.Token
	release chan struct{}
}

func (t *stuckToken) WaitTimeout(time.Duration) bool {
	<-t.release
	return false
}

type client struct {
	paho.Client

	mu        sync.Mutex
	published map[string]string
	filters   map[string]byte
	handler   paho.MessageHandler
	token     paho.Token
}

func newClient() *client {
	return &client{published: make(map[string]string)}
}

func (c *client) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.published[topic] = payload.(string)
	if c.token != nil {
		return c.token
	}
	return new(token)
}

func (c *client) SubscribeMultiple(filters map[string]byte, callback paho.MessageHandler) paho.Token {
	c.filters = filters
	c.handler = callback
	return new(token)
}

type message struct {
	paho.Message
	topic   string
	payload string
}

func (m *message) Topic() string   { return m.topic }
func (m *message) Payload() []byte { return []byte(m.payload) }

func TestMqttConfig(t *testing.T) {
	assert.Equal(t, "zeekr", MqttConfig{}.RootTopic())
	assert.Equal(t, "home/zeekr", MqttConfig{Topic: "home/zeekr/"}.RootTopic())
}

func TestMqttPublish(t *testing.T) {
	c := newClient()
	m := newMQTT(util.NewLogger("mqtt"), c, "zeekr", time.Second)

	in := make(chan util.Param, 4)
	in <- util.Param{VIN: vin, Key: "defrost", Val: "on"}
	in <- util.Param{VIN: vin, Key: "sunshade", Val: nil}
	in <- util.Param{Key: "seat_operation_duration", Val: 15.0}
	in <- util.Param{Key: "stats", Val: stats.Counters{RequestsToday: 2, LastReset: "2024-01-01"}}
	close(in)

	m.Run(in)

	assert.Equal(t, map[string]string{
		"zeekr/" + vin + "/defrost":     "on",
		"zeekr/" + vin + "/sunshade":    "",
		"zeekr/seat_operation_duration": "15",
		"zeekr/stats":                   `{"api_requests_today":2,"api_invokes_today":0,"api_requests_total":0,"api_invokes_total":0,"last_reset":"2024-01-01"}`,
	}, c.published)
}

func TestMqttStatus(t *testing.T) {
	c := newClient()
	m := newMQTT(util.NewLogger("mqtt"), c, "zeekr", time.Second)

	tree := state.Tree{}
	state.Set(tree, state.Join(state.Climate, "defrost"), "1")
	state.Set(tree, "chargingLimit.soc", 800.0)

	m.PublishStatus(vin, tree)

	assert.Len(t, c.published, 2)
	assert.Equal(t, "1", c.published["zeekr/"+vin+"/status/additionalVehicleStatus/climateStatus/defrost"])
	assert.Equal(t, "800", c.published["zeekr/"+vin+"/status/chargingLimit/soc"])
}

func TestMqttPublishUnresponsive(t *testing.T) {
	stuck := &stuckToken{release: make(chan struct{})}
	defer close(stuck.release)

	c := newClient()
	c.token = stuck
	m := newMQTT(util.NewLogger("mqtt"), c, "zeekr", time.Hour)

	tree := state.Tree{}
	for _, key := range []string{"defrost", "preClimateActive", "steerWhlHeatingSts"} {
		state.Set(tree, state.Join(state.Climate, key), "1")
	}

	done := make(chan struct{})
	go func() {
		m.PublishStatus(vin, tree)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked by broker")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.published, 3)
}

func TestActionFor(t *testing.T) {
	c, _ := newSite(t, true)
	r := entity.Setup(c)

	tc := []struct {
		id, payload   string
		action, value string
	}{
		{vin + "_defrost", "ON", entity.ActionTurnOn, ""},
		{vin + "_defrost", "false", entity.ActionTurnOff, ""},
		{vin + "_trunk", "unlock", entity.ActionUnlock, ""},
		{vin + "_sunshade", "close", entity.ActionClose, ""},
		{vin + "_seat_heat_driver", "Level 2", entity.ActionSelect, "Level 2"},
		{vin + "_charging_limit", "80", entity.ActionSet, "80"},
		{vin + "_poll", "", entity.ActionPress, ""},
		{"seat_operation_duration", " 5 ", entity.ActionSet, "5"},
	}

	for _, tc := range tc {
		e, ok := r.Get(tc.id)
		require.True(t, ok, tc.id)

		action, value, err := actionFor(e, tc.payload)
		require.NoError(t, err, tc.id)
		assert.Equal(t, tc.action, action, tc.id)
		assert.Equal(t, tc.value, value, tc.id)
	}

	e, _ := r.Get(vin + "_central_locking")
	_, _, err := actionFor(e, "open")
	assert.Error(t, err)
}

func TestMqttEntityID(t *testing.T) {
	m := newMQTT(util.NewLogger("mqtt"), newClient(), "zeekr", time.Second)

	id, ok := m.entityID("zeekr/" + vin + "/defrost/set")
	assert.True(t, ok)
	assert.Equal(t, vin+"_defrost", id)

	id, ok = m.entityID("zeekr/ac_operation_duration/set")
	assert.True(t, ok)
	assert.Equal(t, "ac_operation_duration", id)

	_, ok = m.entityID("zeekr/" + vin + "/status/a/set")
	assert.False(t, ok)
}

func TestMqttCommand(t *testing.T) {
	site, v := newSite(t, true)
	r := entity.Setup(site)

	c := newClient()
	m := newMQTT(util.NewLogger("mqtt"), c, "zeekr", time.Second)

	require.NoError(t, m.Listen(r))
	assert.Contains(t, c.filters, "zeekr/+/set")
	assert.Contains(t, c.filters, "zeekr/+/+/set")

	v.EXPECT().RemoteControl(api.Start, api.ServiceClimate, api.NewRemoteSetting(api.Param("DF", "false"))).Return(nil)

	c.handler(c, &message{topic: "zeekr/" + vin + "/defrost/set", payload: "off"})

	e, _ := r.Get(vin + "_defrost")
	assert.Eventually(t, func() bool {
		return e.State() == "off"
	}, time.Second, 10*time.Millisecond)

	// unknown entities and payloads are ignored
	c.handler(c, &message{topic: "zeekr/" + vin + "/unknown/set", payload: "on"})
	c.handler(c, &message{topic: "zeekr/" + vin + "/defrost/set", payload: "maybe"})
}
