package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readConfig(t *testing.T, yaml string) *viper.Viper {
	t.Helper()

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))

	return v
}

func TestDecodeConfig(t *testing.T) {
	v := readConfig(t, `
interval: 10m
database: /tmp/zeekr.db
zeekr:
  uri: https://api.example.com
  token: secret
  vins: [VIN1]
mqtt:
  broker: localhost:1883
  topic: home/zeekr
coordinator:
  retainSubtrees: true
  securityDelay: 15s
settings:
  acDuration: 10
`)

	conf, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, conf.Interval)
	assert.Equal(t, "/tmp/zeekr.db", conf.Database)
	assert.Equal(t, "https://api.example.com", conf.Zeekr["uri"])
	assert.Equal(t, "localhost:1883", conf.Mqtt.Broker)
	assert.Equal(t, "home/zeekr", conf.Mqtt.RootTopic())
	assert.True(t, conf.Coordinator.RetainSubtrees)
	assert.Equal(t, 15*time.Second, conf.Coordinator.SecurityDelay)
	assert.Equal(t, 10, conf.Settings.ACDuration)
	assert.Equal(t, 15, conf.Settings.SeatDuration)

	// defaults
	assert.Equal(t, "0.0.0.0:7080", conf.URI)
}

func TestDecodeConfigUnknownKey(t *testing.T) {
	_, err := decodeConfig(readConfig(t, "foo: bar\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	conf := defaultConfig()
	require.NoError(t, conf.Validate())

	conf.Interval = 30 * time.Second
	assert.Error(t, conf.Validate())

	conf = defaultConfig()
	conf.Settings.SteeringWheelDuration = 16
	assert.Error(t, conf.Validate())

	conf = defaultConfig()
	conf.Database = ""
	assert.Error(t, conf.Validate())
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/var/lib/zeekr.db", expandHome("/var/lib/zeekr.db"))
	assert.False(t, strings.HasPrefix(expandHome("~/.zeekr/zeekr.db"), "~"))
}
