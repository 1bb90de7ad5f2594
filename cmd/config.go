package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/server"
	"github.com/spf13/viper"
)

type config struct {
	URI         string
	Log         string
	Levels      map[string]string
	Interval    time.Duration
	Database    string
	Metrics     bool
	Profile     bool
	Zeekr       map[string]interface{}
	Mqtt        server.MqttConfig
	Coordinator coordinatorConfig
	Settings    coordinator.Durations
}

type coordinatorConfig struct {
	RetainSubtrees bool
	SecurityDelay  time.Duration
}

func defaultConfig() config {
	defaults := coordinator.DefaultConfig()

	return config{
		URI:      "0.0.0.0:7080",
		Log:      "error",
		Interval: defaults.Interval,
		Database: "~/.zeekr/zeekr.db",
		Coordinator: coordinatorConfig{
			SecurityDelay: defaults.SecurityDelay,
		},
		Settings: coordinator.DefaultDurations(),
	}
}

// Validate checks the configuration for values the bridge cannot run with
func (c config) Validate() error {
	if c.Interval < time.Minute {
		return fmt.Errorf("interval must be at least 1m: %v", c.Interval)
	}

	if c.Coordinator.SecurityDelay < 0 {
		return errors.New("securityDelay must not be negative")
	}

	if c.Database == "" {
		return errors.New("missing database")
	}

	// validates ranges
	settings := coordinator.NewSettings(coordinator.DefaultDurations())
	d := c.Settings
	for key, val := range map[coordinator.SettingKey]int{
		coordinator.SeatDuration:          d.SeatDuration,
		coordinator.ACDuration:            d.ACDuration,
		coordinator.SteeringWheelDuration: d.SteeringWheelDuration,
	} {
		if err := settings.Set(key, val); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}

	return nil
}

// decodeConfig decodes and validates the configuration held by v
func decodeConfig(v *viper.Viper) (config, error) {
	conf := defaultConfig()

	if err := v.UnmarshalExact(&conf); err != nil {
		return conf, err
	}

	return conf, conf.Validate()
}

func loadConfigFile(cfgFile string) (config, error) {
	if cfgFile == "" {
		return defaultConfig(), errors.New("missing config file")
	}

	log.INFO.Println("using config file", cfgFile)

	conf, err := decodeConfig(viper.GetViper())
	if err != nil {
		err = fmt.Errorf("failed parsing config file %s: %w", cfgFile, err)
	}

	return conf, err
}
