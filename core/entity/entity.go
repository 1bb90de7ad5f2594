package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/command"
	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/util"
)

// Domain identifies devices of this integration
const Domain = "zeekr_ev"

var log = util.NewLogger("entity")

// Platform is the kind of an entity
type Platform string

const (
	PlatformSwitch Platform = "switch"
	PlatformSelect Platform = "select"
	PlatformCover  Platform = "cover"
	PlatformNumber Platform = "number"
	PlatformLock   Platform = "lock"
	PlatformButton Platform = "button"
)

// Host is the coordinator surface used by entities
type Host interface {
	command.Host
	Settings() *coordinator.Settings
	SecurityDelay() time.Duration
}

// Device groups the entities of a vehicle
type Device struct {
	Identifiers  [][2]string `json:"identifiers"`
	Name         string      `json:"name"`
	Manufacturer string      `json:"manufacturer"`
}

// Entity is a stateless view on the coordinator's vehicle state
type Entity interface {
	UniqueID() string
	Key() string
	VIN() string
	Name() string
	Platform() Platform
	// State returns nil if unknown
	State() interface{}
	Device() Device
}

type base struct {
	host     Host
	vin      string
	key      string
	label    string
	platform Platform
}

func newBase(host Host, vin, key, label string, platform Platform) base {
	return base{
		host:     host,
		vin:      vin,
		key:      key,
		label:    label,
		platform: platform,
	}
}

func (e *base) UniqueID() string {
	if e.vin == "" {
		return e.key
	}
	return fmt.Sprintf("%s_%s", e.vin, e.key)
}

func (e *base) Key() string {
	return e.key
}

func (e *base) VIN() string {
	return e.vin
}

func (e *base) Platform() Platform {
	return e.platform
}

func suffix(vin string) string {
	if len(vin) > 4 {
		return vin[len(vin)-4:]
	}
	return vin
}

// Name is the display name, suffixed by the last VIN digits to tell vehicles apart
func (e *base) Name() string {
	if e.vin == "" {
		return "Zeekr " + e.label
	}
	return fmt.Sprintf("Zeekr %s %s", suffix(e.vin), e.label)
}

func (e *base) Device() Device {
	if e.vin == "" {
		return Device{
			Identifiers:  [][2]string{{Domain, "settings"}},
			Name:         "Zeekr",
			Manufacturer: "Zeekr",
		}
	}

	return Device{
		Identifiers:  [][2]string{{Domain, e.vin}},
		Name:         "Zeekr " + e.vin,
		Manufacturer: "Zeekr",
	}
}

func (e *base) tree() state.Tree {
	t, _ := e.host.Store().Get(e.vin)
	return t
}

// cmd is a remote command without its target
type cmd struct {
	verb    string
	service string
	params  []api.ServiceParameter
}

func (e *base) execute(ctx context.Context, c cmd, patch func(state.Tree), delay time.Duration) error {
	err := command.Execute(ctx, e.host, command.Request{
		VIN:       e.vin,
		Verb:      c.verb,
		ServiceID: c.service,
		Params:    c.params,
		Patch:     patch,
		Delay:     delay,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", e.UniqueID(), err)
	}
	return nil
}

func (e *base) duration(key coordinator.SettingKey) string {
	return fmt.Sprint(e.host.Settings().Duration(key))
}

func onOff(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
