package entity

import (
	"context"
	"sort"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/codec"
	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/util"
)

func newSwitch(host Host, vin, key, label, field string, on, off func() *cmd) *Switch {
	return &Switch{
		base:  newBase(host, vin, key, label, PlatformSwitch),
		field: codec.Get(field),
		on:    on,
		off:   off,
	}
}

func newSeat(host Host, vin, key, label, field, code string) *SeatSelect {
	return &SeatSelect{
		base:  newBase(host, vin, key, label, PlatformSelect),
		field: codec.Get(field),
		code:  code,
	}
}

func newLock(host Host, vin, key, label, field string, lock, unlock cmd) *Lock {
	return &Lock{
		base:   newBase(host, vin, key, label, PlatformLock),
		field:  codec.Get(field),
		lock:   lock,
		unlock: unlock,
	}
}

func climate(params ...api.ServiceParameter) func() *cmd {
	return func() *cmd {
		return &cmd{api.Start, api.ServiceClimate, params}
	}
}

// Vehicle creates the entities of a single vehicle
func Vehicle(host Host, vin string) []Entity {
	var res []Entity

	// switches
	res = append(res,
		newSwitch(host, vin, "defrost", "Defrost", "defrost",
			climate(api.Param("DF", "true"), api.Param("DF.level", "2")),
			climate(api.Param("DF", "false")),
		),
		newSwitch(host, vin, "charging", "Charging", "charging",
			nil,
			func() *cmd {
				return &cmd{api.Stop, api.ServiceCharging, []api.ServiceParameter{api.Param("rcs.terminate", "1")}}
			},
		),
	)

	sentry := newSwitch(host, vin, "sentry", "Sentry Mode", "sentry",
		func() *cmd {
			return &cmd{api.Start, api.ServiceSentry, []api.ServiceParameter{api.Param("rsm", "6")}}
		},
		func() *cmd {
			return &cmd{api.Stop, api.ServiceSentry, []api.ServiceParameter{api.Param("rsm", "6")}}
		},
	)
	sentry.delay = host.SecurityDelay()

	steering := newSwitch(host, vin, "steering_wheel_heat", "Steering Wheel Heat", "steeringWheelHeat", nil, climate(api.Param("SW", "false")))
	steering.on = func() *cmd {
		return &cmd{api.Start, api.ServiceClimate, []api.ServiceParameter{
			api.Param("SW", "true"),
			api.Param("SW.level", "3"),
			api.Param("SW.duration", steering.duration(coordinator.SteeringWheelDuration)),
		}}
	}

	ac := newSwitch(host, vin, "climate", "Climate", "preClimate", nil, climate(api.Param("AC", "false")))
	ac.on = func() *cmd {
		return &cmd{api.Start, api.ServiceClimate, []api.ServiceParameter{
			api.Param("AC", "true"),
			api.Param("AC.temp", "22"),
			api.Param("AC.duration", ac.duration(coordinator.ACDuration)),
		}}
	}

	res = append(res, sentry, steering, ac)

	// seats
	res = append(res,
		newSeat(host, vin, "seat_heat_driver", "Driver Seat Heat", "seatHeatDriver", "SH.11"),
		newSeat(host, vin, "seat_heat_passenger", "Passenger Seat Heat", "seatHeatPassenger", "SH.19"),
		newSeat(host, vin, "seat_heat_rear_right", "Rear Right Seat Heat", "seatHeatRearRight", "SH.29"),
		newSeat(host, vin, "seat_heat_rear_left", "Rear Left Seat Heat", "seatHeatRearLeft", "SH.21"),
		newSeat(host, vin, "seat_vent_driver", "Driver Seat Vent", "seatVentDriver", "SV.11"),
		newSeat(host, vin, "seat_vent_passenger", "Passenger Seat Vent", "seatVentPassenger", "SV.19"),
	)

	// cover
	res = append(res, &Sunshade{
		base:     newBase(host, vin, "sunshade", "Sunshade", PlatformCover),
		closed:   codec.Get("curtainClosed"),
		position: codec.Get("curtainPos"),
	})

	// number
	res = append(res, &ChargingLimit{
		base:  newBase(host, vin, "charging_limit", "Charging Limit", PlatformNumber),
		field: codec.Get("chargingLimit"),
	})

	// locks
	target := func(verb, service, value string) cmd {
		return cmd{verb, service, []api.ServiceParameter{api.Param("target", value)}}
	}

	res = append(res,
		newLock(host, vin, "central_locking", "Central Locking", "centralLocking",
			cmd{api.Start, api.ServiceLock, []api.ServiceParameter{api.Param("door", "all")}},
			cmd{api.Start, api.ServiceUnlock, []api.ServiceParameter{api.Param("door", "all")}},
		),
		newLock(host, vin, "trunk", "Trunk", "trunkClosed",
			target(api.Start, api.ServiceClose, "trunk"),
			target(api.Start, api.ServiceOpen, "trunk"),
		),
		newLock(host, vin, "charge_lid", "Charge Lid", "chargeLidClosed",
			target(api.Start, api.ServiceClose, "chargeLid"),
			target(api.Start, api.ServiceOpen, "chargeLid"),
		),
	)

	// buttons
	poll := &Button{base: newBase(host, vin, "poll", "Poll Vehicle Data", PlatformButton)}
	poll.press = func(context.Context) error {
		host.RequestRefresh()
		return nil
	}

	flash := &Button{base: newBase(host, vin, "flash_blinkers", "Flash Blinkers", PlatformButton)}
	flash.press = func(ctx context.Context) error {
		return flash.execute(ctx, cmd{api.Start, api.ServiceHonkLight, []api.ServiceParameter{api.Param("rhl", "light-flash")}}, nil, 0)
	}

	res = append(res, poll, flash)

	return res
}

// Global creates the entities not bound to a vehicle
func Global(host Host) []Entity {
	return []Entity{
		&Duration{
			base:    newBase(host, "", "seat_operation_duration", "Seat Operation Duration", PlatformNumber),
			setting: coordinator.SeatDuration,
		},
		&Duration{
			base:    newBase(host, "", "ac_operation_duration", "AC Operation Duration", PlatformNumber),
			setting: coordinator.ACDuration,
		},
		&Duration{
			base:    newBase(host, "", "steering_wheel_operation_duration", "Steering Wheel Operation Duration", PlatformNumber),
			setting: coordinator.SteeringWheelDuration,
		},
	}
}

// Registry holds all entities by unique id
type Registry struct {
	entities []Entity
	byID     map[string]Entity
}

// Setup creates the entities of all vehicles known to the host's store
func Setup(host Host) *Registry {
	entities := Global(host)
	for _, vin := range host.Store().VINs() {
		entities = append(entities, Vehicle(host, vin)...)
	}

	r := &Registry{
		entities: entities,
		byID:     make(map[string]Entity, len(entities)),
	}

	for _, e := range entities {
		r.byID[e.UniqueID()] = e
	}

	log.DEBUG.Printf("created %d entities", len(entities))

	return r
}

// All returns all entities ordered by unique id
func (r *Registry) All() []Entity {
	res := make([]Entity, len(r.entities))
	copy(res, r.entities)

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].UniqueID() < res[j].UniqueID()
	})

	return res
}

// Get returns the entity by unique id
func (r *Registry) Get(id string) (Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// ForVIN returns the entities of a vehicle, or the global entities for an empty vin
func (r *Registry) ForVIN(vin string) []Entity {
	var res []Entity
	for _, e := range r.entities {
		if e.VIN() == vin {
			res = append(res, e)
		}
	}
	return res
}

// Publish sends the entity states of a vehicle, or the global ones for an empty vin
func (r *Registry) Publish(vin string, out chan<- util.Param) {
	for _, e := range r.ForVIN(vin) {
		out <- util.Param{VIN: e.VIN(), Key: e.Key(), Val: e.State()}
	}
}
