package codec

import (
	"fmt"

	"github.com/cod3gen/zeekr-homeassistant/core/state"
)

func climate(key string) string  { return state.Join(state.Climate, key) }
func electric(key string) string { return state.Join(state.Electric, key) }
func safety(key string) string   { return state.Join(state.DrivingSafety, key) }

// Fields maps field names to their encoding
var Fields = map[string]Field{
	"defrost":           {Kind: Toggle, Path: climate("defrost"), On: "1", Off: "0"},
	"steeringWheelHeat": {Kind: Toggle, Path: climate("steerWhlHeatingSts"), On: "1", Off: "2"},
	"preClimate":        {Kind: Toggle, Path: climate("preClimateActive"), On: "true", Off: "false"},
	"sentry":            {Kind: Toggle, Path: state.Join(state.RemoteControl, "vstdModeState"), On: "1", Off: "0"},
	"charging":          {Kind: Toggle, Path: electric("chargerState"), On: "1", Off: "0"},
	"curtainClosed":     {Kind: Toggle, Path: climate("curtainOpenStatus"), On: "1", Off: "2"},
	"curtainPos":        {Kind: Number, Path: climate("curtainPos")},
	"centralLocking":    {Kind: Toggle, Path: safety("centralLockingStatus"), On: "1", Off: "0"},
	"trunkClosed":       {Kind: Inverted, Path: safety("trunkOpenStatus"), On: "0", Off: "1"},
	"chargeLidClosed":   {Kind: Toggle, Path: electric("chargeLidDcAcStatus"), On: "2", Off: "1", Strict: true},
	"chargingLimit":     {Kind: Number, Path: state.Join(state.ChargingLimit, "soc"), Factor: 10},
	"seatHeatDriver":    {Kind: Level, Path: climate("drvHeatSts")},
	"seatHeatPassenger": {Kind: Level, Path: climate("passHeatingSts")},
	"seatHeatRearRight": {Kind: Level, Path: climate("rrHeatingSts")},
	"seatHeatRearLeft":  {Kind: Level, Path: climate("rlHeatingSts")},
	"seatVentDriver":    {Kind: Vent, Path: climate("drvVentSts"), Detail: climate("drvVentDetail")},
	"seatVentPassenger": {Kind: Vent, Path: climate("passVentSts"), Detail: climate("passVentDetail")},
}

// Get returns the named field. It panics for unknown names.
func Get(name string) Field {
	f, ok := Fields[name]
	if !ok {
		panic(fmt.Sprintf("unknown field: %s", name))
	}
	return f
}
