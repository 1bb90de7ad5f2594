package state

import (
	"strings"

	"github.com/jeremywohl/flatten"
	"github.com/mitchellh/copystructure"
)

// Tree is the decoded status document of a single vehicle. Leaves are the raw
// status codes as returned by the api, absent keys mean unknown.
type Tree = map[string]interface{}

// Status groups of the vehicle status document
const (
	Climate       = "additionalVehicleStatus.climateStatus"
	Electric      = "additionalVehicleStatus.electricVehicleStatus"
	DrivingSafety = "additionalVehicleStatus.drivingSafetyStatus"
	RemoteControl = "additionalVehicleStatus.remoteControlState"

	ChargingStatus = "chargingStatus"
	ChargingLimit  = "chargingLimit"
)

// Join builds a dotted path
func Join(elem ...string) string {
	return strings.Join(elem, ".")
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

// Lookup returns the value at the dotted path
func Lookup(t Tree, path string) (interface{}, bool) {
	if t == nil {
		return nil, false
	}

	var cur interface{} = t
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}

	return cur, cur != nil
}

// Set assigns the value at the dotted path, creating intermediate groups.
// Non-map values on the way are replaced.
func Set(t Tree, path string, v interface{}) {
	keys := strings.Split(path, ".")

	cur := t
	for _, key := range keys[:len(keys)-1] {
		next, ok := asMap(cur[key])
		if !ok {
			next = make(map[string]interface{})
			cur[key] = next
		}
		cur = next
	}

	cur[keys[len(keys)-1]] = v
}

// Copy returns a deep copy of the tree
func Copy(t Tree) Tree {
	if t == nil {
		return nil
	}

	res, err := copystructure.Copy(t)
	if err != nil {
		// trees only hold json-decoded values
		panic(err)
	}

	return res.(Tree)
}

// Flatten returns the leaves of the tree keyed by their path joined with sep
func Flatten(t Tree, sep string) (map[string]interface{}, error) {
	if t == nil {
		return map[string]interface{}{}, nil
	}
	return flatten.Flatten(t, "", flatten.SeparatorStyle{Middle: sep})
}
