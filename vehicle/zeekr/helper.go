package zeekr

import (
	"fmt"
	"strings"

	"github.com/thoas/go-funk"
)

// filterVehicles returns the vehicles whose VIN is allowed. An empty allow list keeps all vehicles.
func filterVehicles[T any](allowed []string, vehicles []T, extract func(T) string) ([]T, error) {
	if len(allowed) == 0 {
		return vehicles, nil
	}

	upper := make([]string, 0, len(allowed))
	for _, vin := range allowed {
		if vin = strings.ToUpper(strings.TrimSpace(vin)); vin != "" {
			upper = append(upper, vin)
		}
	}

	var res []T
	var found []string
	for _, v := range vehicles {
		if vin := strings.ToUpper(extract(v)); funk.ContainsString(upper, vin) {
			res = append(res, v)
			found = append(found, vin)
		}
	}

	// vin defined but doesn't exist
	for _, vin := range upper {
		if !funk.ContainsString(found, vin) {
			return res, fmt.Errorf("cannot find vehicle: %s", vin)
		}
	}

	return res, nil
}
