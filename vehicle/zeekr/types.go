package zeekr

import (
	"encoding/json"
	"fmt"
)

// ResultOK is the envelope code of successful responses
const ResultOK = "000000"

// Response is the common response envelope
type Response struct {
	Code    string          `json:"code"`
	Msg     string          `json:"msg"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Error returns an error for unsuccessful responses
func (r Response) Error() error {
	if r.Code == ResultOK {
		return nil
	}
	if r.Msg != "" {
		return fmt.Errorf("%s: %s", r.Code, r.Msg)
	}
	return fmt.Errorf("unexpected response: %s", r.Code)
}

// VehicleInfo is a vehicle of the account
type VehicleInfo struct {
	VIN         string `json:"vin"`
	PlateNo     string `json:"plateNo"`
	ModelName   string `json:"modelName"`
	SeriesCode  string `json:"seriesCodeVs"`
	DefaultFlag bool   `json:"defaultVehicle"`
}
