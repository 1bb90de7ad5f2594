package zeekr

import (
	"errors"
	"fmt"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/provider"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/cod3gen/zeekr-homeassistant/util/request"
)

// Config is the account configuration
type Config struct {
	URI          string
	Token        string
	RefreshToken string
	VINs         []string
	Timeout      time.Duration
	Cache        time.Duration
}

// Client is an api.Client for a Zeekr account
type Client struct {
	log      *util.Logger
	api      *API
	vins     []string
	vehicles func() ([]VehicleInfo, error)
}

var _ api.Client = (*Client)(nil)

// NewClientFromConfig creates a client from generic config
func NewClientFromConfig(other map[string]interface{}) (*Client, error) {
	cc := Config{
		Timeout: request.Timeout,
		Cache:   time.Hour,
	}

	if err := util.DecodeOther(other, &cc); err != nil {
		return nil, err
	}

	return NewClient(cc)
}

// NewClient creates a client
func NewClient(cc Config) (*Client, error) {
	if cc.URI == "" {
		return nil, errors.New("missing uri")
	}

	log := util.NewLogger("zeekr").Redact(cc.Token, cc.RefreshToken)

	identity, err := NewIdentity(log, cc.URI, cc.Token, cc.RefreshToken)
	if err != nil {
		return nil, err
	}

	c := &Client{
		log:  log,
		api:  NewAPI(log, cc.URI, identity, cc.Timeout),
		vins: cc.VINs,
	}

	c.vehicles = provider.Cached(c.api.Vehicles, cc.Cache)

	return c, nil
}

// Vehicles implements api.Client
func (c *Client) Vehicles() ([]api.Vehicle, error) {
	list, err := c.vehicles()
	if err != nil {
		if errors.Is(err, ErrAuthFail) {
			provider.ResetCached()
		}
		return nil, fmt.Errorf("cannot get vehicles: %w", err)
	}

	list, err = filterVehicles(c.vins, list, func(v VehicleInfo) string {
		return v.VIN
	})
	if err != nil {
		return nil, err
	}

	res := make([]api.Vehicle, 0, len(list))
	for _, info := range list {
		c.log.Redact(info.VIN)
		res = append(res, &Vehicle{api: c.api, info: info})
	}

	return res, nil
}

// Vehicle is an api.Vehicle
type Vehicle struct {
	api  *API
	info VehicleInfo
}

var _ api.Vehicle = (*Vehicle)(nil)

// VIN implements api.Vehicle
func (v *Vehicle) VIN() string {
	return v.info.VIN
}

// Status implements api.Vehicle
func (v *Vehicle) Status() (map[string]interface{}, error) {
	return v.api.Status(v.info.VIN)
}

// ChargingStatus implements api.Vehicle
func (v *Vehicle) ChargingStatus() (map[string]interface{}, error) {
	return v.api.ChargingStatus(v.info.VIN)
}

// ChargingLimit implements api.Vehicle
func (v *Vehicle) ChargingLimit() (map[string]interface{}, error) {
	return v.api.ChargingLimit(v.info.VIN)
}

// RemoteControl implements api.Vehicle
func (v *Vehicle) RemoteControl(command, serviceID string, setting api.RemoteSetting) error {
	return v.api.RemoteControl(v.info.VIN, command, serviceID, setting)
}
