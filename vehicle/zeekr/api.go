package zeekr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/cod3gen/zeekr-homeassistant/util/request"
	"github.com/cod3gen/zeekr-homeassistant/util/transport"
	"golang.org/x/oauth2"
)

// ErrAuthFail indicates authorization failure
var ErrAuthFail = errors.New("authorization failed")

// HeaderVIN selects the vehicle of a request
const HeaderVIN = "X-VIN"

// API implements the Zeekr vehicle api
type API struct {
	*request.Helper
	uri string
}

// NewAPI creates a new Zeekr API
func NewAPI(log *util.Logger, uri string, identity oauth2.TokenSource, timeout time.Duration) *API {
	v := &API{
		Helper: request.NewHelper(log),
		uri:    strings.TrimSuffix(uri, "/"),
	}

	if timeout > 0 {
		v.Client.Timeout = timeout
	}

	v.Client.Transport = &transport.Decorator{
		Decorator: transport.DecorateHeaders(map[string]string{
			"Accept": "application/json",
		}),
		Base: &oauth2.Transport{
			Source: identity,
			Base:   v.Client.Transport,
		},
	}

	return v
}

func (v *API) do(req *http.Request, res interface{}) error {
	var env Response

	if err := v.DoJSON(req, &env); err != nil {
		var se *request.StatusError
		if errors.As(err, &se) && se.HasStatus(http.StatusUnauthorized, http.StatusForbidden) {
			return fmt.Errorf("%w: %v", ErrAuthFail, err)
		}
		return err
	}

	if err := env.Error(); err != nil {
		return err
	}

	if res == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	return json.Unmarshal(env.Data, res)
}

func (v *API) get(path, vin string, res interface{}) error {
	headers := make(map[string]string)
	if vin != "" {
		headers[HeaderVIN] = vin
	}

	req, err := request.New(http.MethodGet, v.uri+path, nil, headers)
	if err == nil {
		err = v.do(req, res)
	}
	return err
}

// Vehicles returns the vehicles of the account
func (v *API) Vehicles() ([]VehicleInfo, error) {
	var res []VehicleInfo
	err := v.get("/vehicles", "", &res)
	return res, err
}

// Status returns the vehicle status tree
func (v *API) Status(vin string) (map[string]interface{}, error) {
	var res map[string]interface{}
	err := v.get("/vehicle/status", vin, &res)
	return res, err
}

// ChargingStatus returns the charging detail tree
func (v *API) ChargingStatus(vin string) (map[string]interface{}, error) {
	var res map[string]interface{}
	err := v.get("/vehicle/charging/status", vin, &res)
	return res, err
}

// ChargingLimit returns the charge limit, soc scaled by 10
func (v *API) ChargingLimit(vin string) (map[string]interface{}, error) {
	var res map[string]interface{}
	err := v.get("/vehicle/charging/limit", vin, &res)
	if err == nil && res == nil {
		err = api.ErrNotAvailable
	}
	return res, err
}

// RemoteControl sends a remote control command
func (v *API) RemoteControl(vin, command, serviceID string, setting api.RemoteSetting) error {
	uri := fmt.Sprintf("%s/vehicle/remote-control?%s", v.uri, url.Values{
		"command":   {command},
		"serviceId": {serviceID},
	}.Encode())

	req, err := request.New(http.MethodPost, uri, request.MarshalJSON(setting), request.JSONEncoding, map[string]string{
		HeaderVIN: vin,
	})
	if err == nil {
		err = v.do(req, nil)
	}

	return err
}
