package api

//go:generate mockgen -package api -destination mock.go github.com/cod3gen/zeekr-homeassistant/api Client,Vehicle

// Command verbs accepted by the remote control endpoint
const (
	Start = "start"
	Stop  = "stop"
)

// Remote control service identifiers
const (
	ServiceSunshade  = "RWS" // sunshade curtain
	ServiceCharging  = "RCS" // charge limit, charging stop
	ServiceClimate   = "ZAF" // defrost, seats, steering wheel, climate
	ServiceSentry    = "RSM" // security/sentry mode
	ServiceHonkLight = "RHL" // light flash
	ServiceLock      = "RDL" // door lock
	ServiceUnlock    = "RDU" // door unlock
	ServiceOpen      = "RDO" // trunk, charge lid
	ServiceClose     = "RDC" // trunk, charge lid
)

// Client lists the vehicles of an account
type Client interface {
	Vehicles() ([]Vehicle, error)
}

// Vehicle is a single vehicle handle. All methods block on the network.
type Vehicle interface {
	VIN() string
	Status() (map[string]interface{}, error)
	ChargingStatus() (map[string]interface{}, error)
	ChargingLimit() (map[string]interface{}, error)
	RemoteControl(command, serviceID string, setting RemoteSetting) error
}

// ServiceParameter is a single key/value pair of a remote control command
type ServiceParameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RemoteSetting is the remote control request body
type RemoteSetting struct {
	ServiceParameters []ServiceParameter `json:"serviceParameters"`
}

// NewRemoteSetting creates a remote setting from parameters, keeping their order
func NewRemoteSetting(params ...ServiceParameter) RemoteSetting {
	if params == nil {
		params = []ServiceParameter{}
	}
	return RemoteSetting{ServiceParameters: params}
}

// Param is a shorthand for creating a ServiceParameter
func Param(key, value string) ServiceParameter {
	return ServiceParameter{Key: key, Value: value}
}
