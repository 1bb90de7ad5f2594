package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/util"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MqttConfig is the broker configuration
type MqttConfig struct {
	Broker   string
	User     string
	Password string
	ClientID string
	Topic    string
	Timeout  time.Duration
}

// RootTopic returns the configured root topic or default zeekr
func (c MqttConfig) RootTopic() string {
	if topic := strings.TrimRight(c.Topic, "/"); topic != "" {
		return topic
	}
	return "zeekr"
}

// MQTT is the mqtt publisher and command receiver
type MQTT struct {
	log     *util.Logger
	client  paho.Client
	root    string
	qos     byte
	timeout time.Duration
}

// NewMQTT connects to the broker
func NewMQTT(conf MqttConfig) (*MQTT, error) {
	log := util.NewLogger("mqtt").Redact(conf.User, conf.Password)

	broker := conf.Broker
	if !strings.Contains(broker, "://") {
		broker = "tcp://" + broker
	}

	clientID := conf.ClientID
	if clientID == "" {
		clientID = "zeekr-" + uuid.New().String()[:8]
	}

	if conf.Timeout == 0 {
		conf.Timeout = 30 * time.Second
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetUsername(conf.User)
	opts.SetPassword(conf.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetCleanSession(true)
	opts.SetOnConnectHandler(func(paho.Client) {
		log.INFO.Printf("connected to %s", broker)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.WARN.Printf("connection lost: %v", err)
	})

	client := paho.NewClient(opts)

	// connect retry keeps trying in background
	if token := client.Connect(); token.WaitTimeout(conf.Timeout) && token.Error() != nil {
		return nil, fmt.Errorf("connect: %w", token.Error())
	}

	return newMQTT(log, client, conf.RootTopic(), conf.Timeout), nil
}

func newMQTT(log *util.Logger, client paho.Client, root string, timeout time.Duration) *MQTT {
	return &MQTT{
		log:     log,
		client:  client,
		root:    root,
		timeout: timeout,
	}
}

// Topic returns the state topic of an entity
func (m *MQTT) Topic(p util.Param) string {
	if p.VIN == "" {
		return fmt.Sprintf("%s/%s", m.root, p.Key)
	}
	return fmt.Sprintf("%s/%s/%s", m.root, p.VIN, p.Key)
}

func payload(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func (m *MQTT) waitForToken(topic string, token paho.Token) {
	if !token.WaitTimeout(m.timeout) {
		m.log.WARN.Printf("%s: publish timeout", topic)
		return
	}

	if err := token.Error(); err != nil {
		m.log.ERROR.Printf("%s: %v", topic, err)
	}
}

// publish does not wait for the broker since it runs on the state notification path
func (m *MQTT) publish(topic string, retained bool, v interface{}) {
	token := m.client.Publish(topic, m.qos, retained, payload(v))
	go m.waitForToken(topic, token)
}

// PublishStatus publishes the leaves of the vehicle's status tree
func (m *MQTT) PublishStatus(vin string, tree state.Tree) {
	leaves, err := state.Flatten(tree, "/")
	if err != nil {
		m.log.ERROR.Printf("%s: status: %v", vin, err)
		return
	}

	for path, v := range leaves {
		m.publish(fmt.Sprintf("%s/%s/status/%s", m.root, vin, path), true, v)
	}
}

// actionFor maps a command payload to the entity's action
func actionFor(e entity.Entity, payload string) (string, string, error) {
	payload = strings.TrimSpace(payload)

	switch e.Platform() {
	case entity.PlatformSwitch:
		switch strings.ToLower(payload) {
		case "on", "true", "1":
			return entity.ActionTurnOn, "", nil
		case "off", "false", "0":
			return entity.ActionTurnOff, "", nil
		}

	case entity.PlatformLock:
		switch strings.ToLower(payload) {
		case "lock", "locked":
			return entity.ActionLock, "", nil
		case "unlock", "unlocked":
			return entity.ActionUnlock, "", nil
		}

	case entity.PlatformCover:
		switch strings.ToLower(payload) {
		case "open":
			return entity.ActionOpen, "", nil
		case "close", "closed":
			return entity.ActionClose, "", nil
		}

	case entity.PlatformSelect:
		return entity.ActionSelect, payload, nil

	case entity.PlatformNumber:
		return entity.ActionSet, payload, nil

	case entity.PlatformButton:
		return entity.ActionPress, "", nil
	}

	return "", "", fmt.Errorf("%s: invalid payload: %s", e.UniqueID(), payload)
}

// entityID returns the unique id addressed by a command topic
func (m *MQTT) entityID(topic string) (string, bool) {
	topic = strings.TrimPrefix(topic, m.root+"/")
	topic = strings.TrimSuffix(topic, "/set")

	segments := strings.Split(topic, "/")
	switch len(segments) {
	case 1:
		return segments[0], true
	case 2:
		return segments[0] + "_" + segments[1], true
	default:
		return "", false
	}
}

func (m *MQTT) handler(registry *entity.Registry) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		id, ok := m.entityID(msg.Topic())
		if !ok {
			m.log.WARN.Printf("invalid topic: %s", msg.Topic())
			return
		}

		e, ok := registry.Get(id)
		if !ok {
			m.log.WARN.Printf("entity not found: %s", id)
			return
		}

		action, value, err := actionFor(e, string(msg.Payload()))
		if err != nil {
			m.log.ERROR.Println(err)
			return
		}

		// remote commands may take several seconds
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := entity.Dispatch(ctx, e, action, value); err != nil {
				m.log.ERROR.Println(err)
			}
		}()
	}
}

// Listen subscribes to the entity command topics
func (m *MQTT) Listen(registry *entity.Registry) error {
	filters := map[string]byte{
		m.root + "/+/set":   m.qos,
		m.root + "/+/+/set": m.qos,
	}

	token := m.client.SubscribeMultiple(filters, m.handler(registry))
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("subscribe: timeout")
	}

	return token.Error()
}

// Run publishes entity states until in is closed
func (m *MQTT) Run(in <-chan util.Param) {
	for p := range in {
		m.publish(m.Topic(p), true, p.Val)
	}
}

// Close disconnects from the broker
func (m *MQTT) Close() {
	m.client.Disconnect(250)
}
