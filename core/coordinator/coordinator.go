package coordinator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/benbjohnson/clock"
	"github.com/cod3gen/zeekr-homeassistant/api"
	"github.com/cod3gen/zeekr-homeassistant/core/codec"
	"github.com/cod3gen/zeekr-homeassistant/core/command"
	"github.com/cod3gen/zeekr-homeassistant/core/schedule"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/cod3gen/zeekr-homeassistant/core/storage"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/imdario/mergo"
	"golang.org/x/sync/singleflight"
)

const topicState = "state"

// Config is the coordinator configuration
type Config struct {
	Interval       time.Duration
	RetainSubtrees bool          // seed each cycle with the previous cycle's tree
	SecurityDelay  time.Duration // refresh delay after sentry mode commands
}

// DefaultConfig returns the default coordinator configuration
func DefaultConfig() Config {
	return Config{
		Interval:      5 * time.Minute,
		SecurityDelay: 10 * time.Second,
	}
}

// Coordinator polls all vehicles of an account and owns their cached state
type Coordinator struct {
	log      *util.Logger
	clock    clock.Clock
	client   api.Client
	stats    *stats.Stats
	store    state.Store
	settings *Settings
	bus      EventBus.Bus
	waiter   *util.Waiter
	conf     Config
	journal  *storage.Journal

	group    singleflight.Group
	refreshC chan struct{}
	daily    *schedule.Daily

	mu       sync.Mutex
	vehicles []api.Vehicle
	timers   map[*clock.Timer]struct{}
	stopped  bool
	polled   time.Time
}

var _ command.Host = (*Coordinator)(nil)
var _ command.Recorder = (*Coordinator)(nil)

// New creates a coordinator and arms the daily counter reset
func New(client api.Client, stats *stats.Stats, settings *Settings, clk clock.Clock, conf Config) *Coordinator {
	if conf.Interval <= 0 {
		conf.Interval = DefaultConfig().Interval
	}

	c := &Coordinator{
		log:      util.NewLogger("coordinator"),
		clock:    clk,
		client:   client,
		stats:    stats,
		store:    state.NewStore(),
		settings: settings,
		bus:      EventBus.New(),
		waiter:   util.NewWaiter(clk, 3*conf.Interval),
		conf:     conf,
		refreshC: make(chan struct{}, 1),
		timers:   make(map[*clock.Timer]struct{}),
	}

	c.daily = schedule.NewDaily(clk, c.resetToday)

	return c
}

// WithJournal records remote commands to the journal
func (c *Coordinator) WithJournal(j *storage.Journal) *Coordinator {
	c.journal = j
	return c
}

// Journal returns the command journal, nil if commands are not recorded
func (c *Coordinator) Journal() *storage.Journal {
	return c.journal
}

func (c *Coordinator) resetToday() {
	c.log.DEBUG.Println("daily counter reset")
	c.stats.CheckReset()
}

// Store returns the vehicle state store
func (c *Coordinator) Store() state.Store {
	return c.store
}

// Settings returns the operation durations
func (c *Coordinator) Settings() *Settings {
	return c.settings
}

// Stats returns the request statistics
func (c *Coordinator) Stats() *stats.Stats {
	return c.stats
}

// SecurityDelay is the refresh delay for sentry mode commands
func (c *Coordinator) SecurityDelay() time.Duration {
	return c.conf.SecurityDelay
}

// Interval is the poll interval
func (c *Coordinator) Interval() time.Duration {
	return c.conf.Interval
}

// IncInvoke counts a remote control command
func (c *Coordinator) IncInvoke() {
	c.stats.IncInvoke()
}

// Vehicles returns the known vehicles
func (c *Coordinator) Vehicles() []api.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make([]api.Vehicle, len(c.vehicles))
	copy(res, c.vehicles)

	return res
}

// Vehicle returns the vehicle with the given VIN
func (c *Coordinator) Vehicle(vin string) (api.Vehicle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range c.vehicles {
		if strings.EqualFold(v.VIN(), vin) {
			return v, true
		}
	}

	return nil, false
}

// Available reports whether a status fetch succeeded recently
func (c *Coordinator) Available() bool {
	return c.waiter.Overdue() == nil
}

// Updated returns the time of the last successful status fetch
func (c *Coordinator) Updated() time.Time {
	return c.waiter.Updated()
}

// Subscribe registers a listener for vehicle state changes
func (c *Coordinator) Subscribe(fn func(vin string)) error {
	return c.bus.Subscribe(topicState, fn)
}

// WriteState notifies listeners about a state change of the vehicle
func (c *Coordinator) WriteState(vin string) {
	c.bus.Publish(topicState, vin)
}

// Record implements command.Recorder
func (c *Coordinator) Record(vin, verb, serviceID string, setting api.RemoteSetting) func(error) {
	if c.journal == nil {
		return func(error) {}
	}

	params := make([]string, 0, len(setting.ServiceParameters))
	for _, p := range setting.ServiceParameters {
		params = append(params, p.Key+"="+p.Value)
	}

	tx, err := c.journal.Start(vin, verb, serviceID, strings.Join(params, ","))
	if err != nil {
		c.log.WARN.Printf("journal: %v", err)
		return func(error) {}
	}

	return func(res error) {
		if err := tx.Stop(res); err != nil {
			c.log.WARN.Printf("journal: %v", err)
		}
	}
}

// RequestRefresh triggers an immediate poll cycle. Requests coalesce while one is pending.
func (c *Coordinator) RequestRefresh() {
	select {
	case c.refreshC <- struct{}{}:
	default:
	}
}

// RequestRefreshAfter triggers a poll cycle after d
func (c *Coordinator) RequestRefreshAfter(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	var t *clock.Timer
	t = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		delete(c.timers, t)
		c.mu.Unlock()

		c.RequestRefresh()
	})

	c.timers[t] = struct{}{}
}

// Stop cancels the daily reset and all pending delayed refreshes
func (c *Coordinator) Stop() {
	c.daily.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	for t := range c.timers {
		t.Stop()
	}
	c.timers = make(map[*clock.Timer]struct{})
}

// polledRecently reports whether a cycle finished within the last interval
func (c *Coordinator) polledRecently() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return !c.polled.IsZero() && c.clock.Since(c.polled) < c.conf.Interval
}

// Run polls until ctx is done. The initial cycle is skipped if the vehicles have just been polled.
func (c *Coordinator) Run(ctx context.Context) {
	ticker := c.clock.Ticker(c.conf.Interval)
	defer ticker.Stop()

	poll := !c.polledRecently()

	for {
		if poll {
			if _, err := c.Refresh(ctx); err != nil {
				c.log.ERROR.Println(err)
			}
		}
		poll = true

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-c.refreshC:
		}
	}
}

// Refresh runs a poll cycle. Concurrent callers share the cycle in flight.
func (c *Coordinator) Refresh(ctx context.Context) (map[string]state.Tree, error) {
	resC := c.group.DoChan("refresh", func() (interface{}, error) {
		return c.update()
	})

	select {
	case res := <-resC:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string]state.Tree), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Coordinator) registry() ([]api.Vehicle, error) {
	if vehicles := c.Vehicles(); len(vehicles) > 0 {
		return vehicles, nil
	}

	c.stats.IncRequest()

	vehicles, err := c.client.Vehicles()
	if err != nil {
		return nil, fmt.Errorf("vehicles: %w", err)
	}

	c.mu.Lock()
	c.vehicles = vehicles
	c.mu.Unlock()

	c.log.DEBUG.Printf("found %d vehicle(s)", len(vehicles))

	return vehicles, nil
}

// fetch returns the merged tree of a single vehicle and whether its status was received
func (c *Coordinator) fetch(v api.Vehicle) (state.Tree, bool) {
	vin := v.VIN()

	c.stats.IncRequest()

	status, err := v.Status()
	if err != nil {
		c.log.ERROR.Printf("%s: status: %v", vin, err)
		return make(state.Tree), false
	}

	// the client may hand out its own maps
	tree := state.Copy(status)
	if tree == nil {
		tree = make(state.Tree)
	}

	if charging, ok := codec.Get("charging").Bool(tree); ok && charging {
		c.stats.IncRequest()

		if res, err := v.ChargingStatus(); err == nil {
			tree[state.ChargingStatus] = res
		} else {
			c.log.WARN.Printf("%s: charging status: %v", vin, err)
		}
	}

	c.stats.IncRequest()

	if res, err := v.ChargingLimit(); err == nil && res != nil {
		tree[state.ChargingLimit] = res
	} else if err != nil {
		c.log.DEBUG.Printf("%s: charging limit: %v", vin, err)
	}

	return tree, true
}

func (c *Coordinator) update() (map[string]state.Tree, error) {
	c.stats.Load()

	vehicles, err := c.registry()
	if err != nil {
		return nil, err
	}

	res := make(map[string]state.Tree, len(vehicles))

	var received bool
	for _, v := range vehicles {
		vin := v.VIN()

		tree, ok := c.fetch(v)
		received = received || ok

		if c.conf.RetainSubtrees {
			if prev, found := c.store.Get(vin); found {
				if err := mergo.Merge(&tree, prev); err != nil {
					c.log.WARN.Printf("%s: retain: %v", vin, err)
				}
			}
		}

		c.store.Replace(vin, tree)
		res[vin] = tree
	}

	if received {
		c.waiter.Update()
	}

	c.mu.Lock()
	c.polled = c.clock.Now()
	c.mu.Unlock()

	for _, v := range vehicles {
		c.WriteState(v.VIN())
	}

	return res, nil
}
