package stats

import (
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/cod3gen/zeekr-homeassistant/util"
)

// StorageKey identifies the persisted counters record
const StorageKey = "zeekr_ev_stats"

// DateFormat is the layout of Counters.LastReset
const DateFormat = "2006-01-02"

// Counters is the persisted counters record
type Counters struct {
	RequestsToday int    `json:"api_requests_today"`
	InvokesToday  int    `json:"api_invokes_today"`
	RequestsTotal int    `json:"api_requests_total"`
	InvokesTotal  int    `json:"api_invokes_total"`
	LastReset     string `json:"last_reset"`
}

// Store persists the counters record
type Store interface {
	// Load returns nil if nothing has been persisted yet
	Load() (*Counters, error)
	Save(Counters) error
}

// Stats counts api requests and remote control invokes.
// The today counters are reset once per local calendar day.
type Stats struct {
	mu     sync.Mutex
	log    *util.Logger
	clock  clock.Clock
	store  Store
	loaded bool
	c      Counters
}

// New creates request statistics backed by store. A nil store keeps counters in memory.
func New(store Store, clock clock.Clock) *Stats {
	return &Stats{
		log:   util.NewLogger("stats"),
		clock: clock,
		store: store,
		c:     Counters{LastReset: clock.Now().Format(DateFormat)},
	}
}

func (s *Stats) today() string {
	return s.clock.Now().Format(DateFormat)
}

// Load reads the persisted counters once. After a load error counting continues in memory,
// nothing is saved and the next Load tries again.
func (s *Stats) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return
	}

	if s.store == nil {
		s.loaded = true
		s.checkReset()
		return
	}

	c, err := s.store.Load()
	if err != nil {
		s.log.ERROR.Printf("load: %v", err)
		s.checkReset()
		return
	}

	s.loaded = true

	// counted while the store was unavailable
	pending := s.c

	if c != nil {
		s.c = *c
		if s.c.LastReset == "" {
			s.c.LastReset = s.today()
		}
	}

	s.checkReset()

	if c != nil && pending != (Counters{LastReset: pending.LastReset}) {
		s.c.RequestsTotal += pending.RequestsTotal
		s.c.InvokesTotal += pending.InvokesTotal
		if pending.LastReset == s.c.LastReset {
			s.c.RequestsToday += pending.RequestsToday
			s.c.InvokesToday += pending.InvokesToday
		}
		s.save()
	}
}

// CheckReset resets the today counters unless this already happened today
func (s *Stats) CheckReset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkReset()
}

// checkReset must be called with the lock held
func (s *Stats) checkReset() {
	if today := s.today(); s.c.LastReset != today {
		s.log.DEBUG.Printf("new day %s (last reset %s)", today, s.c.LastReset)
		s.resetToday()
	}
}

func (s *Stats) resetToday() {
	s.c.RequestsToday = 0
	s.c.InvokesToday = 0
	s.c.LastReset = s.today()
	s.save()
}

func (s *Stats) save() {
	if s.store == nil || !s.loaded {
		return
	}

	if err := s.store.Save(s.c); err != nil {
		s.log.WARN.Printf("save: %v", err)
	}
}

// IncRequest counts an api request
func (s *Stats) IncRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkReset()
	s.c.RequestsToday++
	s.c.RequestsTotal++
	s.save()
}

// IncInvoke counts a remote control command
func (s *Stats) IncInvoke() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkReset()
	s.c.InvokesToday++
	s.c.InvokesTotal++
	s.save()
}

// ResetToday zeroes the today counters
func (s *Stats) ResetToday() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetToday()
}

// Counters returns a snapshot of the counters
func (s *Stats) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.c
}
