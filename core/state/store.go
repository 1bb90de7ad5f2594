package state

import (
	"sort"
	"sync"
)

// Store holds the latest state tree per vehicle.
// Readers receive copies, writers go through Patch or Replace.
type Store interface {
	Get(vin string) (Tree, bool)
	Patch(vin string, fn func(Tree)) bool
	Replace(vin string, t Tree)
	Snapshot() map[string]Tree
	VINs() []string
}

type memory struct {
	mu    sync.RWMutex
	trees map[string]Tree
}

var _ Store = (*memory)(nil)

// NewStore creates an in-memory store
func NewStore() Store {
	return &memory{
		trees: make(map[string]Tree),
	}
}

// Get returns a copy of the vehicle's tree
func (s *memory) Get(vin string) (Tree, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trees[vin]
	if !ok {
		return nil, false
	}

	return Copy(t), true
}

// Patch applies fn to the vehicle's tree under the write lock. It returns
// false without calling fn if the vehicle has no entry.
func (s *memory) Patch(vin string, fn func(Tree)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trees[vin]
	if !ok {
		return false
	}

	if t == nil {
		t = make(Tree)
		s.trees[vin] = t
	}

	fn(t)

	return true
}

// Replace overwrites the vehicle's tree
func (s *memory) Replace(vin string, t Tree) {
	if t == nil {
		t = make(Tree)
	}

	s.mu.Lock()
	s.trees[vin] = Copy(t)
	s.mu.Unlock()
}

// Snapshot returns a copy of all trees
func (s *memory) Snapshot() map[string]Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(map[string]Tree, len(s.trees))
	for vin, t := range s.trees {
		res[vin] = Copy(t)
	}

	return res
}

// VINs returns the known vehicles in sorted order
func (s *memory) VINs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]string, 0, len(s.trees))
	for vin := range s.trees {
		res = append(res, vin)
	}
	sort.Strings(res)

	return res
}
