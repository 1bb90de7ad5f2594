package util

import (
	"fmt"
	"sort"
	"sync"
)

// Param is a single entity state published to the ui
type Param struct {
	VIN string      `json:"vin,omitempty"`
	Key string      `json:"key"`
	Val interface{} `json:"val"`
}

// UniqueID returns unique identifier for parameter VIN/Key combination
func (p Param) UniqueID() string {
	if p.VIN == "" {
		return p.Key
	}
	return fmt.Sprintf("%s_%s", p.VIN, p.Key)
}

// Cache is a data store
type Cache struct {
	sync.Mutex
	val map[string]Param
}

// NewCache creates cache
func NewCache() *Cache {
	return &Cache{
		val: make(map[string]Param),
	}
}

// Run adds input channel's values to cache
func (c *Cache) Run(in <-chan Param) {
	log := NewLogger("cache")

	for p := range in {
		log.TRACE.Printf("%s: %v", p.UniqueID(), p.Val)
		c.Add(p.UniqueID(), p)
	}
}

// All provides a copy of the cached values ordered by id
func (c *Cache) All() []Param {
	c.Lock()
	defer c.Unlock()

	res := make([]Param, 0, len(c.val))
	for _, val := range c.val {
		res = append(res, val)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].UniqueID() < res[j].UniqueID()
	})

	return res
}

// Add entry to cache
func (c *Cache) Add(key string, param Param) {
	c.Lock()
	defer c.Unlock()

	c.val[key] = param
}

