package distcache

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

const numShards = 64

// Func evaluates the distance between the items at indexes i < j.
type Func func(i, j int) float64

type shard struct {
	mu sync.RWMutex
	m  map[uint64]float64
}

func (s *shard) get(key uint64) (float64, bool) {
	s.mu.RLock()
	d, ok := s.m[key]
	s.mu.RUnlock()
	return d, ok
}

func (s *shard) put(key uint64, d float64) {
	s.mu.Lock()
	s.m[key] = d
	s.mu.Unlock()
}

// Cache is a distance memo keyed by unordered index pairs. It never evicts.
type Cache struct {
	fn      Func
	shards  [numShards]shard
	flight  singleflight.Group
	size    atomic.Int64
	lookups atomic.Int64
}

// New creates a cache around fn.
func New(fn Func) *Cache {
	c := &Cache{fn: fn}
	for i := range c.shards {
		c.shards[i].m = make(map[uint64]float64)
	}
	return c
}

// Ceiling returns the number of unordered pairs among size items.
func Ceiling(size int) int {
	if size < 2 {
		return 0
	}
	return size * (size - 1) / 2
}

func pairKey(i, j int) (lo, hi int, key uint64) {
	if i > j {
		i, j = j, i
	}
	return i, j, uint64(uint32(i))<<32 | uint64(uint32(j))
}

// fibonacci hashing spreads consecutive pairs across shards
func (c *Cache) shard(key uint64) *shard {
	return &c.shards[(key*0x9E3779B97F4A7C15)>>58]
}

// Distance returns the distance between items i and j, evaluating the
// underlying function on the first request for the pair only.
func (c *Cache) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	c.lookups.Add(1)
	lo, hi, key := pairKey(i, j)
	sh := c.shard(key)
	if d, ok := sh.get(key); ok {
		return d
	}
	v, _, _ := c.flight.Do(strconv.FormatUint(key, 36), func() (interface{}, error) {
		// a flight that finished between get and Do already stored the pair
		if d, ok := sh.get(key); ok {
			return d, nil
		}
		d := c.fn(lo, hi)
		sh.put(key, d)
		c.size.Add(1)
		return d, nil
	})
	return v.(float64)
}

// Contains reports whether the pair has been evaluated.
func (c *Cache) Contains(i, j int) bool {
	_, _, key := pairKey(i, j)
	_, ok := c.shard(key).get(key)
	return ok
}

// Len returns the number of unique evaluations performed so far.
func (c *Cache) Len() int { return int(c.size.Load()) }

// Stats returns the number of lookups served and evaluations performed.
func (c *Cache) Stats() (lookups, evaluations int64) {
	return c.lookups.Load(), c.size.Load()
}
