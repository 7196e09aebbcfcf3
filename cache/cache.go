// Package cache is a bounded in-memory LRU with a freshness window. Entries
// older than the TTL are never served; refresh happens lazily on the next
// lookup, there is no background sweeper.
package cache

import (
	"container/list"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/portfolio/metrics"
)

const (
	DefaultTTL     = 300 * time.Second
	DefaultMaxSize = 100
)

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

type entry struct {
	key        string
	value      any
	insertedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	now     Clock
	metrics *metrics.Metrics

	order   *list.List // front is most recently used
	entries map[string]*list.Element

	hits, misses, evictions uint64
}

type Option func(*Cache)

// WithTTL sets the freshness window. Non-positive values keep the default.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithMaxSize bounds the entry count. Non-positive values keep the default.
func WithMaxSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

func WithClock(now Clock) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:     DefaultTTL,
		maxSize: DefaultMaxSize,
		now:     time.Now,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if it is still fresh and marks it recently
// used. An expired entry is removed and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.miss()
		return nil, false
	}

	e := el.Value.(*entry)
	if c.expired(e, c.now()) {
		c.remove(el)
		c.evicted()
		c.miss()
		return nil, false
	}

	c.order.MoveToFront(el)
	c.hits++
	c.metrics.CacheHit()
	return e.value, true
}

// Set stores value under key, replacing any previous entry. When a new key
// would exceed the bound, expired entries go first, then the least recently
// used one.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.insertedAt = now
		c.order.MoveToFront(el)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.purgeExpired(now)
	}
	for len(c.entries) >= c.maxSize {
		c.remove(c.order.Back())
		c.evicted()
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, value: value, insertedAt: now})
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
}

// Clear drops every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// Len counts stored entries, including expired ones not yet dropped.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	Size      int           `json:"size"`
	MaxSize   int           `json:"max_size"`
	TTL       time.Duration `json:"ttl"`
	Hits      uint64        `json:"hits"`
	Misses    uint64        `json:"misses"`
	Evictions uint64        `json:"evictions"`
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Size:      len(c.entries),
		MaxSize:   c.maxSize,
		TTL:       c.ttl,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// TTLSeconds is the freshness window in whole seconds.
func (s Stats) TTLSeconds() int {
	return int(s.TTL / time.Second)
}

func (c *Cache) expired(e *entry, now time.Time) bool {
	return e.insertedAt.Add(c.ttl).Before(now)
}

func (c *Cache) purgeExpired(now time.Time) {
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el.Value.(*entry), now) {
			c.remove(el)
			c.evicted()
		}
		el = prev
	}
}

func (c *Cache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*entry).key)
}

func (c *Cache) miss() {
	c.misses++
	c.metrics.CacheMiss()
}

func (c *Cache) evicted() {
	c.evictions++
	c.metrics.CacheEviction()
}

// Key builds a cache key from a function name and its arguments:
// name + ":" + md5 of the JSON encoded argument list.
func Key(name string, args ...any) string {
	if args == nil {
		args = []any{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		b = []byte(fmt.Sprintf("%#v", args))
	}
	return fmt.Sprintf("%s:%x", name, md5.Sum(b))
}
