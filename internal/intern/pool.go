// Package intern keeps canonical *str.String instances so that equal strings produced by
// independent requests share one buffer.
package intern

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/AdrianWangs/go-jstring/pkg/lru"
	"github.com/AdrianWangs/go-jstring/pkg/str"
)

// Stats 驻留池统计信息
type Stats struct {
	Lookups int64 // Intern/Lookup 调用总数
	Hits    int64 // 命中已有实例的次数
}

// Pool is a concurrency-safe, size-bounded intern pool
type Pool struct {
	mutex    sync.Mutex
	lru      *lru.Cache[*str.String]
	capacity int64
	ttl      time.Duration
	stats    Stats
}

// New creates a pool charging key bytes plus rune count against capacityBytes (0 means
// unbounded). Entries idle longer than ttl are dropped; ttl <= 0 keeps them until evicted.
func New(capacityBytes int64, ttl time.Duration) *Pool {
	return &Pool{
		capacity: capacityBytes,
		ttl:      ttl,
	}
}

// Intern returns the pooled instance equal to s, adding s if there is none
func (p *Pool) Intern(s *str.String) *str.String {
	if s == nil {
		return nil
	}
	key := s.String()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	atomic.AddInt64(&p.stats.Lookups, 1)

	// Lazy initialization
	if p.lru == nil {
		p.lru = lru.New[*str.String](p.capacity, nil)
	}
	if v, ok := p.lru.Get(key); ok && v.Equals(s) {
		atomic.AddInt64(&p.stats.Hits, 1)
		return v
	}
	p.lru.Add(key, s, p.ttl)
	return s
}

// Lookup returns the pooled instance for text without adding one
func (p *Pool) Lookup(text string) (*str.String, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	atomic.AddInt64(&p.stats.Lookups, 1)
	if p.lru == nil {
		return nil, false
	}
	v, ok := p.lru.Get(text)
	if ok {
		atomic.AddInt64(&p.stats.Hits, 1)
	}
	return v, ok
}

// Len returns the number of pooled strings
func (p *Pool) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.lru == nil {
		return 0
	}
	return p.lru.Len()
}

// Clear empties the pool; statistics are kept
func (p *Pool) Clear() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.lru != nil {
		p.lru.Clear()
	}
}

// Stats returns a snapshot of the pool statistics
func (p *Pool) Stats() Stats {
	return Stats{
		Lookups: atomic.LoadInt64(&p.stats.Lookups),
		Hits:    atomic.LoadInt64(&p.stats.Hits),
	}
}
