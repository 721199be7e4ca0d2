package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/awmpietro/tracecheck/internal/property"
)

// InMemory caches compiled properties by key. Concurrent callers asking for
// the same missing key share one compilation; failed compilations are not
// cached.
type InMemory struct {
	mu       sync.Mutex
	max      int
	items    map[string]*property.Property
	inflight map[string]*call
}

type call struct {
	done chan struct{}
	p    *property.Property
	err  error
}

func NewInMemory(max int) *InMemory {
	return &InMemory{
		max:      max,
		items:    make(map[string]*property.Property, max),
		inflight: map[string]*call{},
	}
}

func (c *InMemory) GetOrCompute(key string, fn func() (*property.Property, error)) (*property.Property, error) {
	c.mu.Lock()
	if p, ok := c.items[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-cl.done
		return cl.p, cl.err
	}
	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.p, cl.err = safeCompute(fn)

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil && len(c.items) < c.max {
		c.items[key] = cl.p
	}
	c.mu.Unlock()
	close(cl.done)

	return cl.p, cl.err
}

func (c *InMemory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func safeCompute(fn func() (*property.Property, error)) (p *property.Property, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("property compilation panicked: %v", r)
		}
	}()
	return fn()
}

// Key hashes a canonical property encoding into a cache key.
func Key(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
