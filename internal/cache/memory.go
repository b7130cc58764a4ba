package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	val     []byte
	expires time.Time
}

// Memory is an in-process Cache for single-instance runs without redis.
type Memory struct {
	mu  sync.Mutex
	now func() time.Time
	m   map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{now: time.Now, m: map[string]memoryEntry{}}
}

func (c *Memory) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.m[key]
	if ok && !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.m, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.val, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *Memory) SetJSON(_ context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	e := memoryEntry{val: b}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Memory) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.m, k)
	}
	c.mu.Unlock()
	return nil
}
