package cache

import (
    "context"
    "sync"
    "time"
)

// Store keeps short-lived byte values.
type Store interface {
    Get(ctx context.Context, key string) ([]byte, bool, error)
    Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// entry stores a cached value with expiry.
type entry struct {
    expiresAt time.Time
    val       []byte
}

// Memory is an in-process Store.
type Memory struct {
    // MaxItems caps the number of keys; 0 means unbounded.
    MaxItems int

    mu    sync.RWMutex
    items map[string]entry
    now   func() time.Time
}

func NewMemory(maxItems int) *Memory {
    return &Memory{MaxItems: maxItems, items: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
    m.mu.RLock()
    e, ok := m.items[key]
    m.mu.RUnlock()
    if !ok || !m.now().Before(e.expiresAt) {
        return nil, false, nil
    }
    return e.val, true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
    if ttl <= 0 { return nil }
    now := m.now()
    m.mu.Lock()
    defer m.mu.Unlock()
    if m.items == nil { m.items = make(map[string]entry) }
    m.items[key] = entry{expiresAt: now.Add(ttl), val: val}

    // best-effort cap cache size
    if m.MaxItems > 0 && len(m.items) > m.MaxItems {
        // remove expired first, then arbitrary
        for k, v := range m.items {
            if !now.Before(v.expiresAt) { delete(m.items, k) }
        }
        for k := range m.items {
            if len(m.items) <= m.MaxItems { break }
            if k == key { continue }
            delete(m.items, k)
        }
    }
    return nil
}

// Len reports the number of stored keys, expired or not.
func (m *Memory) Len() int {
    m.mu.RLock()
    defer m.mu.RUnlock()
    return len(m.items)
}
