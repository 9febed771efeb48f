package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store used by tests and by components that
// share one process. It implements Notifier with one quirk carried over
// from the system it models: a write is announced to every subscriber
// except the handle that performed it, the same way a browser storage
// event never fires in the document that wrote the value. Same-handle
// readers are expected to poll the change marker instead.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	subs   map[int]*memorySub
	nextID int
}

type memorySub struct {
	ch     chan string
	handle *Handle
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
		subs: make(map[int]*memorySub),
	}
}

// Handle is a named accessor to a Memory store. Writes made through a
// handle are not delivered to subscriptions opened through the same
// handle.
type Handle struct {
	store *Memory
}

// NewHandle returns a distinct accessor, analogous to one tab.
func (m *Memory) NewHandle() *Handle {
	return &Handle{store: m}
}

func (m *Memory) Get(key string, v any) error { return m.get(key, v) }

func (m *Memory) Put(key string, v any) error { return m.put(key, v, nil) }

func (m *Memory) Delete(key string) error { return m.delete(key, nil) }

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sub := range m.subs {
		close(sub.ch)
		delete(m.subs, id)
	}
	return nil
}

// Subscribe registers a store-wide subscription not tied to any handle.
func (m *Memory) Subscribe() (<-chan string, func()) {
	return m.subscribe(nil)
}

func (h *Handle) Get(key string, v any) error { return h.store.get(key, v) }

func (h *Handle) Put(key string, v any) error { return h.store.put(key, v, h) }

func (h *Handle) Delete(key string) error { return h.store.delete(key, h) }

func (h *Handle) Keys() ([]string, error) { return h.store.Keys() }

func (h *Handle) Close() error { return nil }

// Subscribe registers a subscription that skips this handle's writes.
func (h *Handle) Subscribe() (<-chan string, func()) {
	return h.store.subscribe(h)
}

func (m *Memory) get(key string, v any) error {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("storage: failed to unmarshal value for key %q: %w", key, err)
	}
	return nil
}

func (m *Memory) put(key string, v any, writer *Handle) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: failed to marshal value for key %q: %w", key, err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.notifyLocked(key, writer)
	m.mu.Unlock()
	return nil
}

func (m *Memory) delete(key string, writer *Handle) error {
	m.mu.Lock()
	if _, ok := m.data[key]; ok {
		delete(m.data, key)
		m.notifyLocked(key, writer)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) subscribe(handle *Handle) (<-chan string, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	sub := &memorySub{ch: make(chan string, 16), handle: handle}
	m.subs[id] = sub

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if s, ok := m.subs[id]; ok {
			close(s.ch)
			delete(m.subs, id)
		}
	}
	return sub.ch, cancel
}

func (m *Memory) notifyLocked(key string, writer *Handle) {
	for _, sub := range m.subs {
		if writer != nil && sub.handle == writer {
			continue
		}
		select {
		case sub.ch <- key:
		default:
			// Subscriber is not keeping up; it will catch up on its
			// next marker poll.
		}
	}
}
