package multicas

import (
	"sync"
)

type MultiCAS interface {
	// Set will guarantee there is only one of concurrent goroutines can set successfully.
	Set(key string) bool
	Unset(key string)
	// Wait returns a channel closed once key is unset. It is already closed if
	// key is not set.
	Wait(key string) <-chan struct{}
}

func NewMultiCAS() MultiCAS {
	return &multicas{
		table: make(map[string]chan struct{}),
	}
}

var closed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

type multicas struct {
	mu    sync.RWMutex
	table map[string]chan struct{}
}

func (m *multicas) Set(key string) (ok bool) {
	m.mu.RLock()
	_, isSet := m.table[key]
	m.mu.RUnlock()
	if isSet {
		return false
	}

	m.mu.Lock()
	if _, isSet := m.table[key]; !isSet {
		m.table[key] = make(chan struct{})
		ok = true
	}
	m.mu.Unlock()
	return ok
}

func (m *multicas) Unset(key string) {
	m.mu.Lock()
	if done, isSet := m.table[key]; isSet {
		close(done)
		delete(m.table, key)
	}
	m.mu.Unlock()
}

func (m *multicas) Wait(key string) <-chan struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if done, isSet := m.table[key]; isSet {
		return done
	}
	return closed
}
