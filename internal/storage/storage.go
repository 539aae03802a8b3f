// Package storage persists the task list blob under a fixed key, with an
// in-memory slot used when the primary backend fails.
package storage

import (
	"errors"
	"sync"
)

var (
	ErrEmptyPath = errors.New("db path is empty")
	ErrClosed    = errors.New("store is closed")
)

// Backend is a string key-value store.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Memory is a Backend held in process memory. It never fails.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}
