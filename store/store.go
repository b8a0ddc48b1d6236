// Package store persists small preferences and records as string key/value
// pairs. The engine only talks to Safe, which turns every storage failure
// into a logged no-op.
package store

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("store: key not found")
	ErrCorrupt  = errors.New("store: corrupt data")
)

// Keys used by the engine and front-end.
const (
	KeyHighScore      = "tetris-high-score"
	KeyTimeAttackBest = "tetris_sprint_best"
	KeyEnduranceBest  = "tetris_marathon_level"
	KeyStartingLevel  = "tetris_starting_level"
	KeyMuted          = "tetris-muted"
	KeyVolume         = "tetris-volume"
)

// KV is the persistence port. Implementations report missing keys with
// ErrNotFound.
type KV interface {
	GetString(key string) (string, error)
	SetString(key, value string) error
	Delete(key string) error
}

// Memory is an in-process KV. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) GetString(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) SetString(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
