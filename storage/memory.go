package storage

import (
	"fmt"
	"sync"
)

var _ Area = (*MemoryArea)(nil)

// MemoryArea is an in-memory implementation of Area
type MemoryArea struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryArea creates an empty in-memory storage area
func NewMemoryArea() *MemoryArea {
	return &MemoryArea{
		values: make(map[string]string),
	}
}

func (m *MemoryArea) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryArea) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryArea) Remove(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key) // Already gone is fine
	return nil
}

// Len returns the number of stored keys
func (m *MemoryArea) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
