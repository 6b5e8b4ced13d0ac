package audio

import (
	"errors"
	"math"
	"strconv"
	"sync"
)

// ErrNotFound is returned by a Store for a missing key.
var ErrNotFound = errors.New("audio: key not found")

// Store is durable key/value storage for user preferences. The browser
// backend wraps localStorage; the native one writes a file.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStore is a Store that lives for the process only.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// LoadVolume reads the persisted volume. Missing, unreadable or unparseable
// values yield def.
func LoadVolume(s Store, def float64) float64 {
	if s == nil {
		return def
	}
	raw, err := s.Get(VolumeKey)
	if err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return def
	}
	return clamp01(v)
}

// SaveVolume persists v as a decimal string.
func SaveVolume(s Store, v float64) error {
	if s == nil {
		return nil
	}
	return s.Set(VolumeKey, strconv.FormatFloat(clamp01(v), 'f', -1, 64))
}
