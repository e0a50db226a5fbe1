// Package catalog provides read-only, fixture-backed record stores.
// A store is loaded once at process start and never mutated afterwards.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrNotFound is returned when a key is absent from a store.
var ErrNotFound = errors.New("record not found")

// Store is an immutable key-addressable collection of records.
type Store[T any] struct {
	records map[string]T
	keys    []string
}

// Load reads a JSON fixture containing a map of key to record and
// returns a Store over it. The file is read exactly once.
func Load[T any](path string) (*Store[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var records map[string]T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Store[T]{records: records, keys: keys}, nil
}

// Get returns the record stored under key, or ErrNotFound.
func (s *Store[T]) Get(key string) (T, error) {
	record, ok := s.records[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return record, nil
}

// Has reports whether key exists in the store.
func (s *Store[T]) Has(key string) bool {
	_, ok := s.records[key]
	return ok
}

// All returns a copy of every record keyed by its key.
// Callers may modify the returned map freely.
func (s *Store[T]) All() map[string]T {
	out := make(map[string]T, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out
}

// Keys returns all keys in sorted order.
func (s *Store[T]) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of records in the store.
func (s *Store[T]) Len() int {
	return len(s.records)
}
