package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local runs without
// a database. Records are round-tripped through JSON on the way in and
// out so callers observe the same value types (float64 numbers, plain
// maps) a real store would echo back.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[memoryKey]Record
}

type memoryKey struct {
	id           string
	partitionKey string
}

func NewMemoryStore() *MemoryStore {
	collections := make(map[string]map[memoryKey]Record)
	for _, name := range Collections() {
		collections[name] = make(map[memoryKey]Record)
	}
	return &MemoryStore{collections: collections}
}

func (s *MemoryStore) Create(ctx context.Context, collection string, partitionKey string, rec Record) (Record, error) {
	stored, err := copyRecord(rec)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection: %s", collection)
	}

	key := memoryKey{id: stringField(stored, "id"), partitionKey: partitionKey}
	if _, exists := docs[key]; exists {
		return nil, ErrConflict
	}
	docs[key] = stored

	return copyRecord(stored)
}

func (s *MemoryStore) Read(ctx context.Context, collection string, id string, partitionKey string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection][memoryKey{id: id, partitionKey: partitionKey}]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecord(rec)
}

func (s *MemoryStore) Replace(ctx context.Context, collection string, id string, partitionKey string, rec Record) (Record, error) {
	stored, err := copyRecord(rec)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{id: id, partitionKey: partitionKey}
	docs := s.collections[collection]
	if _, ok := docs[key]; !ok {
		return nil, ErrNotFound
	}
	docs[key] = stored

	return copyRecord(stored)
}

func (s *MemoryStore) Delete(ctx context.Context, collection string, id string, partitionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{id: id, partitionKey: partitionKey}
	docs := s.collections[collection]
	if _, ok := docs[key]; !ok {
		return ErrNotFound
	}
	delete(docs, key)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, q Query) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Record
	for key, rec := range s.collections[collection] {
		if q.PartitionKey != "" && key.partitionKey != q.PartitionKey {
			continue
		}
		if !matchesFilters(rec, q.Filters) {
			continue
		}
		clone, err := copyRecord(rec)
		if err != nil {
			return nil, err
		}
		matches = append(matches, clone)
	}

	if q.OrderByDesc != "" {
		field := q.OrderByDesc
		sort.Slice(matches, func(i, j int) bool {
			return stringField(matches[i], field) > stringField(matches[j], field)
		})
	}
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, nil
}

func matchesFilters(rec Record, filters map[string]any) bool {
	for field, want := range filters {
		got, ok := rec[field]
		if !ok {
			return false
		}
		if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}

func copyRecord(rec Record) (Record, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to copy record: %w", err)
	}
	var clone Record
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("failed to copy record: %w", err)
	}
	return clone, nil
}
