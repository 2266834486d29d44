// Package memory provides an in-memory trigger store for hosts that do not
// need triggers to survive a restart, and for tests.
package memory

import (
	"context"
	"sync"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// Store implements ports.TriggerStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.PendingTrigger
	mu   sync.RWMutex
}

// NewStore creates a new in-memory trigger store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.PendingTrigger),
	}
}

// Save stores the trigger, replacing any previous one under the key.
func (s *Store) Save(ctx context.Context, key string, trigger domain.PendingTrigger) error {
	// Copy the payload so the caller can't mutate stored bytes afterwards.
	if trigger.Payload != nil {
		trigger.Payload = append([]byte(nil), trigger.Payload...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = trigger
	return nil
}

// Load retrieves the trigger for the key.
func (s *Store) Load(ctx context.Context, key string) (domain.PendingTrigger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trigger, ok := s.data[key]
	if !ok {
		return domain.PendingTrigger{}, domain.ErrTriggerNotFound
	}

	if trigger.Payload != nil {
		trigger.Payload = append([]byte(nil), trigger.Payload...)
	}
	return trigger, nil
}

// Delete removes the trigger for the key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
