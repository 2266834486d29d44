package ports

import (
	"context"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// TriggerStore persists a continuation trigger between delivery and resume,
// typically across an app restart after a push notification arrives.
type TriggerStore interface {
	// Save stores the trigger under the given key, replacing any previous one.
	Save(ctx context.Context, key string, trigger domain.PendingTrigger) error

	// Load retrieves the trigger for the given key.
	// Returns domain.ErrTriggerNotFound when nothing is stored.
	Load(ctx context.Context, key string) (domain.PendingTrigger, error)

	// Delete removes the trigger for the given key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
