package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/effective-digital/flowkit/pkg/adapters/memory"
	"github.com/effective-digital/flowkit/pkg/domain"
	"github.com/effective-digital/flowkit/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunTriggerStoreContract(t, memory.NewStore())
}

func TestMemoryStore_PayloadIsolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	payload := []byte("original")
	trigger := domain.PendingTrigger{
		TransitionID: "t-1",
		ProcessID:    "p-1",
		Payload:      payload,
		StoredAt:     time.Now(),
	}
	if err := store.Save(ctx, "k", trigger); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Mutating the caller's slice must not reach the stored copy.
	payload[0] = 'X'

	got, err := store.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got.Payload) != "original" {
		t.Errorf("stored payload was mutated through the caller's slice: %q", got.Payload)
	}

	// Same for the loaded copy.
	got.Payload[0] = 'Y'
	again, _ := store.Load(ctx, "k")
	if string(again.Payload) != "original" {
		t.Errorf("stored payload was mutated through a loaded copy: %q", again.Payload)
	}
}
