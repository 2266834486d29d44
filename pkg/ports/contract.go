package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// RunTriggerStoreContract verifies that a TriggerStore implementation honors
// the port semantics. Adapter test suites call it with a fresh store.
func RunTriggerStoreContract(t *testing.T, store TriggerStore) {
	t.Helper()
	ctx := context.Background()

	trigger := domain.PendingTrigger{
		TransitionID: "t-1",
		ProcessID:    "p-1",
		Payload:      []byte("eyJzdGVwTmFtZSI6IldFQl9WSUVXIn0="),
		Token:        "tok",
		StoredAt:     time.Now().UTC().Truncate(time.Second),
	}

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		if !errors.Is(err, domain.ErrTriggerNotFound) {
			t.Fatalf("expected ErrTriggerNotFound, got %v", err)
		}
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		if err := store.Save(ctx, "k1", trigger); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got, err := store.Load(ctx, "k1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.TransitionID != trigger.TransitionID || got.ProcessID != trigger.ProcessID {
			t.Errorf("identifier mismatch: got %+v", got)
		}
		if string(got.Payload) != string(trigger.Payload) {
			t.Errorf("payload mismatch: got %q", got.Payload)
		}
		if got.Token != trigger.Token {
			t.Errorf("token mismatch: got %q", got.Token)
		}
	})

	t.Run("Save_Replaces", func(t *testing.T) {
		second := trigger
		second.TransitionID = "t-2"
		if err := store.Save(ctx, "k1", second); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got, err := store.Load(ctx, "k1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.TransitionID != "t-2" {
			t.Errorf("expected replacement, got %q", got.TransitionID)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "k1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "k1"); !errors.Is(err, domain.ErrTriggerNotFound) {
			t.Fatalf("expected ErrTriggerNotFound after delete, got %v", err)
		}
	})

	t.Run("Delete_Absent", func(t *testing.T) {
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Fatalf("deleting an absent key should not error, got %v", err)
		}
	})
}
