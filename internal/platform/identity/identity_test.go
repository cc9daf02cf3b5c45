package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestGenerator_NewID verifies generated ids are valid, unique UUIDs.
func TestGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := Generator{}

	first := gen.NewID()
	second := gen.NewID()

	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("expected a valid UUID, got %q: %v", first, err)
	}
	if first == second {
		t.Error("consecutive ids must differ")
	}
}

// TestRealClock_Now verifies the clock renders the storage layout.
func TestRealClock_Now(t *testing.T) {
	t.Parallel()

	now := RealClock{}.Now()

	parsed, err := time.Parse(TimestampLayout, now)
	if err != nil {
		t.Fatalf("expected layout %q, got %q: %v", TimestampLayout, now, err)
	}
	if time.Since(parsed) > time.Minute {
		t.Errorf("clock is not current: %q", now)
	}
}
