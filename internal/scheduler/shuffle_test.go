package scheduler

import (
	"testing"

	"github.com/google/uuid"
)

func TestShufflePreservesElements(t *testing.T) {
	t.Parallel()

	ids := make([]uuid.UUID, 20)
	for i := range ids {
		ids[i] = uuid.New()
	}

	shuffled := Shuffle(ids)

	if len(shuffled) != len(ids) {
		t.Fatalf("shuffled length = %d, want %d", len(shuffled), len(ids))
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range shuffled {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Errorf("card %s lost in shuffle", id)
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	ids := make([]uuid.UUID, 10)
	for i := range ids {
		ids[i] = uuid.New()
	}
	original := make([]uuid.UUID, len(ids))
	copy(original, ids)

	_ = Shuffle(ids)

	for i := range ids {
		if ids[i] != original[i] {
			t.Fatalf("input mutated at index %d", i)
		}
	}
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	t.Parallel()

	if got := Shuffle(nil); len(got) != 0 {
		t.Errorf("Shuffle(nil) = %v, want empty", got)
	}

	id := uuid.New()
	got := Shuffle([]uuid.UUID{id})
	if len(got) != 1 || got[0] != id {
		t.Errorf("Shuffle(single) = %v, want [%s]", got, id)
	}
}
