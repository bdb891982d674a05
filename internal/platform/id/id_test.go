package id_test

import (
	"testing"

	"github.com/google/uuid"

	"studyplanner/internal/platform/id"
)

func TestUUIDGeneratesDistinctVersion4IDs(t *testing.T) {
	t.Parallel()
	gen := id.UUID{}
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		value := gen.New()
		parsed, err := uuid.Parse(value)
		if err != nil {
			t.Fatalf("parse generated id %q: %v", value, err)
		}
		if parsed.Version() != 4 {
			t.Fatalf("expected version 4, got %d", parsed.Version())
		}
		if seen[value] {
			t.Fatalf("duplicate id %s", value)
		}
		seen[value] = true
	}
}
