package idgen

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGeneratorProducesSortableIDs(t *testing.T) {
	g := NewULIDGenerator()

	prev := g.Generate()
	for i := 0; i < 100; i++ {
		next := g.Generate()
		if _, err := ulid.ParseStrict(next); err != nil {
			t.Fatalf("invalid ulid %q: %v", next, err)
		}
		if next <= prev {
			t.Fatalf("expected increasing ids, got %q after %q", next, prev)
		}
		prev = next
	}
}
