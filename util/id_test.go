package util

import (
	"regexp"
	"testing"
)

var v4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewProductID_Format(t *testing.T) {
	id := NewProductID()
	if !v4.MatchString(id) {
		t.Fatalf("id %s does not match v4 format", id)
	}
	if other := NewProductID(); other == id {
		t.Fatalf("expected distinct ids, got %s twice", id)
	}
}

func TestUniqueProductID_SkipsTaken(t *testing.T) {
	calls := 0
	id := UniqueProductID(func(string) bool {
		calls++
		return calls < 3
	})
	if calls != 3 {
		t.Fatalf("expected 3 draws, got %d", calls)
	}
	if !v4.MatchString(id) {
		t.Fatalf("id %s does not match v4 format", id)
	}

	if id := UniqueProductID(nil); id == "" {
		t.Fatal("expected non-empty id with nil predicate")
	}
}
