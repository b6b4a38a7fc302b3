package model

import (
	"strings"
	"testing"
)

func TestNewIDPrefixAndUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID("item")
		if !strings.HasPrefix(id, "item-") {
			t.Fatalf("missing prefix: %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d ids", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestCategoryCounts(t *testing.T) {
	c := Category{Items: []Item{{Packed: true}, {}, {Packed: true}}}
	packed, total := c.Counts()
	if packed != 2 || total != 3 {
		t.Fatalf("got %d/%d, want 2/3", packed, total)
	}
	if p, n := (Category{}).Counts(); p != 0 || n != 0 {
		t.Fatalf("empty category: got %d/%d", p, n)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := Checklist{{ID: "c1", Items: []Item{{ID: "i1"}}}}
	cp := orig.Clone()
	cp[0].Items[0].Packed = true
	cp[0].Name = "changed"
	if orig[0].Items[0].Packed || orig[0].Name != "" {
		t.Fatalf("clone aliases original: %#v", orig)
	}
	if Checklist(nil).Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}
}
