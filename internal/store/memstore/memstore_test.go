package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/v-s-abhishek/PickList/internal/store"
)

func TestRoundTripCopiesBytes(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, ok, err := s.Load(ctx, "k"); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	in := []byte(`"neon"`)
	if err := s.Save(ctx, "k", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[1] = 'X'

	got, ok, err := s.Load(ctx, "k")
	if err != nil || !ok || string(got) != `"neon"` {
		t.Fatalf("load = %q, %v, %v", got, ok, err)
	}
	got[1] = 'Y'
	again, _, _ := s.Load(ctx, "k")
	if string(again) != `"neon"` {
		t.Fatalf("store aliased caller slice: %q", again)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestInvalidKeyRejected(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, key := range []string{"", "../user", "a/b", ".hidden"} {
		if err := s.Save(ctx, key, []byte(`1`)); !errors.Is(err, store.ErrInvalidKey) {
			t.Errorf("Save(%q) = %v", key, err)
		}
		if _, _, err := s.Load(ctx, key); !errors.Is(err, store.ErrInvalidKey) {
			t.Errorf("Load(%q) = %v", key, err)
		}
		if err := s.Delete(ctx, key); !errors.Is(err, store.ErrInvalidKey) {
			t.Errorf("Delete(%q) = %v", key, err)
		}
	}
}
