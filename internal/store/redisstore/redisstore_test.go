package redisstore

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/v-s-abhishek/PickList/internal/store"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, DefaultPrefix), mr
}

func TestSaveUsesPrefixAndNoTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	if err := s.Save(ctx, store.KeyUser, []byte(`{"id":"user-1"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := mr.Get("picklist:user")
	if err != nil {
		t.Fatalf("miniredis get: %v", err)
	}
	if raw != `{"id":"user-1"}` {
		t.Fatalf("unexpected raw value %q", raw)
	}
	if ttl := mr.TTL("picklist:user"); ttl != 0 {
		t.Fatalf("expected no TTL, got %v", ttl)
	}

	got, ok, err := s.Load(ctx, store.KeyUser)
	if err != nil || !ok || string(got) != raw {
		t.Fatalf("load = %q, %v, %v", got, ok, err)
	}
}

func TestLoadMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	if _, ok, err := s.Load(ctx, store.KeyChecklist); ok || err != nil {
		t.Fatalf("missing: ok=%v err=%v", ok, err)
	}
	mr.Set("picklist:packingChecklist", "[]")
	if err := s.Delete(ctx, store.KeyChecklist); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("picklist:packingChecklist") {
		t.Fatal("key still exists")
	}
	if err := s.Delete(ctx, store.KeyChecklist); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestLoadReportsServerErrors(t *testing.T) {
	s, mr := newTestStore(t)
	mr.SetError("boom")
	if _, _, err := s.Load(context.Background(), store.KeyUser); err == nil {
		t.Fatal("expected error from failing server")
	}
}

func TestDial(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	s, err := Dial(context.Background(), "redis://"+mr.Addr()+"/0", "x:")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer s.Close()
	if err := s.Save(context.Background(), store.KeyTheme, []byte(`"mono"`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("x:theme") {
		t.Fatal("prefix not applied")
	}
}
