package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func snap(fp string) *Snapshot {
	return &Snapshot{Fingerprint: fp}
}

func TestMemoryStore_GetPut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if n := store.Len(ctx); n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	want := snap("a")
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Error("expected the stored snapshot back")
	}
}

func TestMemoryStore_RejectsEmptySnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, nil); !errors.Is(err, ErrEmptySnapshot) {
		t.Errorf("expected ErrEmptySnapshot for nil, got %v", err)
	}
	if err := store.Put(ctx, &Snapshot{}); !errors.Is(err, ErrEmptySnapshot) {
		t.Errorf("expected ErrEmptySnapshot for blank fingerprint, got %v", err)
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(2))

	for _, fp := range []string{"a", "b", "c"} {
		if err := store.Put(ctx, snap(fp)); err != nil {
			t.Fatalf("put %s: %v", fp, err)
		}
	}

	if n := store.Len(ctx); n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Error("expected oldest entry to be evicted")
	}
	for _, fp := range []string{"b", "c"} {
		if _, err := store.Get(ctx, fp); err != nil {
			t.Errorf("expected %s to be cached: %v", fp, err)
		}
	}
}

func TestMemoryStore_ReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(2))

	_ = store.Put(ctx, snap("a"))
	_ = store.Put(ctx, snap("b"))
	replacement := &Snapshot{Fingerprint: "a", Rejected: 3}
	_ = store.Put(ctx, replacement)

	if n := store.Len(ctx); n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}
	got, _ := store.Get(ctx, "a")
	if got != replacement {
		t.Error("expected replacement snapshot")
	}

	// "a" is still the oldest and goes first.
	_ = store.Put(ctx, snap("c"))
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Error("expected a to be evicted")
	}
}

func TestMemoryStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Put(ctx, snap("a"))
	_ = store.Put(ctx, snap("b"))

	store.Invalidate(ctx)

	if n := store.Len(ctx); n != 0 {
		t.Errorf("expected empty store after invalidate, got %d", n)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Error("expected miss after invalidate")
	}
}

func TestMemoryStore_Options(t *testing.T) {
	if c := NewMemoryStore(WithCapacity(0)).Capacity(); c != defaultCapacity {
		t.Errorf("expected default capacity %d, got %d", defaultCapacity, c)
	}
	if c := NewMemoryStore(WithCapacity(7)).Capacity(); c != 7 {
		t.Errorf("expected capacity 7, got %d", c)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(8))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fp := fmt.Sprintf("fp-%d", i%4)
			_ = store.Put(ctx, snap(fp))
			_, _ = store.Get(ctx, fp)
		}(i)
	}
	wg.Wait()

	if n := store.Len(ctx); n != 4 {
		t.Errorf("expected 4 distinct entries, got %d", n)
	}
}
