package session

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "tok", []byte("profile")); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, ok, err := store.Load(ctx, "tok")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(data) != "profile" {
		t.Errorf("loaded %q", data)
	}

	// Mutating the returned slice must not affect the stored copy.
	data[0] = 'X'
	again, _, _ := store.Load(ctx, "tok")
	if string(again) != "profile" {
		t.Errorf("stored copy mutated: %q", again)
	}

	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Load(ctx, "tok"); ok {
		t.Fatalf("expected absent session after delete")
	}
}
