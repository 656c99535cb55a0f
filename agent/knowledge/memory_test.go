package knowledge

import (
	"context"
	"testing"
)

func TestMemoryStoreSeedAndSearchRanking(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SeedDefaults()

	notes, err := store.Search(context.Background(), "suspected account breach on our side", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(notes) == 0 {
		t.Fatal("Search() returned no notes for seeded corpus")
	}
	if notes[0].Source != "security-runbook" {
		t.Fatalf("top note source = %q, want security-runbook", notes[0].Source)
	}
}

func TestMemoryStoreSearchLimit(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SeedDefaults()

	notes, err := store.Search(context.Background(), "support tickets billing invoice critical", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(notes) > 2 {
		t.Fatalf("Search() returned %d notes, want at most 2", len(notes))
	}
}

func TestMemoryStoreSearchNoTokens(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SeedDefaults()

	notes, err := store.Search(context.Background(), "a b -- !!", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("Search() = %v, want empty for tokenless query", notes)
	}
}

func TestMemoryStoreAddUpserts(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Add(ctx, "doc-1", "VPN connection drops during peak hours.", "network-runbook"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Add(ctx, "doc-1", "VPN connection drops are fixed by rotating the relay.", "network-runbook"); err != nil {
		t.Fatalf("Add() upsert error = %v", err)
	}

	notes, err := store.Search(ctx, "vpn connection drops", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("Search() returned %d notes, want 1 after upsert", len(notes))
	}
	if notes[0].Content != "VPN connection drops are fixed by rotating the relay." {
		t.Fatalf("note content = %q, want updated content", notes[0].Content)
	}
}

func TestMemoryStoreAddRejectsEmptyID(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Add(context.Background(), "  ", "content", "src"); err == nil {
		t.Fatal("Add() with empty id must fail")
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Add(context.Background(), "custom", "Custom escalation doc for breach handling.", "custom"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	store.SeedDefaults()

	notes, err := store.Search(context.Background(), "breach escalation", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, n := range notes {
		if n.Source == "security-runbook" {
			t.Fatal("SeedDefaults() must not seed a non-empty store")
		}
	}
}
