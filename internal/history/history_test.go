// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		err := store.Record(ctx, Entry{
			Text:       fmt.Sprintf("utterance %d", i),
			Intent:     "greet",
			Confidence: 0.9,
			ModelID:    "spacy",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(entries))
	}
	if entries[0].Text != "utterance 2" {
		t.Errorf("most recent = %q, want %q", entries[0].Text, "utterance 2")
	}
	if entries[0].Confidence != 0.9 || entries[0].ModelID != "spacy" {
		t.Errorf("entry fields = %+v", entries[0])
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Entry{Text: "t", Intent: "a", Confidence: 1}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(entries))
	}
}

func TestByIntent(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	for _, intent := range []string{"greet", "bye", "greet"} {
		if err := store.Record(ctx, Entry{Text: "x", Intent: intent, Confidence: 0.5}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := store.ByIntent(ctx, "greet", 10)
	if err != nil {
		t.Fatalf("ByIntent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ByIntent(greet) returned %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Intent != "greet" {
			t.Errorf("entry intent = %q", e.Intent)
		}
	}
}

func TestMaxEntriesPruning(t *testing.T) {
	store := openTestStore(t, 2)
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 4; i++ {
		err := store.Record(ctx, Entry{
			Text:      fmt.Sprintf("p%d", i),
			Intent:    "a",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("Count() = %d, want 2", count)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if entries[0].Text != "p3" || entries[1].Text != "p2" {
		t.Errorf("survivors = %q, %q; want p3, p2", entries[0].Text, entries[1].Text)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	if err := store.Record(ctx, Entry{Text: "x", Intent: "a"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() after Clear() = %d", count)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("", 0); err == nil {
		t.Error("expected error for empty path")
	}
}
