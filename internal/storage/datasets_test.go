// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/bottrainer-tui/internal/dataset"
)

func newTestStore(t *testing.T) *DatasetStore {
	t.Helper()
	store, err := NewDatasetStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDatasetStoreWithDir() error = %v", err)
	}
	return store
}

func testDataset(checksum string) *StoredDataset {
	return &StoredDataset{
		Checksum: checksum,
		Filename: checksum + ".csv",
		Summary: dataset.Summary{
			Checksum: checksum,
			Filename: checksum + ".csv",
			Rows:     2,
			Intents:  []string{"greet", "bye"},
		},
		Sentences: []string{"hello there", "goodbye"},
	}
}

// =============================================================================
// SAVE AND LOAD
// =============================================================================

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	checksum, err := store.Save(testDataset("abc123"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if checksum != "abc123" {
		t.Errorf("Save() checksum = %q, want %q", checksum, "abc123")
	}

	loaded, err := store.Load("abc123")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Filename != "abc123.csv" {
		t.Errorf("Filename = %q", loaded.Filename)
	}
	if len(loaded.Sentences) != 2 {
		t.Errorf("Sentences = %v", loaded.Sentences)
	}
	if loaded.UploadedAt.IsZero() {
		t.Error("UploadedAt not set on save")
	}
}

func TestSaveDerivesChecksumFromSummary(t *testing.T) {
	store := newTestStore(t)

	ds := testDataset("fromsummary")
	ds.Checksum = ""
	ds.Filename = ""

	checksum, err := store.Save(ds)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if checksum != "fromsummary" {
		t.Errorf("checksum = %q, want %q", checksum, "fromsummary")
	}
	if ds.Filename != "fromsummary.csv" {
		t.Errorf("Filename = %q", ds.Filename)
	}
}

func TestLoadNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Load("missing"); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Load() error = %v, want ErrDatasetNotFound", err)
	}
}

func TestLoadByIndex(t *testing.T) {
	store := newTestStore(t)

	first := testDataset("first")
	first.UpdatedAt = time.Now().Add(-time.Hour)
	if _, err := store.Save(first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Save(testDataset("second")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Save stamps UpdatedAt, so "second" is most recent.
	ds, err := store.LoadByIndex(0)
	if err != nil {
		t.Fatalf("LoadByIndex() error = %v", err)
	}
	if ds.Checksum == "" {
		t.Error("LoadByIndex returned empty dataset")
	}

	if _, err := store.LoadByIndex(5); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("LoadByIndex(5) error = %v, want ErrDatasetNotFound", err)
	}
}

// =============================================================================
// LIST AND SEARCH
// =============================================================================

func TestList(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.Save(testDataset(fmt.Sprintf("ds%d", i))); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(metas))
	}
	for _, m := range metas {
		if m.Rows != 2 || m.Intents != 2 {
			t.Errorf("meta = %+v", m)
		}
	}
}

func TestListSkipsSelectionMarker(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(testDataset("only")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Select("only"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(metas) != 1 {
		t.Errorf("List() returned %d entries, want 1", len(metas))
	}
}

func TestSearch(t *testing.T) {
	store := newTestStore(t)

	travel := testDataset("t1")
	travel.Filename = "travel_bookings.csv"
	if _, err := store.Save(travel); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	weather := testDataset("w1")
	weather.Filename = "other.csv"
	weather.Summary.Intents = []string{"get_weather"}
	if _, err := store.Save(weather); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	byName, err := store.Search("travel")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(byName) != 1 || byName[0].Checksum != "t1" {
		t.Errorf("Search(travel) = %v", byName)
	}

	byIntent, err := store.Search("weather")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(byIntent) != 1 || byIntent[0].Checksum != "w1" {
		t.Errorf("Search(weather) = %v", byIntent)
	}
}

// =============================================================================
// SELECTION
// =============================================================================

func TestSelect(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(testDataset("pick")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Select("pick"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	selected, err := store.Selected()
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if selected != "pick" {
		t.Errorf("Selected() = %q, want %q", selected, "pick")
	}
}

func TestSelectMissingDataset(t *testing.T) {
	store := newTestStore(t)

	if err := store.Select("nope"); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Select() error = %v, want ErrDatasetNotFound", err)
	}
}

func TestSelectedClearedWhenEntryDeleted(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(testDataset("gone")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Select("gone"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	selected, err := store.Selected()
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if selected != "" {
		t.Errorf("Selected() = %q, want empty after delete", selected)
	}
}

// =============================================================================
// LIMIT ENFORCEMENT
// =============================================================================

func TestEnforceLimit(t *testing.T) {
	store := newTestStore(t)
	store.MaxDatasets = 2

	for i := 0; i < 4; i++ {
		ds := testDataset(fmt.Sprintf("lim%d", i))
		if _, err := store.Save(ds); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		// Distinct UpdatedAt stamps so eviction order is stable.
		time.Sleep(5 * time.Millisecond)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(metas))
	}

	// Oldest entries evicted.
	if _, err := store.Load("lim0"); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("lim0 should be evicted, got %v", err)
	}
	if _, err := store.Load("lim3"); err != nil {
		t.Errorf("lim3 should survive, got %v", err)
	}
}

func TestEnforceLimitKeepsSelected(t *testing.T) {
	store := newTestStore(t)
	store.MaxDatasets = 2

	if _, err := store.Save(testDataset("keeper")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Select("keeper"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if _, err := store.Save(testDataset(fmt.Sprintf("new%d", i))); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Oldest entry, still present because it is selected.
	if _, err := store.Load("keeper"); err != nil {
		t.Errorf("selected dataset evicted: %v", err)
	}
}

// =============================================================================
// DELETE AND CLEAR
// =============================================================================

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(testDataset("del")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete("del"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete("del"); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("second Delete() error = %v, want ErrDatasetNotFound", err)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.Save(testDataset(fmt.Sprintf("c%d", i))); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("List() after Clear() = %d entries", len(metas))
	}
}

// =============================================================================
// FORMATTING AND EXPORT
// =============================================================================

func TestFormatDatasetList(t *testing.T) {
	if got := FormatDatasetList(nil, ""); got != "No cached datasets." {
		t.Errorf("empty list = %q", got)
	}

	metas := []DatasetMeta{
		{Checksum: "abcdef0123456789", Filename: "travel.csv", Rows: 10, Intents: 3, UploadedAt: time.Now()},
	}
	out := FormatDatasetList(metas, "abcdef0123456789")
	if !strings.Contains(out, "*abcdef012345") {
		t.Errorf("selected marker missing:\n%s", out)
	}
	if !strings.Contains(out, "travel.csv") {
		t.Errorf("filename missing:\n%s", out)
	}
}

func TestExportJSON(t *testing.T) {
	ds := testDataset("exp")
	data, err := ds.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if !strings.Contains(string(data), "\"checksum\": \"exp\"") {
		t.Errorf("export missing checksum:\n%s", data)
	}
}

func TestPreview(t *testing.T) {
	ds := testDataset("prev")
	if got := ds.Preview(); got != "hello there" {
		t.Errorf("Preview() = %q", got)
	}
	empty := &StoredDataset{}
	if got := empty.Preview(); got != "" {
		t.Errorf("empty Preview() = %q", got)
	}
}
