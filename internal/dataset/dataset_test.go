// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// CSV PARSING
// =============================================================================

func TestParseCSV(t *testing.T) {
	csvData := "text,intent,entity\n" +
		"book a flight,book_flight,city\n" +
		"cancel my flight,cancel_flight,\"city, date\"\n" +
		"book a hotel,book_hotel,city\n"

	ds, err := ParseFile("travel.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	s := ds.Summary
	if s.Rows != 3 {
		t.Errorf("Rows = %d, want 3", s.Rows)
	}
	wantCols := []string{"text", "intent", "entity"}
	if len(s.Columns) != len(wantCols) {
		t.Fatalf("Columns = %v, want %v", s.Columns, wantCols)
	}
	for i, col := range wantCols {
		if s.Columns[i] != col {
			t.Errorf("Columns[%d] = %q, want %q", i, s.Columns[i], col)
		}
	}
	if s.IntentColumn != "intent" {
		t.Errorf("IntentColumn = %q, want %q", s.IntentColumn, "intent")
	}
	if s.EntityColumn != "entity" {
		t.Errorf("EntityColumn = %q, want %q", s.EntityColumn, "entity")
	}
	if s.SentenceColumn != "text" {
		t.Errorf("SentenceColumn = %q, want %q", s.SentenceColumn, "text")
	}

	wantIntents := []string{"book_flight", "book_hotel", "cancel_flight"}
	if len(s.Intents) != len(wantIntents) {
		t.Fatalf("Intents = %v, want %v", s.Intents, wantIntents)
	}
	for i, intent := range wantIntents {
		if s.Intents[i] != intent {
			t.Errorf("Intents[%d] = %q, want %q", i, s.Intents[i], intent)
		}
	}

	wantEntities := []string{"city", "date"}
	if len(s.Entities) != len(wantEntities) {
		t.Fatalf("Entities = %v, want %v", s.Entities, wantEntities)
	}

	if s.IntentCounts["book_flight"] != 1 || s.IntentCounts["cancel_flight"] != 1 {
		t.Errorf("IntentCounts = %v", s.IntentCounts)
	}

	if len(ds.Sentences) != 3 || ds.Sentences[0] != "book a flight" {
		t.Errorf("Sentences = %v", ds.Sentences)
	}

	if len(s.Checksum) != 64 {
		t.Errorf("Checksum length = %d, want 64", len(s.Checksum))
	}
}

func TestParseCSVNoRecognizedColumns(t *testing.T) {
	csvData := "user_query,user_intent\nhello,greet\n"

	ds, err := ParseFile("data.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	// Exact column names only; "user_intent" does not count.
	if ds.Summary.IntentColumn != "" {
		t.Errorf("IntentColumn = %q, want empty", ds.Summary.IntentColumn)
	}
	if len(ds.Summary.Intents) != 0 {
		t.Errorf("Intents = %v, want none", ds.Summary.Intents)
	}
}

func TestParseCSVEmpty(t *testing.T) {
	if _, err := ParseFile("empty.csv", strings.NewReader("")); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}
	if _, err := ParseFile("headeronly.csv", strings.NewReader("text,intent\n")); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("header-only error = %v, want ErrEmptyDataset", err)
	}
}

// =============================================================================
// JSON PARSING
// =============================================================================

func TestParseJSONArray(t *testing.T) {
	jsonData := `[
		{"text": "turn on the lights", "intent": "lights_on", "entities": "room"},
		{"text": "turn off the lights", "intent": "lights_off", "entities": "room; device"}
	]`

	ds, err := ParseFile("smarthome.json", strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	s := ds.Summary
	if s.Rows != 2 {
		t.Errorf("Rows = %d, want 2", s.Rows)
	}
	if s.IntentColumn != "intent" || s.EntityColumn != "entities" {
		t.Errorf("columns = (%q, %q)", s.IntentColumn, s.EntityColumn)
	}
	wantEntities := []string{"device", "room"}
	if len(s.Entities) != 2 || s.Entities[0] != wantEntities[0] || s.Entities[1] != wantEntities[1] {
		t.Errorf("Entities = %v, want %v", s.Entities, wantEntities)
	}
}

func TestParseJSONDataWrapper(t *testing.T) {
	jsonData := `{"data": [{"sentence": "hi there", "label": "greet"}]}`

	ds, err := ParseFile("wrapped.json", strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if ds.Summary.Rows != 1 {
		t.Errorf("Rows = %d, want 1", ds.Summary.Rows)
	}
	if ds.Summary.IntentColumn != "label" {
		t.Errorf("IntentColumn = %q, want %q", ds.Summary.IntentColumn, "label")
	}
	if ds.Summary.SentenceColumn != "sentence" {
		t.Errorf("SentenceColumn = %q, want %q", ds.Summary.SentenceColumn, "sentence")
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseFile("bad.json", strings.NewReader(`{"not": "a dataset"}`)); err == nil {
		t.Error("expected error for non-array json")
	}
}

// =============================================================================
// FORMAT AND CHECKSUM
// =============================================================================

func TestParseUnsupportedFormat(t *testing.T) {
	if _, err := ParseFile("data.xlsx", strings.NewReader("junk")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestChecksumStable(t *testing.T) {
	data := "text,intent\nhello,greet\n"

	a, err := ParseFile("a.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	b, err := ParseFile("b.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if a.Summary.Checksum != b.Summary.Checksum {
		t.Errorf("checksums differ for identical content: %q vs %q", a.Summary.Checksum, b.Summary.Checksum)
	}

	c, err := ParseFile("c.csv", strings.NewReader(data+"bye,farewell\n"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if c.Summary.Checksum == a.Summary.Checksum {
		t.Error("checksum unchanged for different content")
	}
}

func TestAnalysisPayload(t *testing.T) {
	ds, err := ParseFile("p.csv", strings.NewReader("text,intent\nhello,greet\n"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	payload := ds.Summary.AnalysisPayload()
	if payload["rows"] != 1 {
		t.Errorf("payload rows = %v, want 1", payload["rows"])
	}
	cols, ok := payload["intent_columns"].([]string)
	if !ok || len(cols) != 1 || cols[0] != "intent" {
		t.Errorf("payload intent_columns = %v", payload["intent_columns"])
	}
	if payload["checksum"] != ds.Summary.Checksum {
		t.Errorf("payload checksum mismatch")
	}
}
