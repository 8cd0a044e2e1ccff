// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dataset parses uploaded training data files and produces
// the summaries the backend stores.
package dataset

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// maxFileSize caps uploads at 20 MB.
const maxFileSize = 20 * 1024 * 1024

var (
	// ErrUnsupportedFormat is returned for file types other than CSV
	// and JSON.
	ErrUnsupportedFormat = errors.New("dataset: unsupported file format")

	// ErrEmptyDataset is returned when a file parses but holds no rows.
	ErrEmptyDataset = errors.New("dataset: no rows found")
)

// Column names are matched by exact lowercase name only. A column
// called "user_intent" is not treated as an intent column; renaming
// the column is the supported path.
var (
	intentColumns   = map[string]bool{"intent": true, "label": true, "category": true}
	entityColumns   = map[string]bool{"entity": true, "entities": true, "tags": true}
	sentenceColumns = map[string]bool{"text": true, "sentence": true, "utterance": true, "query": true}
)

// =============================================================================
// TYPES
// =============================================================================

// Summary is the analysis of one parsed dataset.
type Summary struct {
	Filename string `json:"filename"`
	Checksum string `json:"checksum"`

	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`

	IntentColumn   string `json:"intent_column,omitempty"`
	EntityColumn   string `json:"entity_column,omitempty"`
	SentenceColumn string `json:"sentence_column,omitempty"`

	Intents  []string `json:"intents"`
	Entities []string `json:"entities"`

	// IntentCounts is the class distribution over the intent column.
	IntentCounts map[string]int `json:"intent_counts,omitempty"`
}

// Dataset is a fully parsed upload: the summary plus the sentences
// used by the annotation flow.
type Dataset struct {
	Summary   Summary
	Sentences []string
}

// AnalysisPayload converts the summary to the generic map the backend
// stores under a dataset entry.
func (s Summary) AnalysisPayload() map[string]any {
	payload := map[string]any{
		"rows":     s.Rows,
		"columns":  s.Columns,
		"intents":  s.Intents,
		"entities": s.Entities,
		"checksum": s.Checksum,
	}
	if s.IntentColumn != "" {
		payload["intent_columns"] = []string{s.IntentColumn}
	}
	if s.EntityColumn != "" {
		payload["entity_columns"] = []string{s.EntityColumn}
	}
	if len(s.IntentCounts) > 0 {
		payload["intent_distribution"] = s.IntentCounts
	}
	return payload
}

// =============================================================================
// PARSING
// =============================================================================

// ParseFile parses an uploaded dataset. The format is decided by the
// filename extension; .csv and .json are supported.
func ParseFile(filename string, r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("dataset: file exceeds %d MB limit", maxFileSize/(1024*1024))
	}

	var (
		rows    []map[string]string
		columns []string
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, columns, err = parseCSV(data)
	case ".json":
		rows, columns, err = parseJSON(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	return analyze(filename, data, rows, columns), nil
}

// parseCSV reads a header row plus records into generic rows.
func parseCSV(data []byte) ([]map[string]string, []string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrEmptyDataset
		}
		return nil, nil, fmt.Errorf("parse csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse csv row %d: %w", len(rows)+2, err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// parseJSON accepts either a bare array of objects or an object with
// a "data" array. Object keys carry no order, so columns come back
// sorted.
func parseJSON(data []byte) ([]map[string]string, []string, error) {
	var raw []map[string]any

	if err := json.Unmarshal(data, &raw); err != nil {
		var wrapper struct {
			Data []map[string]any `json:"data"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil || wrapper.Data == nil {
			return nil, nil, fmt.Errorf("parse json: expected an array of objects or {\"data\": [...]}")
		}
		raw = wrapper.Data
	}

	seen := map[string]bool{}
	rows := make([]map[string]string, 0, len(raw))
	for _, obj := range raw {
		row := make(map[string]string, len(obj))
		for k, v := range obj {
			key := strings.TrimSpace(k)
			row[key] = stringify(v)
			seen[key] = true
		}
		rows = append(rows, row)
	}
	return rows, sortedKeys(seen), nil
}

// stringify flattens a JSON value to the string form used for
// analysis.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(raw)
	}
}

// =============================================================================
// ANALYSIS
// =============================================================================

// analyze builds the summary: column roles, distinct intents and
// entities, class distribution, and a content checksum.
func analyze(filename string, raw []byte, rows []map[string]string, columns []string) *Dataset {
	var intentCol, entityCol, sentenceCol string
	for _, col := range columns {
		low := strings.ToLower(col)
		switch {
		case intentCol == "" && intentColumns[low]:
			intentCol = col
		case entityCol == "" && entityColumns[low]:
			entityCol = col
		case sentenceCol == "" && sentenceColumns[low]:
			sentenceCol = col
		}
	}

	intents := map[string]bool{}
	counts := map[string]int{}
	entities := map[string]bool{}
	var sentences []string

	for _, row := range rows {
		if intentCol != "" {
			if v := strings.ToLower(strings.TrimSpace(row[intentCol])); v != "" {
				intents[v] = true
				counts[v]++
			}
		}
		if entityCol != "" {
			for _, token := range splitTokens(row[entityCol]) {
				entities[strings.ToLower(token)] = true
			}
		}
		if sentenceCol != "" {
			if v := strings.TrimSpace(row[sentenceCol]); v != "" {
				sentences = append(sentences, v)
			}
		}
	}

	sum := sha256.Sum256(raw)

	summary := Summary{
		Filename:       filepath.Base(filename),
		Checksum:       hex.EncodeToString(sum[:]),
		Rows:           len(rows),
		Columns:        columns,
		IntentColumn:   intentCol,
		EntityColumn:   entityCol,
		SentenceColumn: sentenceCol,
		Intents:        sortedKeys(intents),
		Entities:       sortedKeys(entities),
	}
	if len(counts) > 0 {
		summary.IntentCounts = counts
	}

	return &Dataset{Summary: summary, Sentences: sentences}
}

// splitTokens splits a multi-value cell on the common separators.
func splitTokens(s string) []string {
	var tokens []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == '|'
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

// sortedKeys returns the map's keys in sorted order.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
