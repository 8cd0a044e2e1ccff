// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local dataset cache for the trainer TUI.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/bottrainer-tui/internal/dataset"
	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// =============================================================================
// STORED DATASET TYPE
// =============================================================================

// StoredDataset is a parsed upload cached on disk, keyed by its
// content checksum. The backend holds the canonical copy; the cache
// lets the annotation flow work on sentences without re-uploading.
type StoredDataset struct {
	Checksum string          `json:"checksum"`
	Filename string          `json:"filename"`
	Summary  dataset.Summary `json:"summary"`

	// Sentences from the recognized text column, in file order.
	Sentences []string `json:"sentences,omitempty"`

	UploadedAt time.Time `json:"uploaded_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DatasetMeta contains metadata for listing cached datasets.
type DatasetMeta struct {
	Checksum   string    `json:"checksum"`
	Filename   string    `json:"filename"`
	Rows       int       `json:"rows"`
	Intents    int       `json:"intents"`
	UploadedAt time.Time `json:"uploaded_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// =============================================================================
// DATASET STORE
// =============================================================================

// DatasetStore handles the on-disk dataset cache.
type DatasetStore struct {
	// BaseDir is the cache directory.
	// Default: ~/.bottrainer/datasets/
	BaseDir string

	// MaxDatasets limits cached entries (0 = unlimited). Mirrors the
	// backend's per-workspace cap.
	MaxDatasets int
}

// NewDatasetStore creates a store rooted in the user config directory.
func NewDatasetStore() (*DatasetStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".bottrainer", "datasets")

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &DatasetStore{
		BaseDir:     baseDir,
		MaxDatasets: 5,
	}, nil
}

// NewDatasetStoreWithDir creates a store with a custom directory.
func NewDatasetStoreWithDir(baseDir string) (*DatasetStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &DatasetStore{
		BaseDir:     baseDir,
		MaxDatasets: 5,
	}, nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save caches a dataset and returns its checksum. Saving the same
// checksum again replaces the entry.
func (s *DatasetStore) Save(ds *StoredDataset) (string, error) {
	if ds.Checksum == "" {
		ds.Checksum = ds.Summary.Checksum
	}
	if ds.Filename == "" {
		ds.Filename = ds.Summary.Filename
	}

	ds.UpdatedAt = time.Now()
	if ds.UploadedAt.IsZero() {
		ds.UploadedAt = ds.UpdatedAt
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}

	filePath := s.filePath(ds.Checksum)
	if err := util.AtomicWriteFile(filePath, data, 0644); err != nil {
		return "", err
	}

	if s.MaxDatasets > 0 {
		s.enforceLimit()
	}

	return ds.Checksum, nil
}

// enforceLimit removes the oldest entries when over the cap, keeping
// the selected dataset regardless of age.
func (s *DatasetStore) enforceLimit() {
	metas, err := s.List()
	if err != nil || len(metas) <= s.MaxDatasets {
		return
	}

	selected, _ := s.Selected()

	// Oldest first.
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.Before(metas[j].UpdatedAt)
	})

	excess := len(metas) - s.MaxDatasets
	for _, meta := range metas {
		if excess <= 0 {
			break
		}
		if meta.Checksum == selected {
			continue
		}
		s.Delete(meta.Checksum)
		excess--
	}
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load retrieves a cached dataset by checksum.
func (s *DatasetStore) Load(checksum string) (*StoredDataset, error) {
	filePath := s.filePath(checksum)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDatasetNotFound
		}
		return nil, err
	}

	var ds StoredDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, err
	}

	return &ds, nil
}

// LoadByIndex loads a dataset by list position (0 = most recent).
func (s *DatasetStore) LoadByIndex(index int) (*StoredDataset, error) {
	metas, err := s.List()
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(metas) {
		return nil, ErrDatasetNotFound
	}

	return s.Load(metas[index].Checksum)
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns all cached datasets (most recent first).
func (s *DatasetStore) List() ([]DatasetMeta, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []DatasetMeta{}, nil
		}
		return nil, err
	}

	var metas []DatasetMeta

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == selectedFile {
			continue
		}

		checksum := strings.TrimSuffix(name, ".json")

		ds, err := s.Load(checksum)
		if err != nil {
			continue // Skip corrupted files
		}

		metas = append(metas, DatasetMeta{
			Checksum:   ds.Checksum,
			Filename:   ds.Filename,
			Rows:       ds.Summary.Rows,
			Intents:    len(ds.Summary.Intents),
			UploadedAt: ds.UploadedAt,
			UpdatedAt:  ds.UpdatedAt,
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})

	return metas, nil
}

// Search finds cached datasets whose filename or intents match a
// query string (case-insensitive).
func (s *DatasetStore) Search(query string) ([]DatasetMeta, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	query = strings.ToLower(query)
	var results []DatasetMeta

	for _, meta := range all {
		if strings.Contains(strings.ToLower(meta.Filename), query) {
			results = append(results, meta)
			continue
		}
		ds, err := s.Load(meta.Checksum)
		if err != nil {
			continue
		}
		for _, intent := range ds.Summary.Intents {
			if strings.Contains(intent, query) {
				results = append(results, meta)
				break
			}
		}
	}

	return results, nil
}

// =============================================================================
// SELECTED DATASET
// =============================================================================

// selectedFile holds the checksum of the active dataset.
const selectedFile = "selected.json"

type selectedMarker struct {
	Checksum string `json:"checksum"`
}

// Select marks a cached dataset as active for training and
// annotation. The dataset must exist in the cache.
func (s *DatasetStore) Select(checksum string) error {
	if _, err := s.Load(checksum); err != nil {
		return err
	}

	data, err := json.Marshal(selectedMarker{Checksum: checksum})
	if err != nil {
		return err
	}

	return util.AtomicWriteFile(filepath.Join(s.BaseDir, selectedFile), data, 0644)
}

// Selected returns the checksum of the active dataset, or "" when
// none is selected.
func (s *DatasetStore) Selected() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.BaseDir, selectedFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var marker selectedMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return "", err
	}

	// The marker may outlive the entry it points at.
	if _, err := s.Load(marker.Checksum); err != nil {
		return "", nil
	}

	return marker.Checksum, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a cached dataset by checksum.
func (s *DatasetStore) Delete(checksum string) error {
	filePath := s.filePath(checksum)

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return ErrDatasetNotFound
		}
		return err
	}

	return nil
}

// Clear removes all cached datasets and the selection marker.
func (s *DatasetStore) Clear() error {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			os.Remove(filepath.Join(s.BaseDir, entry.Name()))
		}
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// filePath returns the cache file path for a checksum.
func (s *DatasetStore) filePath(checksum string) string {
	return filepath.Join(s.BaseDir, checksum+".json")
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrDatasetNotFound is returned when a dataset is not in the cache.
// Use errors.Is(err, ErrDatasetNotFound) to check for this error.
var ErrDatasetNotFound = &DatasetError{Message: "dataset not found"}

// DatasetError represents a dataset cache error.
// It implements the error interface and can be compared using errors.Is.
type DatasetError struct {
	Message string
}

// Error implements the error interface.
func (e *DatasetError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing dataset errors.
func (e *DatasetError) Is(target error) bool {
	t, ok := target.(*DatasetError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// DATASET LIST FORMATTING
// =============================================================================

// FormatDatasetList formats cached datasets as a table for plain
// terminal output.
func FormatDatasetList(metas []DatasetMeta, selected string) string {
	if len(metas) == 0 {
		return "No cached datasets."
	}

	var sb strings.Builder
	sb.WriteString("Datasets:\n")
	sb.WriteString("-------------------------------------------------------------\n")
	sb.WriteString(util.PadRight("Checksum", 14) + " " +
		util.PadRight("Uploaded", 18) + " " +
		util.PadRight("Rows", 6) + " " +
		util.PadRight("Intents", 8) + " Filename\n")
	sb.WriteString("-------------------------------------------------------------\n")

	for _, m := range metas {
		checksum := m.Checksum
		if len(checksum) > 12 {
			checksum = checksum[:12]
		}
		if m.Checksum == selected {
			checksum = "*" + checksum
		}
		sb.WriteString(util.PadRight(checksum, 14) + " " +
			util.PadRight(m.UploadedAt.Format("2006-01-02 15:04"), 18) + " " +
			util.PadRight(strconv.Itoa(m.Rows), 6) + " " +
			util.PadRight(strconv.Itoa(m.Intents), 8) + " " +
			util.TruncateRunes(m.Filename, 30) + "\n")
	}
	return sb.String()
}

// =============================================================================
// DATASET EXPORT
// =============================================================================

// ExportJSON exports the cached dataset as pretty-printed JSON.
func (d *StoredDataset) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Preview returns the first sentence, truncated for display.
func (d *StoredDataset) Preview() string {
	if len(d.Sentences) == 0 {
		return ""
	}
	return util.TruncateRunes(d.Sentences[0], 80)
}

// SentenceCount returns the number of cached sentences.
func (d *StoredDataset) SentenceCount() int {
	return len(d.Sentences)
}
