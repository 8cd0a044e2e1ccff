// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// =============================================================================
// DATASET TYPES
// =============================================================================

// DatasetEntry is one persisted dataset summary. The checksum is the
// stable identifier datasets are referenced by everywhere else.
type DatasetEntry struct {
	Filename   string         `json:"filename"`
	Checksum   string         `json:"checksum"`
	Analysis   map[string]any `json:"analysis"`
	Evaluation map[string]any `json:"evaluation"`
	UpdatedAt  string         `json:"updated_at"`
}

// DatasetRoot is a user's dataset collection. The server keeps the
// five most recent entries and tracks which one is selected.
type DatasetRoot struct {
	Entries  []DatasetEntry `json:"entries"`
	Selected *DatasetEntry  `json:"selected"`
}

// SaveDatasetRequest uploads a processed dataset summary.
type SaveDatasetRequest struct {
	Filename   string         `json:"filename"`
	Checksum   string         `json:"checksum,omitempty"`
	Analysis   map[string]any `json:"analysis"`
	Evaluation map[string]any `json:"evaluation,omitempty"`
}

// SaveDatasetResponse returns the checksum assigned by the server.
type SaveDatasetResponse struct {
	Message  string `json:"message"`
	Checksum string `json:"checksum"`
}

// SelectDatasetResponse acknowledges a selection change.
type SelectDatasetResponse struct {
	Message  string       `json:"message"`
	Selected DatasetEntry `json:"selected"`
}

// =============================================================================
// DATASET OPERATIONS
// =============================================================================

// SaveDataset persists a dataset summary for the current user.
func (c *Client) SaveDataset(ctx context.Context, req SaveDatasetRequest) (*SaveDatasetResponse, error) {
	var out SaveDatasetResponse
	if err := c.post(ctx, "/datasets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDatasets fetches the user's dataset collection. An empty
// collection is a valid, zero-valued root.
func (c *Client) GetDatasets(ctx context.Context) (*DatasetRoot, error) {
	var out DatasetRoot
	if err := c.get(ctx, "/datasets", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectDataset marks the entry with the given checksum as active.
func (c *Client) SelectDataset(ctx context.Context, checksum string) (*SelectDatasetResponse, error) {
	req := struct {
		Checksum string `json:"checksum"`
	}{Checksum: checksum}

	var out SelectDatasetResponse
	if err := c.post(ctx, "/datasets/select", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
