// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/url"
)

// =============================================================================
// ANNOTATION TYPES
// =============================================================================

// Span is a labeled character range inside an annotated sentence.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Annotation is one fully labeled sentence.
type Annotation struct {
	Sentence string `json:"sentence"`
	Intent   string `json:"intent"`
	Entities []Span `json:"entities"`
}

// SaveAnnotationsRequest appends annotations to a dataset. Saving
// twice for the same checksum accumulates rather than replaces.
type SaveAnnotationsRequest struct {
	DatasetChecksum string       `json:"dataset_checksum"`
	WorkspaceID     string       `json:"workspace_id,omitempty"`
	Annotations     []Annotation `json:"annotations"`
}

// SaveAnnotationsResponse acknowledges the append.
type SaveAnnotationsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// AnnotationSet is the stored annotations for one dataset.
type AnnotationSet struct {
	DatasetChecksum string       `json:"dataset_checksum"`
	DatasetFilename string       `json:"dataset_filename"`
	Annotations     []Annotation `json:"annotations"`
	AnnotationCount int          `json:"annotation_count"`
	UpdatedAt       string       `json:"updated_at"`
}

// TrainingExample is one annotation converted to training format.
type TrainingExample struct {
	Text     string `json:"text"`
	Intent   string `json:"intent"`
	Entities []Span `json:"entities"`
}

// =============================================================================
// ANNOTATION OPERATIONS
// =============================================================================

// SaveAnnotations appends labeled sentences to the given dataset.
func (c *Client) SaveAnnotations(ctx context.Context, req SaveAnnotationsRequest) (*SaveAnnotationsResponse, error) {
	var out SaveAnnotationsResponse
	if err := c.post(ctx, "/annotations/save", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAnnotations fetches stored annotations for a dataset. A dataset
// with no annotations yet returns an empty set, not an error.
func (c *Client) GetAnnotations(ctx context.Context, datasetChecksum string) (*AnnotationSet, error) {
	var out AnnotationSet
	if err := c.get(ctx, "/annotations/"+url.PathEscape(datasetChecksum), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportAnnotations converts a dataset's annotations to training
// format. 404 when the dataset has no annotations.
func (c *Client) ExportAnnotations(ctx context.Context, datasetChecksum string) ([]TrainingExample, error) {
	var out struct {
		TrainingData []TrainingExample `json:"training_data"`
	}
	if err := c.get(ctx, "/annotations/export/"+url.PathEscape(datasetChecksum), &out); err != nil {
		return nil, err
	}
	return out.TrainingData, nil
}
