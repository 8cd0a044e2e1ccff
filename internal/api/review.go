// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// =============================================================================
// ACTIVE LEARNING
// =============================================================================

// SuggestRequest asks for low-confidence predictions worth reviewing.
// Threshold is the maximum confidence to keep.
type SuggestRequest struct {
	Texts         []string `json:"texts"`
	ActualIntents []string `json:"actual_intents,omitempty"`
	ModelID       string   `json:"model_id,omitempty"`
	Threshold     float64  `json:"threshold,omitempty"`
}

// UncertainSample is one prediction flagged for review.
type UncertainSample struct {
	Text         string  `json:"text"`
	Intent       string  `json:"intent"`
	Confidence   float64 `json:"confidence"`
	ActualIntent string  `json:"actual_intent,omitempty"`
	IsWrong      bool    `json:"is_wrong,omitempty"`
}

// SuggestResponse carries the review queue.
type SuggestResponse struct {
	Count             int               `json:"count"`
	Items             []UncertainSample `json:"items"`
	FilteringStrategy string            `json:"filtering_strategy"`
	WrongPredictions  int               `json:"wrong_predictions"`
}

// Correction is one human-reviewed prediction.
type Correction struct {
	Text                string   `json:"text"`
	PredictedIntent     string   `json:"predicted_intent,omitempty"`
	PredictedConfidence *float64 `json:"predicted_confidence,omitempty"`
	CorrectedIntent     string   `json:"corrected_intent,omitempty"`
	Entities            []Entity `json:"entities,omitempty"`
	Remarks             string   `json:"remarks,omitempty"`
	ModelID             string   `json:"model_id,omitempty"`
	ModelName           string   `json:"model_name,omitempty"`
}

// SaveCountResponse acknowledges a bulk save.
type SaveCountResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// CorrectionList is the stored corrections for the active workspace.
type CorrectionList struct {
	Count int          `json:"count"`
	Items []Correction `json:"items"`
}

// SuggestUncertain returns predictions below the confidence threshold
// for human review.
func (c *Client) SuggestUncertain(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	var out SuggestResponse
	if err := c.post(ctx, "/active-learning/suggest", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveCorrections persists reviewed predictions for the active
// workspace. The server requires a workspace to be selected.
func (c *Client) SaveCorrections(ctx context.Context, items []Correction) (*SaveCountResponse, error) {
	req := struct {
		Items []Correction `json:"items"`
	}{Items: items}

	var out SaveCountResponse
	if err := c.post(ctx, "/active-learning/corrections", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCorrections fetches saved corrections for the active workspace.
func (c *Client) ListCorrections(ctx context.Context) (*CorrectionList, error) {
	var out CorrectionList
	if err := c.get(ctx, "/active-learning/corrections", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// FEEDBACK
// =============================================================================

// Feedback is a user's judgement on a model prediction.
type Feedback struct {
	Text            string   `json:"text"`
	PredictedIntent string   `json:"predicted_intent,omitempty"`
	CorrectIntent   string   `json:"correct_intent,omitempty"`
	Entities        []Entity `json:"entities,omitempty"`
	Remarks         string   `json:"remarks,omitempty"`
}

// FeedbackList is the stored feedback for the active workspace.
type FeedbackList struct {
	Count   int        `json:"count"`
	Items   []Feedback `json:"items"`
	Message string     `json:"message,omitempty"`
}

// SaveFeedback persists prediction feedback for the active workspace.
func (c *Client) SaveFeedback(ctx context.Context, items []Feedback) (*SaveCountResponse, error) {
	req := struct {
		Items []Feedback `json:"items"`
	}{Items: items}

	var out SaveCountResponse
	if err := c.post(ctx, "/feedback/save", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFeedback fetches feedback items for the active workspace.
func (c *Client) ListFeedback(ctx context.Context) (*FeedbackList, error) {
	var out FeedbackList
	if err := c.get(ctx, "/feedback/list", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
