// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// =============================================================================
// EVALUATION TYPES
// =============================================================================

// EvalRequest runs a train/test split evaluation over labeled texts.
// TrainPct defaults server side to 80, Seed to 42.
type EvalRequest struct {
	Texts          []string `json:"texts"`
	TrueIntents    []string `json:"true_intents"`
	ModelID        string   `json:"model_id,omitempty"`
	TrainPct       int      `json:"train_pct,omitempty"`
	Seed           int      `json:"seed,omitempty"`
	AllowedIntents []string `json:"allowed_intents,omitempty"`
	StrictMode     bool     `json:"strict_mode,omitempty"`
}

// EvalMetrics is the macro-averaged summary of a run.
type EvalMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// IntentMetrics is the per-intent breakdown.
type IntentMetrics struct {
	Intent    string  `json:"intent"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// IntentDetail is one test sample with its outcome.
type IntentDetail struct {
	Text            string  `json:"text"`
	TrueIntent      string  `json:"true_intent"`
	PredictedIntent string  `json:"predicted_intent"`
	Confidence      float64 `json:"confidence"`
	Match           bool    `json:"match"`
}

// Confusion is the labeled confusion matrix.
type Confusion struct {
	Labels []string `json:"labels"`
	Matrix [][]int  `json:"matrix"`
}

// EvalResult is the full evaluation report.
type EvalResult struct {
	Model         string          `json:"model"`
	Metrics       EvalMetrics     `json:"metrics"`
	TrainSamples  int             `json:"train_samples"`
	TestSamples   int             `json:"test_samples"`
	IntentDetails []IntentDetail  `json:"intent_details"`
	PerIntent     []IntentMetrics `json:"per_intent"`
	Confusion     Confusion       `json:"confusion"`
}

// ModelComparisonSaveRequest persists a comparison table of evaluated
// models for the given workspace.
type ModelComparisonSaveRequest struct {
	WorkspaceID   string           `json:"workspace_id"`
	WorkspaceName string           `json:"workspace_name,omitempty"`
	Models        []map[string]any `json:"models"`
}

// =============================================================================
// EVALUATION OPERATIONS
// =============================================================================

// RunEvaluation evaluates a model on a held-out split of the given
// labeled texts.
func (c *Client) RunEvaluation(ctx context.Context, req EvalRequest) (*EvalResult, error) {
	var out EvalResult
	if err := c.post(ctx, "/evaluation/run", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveModelComparison stores a comparison table server side.
func (c *Client) SaveModelComparison(ctx context.Context, req ModelComparisonSaveRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.post(ctx, "/evaluation/model-comparison/save", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
