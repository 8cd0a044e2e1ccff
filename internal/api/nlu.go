// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// =============================================================================
// TRAINING
// =============================================================================

// TrainStatus reflects the server's single training slot.
// State is one of idle, running, completed, failed.
type TrainStatus struct {
	State      string `json:"state"`
	Progress   int    `json:"progress"`
	Message    string `json:"message"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Error      string `json:"error"`
}

// TrainStartResponse acknowledges a training kick-off. When training
// is already in progress the existing status comes back unchanged.
type TrainStartResponse struct {
	Message string      `json:"message"`
	Status  TrainStatus `json:"status"`
}

// TrainSample is one labeled utterance used by the lightweight
// intent trainers.
type TrainSample struct {
	Text   string `json:"text"`
	Intent string `json:"intent"`
}

// IntentTrainResponse summarizes a completed intent training run.
type IntentTrainResponse struct {
	Intents         []string `json:"intents"`
	TrainingSamples int      `json:"training_samples"`
	Message         string   `json:"message"`
}

// NERTrainResponse summarizes a completed entity model training run.
type NERTrainResponse struct {
	Labels             []string `json:"labels"`
	EntityModelTrained bool     `json:"entity_model_trained"`
	LabelCount         int      `json:"label_count"`
	TrainingSamples    int      `json:"training_samples"`
}

// StartTraining launches background training over the annotations of
// the given dataset. Returns 202 immediately; poll TrainingStatus for
// progress.
func (c *Client) StartTraining(ctx context.Context, datasetChecksum string) (*TrainStartResponse, error) {
	req := struct {
		DatasetChecksum string `json:"dataset_checksum"`
	}{DatasetChecksum: datasetChecksum}

	var out TrainStartResponse
	if err := c.post(ctx, "/train/start", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrainingStatus polls the current training state.
func (c *Client) TrainingStatus(ctx context.Context) (*TrainStatus, error) {
	var out TrainStatus
	if err := c.get(ctx, "/train/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrainIntentSpacy trains the spaCy-style intent classifier from
// labeled samples.
func (c *Client) TrainIntentSpacy(ctx context.Context, samples []TrainSample) (*IntentTrainResponse, error) {
	req := struct {
		Samples []TrainSample `json:"samples"`
	}{Samples: samples}

	var out IntentTrainResponse
	if err := c.post(ctx, "/train/intent/spacy", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrainIntentRasaLite trains the Rasa-style intent classifier.
func (c *Client) TrainIntentRasaLite(ctx context.Context, samples []TrainSample) (*IntentTrainResponse, error) {
	req := struct {
		Samples []TrainSample `json:"samples"`
	}{Samples: samples}

	var out IntentTrainResponse
	if err := c.post(ctx, "/train/intent/rasa-lite", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrainNER trains the entity recognizer from annotated samples.
func (c *Client) TrainNER(ctx context.Context, samples []map[string]any) (*NERTrainResponse, error) {
	req := struct {
		Samples []map[string]any `json:"samples"`
	}{Samples: samples}

	var out NERTrainResponse
	if err := c.post(ctx, "/train/ner/nert-lite", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// PREDICTION
// =============================================================================

// Entity is one extracted span.
type Entity struct {
	Entity string  `json:"entity"`
	Word   string  `json:"word"`
	Score  float64 `json:"score"`
}

// Prediction is the parse of a single utterance.
type Prediction struct {
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   []Entity `json:"entities"`
}

// BatchPrediction is one element of a batch result. Error is set when
// that particular text failed.
type BatchPrediction struct {
	Text       string  `json:"text"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// BatchPredictResponse wraps the per-text results.
type BatchPredictResponse struct {
	Predictions []BatchPrediction `json:"predictions"`
}

// Predict parses one utterance with the chosen engine. modelID may be
// empty; the server defaults to spacy.
func (c *Client) Predict(ctx context.Context, text, modelID string) (*Prediction, error) {
	req := struct {
		Text    string `json:"text"`
		ModelID string `json:"model_id,omitempty"`
	}{Text: text, ModelID: modelID}

	var out Prediction
	if err := c.post(ctx, "/predict", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PredictBatch parses many utterances in one round trip.
func (c *Client) PredictBatch(ctx context.Context, texts []string, modelID string) (*BatchPredictResponse, error) {
	req := struct {
		Texts   []string `json:"texts"`
		ModelID string   `json:"model_id,omitempty"`
	}{Texts: texts, ModelID: modelID}

	var out BatchPredictResponse
	if err := c.post(ctx, "/predict/batch", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
