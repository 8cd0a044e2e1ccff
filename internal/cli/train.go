// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// train.go - Training job command handler for bottrainer CLI.
//
// Command: train
// Short:   Start and monitor model training
//
// The backend owns a single training slot. "train start" kicks off a
// background job over the selected dataset's annotations; "train
// status" polls it, and --watch keeps polling until the job leaves the
// running state.
//
// The per-engine subcommands bypass the background slot and train
// synchronously from the dataset's exported annotations.
//
// Examples:
//   bottrainer train start                   Train on the selected dataset
//   bottrainer train start a1b2c3d4         Train on a specific dataset
//   bottrainer train status                  Show training state
//   bottrainer train status --watch          Poll until training finishes
//   bottrainer train intent spacy            Train the spaCy intent classifier
//   bottrainer train intent rasa             Train the Rasa-lite classifier
//   bottrainer train ner                     Train the entity recognizer
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/storage"
)

// watchInterval is the poll cadence for "train status --watch".
const watchInterval = 2 * time.Second

// HandleTrain handles the "train" command and its subcommands.
func HandleTrain(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "start":
		return trainStart(args, parser)
	case "", "status":
		return trainStatus(args, parser)
	case "intent":
		return trainIntent(args, parser)
	case "ner":
		return trainNER(args, parser)
	default:
		return NewValidationError("subcommand", parser.Subcommand(),
			"expected start, status, intent, or ner")
	}
}

// trainStart launches a background training run. The checksum comes
// from the positional arg, falling back to the locally selected
// dataset.
func trainStart(args Args, parser *ArgParser) error {
	checksum := parser.Positional(0)
	if checksum == "" {
		if store, err := storage.NewDatasetStore(); err == nil {
			checksum, _ = store.Selected()
		}
	}
	if checksum == "" {
		return ErrMissingArgument("dataset checksum",
			"bottrainer train start a1b2c3d4 (or select a dataset first)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.StartTraining(ctx, checksum)
	if err != nil {
		return WrapError(err, "start training")
	}

	if args.JSON {
		return NewJSONResponse("train", resp).Print()
	}

	fmt.Printf("%s %s\n", SuccessStyle.Render("[OK]"), resp.Message)
	printTrainStatus(&resp.Status)

	if parser.BoolFlag("watch") {
		return watchTraining(args)
	}
	return nil
}

// trainStatus shows the current training state, optionally polling
// until the job finishes.
func trainStatus(args Args, parser *ArgParser) error {
	if parser.BoolFlag("watch") && !args.JSON {
		return watchTraining(args)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	status, err := client.TrainingStatus(ctx)
	if err != nil {
		return WrapError(err, "fetch training status")
	}

	if args.JSON {
		return NewJSONResponse("train", status).Print()
	}

	printTrainStatus(status)
	return nil
}

// trainIntent trains one of the synchronous intent classifiers from
// the selected dataset's exported annotations.
func trainIntent(args Args, parser *ArgParser) error {
	engine := parser.Positional(0)
	if engine == "" {
		engine = "spacy"
	}

	examples, client, err := exportTrainingData(args, parser.Positional(1))
	if err != nil {
		return err
	}

	samples := make([]api.TrainSample, 0, len(examples))
	for _, ex := range examples {
		samples = append(samples, api.TrainSample{Text: ex.Text, Intent: ex.Intent})
	}

	ctx, cancel := context.WithTimeout(context.Background(), trainTimeout())
	defer cancel()

	var resp *api.IntentTrainResponse
	switch engine {
	case "spacy":
		resp, err = client.TrainIntentSpacy(ctx, samples)
	case "rasa", "rasa-lite":
		resp, err = client.TrainIntentRasaLite(ctx, samples)
	default:
		return NewValidationError("engine", engine, "expected spacy or rasa")
	}
	if err != nil {
		return WrapError(err, "train intent classifier")
	}

	if args.JSON {
		return NewJSONResponse("train", resp).Print()
	}

	fmt.Printf("%s %s\n", SuccessStyle.Render("[OK]"), resp.Message)
	fmt.Println(RenderLabel("Samples:") + " " + fmt.Sprintf("%d", resp.TrainingSamples))
	fmt.Println(RenderLabel("Intents:") + " " + fmt.Sprintf("%d", len(resp.Intents)))
	return nil
}

// trainNER trains the entity recognizer. Only annotations that carry
// at least one span contribute.
func trainNER(args Args, parser *ArgParser) error {
	examples, client, err := exportTrainingData(args, parser.Positional(0))
	if err != nil {
		return err
	}

	samples := make([]map[string]any, 0, len(examples))
	for _, ex := range examples {
		if len(ex.Entities) == 0 {
			continue
		}
		samples = append(samples, map[string]any{
			"text":     ex.Text,
			"entities": ex.Entities,
		})
	}
	if len(samples) == 0 {
		return NewCommandError("train", "ner",
			"no annotations with entity spans in the selected dataset", nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), trainTimeout())
	defer cancel()

	resp, err := client.TrainNER(ctx, samples)
	if err != nil {
		return WrapError(err, "train entity recognizer")
	}

	if args.JSON {
		return NewJSONResponse("train", resp).Print()
	}

	fmt.Printf("%s entity model trained\n", SuccessStyle.Render("[OK]"))
	fmt.Println(RenderLabel("Samples:") + " " + fmt.Sprintf("%d", resp.TrainingSamples))
	fmt.Println(RenderLabel("Labels:") + " " + fmt.Sprintf("%d", resp.LabelCount))
	return nil
}

// exportTrainingData resolves the dataset checksum and pulls its
// annotations in training format.
func exportTrainingData(args Args, checksum string) ([]api.TrainingExample, *api.Client, error) {
	if checksum == "" {
		if store, err := storage.NewDatasetStore(); err == nil {
			checksum, _ = store.Selected()
		}
	}
	if checksum == "" {
		return nil, nil, ErrMissingArgument("dataset checksum",
			"bottrainer train intent spacy a1b2c3d4 (or select a dataset first)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	examples, err := client.ExportAnnotations(ctx, checksum)
	if err != nil {
		return nil, nil, WrapError(err, "export annotations")
	}
	if len(examples) == 0 {
		return nil, nil, NewCommandError("train", "export",
			"the selected dataset has no annotations", nil)
	}
	return examples, client, nil
}

// trainTimeout allows the synchronous trainers more room than a plain
// request. Small corpora finish in seconds; the cap guards runaways.
func trainTimeout() time.Duration {
	t := 4 * requestTimeout()
	if t < 2*time.Minute {
		t = 2 * time.Minute
	}
	return t
}

// watchTraining polls the training slot until it leaves the running
// state.
func watchTraining(args Args) error {
	client := NewAPIClient(args)

	for {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		status, err := client.TrainingStatus(ctx)
		cancel()
		if err != nil {
			return WrapError(err, "fetch training status")
		}

		fmt.Printf("\r%s %3d%%  %s",
			RenderStatus(status.State),
			status.Progress,
			DimStyle.Render(status.Message))

		if status.State != "running" {
			fmt.Println()
			if status.State == "failed" {
				return NewCommandError("train", "training run", status.Error, nil)
			}
			return nil
		}

		time.Sleep(watchInterval)
	}
}

// printTrainStatus renders one status snapshot.
func printTrainStatus(status *api.TrainStatus) {
	fmt.Println(RenderLabel("State:") + " " + RenderStatus(status.State))
	fmt.Println(RenderLabel("Progress:") + " " + fmt.Sprintf("%d%%", status.Progress))
	if status.Message != "" {
		fmt.Println(RenderLabel("Message:") + " " + status.Message)
	}
	if status.StartedAt != "" {
		fmt.Println(RenderLabel("Started:") + " " + DimStyle.Render(status.StartedAt))
	}
	if status.FinishedAt != "" {
		fmt.Println(RenderLabel("Finished:") + " " + DimStyle.Render(status.FinishedAt))
	}
	if status.Error != "" {
		fmt.Println(RenderLabel("Error:") + " " + ErrorStyle.Render(status.Error))
	}
}
