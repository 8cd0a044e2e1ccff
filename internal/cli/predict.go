// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// predict.go - Intent prediction command handler for bottrainer CLI.
//
// Handles the "bottrainer predict" command, either as a one-shot
// prediction or as an interactive REPL with input history.
//
// Command: predict
// Short:   Predict intent for one or more utterances
// Aliases: p
//
// Examples:
//   bottrainer predict "book a flight"        One-shot prediction
//   bottrainer predict                        Interactive REPL
//   bottrainer predict --file texts.txt       Batch prediction
//   bottrainer predict --model rasa-lite "hi" Use a specific model
//
// Interactive Commands (during REPL):
//   /model [name]       Show or switch model
//   /history            Show recent predictions
//   /help, /h           Show available commands
//   /quit, /q           Exit
//   Ctrl+D              Exit
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/config"
	"github.com/jeranaias/bottrainer-tui/internal/history"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// PredictCLI provides input history and line editing for the REPL.
type PredictCLI struct {
	line        *liner.State
	historyFile string
}

// NewPredictCLI creates a new PredictCLI with input history support.
func NewPredictCLI() *PredictCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "predict_history")

	cli := &PredictCLI{
		line:        line,
		historyFile: historyFile,
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads input history from file.
func (c *PredictCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *PredictCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists input history to file with secure permissions.
func (c *PredictCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *PredictCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// PREDICT HANDLER
// =============================================================================

// HandlePredict handles the "predict" command.
func HandlePredict(args Args) error {
	if args.File != "" {
		return predictBatch(args)
	}
	if args.Query != "" {
		return predictOnce(args)
	}
	return predictREPL(args)
}

// predictOnce runs a single prediction and prints the result.
func predictOnce(args Args) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	pred, err := client.Predict(ctx, args.Query, args.Model)
	if err != nil {
		return WrapError(err, "predict")
	}

	recordPrediction(ctx, args, args.Query, pred)

	if args.JSON {
		return NewJSONResponse("predict", toPredictData(args.Query, args.Model, pred)).Print()
	}

	printPrediction(args.Query, pred)
	return nil
}

// predictBatch reads one utterance per line from a file and predicts
// them all in a single request.
func predictBatch(args Args) error {
	f, err := os.Open(args.File)
	if err != nil {
		return WrapError(err, "open input file")
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapError(err, "read input file")
	}
	if len(texts) == 0 {
		return NewValidationError("file", args.File, "no utterances found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.PredictBatch(ctx, texts, args.Model)
	if err != nil {
		return WrapError(err, "batch predict")
	}

	if args.JSON {
		return NewJSONResponse("predict", resp).Print()
	}

	for _, p := range resp.Predictions {
		if p.Error != "" {
			fmt.Printf("%s %s: %s\n", ErrorStyle.Render("[FAIL]"), p.Text, p.Error)
			continue
		}
		fmt.Printf("%s %s %s\n",
			HighlightStyle.Render(p.Intent),
			DimStyle.Render(fmt.Sprintf("(%.0f%%)", p.Confidence*100)),
			p.Text)
	}
	return nil
}

// predictREPL runs the interactive prediction loop.
func predictREPL(args Args) error {
	if err := RequiresTTY("run the prediction REPL"); err != nil {
		return err
	}

	client := NewAPIClient(args)
	hist := OpenHistory()
	if hist != nil {
		defer hist.Close()
	}

	input := NewPredictCLI()
	defer input.Close()

	model := args.Model

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("Bot Trainer - Prediction REPL"))
		fmt.Println(DimStyle.Render("Type an utterance, /help for commands, Ctrl+D to exit."))
		fmt.Println()
	}

	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Render("predict> ")

	for {
		line, err := input.ReadInput(prompt)
		if err != nil {
			// Ctrl+C or Ctrl+D: exit gracefully.
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, newModel := handleREPLCommand(line, model, hist)
			if quit {
				return nil
			}
			model = newModel
			continue
		}

		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		pred, err := client.Predict(ctx, line, model)
		if err == nil {
			recordPrediction(ctx, args, line, pred)
		}
		cancel()

		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
			continue
		}

		printPrediction(line, pred)
	}
}

// handleREPLCommand processes a slash command. It returns whether to
// quit and the (possibly updated) model.
func handleREPLCommand(line, model string, hist *history.Store) (bool, string) {
	parts := strings.Fields(line)

	switch parts[0] {
	case "/quit", "/q", "/exit":
		return true, model

	case "/model":
		if len(parts) > 1 {
			model = parts[1]
			fmt.Printf("%s Model set to %s\n", SuccessStyle.Render("[OK]"), HighlightStyle.Render(model))
		} else if model == "" {
			fmt.Println(DimStyle.Render("Using the backend's selected model"))
		} else {
			fmt.Printf("Model: %s\n", HighlightStyle.Render(model))
		}

	case "/history":
		if hist == nil {
			fmt.Println(DimStyle.Render("History is disabled"))
			break
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		entries, err := hist.Recent(ctx, 10)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
			break
		}
		for _, e := range entries {
			fmt.Printf("%s %s %s\n",
				DimStyle.Render(e.CreatedAt.Format("15:04")),
				HighlightStyle.Render(e.Intent),
				e.Text)
		}

	case "/help", "/h":
		fmt.Println("Commands:")
		fmt.Println("  /model [name]   Show or switch model")
		fmt.Println("  /history        Show recent predictions")
		fmt.Println("  /quit, /q       Exit")

	default:
		fmt.Printf("%s Unknown command %s (try /help)\n", WarningStyle.Render("[?]"), parts[0])
	}

	return false, model
}

// =============================================================================
// OUTPUT AND RECORDING
// =============================================================================

// printPrediction renders one prediction result.
func printPrediction(text string, pred *api.Prediction) {
	fmt.Printf("%s %s %s\n",
		HighlightStyle.Render(pred.Intent),
		confidenceStyle(pred.Confidence).Render(fmt.Sprintf("(%.0f%%)", pred.Confidence*100)),
		DimStyle.Render(text))

	for _, e := range pred.Entities {
		fmt.Printf("  %s %s = %s %s\n",
			DimStyle.Render("entity:"),
			InfoStyle.Render(e.Entity),
			e.Word,
			DimStyle.Render(fmt.Sprintf("(%.0f%%)", e.Score*100)))
	}
}

// confidenceStyle colors a confidence score: green when confident,
// yellow in the gray zone, red when the model is guessing.
func confidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence >= 0.8:
		return SuccessStyle
	case confidence >= 0.5:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// recordPrediction appends the result to the local history database.
func recordPrediction(ctx context.Context, args Args, text string, pred *api.Prediction) {
	hist := OpenHistory()
	if hist == nil {
		return
	}
	defer hist.Close()

	hist.Record(ctx, history.Entry{
		Text:       text,
		Intent:     pred.Intent,
		Confidence: pred.Confidence,
		ModelID:    args.Model,
	})
}

// toPredictData converts an API prediction to the JSON output shape.
func toPredictData(text, model string, pred *api.Prediction) PredictData {
	data := PredictData{
		Text:       text,
		Intent:     pred.Intent,
		Confidence: pred.Confidence,
		Model:      model,
	}
	for _, e := range pred.Entities {
		data.Entities = append(data.Entities, PredictEntity{
			Entity: e.Entity,
			Word:   e.Word,
			Score:  e.Score,
		})
	}
	return data
}
