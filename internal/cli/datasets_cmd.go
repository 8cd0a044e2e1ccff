// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// datasets_cmd.go - Dataset management command handler for bottrainer CLI.
//
// Command: datasets
// Short:   Upload, list, and select training datasets
// Aliases: ds
//
// Uploading parses the file locally (CSV or JSON), computes its
// checksum, pushes the analysis to the backend, and caches the parsed
// dataset on disk so the TUI and train command can reuse it offline.
//
// Examples:
//   bottrainer datasets                       List datasets
//   bottrainer datasets upload intents.csv    Upload and analyze a file
//   bottrainer datasets select a1b2c3d4      Select by checksum
//   bottrainer datasets show a1b2c3d4        Show a cached summary
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/dataset"
	"github.com/jeranaias/bottrainer-tui/internal/storage"
	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// HandleDatasets handles the "datasets" command and its subcommands.
func HandleDatasets(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list", "ls":
		return datasetsList(args)
	case "upload", "add":
		return datasetsUpload(args, parser)
	case "select", "use":
		return datasetsSelect(args, parser)
	case "show", "info":
		return datasetsShow(args, parser)
	default:
		return NewValidationError("subcommand", parser.Subcommand(),
			"expected list, upload, select, or show")
	}
}

// datasetsList prints the server-side dataset collection.
func datasetsList(args Args) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	root, err := client.GetDatasets(ctx)
	if err != nil {
		return WrapError(err, "list datasets")
	}

	if args.JSON {
		return NewJSONResponse("datasets", root).Print()
	}

	if len(root.Entries) == 0 {
		fmt.Println(DimStyle.Render("No datasets yet. Upload one with: bottrainer datasets upload <file>"))
		return nil
	}

	selected := ""
	if root.Selected != nil {
		selected = root.Selected.Checksum
	}

	fmt.Println(TitleStyle.Render("Datasets"))
	fmt.Println()
	fmt.Printf("  %s %s %s\n",
		util.PadRight("CHECKSUM", 14),
		util.PadRight("FILENAME", 28),
		"UPDATED")
	fmt.Println("  " + SeparatorStyle.Render(strings.Repeat("-", 60)))

	for _, entry := range root.Entries {
		marker := " "
		if entry.Checksum == selected {
			marker = HighlightStyle.Render("*")
		}
		fmt.Printf("%s %s %s %s\n",
			marker,
			util.PadRight(util.TruncateRunes(entry.Checksum, 12), 14),
			util.PadRight(util.TruncateRunes(entry.Filename, 28), 28),
			DimStyle.Render(entry.UpdatedAt))
	}
	return nil
}

// datasetsUpload parses a local file, pushes its analysis to the
// backend, and caches the parsed dataset on disk.
func datasetsUpload(args Args, parser *ArgParser) error {
	path := parser.Positional(0)
	if path == "" {
		path = args.File
	}
	if path == "" {
		return ErrMissingArgument("file", "bottrainer datasets upload intents.csv")
	}

	f, err := os.Open(path)
	if err != nil {
		return WrapError(err, "open dataset file")
	}
	ds, err := dataset.ParseFile(filepath.Base(path), f)
	f.Close()
	if err != nil {
		return WrapError(err, "parse dataset")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.SaveDataset(ctx, api.SaveDatasetRequest{
		Filename: ds.Summary.Filename,
		Checksum: ds.Summary.Checksum,
		Analysis: ds.Summary.AnalysisPayload(),
	})
	if err != nil {
		return WrapError(err, "upload dataset")
	}

	// Cache locally and mark as selected so train and the TUI pick
	// it up without another parse. Cache failures are not fatal.
	if store, serr := storage.NewDatasetStore(); serr == nil {
		if _, serr = store.Save(&storage.StoredDataset{
			Summary:   ds.Summary,
			Sentences: ds.Sentences,
		}); serr == nil {
			store.Select(ds.Summary.Checksum)
		}
	}

	if args.JSON {
		return NewJSONResponse("datasets", map[string]any{
			"checksum": resp.Checksum,
			"summary":  ds.Summary,
		}).Print()
	}

	fmt.Printf("%s Uploaded %s\n", SuccessStyle.Render("[OK]"), HighlightStyle.Render(ds.Summary.Filename))
	fmt.Println(RenderLabel("Checksum:", 14) + " " + util.TruncateRunes(resp.Checksum, 16))
	fmt.Println(RenderLabel("Rows:", 14) + " " + fmt.Sprintf("%d", ds.Summary.Rows))
	fmt.Println(RenderLabel("Intents:", 14) + " " + fmt.Sprintf("%d", len(ds.Summary.Intents)))
	fmt.Println(RenderLabel("Entities:", 14) + " " + fmt.Sprintf("%d", len(ds.Summary.Entities)))
	return nil
}

// datasetsSelect marks a dataset as active on the server and in the
// local cache.
func datasetsSelect(args Args, parser *ArgParser) error {
	checksum := parser.Positional(0)
	if checksum == "" {
		return ErrMissingArgument("checksum", "bottrainer datasets select a1b2c3d4")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.SelectDataset(ctx, checksum)
	if err != nil {
		return WrapError(err, "select dataset")
	}

	if store, serr := storage.NewDatasetStore(); serr == nil {
		store.Select(resp.Selected.Checksum)
	}

	if args.JSON {
		return NewJSONResponse("datasets", resp).Print()
	}

	fmt.Printf("%s Selected %s (%s)\n",
		SuccessStyle.Render("[OK]"),
		HighlightStyle.Render(resp.Selected.Filename),
		DimStyle.Render(util.TruncateRunes(resp.Selected.Checksum, 12)))
	return nil
}

// datasetsShow prints a cached dataset summary by checksum prefix.
func datasetsShow(args Args, parser *ArgParser) error {
	prefix := parser.Positional(0)
	if prefix == "" {
		return ErrMissingArgument("checksum", "bottrainer datasets show a1b2c3d4")
	}

	store, err := storage.NewDatasetStore()
	if err != nil {
		return WrapError(err, "open dataset cache")
	}

	metas, err := store.List()
	if err != nil {
		return WrapError(err, "list cached datasets")
	}

	var match *storage.StoredDataset
	for _, meta := range metas {
		if strings.HasPrefix(meta.Checksum, prefix) {
			match, err = store.Load(meta.Checksum)
			if err != nil {
				return WrapError(err, "load cached dataset")
			}
			break
		}
	}
	if match == nil {
		return ErrNotFound("dataset", prefix)
	}

	if args.JSON {
		return NewJSONResponse("datasets", match.Summary).Print()
	}

	s := match.Summary
	fmt.Println(TitleStyle.Render(s.Filename))
	fmt.Println(RenderLabel("Checksum:", 18) + " " + s.Checksum)
	fmt.Println(RenderLabel("Rows:", 18) + " " + fmt.Sprintf("%d", s.Rows))
	fmt.Println(RenderLabel("Columns:", 18) + " " + strings.Join(s.Columns, ", "))
	if s.IntentColumn != "" {
		fmt.Println(RenderLabel("Intent column:", 18) + " " + s.IntentColumn)
	}
	if s.EntityColumn != "" {
		fmt.Println(RenderLabel("Entity column:", 18) + " " + s.EntityColumn)
	}
	if s.SentenceColumn != "" {
		fmt.Println(RenderLabel("Text column:", 18) + " " + s.SentenceColumn)
	}
	if len(s.Intents) > 0 {
		fmt.Println()
		fmt.Println(SectionStyle.Render("Intent distribution"))
		for _, intent := range s.Intents {
			fmt.Printf("  %s %d\n", util.PadRight(intent, 28), s.IntentCounts[intent])
		}
	}
	if preview := match.Preview(); preview != "" {
		fmt.Println()
		fmt.Println(RenderLabel("Preview:", 18) + " " + DimStyle.Render(preview))
	}
	return nil
}
