// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command handler for bottrainer CLI.
//
// Command: config
// Short:   Show and change configuration
//
// Examples:
//   bottrainer config show
//   bottrainer config get api.base_url
//   bottrainer config set api.base_url http://10.0.0.5:8000
//   bottrainer config path
package cli

import (
	"fmt"

	"github.com/jeranaias/bottrainer-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "get":
		return configGet(args)
	case "set":
		return configSet(args)
	case "path":
		return configPath(args)
	case "keys":
		return configKeys(args)
	default:
		return NewValidationError("subcommand", args.Subcommand,
			"expected show, get, set, path or keys")
	}
}

func configShow(args Args) error {
	cfg := config.Global()

	if args.JSON {
		return NewJSONResponse("config", cfg).Print()
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	for _, key := range config.Keys() {
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s %v\n", RenderLabel(key+":", 28), ValueStyle.Render(fmt.Sprintf("%v", val)))
	}
	if path, err := config.ConfigPathTOML(); err == nil {
		fmt.Println()
		fmt.Printf("%s %s\n", RenderLabel("Config file:", 28), DimStyle.Render(path))
	}
	return nil
}

func configGet(args Args) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "bottrainer config get api.base_url")
	}

	val, err := config.Global().Get(args.ConfigKey)
	if err != nil {
		return ErrNotFound("config key", args.ConfigKey)
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]any{args.ConfigKey: val}).Print()
	}
	fmt.Printf("%v\n", val)
	return nil
}

func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key/value", "bottrainer config set ui.theme light")
	}

	cfg := config.Global()
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return WrapError(err, "set config value")
	}
	if err := cfg.Validate(); err != nil {
		return WrapError(err, "validate configuration")
	}
	if err := config.Save(cfg); err != nil {
		return WrapError(err, "save configuration")
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]any{args.ConfigKey: args.ConfigVal}).Print()
	}
	if !args.Quiet {
		fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), args.ConfigKey, args.ConfigVal)
	}
	return nil
}

func configPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return WrapError(err, "resolve config path")
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]any{"path": path}).Print()
	}
	fmt.Println(path)
	return nil
}

func configKeys(args Args) error {
	keys := config.Keys()

	if args.JSON {
		return NewJSONResponse("config", map[string]any{"keys": keys}).Print()
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}
