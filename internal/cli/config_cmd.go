// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/config"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print configuration, preferences and log paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			cfgPath := opts.configPath
			if cfgPath == "" {
				if cfgPath, err = config.ConfigPathTOML(); err != nil {
					return err
				}
			}
			prefsPath, err := cfg.PrefsPath()
			if err != nil {
				return err
			}
			logPath, err := cfg.LogPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", cfgPath)
			fmt.Fprintf(out, "prefs:  %s\n", prefsPath)
			fmt.Fprintf(out, "log:    %s\n", logPath)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}
			if err := saveConfig(opts, config.Default(), target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one effective configuration value",
		Example: `  queryfarmer config get backend.url
  queryfarmer config get locale.languages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := configKey(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatConfigValue(value))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one value in the configuration file",
		Long: `Change one value in the configuration file.

List values such as locale.languages are comma separated. The file is only
written when the resulting configuration is valid.`,
		Example: `  queryfarmer config set backend.url http://10.0.0.5:8000
  queryfarmer config set locale.languages en,hi,mr`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := configKey(args[0])
			if err != nil {
				return err
			}
			target, err := configTarget(opts)
			if err != nil {
				return err
			}
			current, err := loadEditable(target)
			if err != nil {
				return err
			}
			old, err := current.Get(key)
			if err != nil {
				return err
			}

			updated := current.Clone()
			if err := updated.Set(key, args[1]); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			updated.SetDefaults()
			if err := updated.Validate(); err != nil {
				return fmt.Errorf("invalid configuration value: %w", err)
			}
			if err := saveConfig(opts, updated, target); err != nil {
				return err
			}

			value, _ := updated.Get(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", key, formatConfigValue(old), formatConfigValue(value))
			return nil
		},
	}

	keys := &cobra.Command{
		Use:   "keys",
		Short: "List configuration keys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, key := range config.GetAllKeys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
		},
	}

	cmd.AddCommand(show, path, initCmd, get, set, keys)
	return cmd
}

// configKey normalizes key and rejects keys outside the file format.
func configKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(config.GetAllKeys(), key) {
		return "", fmt.Errorf("unknown config key %q (see 'queryfarmer config keys')", key)
	}
	return key, nil
}

// configTarget is the file edited by init and set.
func configTarget(opts *globalOptions) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.ConfigPathTOML()
}

// loadEditable reads the file at target without env overrides, so that
// set never writes environment values back. A missing default TOML file
// starts from config.json when there is one.
func loadEditable(target string) (*config.Config, error) {
	cfg := config.Default()
	source := target
	if _, err := os.Stat(source); err != nil {
		source = ""
		if def, derr := config.ConfigPathTOML(); derr == nil && def == target {
			if jsonPath, jerr := config.ConfigPathJSON(); jerr == nil {
				if _, serr := os.Stat(jsonPath); serr == nil {
					source = jsonPath
				}
			}
		}
	}

	switch {
	case source == "":
		return cfg, nil
	case strings.HasSuffix(source, ".json"):
		if err := config.LoadJSON(cfg, source); err != nil {
			return nil, err
		}
	default:
		if err := config.LoadTOML(cfg, source); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// saveConfig writes cfg to target in the format its extension names.
func saveConfig(opts *globalOptions, cfg *config.Config, target string) error {
	switch {
	case opts.configPath == "":
		return config.Save(cfg)
	case strings.HasSuffix(target, ".json"):
		return config.SaveJSON(cfg, target)
	default:
		return config.SaveTOML(cfg, target)
	}
}

func formatConfigValue(v interface{}) string {
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(v)
}
