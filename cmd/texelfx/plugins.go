// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/plugins.go
// Summary: plugins scan and config path subcommands.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/registry"
)

func newPluginsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Manage effect plugins",
	}
	scanCmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Load plugin libraries and report what they provide",
		Long: `Scan a plugin directory the same way the desktop does at startup.

Each entry is either a .so library or a subdirectory holding a manifest.json
that names its library. Libraries must export NewEffects or NewEffect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				store, err := config.Load(flags.configPath)
				if store == nil {
					return fmt.Errorf("load config: %w", err)
				}
				dir, _ = store.PluginDir()
			}
			report := registry.New().LoadPluginEffects(dir)
			printReport(cmd.OutOrStdout(), dir, report)
			return nil
		},
	}
	cmd.AddCommand(scanCmd)
	return cmd
}

func printReport(out io.Writer, dir string, report registry.LoadReport) {
	fmt.Fprintf(out, "%s %s\n", headingStyle.Render("Plugin directory:"), dir)
	if len(report.Loaded) == 0 && len(report.Skipped) == 0 {
		fmt.Fprintln(out, dimStyle.Render("  no plugins found"))
		return
	}
	for _, name := range report.Loaded {
		fmt.Fprintf(out, "  %s %s\n", enabledStyle.Render("loaded"), nameStyle.Render(name))
	}
	for _, s := range report.Skipped {
		fmt.Fprintf(out, "  %s %s: %v\n", errorStyle.Render("skipped"), s.Path, s.Err)
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect texelfx configuration",
	}
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file and plugin directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.Load(flags.configPath)
			if store == nil {
				return fmt.Errorf("load config: %w", err)
			}
			dir, enabled := store.PluginDir()
			if !enabled {
				dir += " (disabled)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, store.Path())
			fmt.Fprintf(out, "plugins: %s\n", dir)
			return nil
		},
	}
	cmd.AddCommand(pathCmd)
	return cmd
}
