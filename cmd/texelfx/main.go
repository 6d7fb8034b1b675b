// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/main.go
// Summary: texelfx command: inspect and configure window effects, scan
//   plugins and run the terminal demo desktop.
// Usage: texelfx effects list | texelfx demo

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information, set at link time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type globalFlags struct {
	configPath   string
	verbose      bool
	noAnimations bool
	noPlugins    bool
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "texelfx",
		Short: "Window effect orchestration for terminal desktops",
		Long: `texelfx attaches configurable visual effects to windows.

Effects are bound to target keys: "*" applies to every window, any other
key applies to windows created for that component.`,
		Example: `  # Show every known effect
  texelfx effects list

  # Enable wobbly windows everywhere
  texelfx effects enable Wobbly

  # Try the effects in a terminal desktop
  texelfx demo`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if flags.verbose {
				log.SetOutput(cmd.ErrOrStderr())
				log.SetFlags(log.LstdFlags | log.Lmicroseconds)
				return
			}
			log.SetOutput(io.Discard)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Configuration file (.json, .toml or .db); defaults to the XDG config location")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log to stderr")
	root.PersistentFlags().BoolVar(&flags.noAnimations, "no-animations", false, "Disable animations; effects jump to their end state")
	root.PersistentFlags().BoolVar(&flags.noPlugins, "no-plugins", false, "Skip loading plugin libraries")

	root.AddCommand(
		newEffectsCmd(flags),
		newPluginsCmd(flags),
		newConfigCmd(flags),
		newDemoCmd(flags),
	)
	return root
}
