// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/demo.go
// Summary: demo subcommand: a terminal desktop with configured effects.

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/internal/desktop"
	"github.com/framegrace/texelfx/internal/loop"
)

func newDemoCmd(flags *globalFlags) *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a terminal desktop that shows the configured effects",
		Long: `Run a small terminal desktop. New windows cycle through target keys so
per-component bindings can be tried side by side.

Keys: n new window, tab cycle focus, m minimize, r restore, x close,
u roll up, arrows move (shift for bigger steps), q quit.
Mouse: click to focus, drag a title bar to move, double-click it to roll up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("demo needs an interactive terminal")
			}
			if f, err := openDemoLog(); err == nil {
				defer f.Close()
				log.SetOutput(f)
				log.SetFlags(log.LstdFlags | log.Lmicroseconds)
			}

			a, err := openApp(flags)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				keys = demoKeys(a.store.Bindings())
			}
			l := loop.New()
			d, err := desktop.New(desktop.Options{
				Loop:   l,
				Engine: a.engine,
				Keys:   keys,
				Frame:  time.Duration(a.store.FrameMS()) * time.Millisecond,
			})
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.Printf("Demo: Starting with keys %v", keys)
			return d.Run(ctx)
		},
	}
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "Target keys assigned to new windows in turn (default: configured keys)")
	return cmd
}

// demoKeys returns the configured non-wildcard target keys, or a single
// generic key when only the wildcard is configured.
func demoKeys(b config.Bindings) []string {
	var keys []string
	for _, key := range b.Keys() {
		if key != config.Wildcard {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		keys = []string{"Window"}
	}
	return keys
}

func openDemoLog() (*os.File, error) {
	path, err := config.StateFile("demo.log")
	if err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
}
