// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/effects.go
// Summary: effects list/show/enable/disable subcommands.

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelfx/config"
)

func newEffectsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "effects",
		Aliases: []string{"fx"},
		Short:   "Inspect and configure effects",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered effects and where they are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			return printEffects(cmd.OutOrStdout(), a)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one effect with its parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			return printEffect(cmd.OutOrStdout(), a, args[0])
		},
	}

	var target string
	var force bool
	enableCmd := &cobra.Command{
		Use:   "enable <name>",
		Short: "Enable an effect for a target key",
		Example: `  texelfx effects enable Wobbly
  texelfx effects enable GlideOpen --target Editor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			name := args[0]
			if _, ok := a.registry.Lookup(name); !ok && !force {
				return fmt.Errorf("unknown effect %q (use --force to enable it anyway)", name)
			}
			if err := a.engine.EnableFor(target, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enabled %s for %s\n", nameStyle.Render(name), target)
			return nil
		},
	}
	enableCmd.Flags().StringVarP(&target, "target", "t", config.Wildcard, "Target key; \"*\" means every window")
	enableCmd.Flags().BoolVar(&force, "force", false, "Enable even if no such effect is registered")

	var disableTarget string
	disableCmd := &cobra.Command{
		Use:   "disable <name>",
		Short: "Disable an effect for a target key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			if err := a.engine.DisableFor(disableTarget, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Disabled %s for %s\n", nameStyle.Render(args[0]), disableTarget)
			return nil
		},
	}
	disableCmd.Flags().StringVarP(&disableTarget, "target", "t", config.Wildcard, "Target key; \"*\" means every window")

	cmd.AddCommand(listCmd, showCmd, enableCmd, disableCmd)
	return cmd
}

func printEffects(out io.Writer, a *app) error {
	entries := a.registry.List()
	bindings := a.store.Bindings()

	width := len("NAME")
	for _, e := range entries {
		if n := len(e.Descriptor.Name); n > width {
			width = n
		}
	}
	width += 2

	fmt.Fprintln(out, headingStyle.Render(pad("NAME", width)+pad("ENABLED FOR", 16)+"DESCRIPTION"))
	for _, e := range entries {
		targets := strings.Join(targetsFor(bindings, e.Descriptor.Name), ",")
		enabled := dimStyle.Render(pad("-", 16))
		if targets != "" {
			enabled = enabledStyle.Render(pad(targets, 16))
		}
		fmt.Fprintln(out, nameStyle.Render(pad(e.Descriptor.Name, width))+enabled+e.Descriptor.Description)
	}
	printSkipped(out, a)
	return nil
}

func printEffect(out io.Writer, a *app, name string) error {
	entry := a.registry.Get(name)
	if entry == nil {
		return fmt.Errorf("unknown effect %q", name)
	}
	fmt.Fprintln(out, nameStyle.Render(entry.Descriptor.Name))
	fmt.Fprintf(out, "  %s %s\n", dimStyle.Render("description:"), entry.Descriptor.Description)
	fmt.Fprintf(out, "  %s %s\n", dimStyle.Render("source:     "), entry.Source)

	targets := targetsFor(a.store.Bindings(), name)
	if len(targets) == 0 {
		targets = []string{"-"}
	}
	fmt.Fprintf(out, "  %s %s\n", dimStyle.Render("enabled for:"), strings.Join(targets, ", "))

	params := a.store.EffectParams(name)
	if len(params) == 0 {
		return nil
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(out, "  %s\n", dimStyle.Render("parameters:"))
	for _, k := range keys {
		fmt.Fprintf(out, "    %s = %v\n", k, params[k])
	}
	return nil
}

func printSkipped(out io.Writer, a *app) {
	for _, s := range a.plugins.Skipped {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("skipped %s: %v", s.Path, s.Err)))
	}
}

// targetsFor returns the target keys whose list names the effect, sorted.
func targetsFor(b config.Bindings, name string) []string {
	var out []string
	for _, key := range b.Keys() {
		for _, n := range b[key] {
			if n == name {
				out = append(out, key)
				break
			}
		}
	}
	return out
}
