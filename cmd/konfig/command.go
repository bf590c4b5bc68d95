// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ktong/konfig"
	"github.com/ktong/konfig/provider/file"
	kflag "github.com/ktong/konfig/provider/pflag"
	"github.com/ktong/konfig/provider/sysprop"
	"github.com/ktong/konfig/read"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type options struct {
	Files     []string `konfig:"file"`
	URLs      []string `konfig:"url"`
	Resources []string `konfig:"resource"`
	NoDefault bool     `konfig:"no-default"`
	Verbose   bool     `konfig:"verbose"`
	Format    string   `konfig:"-"`
}

// run executes the command with the given arguments,
// after setting the `-Dkey=value` arguments as system properties.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	cmd := newCommand()
	cmd.SetArgs(sysprop.ParseArgs(args))
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		printErr(cmd, err)

		return err //nolint:wrapcheck
	}

	return nil
}

// printErr prints each failure on its own line, or the error as it is
// if it is not a configuration failure, e.g. an unknown flag.
func printErr(cmd *cobra.Command, err error) {
	var failures konfig.Failures
	if !errors.As(err, &failures) {
		cmd.PrintErrln("Error:", err)

		return
	}
	for _, failure := range failures {
		cmd.PrintErrln(failure.Error())
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "konfig [path]",
		Short:         "Print the merged configuration",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			return printConfig(cmd.OutOrStdout(), opts.source().FluentCursor(), args, opts.Format)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringArray("file", nil, "configuration file, may be repeated")
	flags.StringArray("url", nil, "configuration URL, may be repeated")
	flags.StringArray("resource", nil, "configuration resource, may be repeated")
	flags.Bool("no-default", false, "do not fall back to the default configuration stack")
	flags.String("format", formatYAML, "output format, yaml or json")
	flags.BoolP("verbose", "v", false, "log loading details")

	cmd.AddCommand(newWatchCommand())

	return cmd
}

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path]",
		Short: "Print the merged configuration whenever a file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			source := opts.source()
			if err := printConfig(cmd.OutOrStdout(), source.FluentCursor(), args, opts.Format); err != nil {
				return err
			}

			watchers := make([]konfig.Watcher, 0, len(opts.Files))
			for _, path := range opts.Files {
				watchers = append(watchers, file.New(path))
			}

			return konfig.Watch(cmd.Context(), source, func(cursor konfig.Cursor, loadErr error) {
				if err := printConfig(cmd.OutOrStdout(), konfig.NewFluentCursor(cursor, loadErr), args, opts.Format); err != nil {
					printErr(cmd, err)
				}
			}, watchers...)
		},
	}
}

// loadOptions reads the options of the command from its own flags.
func loadOptions(cmd *cobra.Command) (options, error) {
	flags := konfig.FromLoader(kflag.New(kflag.WithFlagSet(cmd.Flags())))

	opts, err := konfig.Load(flags, read.Struct[options]())
	format, formatErr := konfig.Load(flags.At("format"), read.OneOf(formatYAML, formatJSON))
	if err := konfig.Combine(err, formatErr); err != nil {
		return options{}, err
	}
	opts.Format = format

	if opts.Verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	return opts, nil
}

// source stacks the sources named by the options, former ones taking precedence.
func (o options) source() konfig.ObjectSource {
	sources := make([]konfig.ObjectSource, 0, len(o.Files)+len(o.URLs)+len(o.Resources)+1)
	for _, path := range o.Files {
		sources = append(sources, konfig.File(path))
	}
	for _, rawURL := range o.URLs {
		sources = append(sources, konfig.URL(rawURL))
	}
	for _, name := range o.Resources {
		sources = append(sources, konfig.Resources(name))
	}
	if !o.NoDefault {
		sources = append(sources, konfig.Default())
	}
	if len(sources) == 0 {
		return konfig.Empty()
	}

	merged := sources[0]
	for _, source := range sources[1:] {
		merged = merged.WithFallback(source)
	}

	return merged
}

// printConfig prints the node at the path in args, or the root if args is empty.
func printConfig(out io.Writer, root konfig.FluentCursor, args []string, format string) error {
	if len(args) > 0 {
		root = root.AtPath(args[0])
	}

	cursor, err := root.Cursor()
	if err != nil {
		return err //nolint:wrapcheck
	}

	bytes, err := render(cursor.Value(), format)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	_, err = out.Write(bytes)

	return err //nolint:wrapcheck
}
