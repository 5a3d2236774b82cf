// seehuhn.de/go/ftrain - function-train approximation of multivariate functions
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Ftrain is a command line tool for experimenting with function
// approximations and function trains.
//
// Usage:
//
//	ftrain [--config FILE] [--set key=value]... [-v] COMMAND ...
//
// Run "ftrain help" for a list of commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/ftrain/config"
	"seehuhn.de/go/ftrain/ftrain"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/skeleton"
)

// app holds the state shared by all sub-commands.
type app struct {
	verbose    bool
	configFile string
	overrides  []string

	log  *zap.Logger
	opts *config.Options
	p    *message.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{p: message.NewPrinter(language.English)}

	root := &cobra.Command{
		Use:           "ftrain",
		Short:         "Approximate functions and build function trains",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.configFile, "config", "", "read options from this YAML `file`")
	flags.StringArrayVar(&a.overrides, "set", nil, "override an option (`key=value`, repeatable)")

	root.AddCommand(
		a.approxCmd(),
		a.jumpsCmd(),
		a.quadCmd(),
		a.infoCmd(),
		a.skeletonCmd(),
		a.optionsCmd(),
	)
	return root
}

// setup creates the logger and reads the options.
func (a *app) setup() error {
	cfg := zap.NewProductionConfig()
	if a.verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	piecewise.SetLogger(log.Named("piecewise"))
	ftrain.SetLogger(log.Named("ftrain"))
	skeleton.SetLogger(log.Named("skeleton"))

	opts := config.Default()
	if a.configFile != "" {
		opts, err = config.Load(a.configFile)
		if err != nil {
			return err
		}
		log.Debug("options loaded", zap.String("file", a.configFile))
	}
	if err := opts.ApplyOverrides(a.overrides); err != nil {
		return err
	}
	a.opts = opts
	return nil
}

func (a *app) optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the effective options as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.opts.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ftrain:", err)
		os.Exit(1)
	}
}
