/*
 * main.go, part of nanocar.
 *
 * Copyright 2025 The nanocar authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//nanocar is a builder for molecular nanocars, meant to be run by a molecular
//editor such as Avogadro 2. Each subcommand is one entry in the editor's menu:
//
//	nanocar <command> --display-name|--menu-path|--print-options
//	nanocar <command> --run-workflow < input.json
//
//The editor sends the current structure and the chosen options on the standard
//input, and reads the result from the standard output. Logs go to the
//standard error.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rmera/nanocar/assembly"
	"github.com/rmera/nanocar/cjson"
	"github.com/rmera/nanocar/config"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

//MenuPath is where the commands appear in the host's menu.
const MenuPath = "&Build|Nanocar"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: nanocar <command> [--display-name] [--menu-path] [--print-options] [--run-workflow|--run-command] [--debug]")
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-15s %s\n", c.name, c.display)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		usage(stderr)
		return 2
	}
	idx := slices.IndexFunc(commands, func(c *command) bool { return c.name == args[0] })
	if idx < 0 {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
	cmd := commands[idx]

	flags := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	debug := flags.Bool("debug", false, "log debug messages")
	printOptions := flags.Bool("print-options", false, "print the user options as JSON")
	runWorkflow := flags.Bool("run-workflow", false, "read the host input and print the result")
	runCommand := flags.Bool("run-command", false, "same as --run-workflow")
	displayName := flags.Bool("display-name", false, "print the name of the command")
	menuPath := flags.Bool("menu-path", false, "print the menu path of the command")
	flags.String("lang", "en", "language of the host, ignored")
	configDir := flags.String("config-dir", defaultDir(), "directory with the nanocar config file")
	if err := flags.Parse(args[1:]); err != nil {
		return 2
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level := cfg.Level()
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Str("command", cmd.name).Logger()

	if *displayName {
		fmt.Fprintln(stdout, cmd.display)
	}
	if *menuPath {
		fmt.Fprintln(stdout, cmd.menu)
	}
	if !*printOptions && !*runWorkflow && !*runCommand {
		return 0
	}
	a, err := newApp(cfg, *configDir, logger)
	if err != nil {
		logger.Error().Err(err).Msg("setting up")
		return 1
	}
	if *printOptions {
		menu, err := cmd.options(a)
		if err != nil {
			logger.Error().Err(err).Msg("building the option menu")
			return 1
		}
		if jerr := menu.Send(stdout); jerr != nil {
			logger.Error().Err(jerr).Msg("sending the option menu")
			return 1
		}
		return 0
	}
	in, jerr := cjson.DecodeInput(stdin)
	if jerr != nil {
		logger.Error().Err(jerr).Str("function", jerr.Function).Msg("reading the host input")
		return 1
	}
	res, err := cmd.run(a, in)
	if err != nil {
		logger.Error().Err(err).Msg("command failed")
		return 1
	}
	if res == nil {
		fmt.Fprintln(stdout, "null")
		return 0
	}
	if jerr := res.Send(stdout); jerr != nil {
		logger.Error().Err(jerr).Msg("sending the result")
		return 1
	}
	return 0
}

//defaultDir is the directory of the executable, where the host installs the plug-in.
func defaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

//app holds what the commands share.
type app struct {
	cfg    *config.Config
	asm    *assembly.Assembler
	exp    *assembly.Exporter
	ledger string
	logger zerolog.Logger
}

func newApp(cfg *config.Config, dir string, logger zerolog.Logger) (*app, error) {
	cat, err := assembly.OpenCatalog(cfg.Assembly.CatalogDir)
	if err != nil {
		return nil, err
	}
	exp, err := assembly.NewExporter(cfg.Export, logger)
	if err != nil {
		return nil, err
	}
	ledger := cfg.Ledger
	if !filepath.IsAbs(ledger) {
		ledger = filepath.Join(dir, ledger)
	}
	return &app{
		cfg:    cfg,
		asm:    assembly.New(cfg.Assembly, cat, logger),
		exp:    exp,
		ledger: ledger,
		logger: logger,
	}, nil
}
