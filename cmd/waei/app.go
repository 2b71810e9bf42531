// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-waei/dictionary"
	"github.com/ianlewis/go-waei/dictionary/stardict"
	"github.com/ianlewis/go-waei/query"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeQueryError is the exit code for a malformed query.
	ExitCodeQueryError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrWaei is a parent error for all command errors.
var ErrWaei = errors.New("waei")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrWaei)

// ErrNoDictionaries indicates that no dictionary could be opened.
var ErrNoDictionaries = fmt.Errorf("%w: no dictionaries found", ErrWaei)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, query.ErrQuery):
		return ExitCodeQueryError
	default:
		return ExitCodeUnknownError
	}
}

// env is the state shared by commands. It is set up before any command
// runs.
type env struct {
	config *Config
	logger *slog.Logger
}

func getEnv(c *cli.Context) *env {
	//nolint:forcetypeassert // Metadata is always set in Before.
	return c.App.Metadata["env"].(*env)
}

// dataDirs returns the directories to load dictionaries from. Flags take
// precedence over the config file.
func (e *env) dataDirs(c *cli.Context) []string {
	if c.IsSet("data-dir") || len(e.config.DataDirs) == 0 {
		return c.StringSlice("data-dir")
	}
	return e.config.DataDirs
}

// openDictionaries opens every dictionary in the data directories. Errors
// for individual dictionaries are logged.
func (e *env) openDictionaries(c *cli.Context) ([]*dictionary.Dictionary, error) {
	opts := &stardict.Options{
		WordLanguage:       stardict.DefaultOptions.WordLanguage,
		DefinitionLanguage: stardict.DefaultOptions.DefinitionLanguage,
		Logger:             e.logger,
	}

	var dicts []*dictionary.Dictionary
	for _, dir := range e.dataDirs(c) {
		if _, err := os.Stat(dir); err != nil {
			e.logger.Debug("skipping data directory", "dir", dir, "err", err)
			continue
		}
		openDicts, errs := stardict.OpenAll(dir, opts)
		for _, err := range errs {
			e.logger.Warn("opening dictionary", "dir", dir, "err", err)
		}
		dicts = append(dicts, openDicts...)
	}

	if len(dicts) == 0 {
		return nil, ErrNoDictionaries
	}
	return dicts, nil
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()

	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, "\nCopyright (c) "), versionInfo.String())
	if err != nil {
		return fmt.Errorf("printing version: %w", err)
	}
	return nil
}

func newWaeiApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search Japanese dictionaries.",
		Description: strings.Join([]string{
			"Japanese dictionary search written in Go.",
			"http://github.com/ianlewis/go-waei",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include dictionaries in `DIR`",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(dictLocations()...),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"C"},
				Value:   defaultConfigPath(),
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "print debug logs",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Metadata:        map[string]interface{}{},
		Before: func(c *cli.Context) error {
			config, err := loadConfig(c.String("config"), !c.IsSet("config"))
			if err != nil {
				return err
			}
			c.App.Metadata["env"] = &env{
				config: config,
				logger: newLogger(c.App.ErrWriter, c.Bool("verbose") || config.Verbose),
			}
			return nil
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			searchCommand,
			lookupCommand,
			listCommand,
		},
	}
}
