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
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-waei/query"
)

// ErrConfig indicates that the configuration file could not be read.
var ErrConfig = fmt.Errorf("%w: config", ErrWaei)

// Config is the configuration file format.
type Config struct {
	// DataDirs are the directories to load dictionaries from. They are
	// used when no --data-dir flag is given.
	DataDirs []string `yaml:"data_dirs"`

	// CaseInsensitive enables case insensitive matching.
	CaseInsensitive bool `yaml:"case_insensitive"`

	// FuriganaInsensitive treats hiragana and katakana as equal.
	FuriganaInsensitive bool `yaml:"furigana_insensitive"`

	// Limit is the default maximum number of results.
	Limit int `yaml:"limit"`

	// Color highlights matches using terminal escape codes.
	Color bool `yaml:"color"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Flags returns the query flags selected by the config.
func (c *Config) Flags() query.Flags {
	var flags query.Flags
	if c.CaseInsensitive {
		flags |= query.FlagCaseInsensitive
	}
	if c.FuriganaInsensitive {
		flags |= query.FlagFuriganaInsensitive
	}
	return flags
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "waei", "config.yaml")
}

// loadConfig reads the config file at path. If optional is true a missing
// file results in an empty config.
func loadConfig(path string, optional bool) (*Config, error) {
	config := &Config{}
	if path == "" {
		return config, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if err := yaml.Unmarshal(b, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	if config.Limit < 0 {
		return nil, fmt.Errorf("%w: %s: negative limit %d", ErrConfig, path, config.Limit)
	}
	return config, nil
}
