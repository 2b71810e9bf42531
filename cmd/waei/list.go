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
	"io"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-waei/dictionary"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "list available dictionaries",
	Action: func(c *cli.Context) error {
		dicts, err := getEnv(c).openDictionaries(c)
		if err != nil {
			return err
		}
		listDictionaries(c.App.Writer, dicts)
		return nil
	},
}

// listDictionaries prints a table of dictionaries.
func listDictionaries(w io.Writer, dicts []*dictionary.Dictionary) {
	tbl := table.New("Name", "Entries", "Version", "Path").WithWriter(w)
	for _, d := range dicts {
		info := d.Info()
		tbl.AddRow(info.Name, d.Len(), info.Version, info.Path)
	}
	tbl.Print()
}
