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


// Package waei searches Japanese dictionaries with a small query language.
//
// A query is a regular expression pattern or several patterns joined by
// logical connectors:
//
//	猫&&cat           both patterns must match
//	ねこ||いぬ        either pattern may match
//	kanji:猫          the pattern must match the "kanji" column
//	strokes:1[16]     ordinal columns match the whole value
//	(子猫||猫)&&cat   parentheses group patterns
//
// Unkeyed patterns are matched against every column in a language the
// record searches by default.
//
// The module is split into packages:
//
//   - [github.com/ianlewis/go-waei/query] parses, compiles and matches
//     queries against records.
//   - [github.com/ianlewis/go-waei/dictionary] holds in-memory dictionaries
//     with a headword index.
//   - [github.com/ianlewis/go-waei/dictionary/stardict] loads StarDict
//     dictionaries.
//   - [github.com/ianlewis/go-waei/search] searches many records
//     concurrently.
//
// The waei command in cmd/waei is a command line interface to these
// packages.
package waei
