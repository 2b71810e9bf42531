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

// Package query implements dictionary search queries.
//
// A query is a list of regular expression terms. Terms are separated by the
// logical connectors "&&" and "||" and evaluated from left to right without
// precedence. Terms next to each other are ANDed as soon as any connector
// appears. A term may be restricted to one record column with a key prefix:
//
//	日本 strokes:7
//	(ねこ||いぬ) && definition:animal
//	reading:(に&&ほん)
//
// Parentheses group terms. A group without connectors or keys is kept as a
// regular expression group so "1(2)3" is the single pattern "1(2)3".
// Lookaround groups such as "(?=...)" and "(?<!...)" are always kept
// verbatim. Parentheses, connectors and key delimiters are escaped with a
// backslash.
//
// Queries are processed in three steps:
//  1. [NewTree] parses the text into a tree of [Node].
//  2. [Node.Compile] simplifies a copy of the tree and compiles its terms.
//  3. [Node.Match] evaluates the compiled tree against a [Record] and
//     optionally records every match position in a [MatchInfo].
package query
