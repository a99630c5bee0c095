// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parse turns pasted or uploaded batch text into an ordered list of
// work items. It is deliberately tolerant: malformed lines are dropped, never
// rejected, so copy-paste noise does not block a run.
package parse

import (
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Item is one parsed unit of work: a title identifier plus an optional
// free-text annotation destined for the list item's description
type Item struct {
	ID         string // Title identifier (non-empty, trimmed)
	Annotation string // Optional description text, empty when absent
}

// 📦 Batch is an ordered sequence of items. Order is significant: it is the
// processing order
type Batch struct {
	Items []Item
}

// Len returns the number of items in the batch
func (b Batch) Len() int {
	return len(b.Items)
}

// 🔍 IDs returns the identifiers in batch order
func (b Batch) IDs() []string {
	ids := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// 🎯 Parse converts raw text into a Batch. It never fails: any input,
// including empty or malformed text, yields a (possibly empty) batch.
//
// Lines are split on any line-ending style and trimmed; blank lines are
// dropped. If the first surviving line looks like a header ("id" or anything
// starting with "id,", case-insensitively) it is discarded. Each remaining
// line is split on commas with double-quote-delimited fields treated as
// literal: field 0 becomes the ID, field 1 (if present) the annotation, and
// anything past that is ignored. Lines with an empty ID produce no item.
func Parse(raw string) Batch {
	var batch Batch

	lines := splitLines(raw)
	if len(lines) > 0 && isHeader(lines[0]) {
		lines = lines[1:]
	}

	for _, line := range lines {
		fields := splitFields(line)

		id := strings.TrimSpace(fields[0])
		if id == "" {
			continue
		}

		var annotation string
		if len(fields) > 1 {
			annotation = strings.TrimSpace(fields[1])
		}

		batch.Items = append(batch.Items, Item{
			ID:         id,
			Annotation: annotation,
		})
	}

	return batch
}

// 📥 ParseReader reads everything from r and parses it. Direct text entry and
// uploaded files go through the same path: the source makes no difference.
func ParseReader(r io.Reader) (Batch, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, errors.Errorf("reading input: %w", err)
	}
	return Parse(string(raw)), nil
}

// splitLines splits on CRLF, CR, or LF, trims each line, and drops blanks,
// preserving the relative order of what survives
func splitLines(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isHeader reports whether the first surviving line is a column header rather
// than data
func isHeader(line string) bool {
	lower := strings.ToLower(line)
	return lower == "id" || strings.HasPrefix(lower, "id,")
}

// splitFields splits a line into fields on commas, honouring double-quoted
// fields. Only the subset the batch format needs is implemented: a small
// in-quotes/out-of-quotes state machine where a doubled double-quote inside a
// quoted field is an escaped literal quote, and commas inside quoted fields
// do not split the line.
func splitFields(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	fields = append(fields, current.String())

	return fields
}
