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

package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Item
	}{
		{
			name: "empty_input",
			raw:  "",
			want: nil,
		},
		{
			name: "only_whitespace",
			raw:  "  \n\t\n   \n",
			want: nil,
		},
		{
			name: "single_id_no_comma",
			raw:  "tt9",
			want: []Item{{ID: "tt9", Annotation: ""}},
		},
		{
			name: "id_and_annotation",
			raw:  "tt1,watch this",
			want: []Item{{ID: "tt1", Annotation: "watch this"}},
		},
		{
			name: "quoted_annotation_with_comma",
			raw:  `tt1,"a, b"`,
			want: []Item{{ID: "tt1", Annotation: "a, b"}},
		},
		{
			name: "doubled_quote_is_literal",
			raw:  `tt1,"say ""hi"", twice"`,
			want: []Item{{ID: "tt1", Annotation: `say "hi", twice`}},
		},
		{
			name: "header_id_description_dropped",
			raw:  "id,description\ntt1,\"d\"",
			want: []Item{{ID: "tt1", Annotation: "d"}},
		},
		{
			name: "header_bare_id_dropped",
			raw:  "id\ntt1,\"d\"",
			want: []Item{{ID: "tt1", Annotation: "d"}},
		},
		{
			name: "header_case_insensitive",
			raw:  "ID,Description\ntt1,d",
			want: []Item{{ID: "tt1", Annotation: "d"}},
		},
		{
			name: "header_with_extra_columns_dropped",
			raw:  "id,description,created\ntt1,d",
			want: []Item{{ID: "tt1", Annotation: "d"}},
		},
		{
			name: "no_header_first_line_kept",
			raw:  "tt1,\"d\"",
			want: []Item{{ID: "tt1", Annotation: "d"}},
		},
		{
			name: "only_commas_line_dropped",
			raw:  ",,,\ntt2",
			want: []Item{{ID: "tt2", Annotation: ""}},
		},
		{
			name: "blank_lines_and_crlf",
			raw:  "tt1,one\r\n\r\ntt2,two\rtt3\n",
			want: []Item{
				{ID: "tt1", Annotation: "one"},
				{ID: "tt2", Annotation: "two"},
				{ID: "tt3", Annotation: ""},
			},
		},
		{
			name: "fields_beyond_second_ignored",
			raw:  "tt1,desc,extra,more",
			want: []Item{{ID: "tt1", Annotation: "desc"}},
		},
		{
			name: "duplicates_kept_in_order",
			raw:  "tt1,a\ntt1,b",
			want: []Item{
				{ID: "tt1", Annotation: "a"},
				{ID: "tt1", Annotation: "b"},
			},
		},
		{
			name: "fields_trimmed",
			raw:  "  tt1 ,  spaced out  ",
			want: []Item{{ID: "tt1", Annotation: "spaced out"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			assert.Equal(t, tt.want, got.Items, "parsed items should match")
		})
	}
}

func TestParse_NeverProducesEmptyID(t *testing.T) {
	inputs := []string{
		"",
		",",
		",desc",
		"\"\",desc",
		"   ,x\n,\n,,\ntt1",
		"id,description\n,orphan annotation",
	}

	for _, raw := range inputs {
		got := Parse(raw)
		for _, item := range got.Items {
			assert.NotEmpty(t, item.ID, "no item may carry an empty id (input %q)", raw)
		}
	}
}

func TestParse_Pure(t *testing.T) {
	raw := "id,description\ntt1,\"a, b\"\ntt2\n,,\ntt1,again"

	first := Parse(raw)
	second := Parse(raw)

	assert.Equal(t, first, second, "parsing the same input twice should be identical")
}

func TestParseReader(t *testing.T) {
	batch, err := ParseReader(strings.NewReader("tt1,from a file\ntt2"))
	require.NoError(t, err, "ParseReader should succeed")

	assert.Equal(t, 2, batch.Len(), "should parse both lines")
	assert.Equal(t, []string{"tt1", "tt2"}, batch.IDs(), "ids should be in input order")
}

func TestTemplate(t *testing.T) {
	batch := Parse(Template)

	require.Equal(t, 1, batch.Len(), "template should yield exactly one item")
	assert.Equal(t, "tt0111161", batch.Items[0].ID, "template id should match")
	assert.Contains(t, batch.Items[0].Annotation, ",", "template annotation should exercise quoting")

	lines := strings.Split(strings.TrimRight(Template, "\n"), "\n")
	require.Len(t, lines, 2, "template should be header plus one data row")
	assert.Equal(t, "id,description", lines[0], "template header should match")
}
