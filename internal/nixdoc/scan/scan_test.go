// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package scan

import (
	"testing"

	"go.astrophena.name/nixdoc/internal/testutil"
)

func TestComments(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		src  string
		want []Comment
	}{
		"empty": {src: ""},
		"no comments": {
			src: "{ x = 1; /* plain */ }\n# line comment\n",
		},
		"single": {
			src: "/** Identity. */\nx: x\n",
			want: []Comment{
				{Line: 1, Offset: 0, Text: "/** Identity. */"},
			},
		},
		"several": {
			src: "{\n  /**\n    Head.\n  */\n  head = l: builtins.head l;\n\n  /** Tail. */\n  tail = l: builtins.tail l;\n}\n",
			want: []Comment{
				{Line: 2, Offset: 4, Text: "/**\n    Head.\n  */"},
				{Line: 7, Offset: 55, Text: "/** Tail. */"},
			},
		},
		"first terminator wins": {
			src: "/** a */ b */",
			want: []Comment{
				{Line: 1, Offset: 0, Text: "/** a */"},
			},
		},
		"unterminated at end": {
			src: "/** done */\n/** never closed\n",
			want: []Comment{
				{Line: 1, Offset: 0, Text: "/** done */"},
			},
		},
		"opening stars are not a terminator": {
			src: "/**/ x */",
			want: []Comment{
				{Line: 1, Offset: 0, Text: "/**/ x */"},
			},
		},
		"plain block comment is skipped": {
			src: "/* a */\n\n/** b */",
			want: []Comment{
				{Line: 3, Offset: 9, Text: "/** b */"},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertEqual(t, Comments(tc.src), tc.want)
		})
	}
}
