// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package scan finds doc comments in Nix source code.
//
// A comment starts at "/**" and ends at the first "*/" after it. Nothing about
// Nix syntax is understood, so a "/**" inside a string literal is reported too.
// An unterminated comment at the end of input is not reported.
package scan

import "strings"

// Comment is a doc comment found in source code.
type Comment struct {
	// Line is the 1-based line on which the comment starts.
	Line int `json:"line"`
	// Offset is the byte offset of the opening "/**".
	Offset int `json:"offset"`
	// Text is the comment including its delimiters, suitable for
	// passing to nixdoc.Parse.
	Text string `json:"text"`
}

// Comments returns all doc comments found in src, in order of appearance.
func Comments(src string) []Comment {
	var (
		out  []Comment
		line = 1
		pos  int // how far line has been counted
	)
	for i := 0; i < len(src); {
		j := strings.Index(src[i:], "/**")
		if j < 0 {
			break
		}
		start := i + j
		k := strings.Index(src[start+3:], "*/")
		if k < 0 {
			break
		}
		end := start + 3 + k + 2

		line += strings.Count(src[pos:start], "\n")
		pos = start
		out = append(out, Comment{Line: line, Offset: start, Text: src[start:end]})
		i = end
	}
	return out
}
