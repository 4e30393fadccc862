// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package nixdoc

import (
	"strings"
	"unicode"
)

// Normalize strips the common leading indentation from every non-blank line
// of s, empties whitespace-only lines and trims surrounding blank lines.
//
// Indentation is counted in characters, not bytes, so multi-byte whitespace
// such as U+00A0 counts once. Indentation beyond the common minimum is kept.
func Normalize(s string) string {
	ls := lines(s)

	indent := -1
	for _, line := range ls {
		if isBlank(line) {
			continue
		}
		if n := leadingSpace(line); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		indent = 0
	}

	for i, line := range ls {
		if isBlank(line) {
			ls[i] = ""
			continue
		}
		ls[i] = dropRunes(line, indent)
	}

	return strings.TrimSpace(strings.Join(ls, "\n"))
}

// lines splits s into lines. A trailing line break does not produce an extra
// empty line and "\r\n" endings are accepted.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	ls := strings.Split(s, "\n")
	if ls[len(ls)-1] == "" {
		ls = ls[:len(ls)-1]
	}
	for i, line := range ls {
		ls[i] = strings.TrimSuffix(line, "\r")
	}
	return ls
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func leadingSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}
