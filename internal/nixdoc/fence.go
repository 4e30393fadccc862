// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package nixdoc

import (
	"strings"
	"unicode"
)

// fence is the opening delimiter of a fenced code block: a run of three or
// more backticks or tildes.
type fence struct {
	char byte
	n    int
}

// openFence reports whether line opens a fenced code block. The language is
// the first word of the info string, if any.
func openFence(line string) (f fence, lang string, ok bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return fence{}, "", false
	}
	f = fence{char: line[0], n: run(line, line[0])}
	if f.n < 3 {
		return fence{}, "", false
	}
	if fields := strings.Fields(line[f.n:]); len(fields) > 0 {
		lang = fields[0]
	}
	return f, lang, true
}

// closes reports whether line closes a block opened with f: at least as many
// fence characters followed only by spaces.
func (f fence) closes(line string) bool {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	n := run(line, f.char)
	if n < f.n {
		return false
	}
	return strings.Trim(line[n:], " ") == ""
}

func run(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// fenceEvent is what a line means to a fenceTracker.
type fenceEvent uint8

const (
	outsideFence fenceEvent = iota // ordinary line outside any block
	fenceOpened                    // line opens a block
	insideFence                    // content line of an open block
	fenceClosed                    // line closes the open block
)

// fenceTracker follows fenced code blocks across consecutive lines.
type fenceTracker struct {
	open bool
	cur  fence
}

// step feeds the next line to the tracker. For lines that open a block it
// also returns the block's language.
func (t *fenceTracker) step(line string) (ev fenceEvent, lang string) {
	if t.open {
		if t.cur.closes(line) {
			t.open = false
			return fenceClosed, ""
		}
		return insideFence, ""
	}
	if f, lang, ok := openFence(line); ok {
		t.open, t.cur = true, f
		return fenceOpened, lang
	}
	return outsideFence, ""
}

// inBlock reports whether a block is currently open.
func (t *fenceTracker) inBlock() bool { return t.open }
