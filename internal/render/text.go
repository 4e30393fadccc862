// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const (
	indentBody = 2
	indentItem = 4
	indentDesc = 6
)

func text(entries []Entry, width int) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeText(&sb, e, width)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, e Entry, width int) {
	d := e.Doc
	sb.WriteString(e.Location() + "\n")

	block := func(s string) {
		sb.WriteString("\n")
		sb.WriteString(s)
	}

	if desc := d.MainContent(); desc != "" {
		block(wrap(desc, width, indentBody))
	}

	if d.IsDeprecated() {
		notice, _ := d.DeprecationNotice()
		block(wrap(strings.TrimSpace("DEPRECATED: "+notice), width, indentBody))
	}

	if sig, ok := d.TypeSig(); ok {
		block(pad("Type:", indentBody) + verbatim(sig, indentItem))
	}

	if args := d.Arguments(); len(args) > 0 {
		var b strings.Builder
		b.WriteString(pad("Arguments:", indentBody))
		for _, arg := range args {
			b.WriteString(pad(arg.Name, indentItem))
			if arg.Description != "" {
				b.WriteString(wrap(arg.Description, width, indentDesc))
			}
		}
		block(b.String())
	}

	if examples := d.Examples(); len(examples) > 0 {
		var b strings.Builder
		b.WriteString(pad("Examples:", indentBody))
		for i, ex := range examples {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(verbatim(ex.Code, indentItem))
		}
		block(b.String())
	}

	prose := func(label string, paras []string) {
		for _, p := range paras {
			if p == "" {
				continue
			}
			block(pad(label+":", indentBody) + wrap(p, width, indentItem))
		}
	}
	prose("Note", d.Notes())
	prose("Warning", d.WarningsContent())
	for _, sec := range d.Sections {
		if !sec.Kind().IsKnown() {
			prose(sec.Heading, []string{sec.Content})
		}
	}
}

// wrap word-wraps s so that indented lines fit in width, then indents every
// non-empty line. Words longer than the available space are not broken.
func wrap(s string, width, indent int) string {
	limit := max(width-indent, 1)
	return verbatim(wordwrap.String(s, limit), indent)
}

// verbatim indents every non-empty line of s and ends it with a newline.
func verbatim(s string, indent int) string {
	prefix := strings.Repeat(" ", indent)
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			sb.WriteString(prefix + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func pad(s string, indent int) string {
	return strings.Repeat(" ", indent) + s + "\n"
}
