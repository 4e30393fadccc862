// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import "strings"

func markdown(entries []Entry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeMarkdown(&sb, e)
	}
	return sb.String()
}

func writeMarkdown(sb *strings.Builder, e Entry) {
	d := e.Doc
	sb.WriteString("## `" + e.Location() + "`\n")

	if desc := d.MainContent(); desc != "" {
		sb.WriteString("\n" + desc + "\n")
	}

	if d.IsDeprecated() {
		notice, _ := d.DeprecationNotice()
		sb.WriteString("\n> **Deprecated**")
		if notice != "" {
			sb.WriteString(": " + strings.ReplaceAll(notice, "\n", "\n> "))
		}
		sb.WriteString("\n")
	}

	if sig, ok := d.TypeSig(); ok {
		sb.WriteString("\n### Type\n\n")
		writeCodeBlock(sb, "", sig)
	}

	if args := d.Arguments(); len(args) > 0 {
		sb.WriteString("\n### Arguments\n\n")
		for _, arg := range args {
			sb.WriteString("- `" + arg.Name + "`")
			if arg.Description != "" {
				sb.WriteString(": " + strings.ReplaceAll(arg.Description, "\n", "\n  "))
			}
			sb.WriteString("\n")
		}
	}

	if examples := d.Examples(); len(examples) > 0 {
		sb.WriteString("\n### Examples\n")
		for _, ex := range examples {
			sb.WriteString("\n")
			writeCodeBlock(sb, ex.Language, ex.Code)
		}
	}

	writeProse(sb, "Notes", d.Notes())
	writeProse(sb, "Warnings", d.WarningsContent())

	for _, sec := range d.Sections {
		if sec.Kind().IsKnown() {
			continue
		}
		writeProse(sb, sec.Heading, []string{sec.Content})
	}
}

func writeProse(sb *strings.Builder, heading string, paras []string) {
	var nonEmpty []string
	for _, p := range paras {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return
	}
	sb.WriteString("\n### " + heading + "\n")
	for _, p := range nonEmpty {
		sb.WriteString("\n" + p + "\n")
	}
}

// writeCodeBlock writes code in a backtick fence long enough that no line of
// code can close it.
func writeCodeBlock(sb *strings.Builder, lang, code string) {
	n := 3
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimLeft(line, " \t")
		if r := len(line) - len(strings.TrimLeft(line, "`")); r >= n {
			n = r + 1
		}
	}
	fence := strings.Repeat("`", n)
	sb.WriteString(fence + lang + "\n")
	sb.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence + "\n")
}
