// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package nixdoc

import (
	"strings"
	"unicode"
)

// parseArguments parses "- [name] description" entries from the body of an
// Arguments section.
//
// A description continues on following lines that are indented in the
// original text. Other lines are prose and are ignored.
func parseArguments(content string) []Argument {
	var (
		args []Argument
		cur  *Argument
	)
	flush := func() {
		if cur != nil {
			cur.Description = strings.TrimSpace(cur.Description)
			args = append(args, *cur)
			cur = nil
		}
	}

	for _, line := range lines(content) {
		trimmed := strings.TrimSpace(line)

		if name, desc, ok := argumentEntry(trimmed); ok {
			flush()
			cur = &Argument{Name: name, Description: desc}
			continue
		}
		if strings.HasPrefix(trimmed, "- [") {
			// Malformed entry, such as "- []".
			continue
		}

		if cur != nil && trimmed != "" && startsWithSpace(line) {
			if cur.Description != "" {
				cur.Description += " "
			}
			cur.Description += trimmed
		}
	}
	flush()

	return args
}

func argumentEntry(line string) (name, desc string, ok bool) {
	rest, ok := strings.CutPrefix(line, "- [")
	if !ok {
		return "", "", false
	}
	name, desc, ok = strings.Cut(rest, "]")
	if !ok {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(desc), true
}

// parseExamples returns every fenced code block in the body of an Example or
// Examples section. A block left open at the end of the body is still
// returned if it has content.
func parseExamples(content string) []Example {
	var (
		examples []Example
		cur      Example
		code     strings.Builder
		fences   fenceTracker
	)
	for _, line := range lines(content) {
		switch ev, lang := fences.step(line); ev {
		case fenceOpened:
			cur = Example{Language: lang}
			code.Reset()
		case insideFence:
			code.WriteString(line)
			code.WriteByte('\n')
		case fenceClosed:
			cur.Code = code.String()
			examples = append(examples, cur)
			code.Reset()
		}
	}
	if fences.inBlock() && code.Len() > 0 {
		cur.Code = code.String()
		examples = append(examples, cur)
	}
	return examples
}

// firstCodeBlock returns the content of the first fenced code block in
// content. An unclosed block is returned only if it has content.
func firstCodeBlock(content string) (string, bool) {
	var (
		code   strings.Builder
		fences fenceTracker
	)
	for _, line := range lines(content) {
		switch ev, _ := fences.step(line); ev {
		case insideFence:
			code.WriteString(line)
			code.WriteByte('\n')
		case fenceClosed:
			return code.String(), true
		}
	}
	if fences.inBlock() && code.Len() > 0 {
		return code.String(), true
	}
	return "", false
}

// inlineTypeSig returns the first line of the description that looks like a
// legacy "name :: type" annotation.
func inlineTypeSig(desc string) (string, bool) {
	for _, line := range lines(desc) {
		line = strings.TrimSpace(line)
		if isInlineTypeSig(line) {
			return line, true
		}
	}
	return "", false
}

// isInlineTypeSig reports whether line is "name :: type" where name is a bare
// Nix identifier. Prose such as "takes foo :: bar" is rejected because the
// text before "::" contains spaces.
func isInlineTypeSig(line string) bool {
	name, typ, ok := strings.Cut(line, "::")
	if !ok {
		return false
	}
	name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
	if name == "" || typ == "" {
		return false
	}
	for _, r := range name {
		if !isIdentRune(r) {
			return false
		}
	}
	return true
}

// isIdentRune accepts Unicode alphabetic and numeric runes, including
// combining vowel signs such as U+093E.
func isIdentRune(r rune) bool {
	return unicode.In(r, unicode.L, unicode.N, unicode.Other_Alphabetic) || r == '_' || r == '-' || r == '\''
}
