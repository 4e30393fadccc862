// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package nixdoc parses Nixdoc documentation comments (RFC 145).
//
// A Nixdoc comment starts with "/**" and ends with "*/". Its content is
// Markdown, usually indented by two spaces; the common indentation is
// stripped. Sections are introduced by level-1 headings ("# Section") and
// everything before the first heading is the description:
//
//	/**
//	  Adds two numbers.
//
//	  # Arguments
//
//	  - [a] First
//	  - [b] Second
//	*/
//
// Recognized section headings (case-insensitive) are Type, Arguments or Args,
// Example, Examples, Note, Notes, Warning, Warnings or Caution, and Deprecated.
// Any other heading is kept and reported with a [Warning].
//
// Structured data such as arguments and examples is extracted on demand by
// the accessor methods of [Doc]; parsing itself only splits the comment into
// sections.
package nixdoc

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Errors returned by [Parse].
var (
	// ErrNotDocComment means the input does not start with /**.
	ErrNotDocComment = errors.New("not a doc comment: input must start with '/**'")
	// ErrUnclosedComment means the input starts with /** but does not end with */.
	ErrUnclosedComment = errors.New("unclosed doc comment: missing '*/' terminator")
	// ErrEmptyComment means the comment has no content after normalization.
	ErrEmptyComment = errors.New("empty doc comment")
)

const (
	openDelim  = "/**"
	closeDelim = "*/"
)

// Doc is a parsed Nixdoc comment.
//
// A Doc is never modified after [Parse] returns it, so it can be shared
// between goroutines.
type Doc struct {
	// RawContent is the comment body with delimiters and common indentation
	// removed.
	RawContent string `json:"raw_content"`
	// Description is the Markdown text before the first section heading.
	Description string `json:"description"`
	// Sections are the sections in document order.
	Sections []Section `json:"sections"`
	// Warnings are non-fatal problems found during parsing.
	Warnings []Warning `json:"warnings"`
}

// IsDocComment reports whether s looks like a doc comment. It only checks the
// delimiters; use [Parse] for full validation.
func IsDocComment(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, openDelim) && strings.HasSuffix(s, closeDelim)
}

// Parse parses s as a Nixdoc comment. Leading and trailing whitespace is
// ignored.
//
// It returns [ErrNotDocComment], [ErrUnclosedComment] or [ErrEmptyComment] if
// s is not a usable doc comment.
func Parse(s string) (*Doc, error) {
	s = strings.TrimSpace(s)

	inner, ok := strings.CutPrefix(s, openDelim)
	if !ok {
		return nil, ErrNotDocComment
	}
	inner, ok = strings.CutSuffix(inner, closeDelim)
	if !ok {
		return nil, ErrUnclosedComment
	}

	content := Normalize(inner)
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}

	desc, sections, warnings := segment(content)
	for _, sec := range sections {
		if !sec.Kind().IsKnown() {
			warnings = append(warnings, Warning{
				Kind:    UnknownSection,
				Message: fmt.Sprintf("unrecognized section heading: '%s'", sec.Heading),
			})
		}
	}

	return &Doc{
		RawContent:  content,
		Description: desc,
		Sections:    sections,
		Warnings:    warnings,
	}, nil
}

// Title returns the first non-blank line of the description, or an empty
// string if there is no description.
func (d *Doc) Title() string {
	desc := strings.TrimSpace(d.Description)
	first, _, _ := strings.Cut(desc, "\n")
	return strings.TrimSpace(first)
}

// MainContent returns the trimmed description.
func (d *Doc) MainContent() string {
	return strings.TrimSpace(d.Description)
}

// Section returns the first section whose heading equals name,
// case-insensitively.
func (d *Doc) Section(name string) (Section, bool) {
	name = strings.ToLower(name)
	for _, sec := range d.Sections {
		if strings.ToLower(sec.Heading) == name {
			return sec, true
		}
	}
	return Section{}, false
}

// TypeSig returns the function's type signature.
//
// If the comment has a Type section, the signature is the content of its
// first fenced code block, and ok is false when there is none. Otherwise
// TypeSig looks for a legacy "name :: type" line in the description.
func (d *Doc) TypeSig() (sig string, ok bool) {
	if sec, found := d.Section("Type"); found {
		return firstCodeBlock(sec.Content)
	}
	return inlineTypeSig(d.Description)
}

// Arguments returns the arguments listed in the Arguments (or Args) section.
func (d *Doc) Arguments() []Argument {
	sec, ok := d.Section("Arguments")
	if !ok {
		sec, ok = d.Section("Args")
	}
	if !ok {
		return nil
	}
	return parseArguments(sec.Content)
}

// Examples returns the code blocks of all Example and Examples sections, in
// document order.
func (d *Doc) Examples() []Example {
	var examples []Example
	for _, sec := range d.Sections {
		if t := sec.Kind().Tag; t == TagExample || t == TagExamples {
			examples = append(examples, parseExamples(sec.Content)...)
		}
	}
	return examples
}

// Notes returns the trimmed content of all Note and Notes sections.
func (d *Doc) Notes() []string {
	return d.contentOf(TagNote, TagNotes)
}

// WarningsContent returns the trimmed content of all Warning, Warnings and
// Caution sections.
func (d *Doc) WarningsContent() []string {
	return d.contentOf(TagWarning)
}

// IsDeprecated reports whether the comment has a Deprecated section.
func (d *Doc) IsDeprecated() bool {
	_, ok := d.Section("Deprecated")
	return ok
}

// DeprecationNotice returns the trimmed content of the Deprecated section.
func (d *Doc) DeprecationNotice() (string, bool) {
	sec, ok := d.Section("Deprecated")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(sec.Content), true
}

func (d *Doc) contentOf(tags ...Tag) []string {
	var out []string
	for _, sec := range d.Sections {
		if slices.Contains(tags, sec.Kind().Tag) {
			out = append(out, strings.TrimSpace(sec.Content))
		}
	}
	return out
}
