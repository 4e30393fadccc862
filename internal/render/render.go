// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package render writes parsed doc comments in human- and machine-readable
// formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"go.astrophena.name/nixdoc/internal/nixdoc"
)

// Entry is a doc comment together with its location in source code.
type Entry struct {
	Path string      `json:"path"`
	Line int         `json:"line"`
	Doc  *nixdoc.Doc `json:"doc"`
}

// Location returns "path:line".
func (e Entry) Location() string { return e.Path + ":" + strconv.Itoa(e.Line) }

// Format is an output format.
type Format int

// Output formats.
const (
	Text Format = iota
	Markdown
	HTML
	JSON
)

var formatNames = [...]string{
	Text:     "text",
	Markdown: "markdown",
	HTML:     "html",
	JSON:     "json",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return formatNames[f]
}

// Formats returns the names of all formats.
func Formats() []string { return slices.Clone(formatNames[:]) }

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(formatNames[:], ", "))
}

// Options control rendering.
type Options struct {
	// Width is the line length limit for the text format. Zero means 80.
	Width int
}

// DefaultWidth is the text format line length used when Options.Width is
// zero.
const DefaultWidth = 80

// Render writes entries to w in format f.
func Render(w io.Writer, f Format, entries []Entry, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	switch f {
	case Text:
		_, err := io.WriteString(w, text(entries, opts.Width))
		return err
	case Markdown:
		_, err := io.WriteString(w, markdown(entries))
		return err
	case HTML:
		return renderHTML(w, entries)
	case JSON:
		return renderJSON(w, entries)
	}
	return fmt.Errorf("render: unsupported format %v", f)
}

func renderJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
