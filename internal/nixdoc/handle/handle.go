// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package handle exposes parsed doc comments through opaque integer handles.
//
// It is the foundation of the C library built from cmd/libnixdoc: callers
// outside Go never see a [nixdoc.Doc], only a [Handle] they must release with
// [Table.Free]. Unknown or freed handles yield empty results, and a panic
// inside the parser is reported as [StatusPanic] instead of crashing the
// host process.
package handle

import (
	"fmt"
	"sync/atomic"

	"go.astrophena.name/nixdoc/internal/nixdoc"
	"go.astrophena.name/nixdoc/internal/util/syncx"
)

// Status is the result code of a parse operation.
type Status int

// Status codes. Their values are part of the C interface.
const (
	StatusSuccess    Status = 0
	StatusParseError Status = 1
	StatusNull       Status = 2
	StatusPanic      Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusParseError:
		return "parse error"
	case StatusNull:
		return "null argument"
	case StatusPanic:
		return "internal error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Handle identifies a parsed doc comment stored in a [Table]. The zero
// Handle is never issued.
type Handle uint64

// Table stores parsed doc comments. It is safe for concurrent use.
type Table struct {
	last  atomic.Uint64
	docs  *syncx.Protected[map[Handle]*nixdoc.Doc]
	parse func(string) (*nixdoc.Doc, error)
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		docs:  syncx.Protect(make(map[Handle]*nixdoc.Doc)),
		parse: nixdoc.Parse,
	}
}

// Check parses input and reports whether it is a valid doc comment. The
// result is not stored.
func (t *Table) Check(input string) (st Status) {
	defer func() {
		if recover() != nil {
			st = StatusPanic
		}
	}()
	if _, err := t.parse(input); err != nil {
		return StatusParseError
	}
	return StatusSuccess
}

// Parse parses input and stores the result, returning a handle to it. The
// handle is zero unless the status is [StatusSuccess].
func (t *Table) Parse(input string) (h Handle, st Status) {
	defer func() {
		if recover() != nil {
			h, st = 0, StatusPanic
		}
	}()
	doc, err := t.parse(input)
	if err != nil {
		return 0, StatusParseError
	}
	h = Handle(t.last.Add(1))
	t.docs.Access(func(docs map[Handle]*nixdoc.Doc) {
		docs[h] = doc
	})
	return h, StatusSuccess
}

// Free releases the doc comment identified by h. Freeing an unknown handle
// does nothing.
func (t *Table) Free(h Handle) {
	t.docs.Access(func(docs map[Handle]*nixdoc.Doc) {
		delete(docs, h)
	})
}

// Len returns the number of stored doc comments.
func (t *Table) Len() int {
	var n int
	t.docs.RAccess(func(docs map[Handle]*nixdoc.Doc) { n = len(docs) })
	return n
}

// Doc returns the doc comment identified by h.
func (t *Table) Doc(h Handle) (*nixdoc.Doc, bool) {
	var (
		doc *nixdoc.Doc
		ok  bool
	)
	t.docs.RAccess(func(docs map[Handle]*nixdoc.Doc) { doc, ok = docs[h] })
	return doc, ok
}

// String getters return an empty string with ok set for an unknown handle,
// and ok == false (NULL on the C side) for a missing field.

// Title returns the title of the doc comment.
func (t *Table) Title(h Handle) (string, bool) {
	return stringField(t, h, func(d *nixdoc.Doc) (string, bool) {
		title := d.Title()
		return title, title != ""
	})
}

// Description returns the trimmed description of the doc comment.
func (t *Table) Description(h Handle) string {
	s, _ := stringField(t, h, func(d *nixdoc.Doc) (string, bool) {
		return d.MainContent(), true
	})
	return s
}

// TypeSig returns the type signature of the doc comment.
func (t *Table) TypeSig(h Handle) (string, bool) {
	return stringField(t, h, (*nixdoc.Doc).TypeSig)
}

// DeprecationNotice returns the deprecation notice of the doc comment.
func (t *Table) DeprecationNotice(h Handle) (string, bool) {
	return stringField(t, h, (*nixdoc.Doc).DeprecationNotice)
}

// IsDeprecated reports whether the doc comment is deprecated. It is false for
// unknown handles.
func (t *Table) IsDeprecated(h Handle) (deprecated bool) {
	defer func() {
		if recover() != nil {
			deprecated = false
		}
	}()
	doc, ok := t.Doc(h)
	return ok && doc.IsDeprecated()
}

// Arguments returns the arguments of the doc comment formatted as
// "name: description". Unknown handles yield ok == false.
func (t *Table) Arguments(h Handle) ([]string, bool) {
	return listField(t, h, func(d *nixdoc.Doc) []string {
		args := d.Arguments()
		out := make([]string, 0, len(args))
		for _, arg := range args {
			out = append(out, arg.Name+": "+arg.Description)
		}
		return out
	})
}

// Examples returns the examples of the doc comment formatted as
// "language: code", with an empty language for untagged blocks. Unknown
// handles yield ok == false.
func (t *Table) Examples(h Handle) ([]string, bool) {
	return listField(t, h, func(d *nixdoc.Doc) []string {
		examples := d.Examples()
		out := make([]string, 0, len(examples))
		for _, ex := range examples {
			out = append(out, ex.Language+": "+ex.Code)
		}
		return out
	})
}

// Notes returns the notes of the doc comment. Unknown handles yield
// ok == false.
func (t *Table) Notes(h Handle) ([]string, bool) {
	return listField(t, h, func(d *nixdoc.Doc) []string {
		return append([]string{}, d.Notes()...)
	})
}

// Warnings returns the content of the Warning and Caution sections of the doc
// comment. Unknown handles yield ok == false.
func (t *Table) Warnings(h Handle) ([]string, bool) {
	return listField(t, h, func(d *nixdoc.Doc) []string {
		return append([]string{}, d.WarningsContent()...)
	})
}

func stringField(t *Table, h Handle, get func(*nixdoc.Doc) (string, bool)) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	doc, found := t.Doc(h)
	if !found {
		return "", true
	}
	return get(doc)
}

func listField(t *Table, h Handle, get func(*nixdoc.Doc) []string) (list []string, ok bool) {
	defer func() {
		if recover() != nil {
			list, ok = nil, false
		}
	}()
	doc, found := t.Doc(h)
	if !found {
		return nil, false
	}
	return get(doc), true
}
