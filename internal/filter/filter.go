// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package filter selects doc comments with a Starlark script.
//
// The script must define a function keep(doc) that returns a truthy value for
// every doc comment that should be kept. doc is a struct with these fields:
//
//	path                source file
//	line                1-based line of the comment
//	title               first line of the description
//	description         description text
//	type_sig            type signature or None
//	arguments           list of {"name", "description"} dicts
//	examples            list of {"language", "code"} dicts
//	notes               list of strings
//	warnings_content    list of Warning and Caution section bodies
//	deprecated          bool
//	deprecation_notice  string or None
//	sections            list of {"heading", "content"} dicts
//	warnings            list of {"kind", "message"} dicts
//
// For example, to keep only deprecated functions:
//
//	def keep(doc):
//	    return doc.deprecated
package filter

import (
	"errors"
	"fmt"

	"go.astrophena.name/nixdoc/internal/logger"
	"go.astrophena.name/nixdoc/internal/nixdoc"
	"go.astrophena.name/nixdoc/internal/starlark/go2star"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// maxSteps bounds the work done by one call of keep.
const maxSteps = 1_000_000

// Filter is a loaded filter script. It is safe for concurrent use.
type Filter struct {
	name string
	keep *starlark.Function
	logf logger.Logf
}

// Load executes the script src, using name in error messages. Output of the
// print builtin goes to logf.
func Load(name, src string, logf logger.Logf) (*Filter, error) {
	if logf == nil {
		logf = logger.Discard
	}
	globals, err := starlark.ExecFileOptions(
		&syntax.FileOptions{
			TopLevelControl: true,
		},
		&starlark.Thread{
			Name:  name,
			Print: func(_ *starlark.Thread, msg string) { logf("%s", msg) },
		},
		name,
		src,
		starlark.StringDict{
			"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
		},
	)
	if err != nil {
		return nil, err
	}

	keep, ok := globals["keep"].(*starlark.Function)
	if !ok {
		return nil, errors.New("keep must be defined and be a function")
	}
	if keep.NumParams() != 1 {
		return nil, fmt.Errorf("keep must take exactly one argument, got %d", keep.NumParams())
	}

	return &Filter{name: name, keep: keep, logf: logf}, nil
}

// Keep reports whether the doc comment found at path:line passes the filter.
func (f *Filter) Keep(path string, line int, doc *nixdoc.Doc) (bool, error) {
	val, err := docValue(path, line, doc)
	if err != nil {
		return false, err
	}

	thread := &starlark.Thread{
		Name:  f.name,
		Print: func(_ *starlark.Thread, msg string) { f.logf("%s", msg) },
	}
	thread.SetMaxExecutionSteps(maxSteps)

	res, err := starlark.Call(thread, f.keep, starlark.Tuple{val}, nil)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return false, fmt.Errorf("%s:%d: %s", path, line, evalErr.Backtrace())
		}
		return false, fmt.Errorf("%s:%d: %w", path, line, err)
	}
	return bool(res.Truth()), nil
}

func docValue(path string, line int, doc *nixdoc.Doc) (starlark.Value, error) {
	fields := starlark.StringDict{
		"path":               starlark.String(path),
		"line":               starlark.MakeInt(line),
		"title":              starlark.String(doc.Title()),
		"description":        starlark.String(doc.MainContent()),
		"type_sig":           optional(doc.TypeSig()),
		"deprecated":         starlark.Bool(doc.IsDeprecated()),
		"deprecation_notice": optional(doc.DeprecationNotice()),
	}

	for name, v := range map[string]any{
		"arguments":        doc.Arguments(),
		"examples":         doc.Examples(),
		"notes":            doc.Notes(),
		"warnings_content": doc.WarningsContent(),
		"sections":         doc.Sections,
		"warnings":         doc.Warnings,
	} {
		conv, err := go2star.To(v)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", name, err)
		}
		fields[name] = conv
	}

	return starlarkstruct.FromStringDict(starlarkstruct.Default, fields), nil
}

func optional(s string, ok bool) starlark.Value {
	if !ok {
		return starlark.None
	}
	return starlark.String(s)
}
