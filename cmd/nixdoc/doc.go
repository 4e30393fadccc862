// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Nixdoc extracts documentation comments (RFC 145) from Nix source files and
// renders them.
//
// # Usage
//
//	$ nixdoc [flags...] <file or directory>...
//
// Every comment starting with /** in the given files is parsed. Directories
// are walked recursively for .nix files, skipping hidden directories. The
// special name "-" reads Nix source from standard input.
//
// Comments that fail to parse are reported on standard error together with
// parse warnings, in the form "path:line: message". Use -quiet to silence
// them and -strict to treat a parse failure as fatal.
//
// # Formats
//
// The -format flag selects the output: text (default), markdown, html or
// json. In the text format, prose is wrapped to -width columns. With -o, the
// output replaces the named file atomically.
//
// # Filtering
//
// The -filter flag names a Starlark script that defines a function keep(doc).
// Only comments for which it returns a truthy value are printed. For example,
// to list deprecated functions:
//
//	def keep(doc):
//	    return doc.deprecated
//
// doc has the fields path, line, title, description, type_sig, arguments,
// examples, notes, warnings_content, deprecated, deprecation_notice, sections
// and warnings.
//
// # Environment
//
// NIXDOC_FORMAT, NIXDOC_FILTER, NIXDOC_JOBS, NIXDOC_WIDTH and NIXDOC_STRICT
// provide defaults for the corresponding flags.
package main

import (
	_ "embed"

	"go.astrophena.name/nixdoc/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
