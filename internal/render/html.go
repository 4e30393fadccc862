// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"bytes"
	"io"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var md = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
})

const (
	htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Nix documentation</title>
</head>
<body>
`
	htmlFoot = `</body>
</html>
`
)

// renderHTML converts the Markdown rendering to HTML. Raw HTML embedded in
// doc comments is omitted from the output.
func renderHTML(w io.Writer, entries []Entry) error {
	var buf bytes.Buffer
	buf.WriteString(htmlHead)
	if err := md().Convert([]byte(markdown(entries)), &buf); err != nil {
		return err
	}
	buf.WriteString(htmlFoot)
	_, err := buf.WriteTo(w)
	return err
}
