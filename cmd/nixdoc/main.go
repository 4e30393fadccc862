// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.astrophena.name/nixdoc/internal/atomicio"
	"go.astrophena.name/nixdoc/internal/cli"
	"go.astrophena.name/nixdoc/internal/cli/envflag"
	"go.astrophena.name/nixdoc/internal/filter"
	"go.astrophena.name/nixdoc/internal/logger"
	"go.astrophena.name/nixdoc/internal/nixdoc"
	"go.astrophena.name/nixdoc/internal/nixdoc/scan"
	"go.astrophena.name/nixdoc/internal/render"
	"go.astrophena.name/nixdoc/internal/util/syncx"
)

func main() { cli.Main(new(app)) }

type app struct {
	// flags
	format  *string
	filter  *string
	jobs    *int
	width   *int
	strict  *bool
	output  string
	quiet   bool
	verbose bool
}

func (a *app) Flags(fs *flag.FlagSet, getenv func(string) string) {
	a.format = envflag.Value("format", "NIXDOC_FORMAT", "text",
		"Output `format`: "+strings.Join(render.Formats(), ", ")+".", fs, getenv)
	a.filter = envflag.Value("filter", "NIXDOC_FILTER", "",
		"Starlark `file` defining keep(doc) to select comments.", fs, getenv)
	a.jobs = envflag.Value("j", "NIXDOC_JOBS", runtime.GOMAXPROCS(0),
		"Number of files to parse in parallel.", fs, getenv)
	a.width = envflag.Value("width", "NIXDOC_WIDTH", render.DefaultWidth,
		"Line length `limit` of the text format.", fs, getenv)
	a.strict = envflag.Value("strict", "NIXDOC_STRICT", false,
		"Fail if a comment cannot be parsed.", fs, getenv)
	fs.StringVar(&a.output, "o", "", "Write output to `file` instead of standard output.")
	fs.BoolVar(&a.quiet, "quiet", false, "Don't report parse failures and warnings.")
	fs.BoolVar(&a.verbose, "v", false, "Report progress.")
}

// stdinName is the path shown for source read from standard input.
const stdinName = "<stdin>"

func (a *app) Run(ctx context.Context, env *cli.Env) error {
	if len(env.Args) == 0 {
		return fmt.Errorf("%w: at least one file or directory required", cli.ErrInvalidArgs)
	}
	format, err := render.ParseFormat(*a.format)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}
	if *a.jobs < 1 {
		return fmt.Errorf("%w: -j must be positive", cli.ErrInvalidArgs)
	}
	if *a.width < 1 {
		return fmt.Errorf("%w: -width must be positive", cli.ErrInvalidArgs)
	}

	var flt *filter.Filter
	if *a.filter != "" {
		src, err := os.ReadFile(*a.filter)
		if err != nil {
			return fmt.Errorf("reading filter: %w", err)
		}
		flt, err = filter.Load(*a.filter, string(src), logger.WithPrefix(env.Logf, *a.filter+": "))
		if err != nil {
			return fmt.Errorf("loading filter: %w", err)
		}
	}

	sources, err := collect(env.Args, env.Stdin)
	if err != nil {
		return err
	}

	results := make([]result, len(sources))
	lwg := syncx.NewLimitedWaitGroup(*a.jobs)
	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		lwg.Go(func() {
			if ctx.Err() != nil {
				return
			}
			results[i] = process(src, flt)
		})
	}
	lwg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	var entries []render.Entry
	for i, res := range results {
		if res.err != nil {
			return res.err
		}
		if a.verbose {
			env.Logf("%s: %d doc comments", sources[i].path, res.comments)
		}
		for _, p := range res.problems {
			if p.err != nil && *a.strict {
				return fmt.Errorf("%s:%d: %w", sources[i].path, p.line, p.err)
			}
			if !a.quiet {
				env.Logf("%s:%d: %s", sources[i].path, p.line, p.msg)
			}
		}
		entries = append(entries, res.entries...)
	}

	opts := render.Options{Width: *a.width}
	if a.output == "" {
		return render.Render(env.Stdout, format, entries, opts)
	}
	return atomicio.WriteFunc(a.output, 0o644, func(w io.Writer) error {
		return render.Render(w, format, entries, opts)
	})
}

// source is a Nix file to extract comments from. data is nil until the file
// is read, except for standard input.
type source struct {
	path string
	data []byte
}

type result struct {
	entries  []render.Entry
	problems []problem
	comments int
	err      error // fatal
}

// problem is a parse failure (err != nil) or a warning.
type problem struct {
	line int
	msg  string
	err  error
}

func collect(args []string, stdin io.Reader) ([]source, error) {
	var sources []source
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading standard input: %w", err)
			}
			sources = append(sources, source{path: stdinName, data: data})
			continue
		}

		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			sources = append(sources, source{path: arg})
			continue
		}

		if err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".nix" {
				sources = append(sources, source{path: path})
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return sources, nil
}

func process(src source, flt *filter.Filter) result {
	var res result

	data := src.data
	if data == nil {
		var err error
		data, err = os.ReadFile(src.path)
		if err != nil {
			res.err = err
			return res
		}
	}

	comments := scan.Comments(string(data))
	res.comments = len(comments)
	for _, c := range comments {
		doc, err := nixdoc.Parse(c.Text)
		if err != nil {
			res.problems = append(res.problems, problem{line: c.Line, msg: err.Error(), err: err})
			continue
		}
		for _, w := range doc.Warnings {
			res.problems = append(res.problems, problem{line: c.Line, msg: "warning: " + w.Message})
		}

		if flt != nil {
			keep, err := flt.Keep(src.path, c.Line, doc)
			if err != nil {
				res.err = fmt.Errorf("filter: %w", err)
				return res
			}
			if !keep {
				continue
			}
		}
		res.entries = append(res.entries, render.Entry{Path: src.path, Line: c.Line, Doc: doc})
	}
	return res
}
