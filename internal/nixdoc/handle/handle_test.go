// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package handle

import (
	"sync"
	"testing"

	"go.astrophena.name/nixdoc/internal/nixdoc"
	"go.astrophena.name/nixdoc/internal/testutil"
)

const full = `/**
  Concatenates two lists.

  # Type

  ` + "```" + `
  concat :: [a] -> [a] -> [a]
  ` + "```" + `

  # Arguments

  - [xs] First list
  - [ys] Second list

  # Example

  ` + "```nix" + `
  concat [ 1 ] [ 2 ]
  ` + "```" + `

  # Note

  Lists are copied.

  # Caution

  Quadratic in the number of calls.

  # Deprecated

  Use ++ instead.
*/`

func TestCheck(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	testutil.AssertEqual(t, tbl.Check(full), StatusSuccess)
	testutil.AssertEqual(t, tbl.Check("/* plain */"), StatusParseError)
	testutil.AssertEqual(t, tbl.Check("/**   */"), StatusParseError)
	testutil.AssertEqual(t, tbl.Len(), 0)
}

func TestParseAndGetters(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	h, st := tbl.Parse(full)
	testutil.AssertEqual(t, st, StatusSuccess)
	if h == 0 {
		t.Fatal("got zero handle on success")
	}
	testutil.AssertEqual(t, tbl.Len(), 1)

	title, ok := tbl.Title(h)
	testutil.AssertEqual(t, title, "Concatenates two lists.")
	testutil.AssertEqual(t, ok, true)

	testutil.AssertEqual(t, tbl.Description(h), "Concatenates two lists.")

	sig, ok := tbl.TypeSig(h)
	testutil.AssertEqual(t, sig, "concat :: [a] -> [a] -> [a]\n")
	testutil.AssertEqual(t, ok, true)

	testutil.AssertEqual(t, tbl.IsDeprecated(h), true)
	notice, ok := tbl.DeprecationNotice(h)
	testutil.AssertEqual(t, notice, "Use ++ instead.")
	testutil.AssertEqual(t, ok, true)

	args, ok := tbl.Arguments(h)
	testutil.AssertEqual(t, args, []string{"xs: First list", "ys: Second list"})
	testutil.AssertEqual(t, ok, true)

	examples, ok := tbl.Examples(h)
	testutil.AssertEqual(t, examples, []string{"nix: concat [ 1 ] [ 2 ]\n"})
	testutil.AssertEqual(t, ok, true)

	notes, ok := tbl.Notes(h)
	testutil.AssertEqual(t, notes, []string{"Lists are copied."})
	testutil.AssertEqual(t, ok, true)

	warnings, ok := tbl.Warnings(h)
	testutil.AssertEqual(t, warnings, []string{"Quadratic in the number of calls."})
	testutil.AssertEqual(t, ok, true)

	tbl.Free(h)
	testutil.AssertEqual(t, tbl.Len(), 0)
	tbl.Free(h) // double free is a no-op
}

func TestMissingFields(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	h, st := tbl.Parse("/**\n  # Example\n\n  ```\n  x\n  ```\n*/")
	testutil.AssertEqual(t, st, StatusSuccess)
	defer tbl.Free(h)

	_, ok := tbl.Title(h)
	testutil.AssertEqual(t, ok, false)
	_, ok = tbl.TypeSig(h)
	testutil.AssertEqual(t, ok, false)
	_, ok = tbl.DeprecationNotice(h)
	testutil.AssertEqual(t, ok, false)
	testutil.AssertEqual(t, tbl.IsDeprecated(h), false)

	args, ok := tbl.Arguments(h)
	testutil.AssertEqual(t, args, []string{})
	testutil.AssertEqual(t, ok, true)

	examples, _ := tbl.Examples(h)
	testutil.AssertEqual(t, examples, []string{": x\n"})

	notes, ok := tbl.Notes(h)
	testutil.AssertEqual(t, notes, []string{})
	testutil.AssertEqual(t, ok, true)

	warnings, ok := tbl.Warnings(h)
	testutil.AssertEqual(t, warnings, []string{})
	testutil.AssertEqual(t, ok, true)
}

func TestUnknownHandle(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	for _, h := range []Handle{0, 42} {
		title, ok := tbl.Title(h)
		testutil.AssertEqual(t, title, "")
		testutil.AssertEqual(t, ok, true)
		testutil.AssertEqual(t, tbl.Description(h), "")
		sig, ok := tbl.TypeSig(h)
		testutil.AssertEqual(t, sig, "")
		testutil.AssertEqual(t, ok, true)
		testutil.AssertEqual(t, tbl.IsDeprecated(h), false)

		args, ok := tbl.Arguments(h)
		testutil.AssertEqual(t, args, []string(nil))
		testutil.AssertEqual(t, ok, false)
		_, ok = tbl.Examples(h)
		testutil.AssertEqual(t, ok, false)
		_, ok = tbl.Notes(h)
		testutil.AssertEqual(t, ok, false)
		warnings, ok := tbl.Warnings(h)
		testutil.AssertEqual(t, warnings, []string(nil))
		testutil.AssertEqual(t, ok, false)
	}
}

func TestParseFailure(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	h, st := tbl.Parse("/** unclosed")
	testutil.AssertEqual(t, h, Handle(0))
	testutil.AssertEqual(t, st, StatusParseError)
	testutil.AssertEqual(t, tbl.Len(), 0)
}

func TestPanicRecovered(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	tbl.parse = func(string) (*nixdoc.Doc, error) { panic("boom") }

	testutil.AssertEqual(t, tbl.Check(full), StatusPanic)
	h, st := tbl.Parse(full)
	testutil.AssertEqual(t, h, Handle(0))
	testutil.AssertEqual(t, st, StatusPanic)
	testutil.AssertEqual(t, tbl.Len(), 0)
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[Handle]bool)
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, st := tbl.Parse(full)
			if st != StatusSuccess {
				t.Errorf("Parse: %v", st)
				return
			}
			mu.Lock()
			seen[h] = true
			mu.Unlock()
			if title, _ := tbl.Title(h); title != "Concatenates two lists." {
				t.Errorf("Title: got %q", title)
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, len(seen), 32)
	testutil.AssertEqual(t, tbl.Len(), 32)
	for h := range seen {
		tbl.Free(h)
	}
	testutil.AssertEqual(t, tbl.Len(), 0)
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	testutil.AssertEqual(t, StatusSuccess.String(), "success")
	testutil.AssertEqual(t, StatusPanic.String(), "internal error")
	testutil.AssertEqual(t, Status(9).String(), "Status(9)")
}
