// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package atomicio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/nixdoc/internal/testutil"
)

func readFile(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func writeString(name, s string) error {
	return WriteFunc(name, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestWriteFunc(t *testing.T) {
	t.Parallel()

	t.Run("new file", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "docs.md")

		if err := writeString(file, "hello"); err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, readFile(t, file), "hello")

		fi, err := os.Stat(file)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, fi.Mode().Perm(), os.FileMode(0o644))
	})

	t.Run("overwrite", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		file := filepath.Join(dir, "docs.md")

		if err := writeString(file, "hello"); err != nil {
			t.Fatal(err)
		}
		if err := writeString(file, "world"); err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, readFile(t, file), "world")

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, len(entries), 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "no", "such", "docs.md")
		if err := writeString(file, "x"); err == nil {
			t.Fatal("want error")
		}
	})
}

func TestWriteFuncFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "docs.md")
	if err := writeString(file, "old"); err != nil {
		t.Fatal(err)
	}

	errBoom := errors.New("boom")
	err := WriteFunc(file, 0o644, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("got %v, want %v", err, errBoom)
	}
	testutil.AssertEqual(t, readFile(t, file), "old")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, len(entries), 1)
}
