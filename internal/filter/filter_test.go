// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package filter

import (
	"strings"
	"sync"
	"testing"

	"go.astrophena.name/nixdoc/internal/logger"
	"go.astrophena.name/nixdoc/internal/nixdoc"
	"go.astrophena.name/nixdoc/internal/testutil"
)

func mustParse(t *testing.T, s string) *nixdoc.Doc {
	t.Helper()
	d, err := nixdoc.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

const (
	deprecated = "/**\n  Old.\n\n  # Caution\n\n  Slow.\n\n  # Deprecated\n\n  Use new.\n*/"
	typed      = "/**\n  Map.\n\n  # Type\n\n  ```\n  map :: (a -> b) -> [a] -> [b]\n  ```\n\n  # Arguments\n\n  - [f] Function\n  - [xs] List\n\n  # Example\n\n  ```nix\n  map toString [ 1 ]\n  ```\n*/"
	plain      = "/** Plain. */"
)

func TestKeep(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		script string
		want   map[string]bool // doc source -> kept
	}{
		"deprecated only": {
			script: "def keep(doc):\n    return doc.deprecated\n",
			want:   map[string]bool{deprecated: true, typed: false, plain: false},
		},
		"has type signature": {
			script: "def keep(doc):\n    return doc.type_sig != None\n",
			want:   map[string]bool{deprecated: false, typed: true, plain: false},
		},
		"argument names": {
			script: "def keep(doc):\n    return [a[\"name\"] for a in doc.arguments] == [\"f\", \"xs\"]\n",
			want:   map[string]bool{deprecated: false, typed: true, plain: false},
		},
		"example language": {
			script: "def keep(doc):\n    return any([e[\"language\"] == \"nix\" for e in doc.examples])\n",
			want:   map[string]bool{deprecated: false, typed: true, plain: false},
		},
		"warning content": {
			script: "def keep(doc):\n    return doc.warnings_content == [\"Slow.\"]\n",
			want:   map[string]bool{deprecated: true, typed: false, plain: false},
		},
		"path and title": {
			script: "def keep(doc):\n    return doc.path.endswith(\"lists.nix\") and doc.line == 3 and doc.title == \"Plain.\"\n",
			want:   map[string]bool{deprecated: false, typed: false, plain: true},
		},
		"truthy values": {
			script: "def keep(doc):\n    return doc.sections\n",
			want:   map[string]bool{deprecated: true, typed: true, plain: false},
		},
		"top level control": {
			script: "names = []\nfor n in [\"Old.\", \"Map.\"]:\n    names.append(n)\n\ndef keep(doc):\n    return doc.title in names\n",
			want:   map[string]bool{deprecated: true, typed: true, plain: false},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f, err := Load("filter.star", tc.script, nil)
			if err != nil {
				t.Fatal(err)
			}
			for src, want := range tc.want {
				got, err := f.Keep("lib/lists.nix", 3, mustParse(t, src))
				if err != nil {
					t.Fatal(err)
				}
				if got != want {
					t.Errorf("Keep(%q) = %v, want %v", src, got, want)
				}
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		script  string
		wantErr string
	}{
		"syntax error":    {script: "def keep(doc)\n", wantErr: "filter.star:2:1: got newline"},
		"missing keep":    {script: "x = 1\n", wantErr: "keep must be defined"},
		"keep not func":   {script: "keep = True\n", wantErr: "keep must be defined"},
		"wrong arity":     {script: "def keep(a, b):\n    return True\n", wantErr: "exactly one argument"},
		"runtime failure": {script: "fail(\"nope\")\n", wantErr: "nope"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load("filter.star", tc.script, nil)
			if err == nil {
				t.Fatal("want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestKeepError(t *testing.T) {
	t.Parallel()

	f, err := Load("filter.star", "def keep(doc):\n    return doc.no_such_field\n", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Keep("lib/lists.nix", 7, mustParse(t, plain))
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "lib/lists.nix:7") {
		t.Fatalf("error %q does not name the location", err)
	}
}

func TestKeepStepLimit(t *testing.T) {
	t.Parallel()

	f, err := Load("filter.star", "def keep(doc):\n    for i in range(100000000):\n        pass\n    return True\n", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Keep("x.nix", 1, mustParse(t, plain)); err == nil {
		t.Fatal("want error from exhausted step budget")
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var r logger.Recorder
	f, err := Load("filter.star", "print(\"loaded\")\n\ndef keep(doc):\n    print(doc.title)\n    return True\n", r.Logf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Keep("x.nix", 1, mustParse(t, plain)); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, r.Lines(), []string{"loaded", "Plain."})
}

func TestConcurrentKeep(t *testing.T) {
	t.Parallel()

	f, err := Load("filter.star", "def keep(doc):\n    return len(doc.arguments) > 1\n", nil)
	if err != nil {
		t.Fatal(err)
	}
	doc := mustParse(t, typed)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := f.Keep("x.nix", 1, doc)
			if err != nil || !ok {
				t.Errorf("Keep = %v, %v", ok, err)
			}
		}()
	}
	wg.Wait()
}
