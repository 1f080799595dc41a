// Copyright 2023-2026 Mica Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora manages test corpora: collections of files on disk that
// each define one compiler test case. This is table-driven testing where
// the table is the filesystem.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a directory of test cases.
type Corpus struct {
	// Root of the test data directory, relative to the file that calls
	// [Corpus.Run].
	Root string

	// Environment variable that selects cases to run in "refresh" mode:
	// instead of comparing outputs, the harness rewrites the expectation
	// files for cases matching its glob value.
	Refresh string

	// File extension (without dot) of files that define a test case.
	Extension string

	// Expected outputs, found via each Output's extension. A missing
	// output file is treated as expecting the empty string.
	Outputs []Output

	// Test executes one case and returns one string per element of
	// Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output describes one expected output of a test case. For a case
// "foo.mica" and extension "fmt", the harness reads "foo.mica.fmt".
type Output struct {
	Extension string
}

// Run enumerates the corpus and runs each case as a subtest.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.TrimPrefix(path.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatal("corpora: error while walking testdata:", err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in $%s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// Refreshed expectations still need review; fail so the run is
		// never mistaken for a green one.
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, casePath := range cases {
		name, _ := filepath.Rel(testDir, casePath)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(casePath)
			if err != nil {
				t.Fatalf("corpora: error while loading input %q: %v", casePath, err)
			}

			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: Test returned %d results, want %d", len(results), len(c.Outputs))
			}

			doRefresh, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				outPath := fmt.Sprint(casePath, ".", output.Extension)
				if doRefresh {
					c.refresh(t, outPath, results[i])
					continue
				}

				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error while loading output %q: %v", outPath, err)
					continue
				}
				if d := diff(results[i], string(want)); d != "" {
					t.Errorf("output mismatch for %q:\n%s", outPath, d)
				}
			}
		})
	}
}

func (c Corpus) refresh(t *testing.T, path, result string) {
	if result == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: error while deleting output %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(result), 0o666); err != nil {
		t.Errorf("corpora: error while writing output %q: %v", path, err)
	}
}

func diff(got, want string) string {
	if got == want {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return text
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
