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

package micacompile

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/checker"
	"github.com/micalang/micacompile/parser"
	"github.com/micalang/micacompile/printer"
	"github.com/micalang/micacompile/reporter"
)

// Result is the outcome of analyzing one source text.
//
// Program is nil when the source failed to lex or parse. Diagnostics holds
// every problem found: at most one structural error (lexing and parsing stop
// at the first), or all semantic errors at once.
type Result struct {
	Program     *ast.Program
	Diagnostics []reporter.Diagnostic
}

// Valid reports whether the source passed every stage.
func (r Result) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Analyze runs the full pipeline over source: tokenize, parse, and check.
// Problems are returned as diagnostics rather than an error so that callers
// can render them uniformly.
func Analyze(source string) Result {
	tokens, err := parser.Tokenize(source)
	if err != nil {
		return Result{Diagnostics: []reporter.Diagnostic{toDiagnostic(err)}}
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return Result{Diagnostics: []reporter.Diagnostic{toDiagnostic(err)}}
	}
	c := checker.New()
	c.Check(prog)
	return Result{Program: prog, Diagnostics: c.Errors()}
}

// Format parses source and renders it back in canonical form. Formatting is
// idempotent: formatting the output again returns it unchanged. Semantic
// errors do not prevent formatting; only malformed source does.
func Format(source string) (string, error) {
	tokens, err := parser.Tokenize(source)
	if err != nil {
		return "", err
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return "", err
	}
	return printer.Generate(prog), nil
}

func toDiagnostic(err error) reporter.Diagnostic {
	d := reporter.Diagnostic{Message: err.Error(), Severity: reporter.SeverityError}
	if ewp, ok := err.(reporter.ErrorWithPos); ok {
		d.Pos = ewp.GetPosition()
		d.Message = ewp.Unwrap().Error()
	}
	return d
}

// Compiler analyzes batches of sources concurrently. The zero value is ready
// to use.
type Compiler struct {
	// The maximum parallelism to use. If unspecified or non-positive,
	// min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) is used.
	MaxParallelism int
}

// AnalyzeAll runs [Analyze] over each source. Results are returned in input
// order. The only error is a context error; per-source problems are reported
// in each Result.
func (c *Compiler) AnalyzeAll(ctx context.Context, sources ...string) ([]Result, error) {
	results := make([]Result, len(sources))
	err := c.each(ctx, len(sources), func(i int) {
		results[i] = Analyze(sources[i])
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FormatAll runs [Format] over each source. Output is returned in input
// order. The first source error encountered aborts the batch.
func (c *Compiler) FormatAll(ctx context.Context, sources ...string) ([]string, error) {
	out := make([]string, len(sources))
	errs := make([]error, len(sources))
	err := c.each(ctx, len(sources), func(i int) {
		out[i], errs[i] = Format(sources[i])
	})
	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Compiler) each(ctx context.Context, n int, fn func(i int)) error {
	if n == 0 {
		return nil
	}

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	sem := semaphore.NewWeighted(int64(par))
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			fn(i)
		}()
	}
	wg.Wait()
	return ctx.Err()
}
