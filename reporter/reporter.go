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

// Package reporter defines how errors and warnings about Mica source text
// are surfaced.
//
// The pipeline has two failure regimes. Lexical and syntax errors are
// fail-fast: a single positioned error aborts the call. Semantic findings
// are batch-collected: the checker reports every diagnostic it finds and
// never aborts. Both regimes flow through the same [Reporter] contract; the
// policy lives in the reporter, not the stage. A reporter whose Error
// callback returns a non-nil error aborts processing with that error; one
// that returns nil lets the caller keep going.
package reporter

import (
	"sync"

	"github.com/micalang/micacompile/ast"
)

const (
	// SeverityError marks a blocking finding.
	SeverityError Severity = 1 + iota
	// SeverityWarning marks an advisory finding. The current semantic pass
	// never produces warnings; the severity exists as an extension point.
	SeverityWarning
)

// Severity distinguishes blocking findings from advisory ones.
type Severity int8

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported finding. Pos may be the zero position when
// no location could be determined.
type Diagnostic struct {
	Message  string
	Pos      ast.SourcePos
	Severity Severity
}

// ErrorReporter is responsible for reporting the given error. If the
// reporter returns a non-nil error, the reporting stage aborts with that
// error. If it returns nil, the stage continues, allowing as many
// diagnostics as possible to be collected.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never abort a stage.
type WarningReporter func(ErrorWithPos)

// Reporter receives errors and warnings as a stage finds them.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter builds a Reporter from the two callbacks. Either may be nil:
// a nil ErrorReporter makes every error abort, a nil WarningReporter drops
// warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler mediates between a stage and its Reporter. It remembers whether
// any error was reported and which error, if any, aborted the stage.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler returns a Handler for the given reporter. A nil reporter means
// fail-fast on the first error.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports an error at the given position. The returned error is
// non-nil if the stage should abort.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleError reports the given error. If it is an ErrorWithPos it goes
// through the reporter; any other error aborts immediately.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarningf reports a warning at the given position.
func (h *Handler) HandleWarningf(pos ast.SourcePos, format string, args ...any) {
	// No lock: warnings don't interact with the mutable fields.
	h.reporter.Warning(Errorf(pos, format, args...))
}

// Err returns the error that aborted the stage, or ErrInvalidSource when
// errors were reported but the reporter swallowed all of them.
func (h *Handler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error that aborted the stage, if any.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}

// Collector is a Reporter that accumulates diagnostics and never aborts.
// This is the batch policy used by the type checker. The zero value is
// ready to use.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *Collector) Error(err ErrorWithPos) error {
	c.add(err, SeverityError)
	return nil
}

func (c *Collector) Warning(err ErrorWithPos) {
	c.add(err, SeverityWarning)
}

func (c *Collector) add(err ErrorWithPos, sev Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, Diagnostic{
		Message:  err.Unwrap().Error(),
		Pos:      err.GetPosition(),
		Severity: sev,
	})
}

// Diagnostics returns the collected diagnostics in report order. The
// returned slice is a copy; it is stable once the reporting stage finishes.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

var _ Reporter = (*Collector)(nil)
