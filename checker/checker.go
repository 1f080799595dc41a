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

// Package checker implements the semantic pass over a parsed Mica program.
//
// Unlike the fail-fast parser, the checker batch-collects: a single
// top-down pass accumulates zero or more diagnostics and never halts on the
// first finding. The tree is never mutated. Findings flow through a
// [reporter.Handler] backed by a [reporter.Collector], the reporter policy
// that records everything and aborts nothing.
//
// A Checker is single-use and not safe for concurrent callers; create one
// per program.
package checker

import (
	"fmt"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/reporter"
	"github.com/micalang/micacompile/token"
)

// Checker performs the semantic pass and owns the resulting diagnostics.
type Checker struct {
	handler   *reporter.Handler
	collector *reporter.Collector

	scope     *Scope
	result    *Type // return type of the function being checked
	loopDepth int
}

// New returns a Checker ready to check one program.
func New() *Checker {
	collector := &reporter.Collector{}
	return &Checker{
		handler:   reporter.NewHandler(collector),
		collector: collector,
		scope:     NewScope(nil),
	}
}

// Check runs the semantic pass over the program. Ordinary semantic
// violations never cause an error return or a panic; they are collected and
// exposed through [Checker.Errors]. A panic from this package means the
// tree itself violates an AST invariant.
func (c *Checker) Check(prog *ast.Program) {
	for _, decl := range prog.Decls {
		c.checkDecl(decl)
	}
}

// Errors returns the diagnostics accumulated by Check, in report order.
// The list is stable once Check returns.
func (c *Checker) Errors() []reporter.Diagnostic {
	return c.collector.Diagnostics()
}

func (c *Checker) errorf(pos ast.SourcePos, format string, args ...any) {
	// The collector never aborts, so the returned error is always nil.
	_ = c.handler.HandleErrorf(pos, format, args...)
}

func (c *Checker) declare(sym *Symbol) {
	if prev := c.scope.Declare(sym); prev != nil {
		c.errorf(sym.Pos, "%q is already declared in this scope (as %s at %s)",
			sym.Name, prev.Kind, prev.Pos)
	}
}

func (c *Checker) pushScope() {
	c.scope = NewScope(c.scope)
}

func (c *Checker) popScope() {
	c.scope = c.scope.parent
}

func (c *Checker) checkDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		c.checkFuncDecl(d)
	case *ast.VarDecl:
		c.checkVarDecl(d)
	case *ast.StructDecl:
		c.declare(&Symbol{Name: d.Name, Kind: SymbolType, Type: &Type{Kind: Named, Name: d.Name}, Pos: d.Pos()})
	case *ast.UnionDecl:
		c.declare(&Symbol{Name: d.Name, Kind: SymbolType, Type: &Type{Kind: Named, Name: d.Name}, Pos: d.Pos()})
	case *ast.EnumDecl:
		c.declare(&Symbol{Name: d.Name, Kind: SymbolType, Type: &Type{Kind: Named, Name: d.Name}, Pos: d.Pos()})
	default:
		panic(fmt.Sprintf("checker: unknown declaration %T", decl))
	}
}

func (c *Checker) checkFuncDecl(d *ast.FuncDecl) {
	sig := &Type{Kind: Func, Result: resolveType(d.ReturnType)}
	for _, p := range d.Params {
		sig.Params = append(sig.Params, resolveType(p.Type))
	}
	c.declare(&Symbol{Name: d.Name, Kind: SymbolFunc, Type: sig, Pos: d.Pos()})

	c.pushScope()
	defer c.popScope()
	for i, p := range d.Params {
		c.declare(&Symbol{Name: p.Name, Kind: SymbolParam, Type: sig.Params[i], Pos: p.StartPos})
	}

	prevResult := c.result
	c.result = sig.Result
	defer func() { c.result = prevResult }()

	// The body block introduces its own scope nested in the parameter
	// scope.
	c.checkStmt(d.Body)
}

func (c *Checker) checkVarDecl(d *ast.VarDecl) {
	var declared *Type
	if d.Type != nil {
		declared = resolveType(d.Type)
	}

	var inferred *Type
	if d.Init != nil {
		inferred = c.inferExpr(d.Init)
	}

	switch {
	case declared == nil && inferred == nil:
		c.errorf(d.Pos(), "%q needs a type annotation or an initializer", d.Name)
		declared = typInvalid
	case declared == nil:
		declared = defaultType(inferred)
	case inferred != nil && !assignable(declared, inferred):
		c.errorf(d.Init.Pos(), "type mismatch: cannot initialize %s with value of type %s", declared, inferred)
	}

	kind := SymbolVar
	if d.Const {
		kind = SymbolConst
	}
	c.declare(&Symbol{Name: d.Name, Kind: kind, Type: declared, Pos: d.Pos()})
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		c.pushScope()
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
		c.popScope()
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.IfStmt:
		c.checkCond(s.Cond)
		c.checkStmt(s.Then)
		if s.Else != nil {
			c.checkStmt(s.Else)
		}
	case *ast.WhileStmt:
		c.checkCond(s.Cond)
		c.loopDepth++
		c.checkStmt(s.Body)
		c.loopDepth--
	case *ast.ForStmt:
		c.pushScope()
		if s.Init != nil {
			c.checkStmt(s.Init)
		}
		if s.Cond != nil {
			c.checkCond(s.Cond)
		}
		if s.Post != nil {
			c.inferExpr(s.Post)
		}
		c.loopDepth++
		c.checkStmt(s.Body)
		c.loopDepth--
		c.popScope()
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.errorf(s.Pos(), "break outside of a loop")
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.errorf(s.Pos(), "continue outside of a loop")
		}
	case *ast.ComptimeStmt:
		c.checkStmt(s.Body)
	case *ast.ExprStmt:
		c.inferExpr(s.X)
	default:
		panic(fmt.Sprintf("checker: unknown statement %T", stmt))
	}
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	if c.result == nil {
		c.errorf(s.Pos(), "return outside of a function")
		return
	}
	want := c.result
	if want.Kind == ErrorUnion {
		want = want.Elem
	}
	if s.Value == nil {
		if want.Kind != Void {
			c.errorf(s.Pos(), "return type mismatch: expected %s, found no value", want)
		}
		return
	}
	if want.Kind == Void {
		c.errorf(s.Value.Pos(), "return type mismatch: function returns void but a value is returned")
		c.inferExpr(s.Value)
		return
	}
	got := c.inferExpr(s.Value)
	if !assignable(want, got) {
		c.errorf(s.Value.Pos(), "return type mismatch: expected %s, found %s", want, got)
	}
}

func (c *Checker) checkCond(cond ast.Expr) {
	t := c.inferExpr(cond)
	if !t.IsInvalid() && t.Kind != Bool {
		c.errorf(cond.Pos(), "condition must be bool, found %s", t)
	}
}

// inferExpr determines the semantic type of an expression, reporting any
// violations it finds along the way. It returns Invalid when the type
// cannot be determined, which suppresses follow-up errors on enclosing
// expressions.
func (c *Checker) inferExpr(expr ast.Expr) *Type {
	switch e := expr.(type) {
	case *ast.NumberLit:
		if e.IsFloat() {
			return typUntypedFloat
		}
		return typUntypedInt
	case *ast.StringLit:
		return typString
	case *ast.BoolLit:
		return typBool
	case *ast.IdentExpr:
		sym := c.scope.Lookup(e.Name)
		if sym == nil {
			c.errorf(e.Pos(), "undefined identifier %q", e.Name)
			return typInvalid
		}
		return sym.Type
	case *ast.UnaryExpr:
		return c.inferUnary(e)
	case *ast.BinaryExpr:
		return c.inferBinary(e)
	case *ast.AssignExpr:
		return c.inferAssign(e)
	case *ast.CallExpr:
		return c.inferCall(e)
	case *ast.MemberExpr:
		// Field sets are not modeled; just make sure the operand itself is
		// sound.
		c.inferExpr(e.X)
		return typInvalid
	case *ast.IndexExpr:
		t := c.inferExpr(e.X)
		c.inferExpr(e.Index)
		if t.Kind == Array || t.Kind == Pointer {
			return t.Elem
		}
		return typInvalid
	case *ast.StructLit:
		for _, f := range e.Fields {
			c.inferExpr(f.Value)
		}
		return &Type{Kind: Named, Name: e.TypeName}
	case *ast.ArrayLit:
		var elem *Type = typInvalid
		for i, el := range e.Elems {
			t := c.inferExpr(el)
			if i == 0 {
				elem = defaultType(t)
			}
		}
		return &Type{Kind: Array, Elem: elem}
	default:
		panic(fmt.Sprintf("checker: unknown expression %T", expr))
	}
}

func (c *Checker) inferUnary(e *ast.UnaryExpr) *Type {
	operand := c.inferExpr(e.X)
	switch e.Op {
	case token.Minus:
		if !operand.IsInvalid() && !operand.IsNumeric() {
			c.errorf(e.Pos(), "operator - requires a numeric operand, found %s", operand)
			return typInvalid
		}
		return operand
	case token.Bang:
		if !operand.IsInvalid() && operand.Kind != Bool {
			c.errorf(e.Pos(), "operator ! requires a bool operand, found %s", operand)
			return typInvalid
		}
		return typBool
	default:
		panic(fmt.Sprintf("checker: unknown unary operator %s", e.Op))
	}
}

func (c *Checker) inferBinary(e *ast.BinaryExpr) *Type {
	left := c.inferExpr(e.X)
	right := c.inferExpr(e.Y)

	switch e.Op {
	case token.And, token.Or:
		for _, t := range []*Type{left, right} {
			if !t.IsInvalid() && t.Kind != Bool {
				c.errorf(e.Pos(), "operator %s requires bool operands, found %s", e.Op, t)
				return typInvalid
			}
		}
		return typBool

	case token.Equals, token.NotEquals:
		if merge(left, right) == nil {
			c.errorf(e.Pos(), "operator %s mismatched operands: %s and %s", e.Op, left, right)
		}
		return typBool

	case token.Less, token.Greater, token.LessEq, token.GreaterEq:
		if !operandsNumeric(left, right) {
			c.errorf(e.Pos(), "operator %s requires numeric operands, found %s and %s", e.Op, left, right)
		} else if merge(left, right) == nil {
			c.errorf(e.Pos(), "operator %s mismatched operands: %s and %s", e.Op, left, right)
		}
		return typBool

	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent:
		if !operandsNumeric(left, right) {
			c.errorf(e.Pos(), "operator %s requires numeric operands, found %s and %s", e.Op, left, right)
			return typInvalid
		}
		merged := merge(left, right)
		if merged == nil {
			c.errorf(e.Pos(), "operator %s mismatched operands: %s and %s", e.Op, left, right)
			return typInvalid
		}
		return merged

	default:
		panic(fmt.Sprintf("checker: unknown binary operator %s", e.Op))
	}
}

func operandsNumeric(left, right *Type) bool {
	return (left.IsInvalid() || left.IsNumeric()) && (right.IsInvalid() || right.IsNumeric())
}

func (c *Checker) inferAssign(e *ast.AssignExpr) *Type {
	target := c.inferExpr(e.Target)
	value := c.inferExpr(e.Value)

	switch t := e.Target.(type) {
	case *ast.IdentExpr:
		if sym := c.scope.Lookup(t.Name); sym != nil && sym.Kind == SymbolConst {
			c.errorf(e.Pos(), "cannot assign to const %q", t.Name)
		}
	case *ast.MemberExpr, *ast.IndexExpr:
		// Assignable places.
	default:
		c.errorf(e.Pos(), "invalid assignment target")
		return typInvalid
	}

	if !assignable(target, value) {
		c.errorf(e.Value.Pos(), "type mismatch: cannot assign %s to %s", value, target)
	}
	if e.Op == token.PlusAssign && !target.IsInvalid() && !target.IsNumeric() {
		c.errorf(e.Pos(), "operator += requires a numeric target, found %s", target)
	}
	return target
}

func (c *Checker) inferCall(e *ast.CallExpr) *Type {
	fn := c.inferExpr(e.Fun)
	args := make([]*Type, len(e.Args))
	for i, arg := range e.Args {
		args[i] = c.inferExpr(arg)
	}

	if fn.IsInvalid() {
		return typInvalid
	}
	if fn.Kind != Func {
		c.errorf(e.Pos(), "cannot call a value of type %s", fn)
		return typInvalid
	}

	if len(args) != len(fn.Params) {
		c.errorf(e.Pos(), "wrong number of arguments: expected %d, found %d", len(fn.Params), len(args))
	} else {
		for i, arg := range args {
			if !assignable(fn.Params[i], arg) {
				c.errorf(e.Args[i].Pos(), "argument type mismatch: expected %s, found %s", fn.Params[i], arg)
			}
		}
	}
	return fn.Result
}
