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

// Package printer renders an AST back into canonical Mica source text.
//
// The printer is purely structural: output depends only on the shape of the
// tree, never on original token positions or spacing, and comments do not
// survive (the lexer discards them). Formatting is canonical, so the output
// is a fixed point: parsing the generated text and printing it again
// reproduces it byte for byte.
//
// Canonical form: four-space indentation per nesting depth, single spaces
// around binary and assignment operators, no space between a call or index
// target and its opening delimiter, one statement per line, bodies of
// control statements always brace-delimited, one blank line between
// top-level declarations, and a trailing newline on non-empty output.
// Parentheses are re-derived from the operator table, so only structurally
// necessary ones appear.
package printer

import (
	"fmt"
	"strings"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/token"
)

const indent = "    "

// Generate renders the program as formatted source text. It does not fail
// on any tree the parser can produce; a panic here means the tree itself
// violates an AST invariant.
func Generate(prog *ast.Program) string {
	var p printer
	for i, decl := range prog.Decls {
		if i > 0 {
			p.sb.WriteString("\n")
		}
		p.decl(decl)
		p.sb.WriteString("\n")
	}
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	depth int
}

func (p *printer) writef(format string, args ...any) {
	fmt.Fprintf(&p.sb, format, args...)
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

func (p *printer) newline() {
	p.write("\n")
	for i := 0; i < p.depth; i++ {
		p.write(indent)
	}
}

func (p *printer) decl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		p.funcDecl(d)
	case *ast.VarDecl:
		p.varDecl(d)
	case *ast.StructDecl:
		p.fieldsDecl("struct", d.Name, d.Fields)
	case *ast.UnionDecl:
		p.fieldsDecl("union", d.Name, d.Fields)
	case *ast.EnumDecl:
		p.enumDecl(d)
	default:
		panic(fmt.Sprintf("printer: unknown declaration %T", decl))
	}
}

func (p *printer) funcDecl(d *ast.FuncDecl) {
	if d.Inline {
		p.write("inline ")
	}
	if d.Comptime {
		p.write("comptime ")
	}
	p.writef("fn %s(", d.Name)
	for i, param := range d.Params {
		if i > 0 {
			p.write(", ")
		}
		if param.Comptime {
			p.write("comptime ")
		}
		p.writef("%s: ", param.Name)
		p.typ(param.Type)
	}
	p.write(") ")
	p.typ(d.ReturnType)
	p.write(" ")
	p.block(d.Body)
}

func (p *printer) varDecl(d *ast.VarDecl) {
	if d.Inline {
		p.write("inline ")
	}
	if d.Comptime {
		p.write("comptime ")
	}
	if d.Const {
		p.write("const ")
	} else {
		p.write("var ")
	}
	p.write(d.Name)
	if d.Type != nil {
		p.write(": ")
		p.typ(d.Type)
	}
	if d.Init != nil {
		p.write(" = ")
		p.expr(d.Init, token.LowestPrec)
	}
	p.write(";")
}

func (p *printer) fieldsDecl(keyword, name string, fields []ast.Field) {
	p.writef("%s %s {", keyword, name)
	if len(fields) == 0 {
		p.write("}")
		return
	}
	p.depth++
	for _, f := range fields {
		p.newline()
		p.writef("%s: ", f.Name)
		p.typ(f.Type)
		p.write(",")
	}
	p.depth--
	p.newline()
	p.write("}")
}

func (p *printer) enumDecl(d *ast.EnumDecl) {
	p.writef("enum %s {", d.Name)
	if len(d.Members) == 0 {
		p.write("}")
		return
	}
	p.depth++
	for _, m := range d.Members {
		p.newline()
		p.write(m.Name)
		p.write(",")
	}
	p.depth--
	p.newline()
	p.write("}")
}

func (p *printer) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		p.block(s)
	case *ast.VarDecl:
		p.varDecl(s)
	case *ast.ReturnStmt:
		if s.Value == nil {
			p.write("return;")
		} else {
			p.write("return ")
			p.expr(s.Value, token.LowestPrec)
			p.write(";")
		}
	case *ast.IfStmt:
		p.ifStmt(s)
	case *ast.WhileStmt:
		p.write("while (")
		p.expr(s.Cond, token.LowestPrec)
		p.write(") ")
		p.body(s.Body)
	case *ast.ForStmt:
		p.forStmt(s)
	case *ast.BreakStmt:
		p.write("break;")
	case *ast.ContinueStmt:
		p.write("continue;")
	case *ast.ComptimeStmt:
		p.write("comptime ")
		p.block(s.Body)
	case *ast.ExprStmt:
		p.expr(s.X, token.LowestPrec)
		p.write(";")
	default:
		panic(fmt.Sprintf("printer: unknown statement %T", stmt))
	}
}

func (p *printer) block(b *ast.BlockStmt) {
	if len(b.Stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.depth++
	for _, s := range b.Stmts {
		p.newline()
		p.stmt(s)
	}
	p.depth--
	p.newline()
	p.write("}")
}

// body prints a control-statement body, canonicalizing single statements
// into a block.
func (p *printer) body(stmt ast.Stmt) {
	if b, ok := stmt.(*ast.BlockStmt); ok {
		p.block(b)
		return
	}
	p.write("{")
	p.depth++
	p.newline()
	p.stmt(stmt)
	p.depth--
	p.newline()
	p.write("}")
}

func (p *printer) ifStmt(s *ast.IfStmt) {
	p.write("if (")
	p.expr(s.Cond, token.LowestPrec)
	p.write(") ")
	p.body(s.Then)
	if s.Else == nil {
		return
	}
	p.write(" else ")
	if chained, ok := s.Else.(*ast.IfStmt); ok {
		p.ifStmt(chained)
		return
	}
	p.body(s.Else)
}

func (p *printer) forStmt(s *ast.ForStmt) {
	p.write("for (")
	if s.Init != nil {
		p.stmt(s.Init) // statement printing includes the semicolon
	} else {
		p.write(";")
	}
	p.write(" ")
	if s.Cond != nil {
		p.expr(s.Cond, token.LowestPrec)
	}
	p.write("; ")
	if s.Post != nil {
		p.expr(s.Post, token.LowestPrec)
	}
	p.write(") ")
	p.body(s.Body)
}

// Precedence levels used only for parenthesization decisions. Assignment
// sits below every binary tier; postfix and primary forms never need
// parentheses around themselves.
const (
	assignPrec  = token.LowestPrec
	postfixPrec = token.HighestPrec
)

func exprPrec(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.AssignExpr:
		return assignPrec
	case *ast.BinaryExpr:
		return e.Op.Precedence()
	case *ast.UnaryExpr:
		return token.UnaryPrec
	default:
		return postfixPrec
	}
}

// expr prints e, wrapping it in parentheses when its own precedence is too
// loose for the surrounding context.
func (p *printer) expr(e ast.Expr, min int) {
	if prec := exprPrec(e); prec < min {
		p.write("(")
		p.exprInner(e)
		p.write(")")
		return
	}
	p.exprInner(e)
}

func (p *printer) exprInner(e ast.Expr) {
	switch e := e.(type) {
	case *ast.AssignExpr:
		// Right-associative: the target must bind tighter, the value may be
		// another assignment.
		p.expr(e.Target, assignPrec+1)
		p.writef(" %s ", e.Op)
		p.expr(e.Value, assignPrec)
	case *ast.BinaryExpr:
		prec := e.Op.Precedence()
		p.expr(e.X, prec)
		p.writef(" %s ", e.Op)
		p.expr(e.Y, prec+1)
	case *ast.UnaryExpr:
		p.writef("%s", e.Op)
		p.expr(e.X, token.UnaryPrec)
	case *ast.CallExpr:
		p.expr(e.Fun, postfixPrec)
		p.write("(")
		for i, arg := range e.Args {
			if i > 0 {
				p.write(", ")
			}
			p.expr(arg, token.LowestPrec)
		}
		p.write(")")
	case *ast.MemberExpr:
		p.expr(e.X, postfixPrec)
		p.writef(".%s", e.Name)
	case *ast.IndexExpr:
		p.expr(e.X, postfixPrec)
		p.write("[")
		p.expr(e.Index, token.LowestPrec)
		p.write("]")
	case *ast.IdentExpr:
		p.write(e.Name)
	case *ast.NumberLit:
		p.write(e.Text)
	case *ast.StringLit:
		// The lexer has no escape sequences, so the content is emitted
		// verbatim. A value containing a double quote can only have come
		// from a single-quoted literal; re-delimit it the same way.
		quote := `"`
		if strings.Contains(e.Value, `"`) {
			quote = "'"
		}
		p.write(quote)
		p.write(e.Value)
		p.write(quote)
	case *ast.BoolLit:
		if e.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.StructLit:
		p.write(e.TypeName)
		p.write("{")
		for i, f := range e.Fields {
			if i > 0 {
				p.write(",")
			}
			p.writef(" .%s = ", f.Name)
			p.expr(f.Value, token.LowestPrec)
		}
		if len(e.Fields) > 0 {
			p.write(" ")
		}
		p.write("}")
	case *ast.ArrayLit:
		p.write("[")
		for i, el := range e.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.expr(el, token.LowestPrec)
		}
		p.write("]")
	default:
		panic(fmt.Sprintf("printer: unknown expression %T", e))
	}
}

func (p *printer) typ(t ast.Type) {
	switch t := t.(type) {
	case *ast.PrimitiveType:
		p.write(t.Kind.String())
	case *ast.NamedType:
		p.write(t.Name)
	case *ast.PointerType:
		p.write("*")
		p.typ(t.Elem)
	case *ast.ArrayType:
		p.write("[")
		if t.Len != nil {
			p.expr(t.Len, token.LowestPrec)
		}
		p.write("]")
		p.typ(t.Elem)
	case *ast.ErrorUnionType:
		p.write("!")
		p.typ(t.Payload)
	case *ast.OptionalType:
		p.write("?")
		p.typ(t.Elem)
	default:
		panic(fmt.Sprintf("printer: unknown type %T", t))
	}
}
