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

package parser

import (
	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/reporter"
	"github.com/micalang/micacompile/token"
)

// Parser consumes a token sequence and produces a single Program, or fails
// with a syntax error naming the offending token's position.
//
// A Parser is single-use: create one per token sequence. The cursor advances
// monotonically with exactly one token of lookahead and no backtracking.
type Parser struct {
	tokens []token.Token
	cursor int
}

// NewParser returns a Parser over the given token sequence. The sequence is
// expected to end with an EOF token, as produced by [Tokenize].
func NewParser(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		tokens = append(tokens, token.Token{Kind: token.EOF, Line: 1, Column: 1})
	}
	return &Parser{tokens: tokens}
}

// Parse parses the token sequence into a Program. It is shorthand for
// NewParser + Parse.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return NewParser(tokens).Parse()
}

// Parse consumes the whole token sequence and returns the Program root.
// Empty input parses to a Program with no declarations.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.check(token.EOF) {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	return prog, nil
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.cursor]
}

func (p *Parser) curPos() ast.SourcePos {
	t := p.cur()
	return ast.SourcePos{Line: t.Line, Col: t.Column}
}

func (p *Parser) check(kind token.Kind) bool {
	return p.cur().Kind == kind
}

// advance returns the current token and moves past it. The cursor never
// advances past the trailing EOF token.
func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.cursor++
	}
	return t
}

// match advances over the current token if it has the given kind.
func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// consume requires the current token to have the given kind and advances
// past it, or fails with a syntax error at the current token.
func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.syntaxError("unexpected %s; expected %s", p.cur(), kind)
}

func (p *Parser) syntaxError(format string, args ...any) error {
	return reporter.Errorf(p.curPos(), format, args...)
}

type modifiers struct {
	inline   bool
	comptime bool
}

// parseDecl parses one top-level declaration: optional inline/comptime
// modifiers followed by a function or variable declaration. Anything else
// is a syntax error.
func (p *Parser) parseDecl() (ast.Decl, error) {
	startPos := p.curPos()

	var mods modifiers
	for {
		if p.match(token.Inline) {
			mods.inline = true
			continue
		}
		if p.match(token.Comptime) {
			mods.comptime = true
			continue
		}
		break
	}

	switch p.cur().Kind {
	case token.Fn:
		return p.parseFuncDecl(startPos, mods)
	case token.Const, token.Var:
		return p.parseVarDecl(startPos, mods)
	default:
		return nil, p.syntaxError("unexpected %s; expected declaration", p.cur())
	}
}

// parseFuncDecl parses `fn name(params) [!] type block`. A `!` before the
// return type marks it as an error union.
func (p *Parser) parseFuncDecl(startPos ast.SourcePos, mods modifiers) (*ast.FuncDecl, error) {
	if _, err := p.consume(token.Fn); err != nil {
		return nil, err
	}
	name, err := p.consume(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LParen); err != nil {
		return nil, err
	}

	var params []ast.Param
	if !p.check(token.RParen) {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RParen); err != nil {
		return nil, err
	}

	var bangPos ast.SourcePos
	errorUnion := false
	if p.check(token.Bang) {
		bangPos = p.curPos()
		p.advance()
		errorUnion = true
	}

	retType, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	if errorUnion {
		retType = &ast.ErrorUnionType{StartPos: bangPos, Payload: retType}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		StartPos:   startPos,
		Name:       name.Text,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Inline:     mods.inline,
		Comptime:   mods.comptime,
	}, nil
}

// parseParam parses `[comptime] name : type`.
func (p *Parser) parseParam() (ast.Param, error) {
	startPos := p.curPos()
	comptime := p.match(token.Comptime)
	name, err := p.consume(token.Ident)
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.consume(token.Colon); err != nil {
		return ast.Param{}, err
	}
	typ, err := p.parseTypeAnnotation()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{
		StartPos: startPos,
		Name:     name.Text,
		Type:     typ,
		Comptime: comptime,
	}, nil
}

// parseVarDecl parses `const|var name [: type] [= init] ;`.
func (p *Parser) parseVarDecl(startPos ast.SourcePos, mods modifiers) (*ast.VarDecl, error) {
	kw := p.advance() // const or var
	name, err := p.consume(token.Ident)
	if err != nil {
		return nil, err
	}

	var typ ast.Type
	if p.match(token.Colon) {
		typ, err = p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
	}

	var init ast.Expr
	if p.match(token.Assign) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.VarDecl{
		StartPos: startPos,
		Const:    kw.Kind == token.Const,
		Name:     name.Text,
		Type:     typ,
		Init:     init,
		Inline:   mods.inline,
		Comptime: mods.comptime,
	}, nil
}

// parseTypeAnnotation recognizes a primitive type keyword or a named type.
// This is the grammar's only type entry point; the richer type variants in
// package ast have no surface syntax here.
func (p *Parser) parseTypeAnnotation() (ast.Type, error) {
	t := p.cur()
	pos := p.curPos()
	if t.Kind.IsPrimitiveType() {
		p.advance()
		return &ast.PrimitiveType{StartPos: pos, Kind: t.Kind}, nil
	}
	if t.Kind == token.Ident {
		p.advance()
		return &ast.NamedType{StartPos: pos, Name: t.Text}, nil
	}
	return nil, p.syntaxError("unexpected %s; expected type", t)
}

// parseStatement dispatches on the current token, in order: return, if,
// while, break, continue, comptime block, const/var declaration, block, and
// finally an expression statement.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case token.Return:
		return p.parseReturn()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Break:
		pos := p.curPos()
		p.advance()
		if _, err := p.consume(token.Semicolon); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{StartPos: pos}, nil
	case token.Continue:
		pos := p.curPos()
		p.advance()
		if _, err := p.consume(token.Semicolon); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{StartPos: pos}, nil
	case token.Comptime:
		pos := p.curPos()
		p.advance()
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ComptimeStmt{StartPos: pos, Body: body}, nil
	case token.Const, token.Var:
		return p.parseVarDecl(p.curPos(), modifiers{})
	case token.LBrace:
		return p.parseBlock()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.Semicolon); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: expr}, nil
	}
}

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	pos := p.curPos()
	if _, err := p.consume(token.LBrace); err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{StartPos: pos}
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, err := p.consume(token.RBrace); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	pos := p.curPos()
	p.advance()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{StartPos: pos, Value: value}, nil
}

// parseIf parses `if (cond) stmt [else stmt]`. The else branch recursively
// parses another statement, so `else if` chains need no dedicated rule.
func (p *Parser) parseIf() (*ast.IfStmt, error) {
	pos := p.curPos()
	p.advance()
	cond, err := p.parseParenCond()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.match(token.Else) {
		els, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{StartPos: pos, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	pos := p.curPos()
	p.advance()
	cond, err := p.parseParenCond()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{StartPos: pos, Cond: cond, Body: body}, nil
}

func (p *Parser) parseParenCond() (ast.Expr, error) {
	if _, err := p.consume(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseExpression parses a full expression, with assignment as the loosest,
// right-associative tier.
func (p *Parser) parseExpression() (ast.Expr, error) {
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if p.check(token.Assign) || p.check(token.PlusAssign) {
		op := p.advance()
		// Right-associative: `a = b = 1` nests on the right.
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Op: op.Kind, Target: left, Value: value}, nil
	}
	return left, nil
}

// parseBinary is the precedence-climbing loop, driven by the operator table
// in [token.Kind.Precedence]. It parses operators whose precedence is at
// least min, folding left-associatively.
func (p *Parser) parseBinary(min int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := p.cur().Kind.Precedence()
		if prec == token.LowestPrec || prec < min {
			return left, nil
		}
		op := p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op.Kind, X: left, Y: right}
	}
}

// parseUnary parses prefix `-` and `!`, right-associatively via
// self-recursion.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(token.Minus) || p.check(token.Bang) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op.Kind, X: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses call, member-access, and index operations, chaining
// left to right.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LParen):
			var args []ast.Expr
			if !p.check(token.RParen) {
				for {
					arg, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.match(token.Comma) {
						break
					}
				}
			}
			if _, err := p.consume(token.RParen); err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Fun: expr, Args: args}
		case p.match(token.Dot):
			name, err := p.consume(token.Ident)
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{X: expr, Name: name.Text}
		case p.match(token.LBracket):
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RBracket); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{X: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

// parsePrimary parses literals, identifiers, and parenthesized
// sub-expressions.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	pos := p.curPos()
	switch t.Kind {
	case token.Number:
		p.advance()
		return &ast.NumberLit{StartPos: pos, Text: t.Text}, nil
	case token.String:
		p.advance()
		return &ast.StringLit{StartPos: pos, Value: t.Text}, nil
	case token.True, token.False:
		p.advance()
		return &ast.BoolLit{StartPos: pos, Value: t.Kind == token.True}, nil
	case token.Ident:
		p.advance()
		return &ast.IdentExpr{StartPos: pos, Name: t.Text}, nil
	case token.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.syntaxError("unexpected %s; expected expression", t)
	}
}
