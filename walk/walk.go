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

// Package walk provides depth-first traversal over Mica ASTs.
//
// Children are visited in source order, so positions are non-decreasing
// across a subtree's siblings. Callbacks stop the walk early by returning a
// non-nil error, which is propagated unchanged to the caller.
package walk

import (
	"fmt"

	"github.com/micalang/micacompile/ast"
)

// Nodes walks the tree rooted at n, invoking fn for every node before its
// children.
func Nodes(n ast.Node, fn func(ast.Node) error) error {
	return NodesEnterAndExit(n, fn, nil)
}

// NodesEnterAndExit walks the tree rooted at n, invoking enter for every
// node before its children and exit (if non-nil) after them.
func NodesEnterAndExit(n ast.Node, enter, exit func(ast.Node) error) error {
	if n == nil {
		return nil
	}
	if err := enter(n); err != nil {
		return err
	}
	if err := walkChildren(n, enter, exit); err != nil {
		return err
	}
	if exit != nil {
		return exit(n)
	}
	return nil
}

func walkChildren(n ast.Node, enter, exit func(ast.Node) error) error {
	walk := func(children ...ast.Node) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := NodesEnterAndExit(child, enter, exit); err != nil {
				return err
			}
		}
		return nil
	}

	switch n := n.(type) {
	case *ast.Program:
		for _, d := range n.Decls {
			if err := walk(d); err != nil {
				return err
			}
		}
		return nil

	case *ast.FuncDecl:
		for _, p := range n.Params {
			if err := walk(p.Type); err != nil {
				return err
			}
		}
		return walk(n.ReturnType, n.Body)
	case *ast.VarDecl:
		return walk(optType(n.Type), optExpr(n.Init))
	case *ast.StructDecl:
		return walkFields(n.Fields, walk)
	case *ast.UnionDecl:
		return walkFields(n.Fields, walk)
	case *ast.EnumDecl:
		// Members carry no child nodes.
		return nil

	case *ast.BlockStmt:
		for _, s := range n.Stmts {
			if err := walk(s); err != nil {
				return err
			}
		}
		return nil
	case *ast.ReturnStmt:
		return walk(optExpr(n.Value))
	case *ast.IfStmt:
		return walk(n.Cond, n.Then, optStmt(n.Else))
	case *ast.WhileStmt:
		return walk(n.Cond, n.Body)
	case *ast.ForStmt:
		return walk(optStmt(n.Init), optExpr(n.Cond), optExpr(n.Post), n.Body)
	case *ast.BreakStmt, *ast.ContinueStmt:
		return nil
	case *ast.ComptimeStmt:
		return walk(n.Body)
	case *ast.ExprStmt:
		return walk(n.X)

	case *ast.BinaryExpr:
		return walk(n.X, n.Y)
	case *ast.UnaryExpr:
		return walk(n.X)
	case *ast.AssignExpr:
		return walk(n.Target, n.Value)
	case *ast.CallExpr:
		if err := walk(n.Fun); err != nil {
			return err
		}
		for _, a := range n.Args {
			if err := walk(a); err != nil {
				return err
			}
		}
		return nil
	case *ast.MemberExpr:
		return walk(n.X)
	case *ast.IndexExpr:
		return walk(n.X, n.Index)
	case *ast.StructLit:
		for _, f := range n.Fields {
			if err := walk(f.Value); err != nil {
				return err
			}
		}
		return nil
	case *ast.ArrayLit:
		for _, el := range n.Elems {
			if err := walk(el); err != nil {
				return err
			}
		}
		return nil
	case *ast.IdentExpr, *ast.NumberLit, *ast.StringLit, *ast.BoolLit:
		return nil

	case *ast.PrimitiveType, *ast.NamedType:
		return nil
	case *ast.PointerType:
		return walk(n.Elem)
	case *ast.ArrayType:
		return walk(optExpr(n.Len), n.Elem)
	case *ast.ErrorUnionType:
		return walk(n.Payload)
	case *ast.OptionalType:
		return walk(n.Elem)

	default:
		panic(fmt.Sprintf("walk: unknown node %T", n))
	}
}

func walkFields(fields []ast.Field, walk func(...ast.Node) error) error {
	for _, f := range fields {
		if err := walk(f.Type); err != nil {
			return err
		}
	}
	return nil
}

// The opt helpers convert nil typed pointers into nil interfaces so the
// variadic walk skips them.

func optExpr(e ast.Expr) ast.Node {
	if e == nil {
		return nil
	}
	return e
}

func optStmt(s ast.Stmt) ast.Node {
	if s == nil {
		return nil
	}
	return s
}

func optType(t ast.Type) ast.Node {
	if t == nil {
		return nil
	}
	return t
}
