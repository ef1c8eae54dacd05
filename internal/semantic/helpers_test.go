package semantic

import (
	"quorlin/internal/ast"
	"quorlin/internal/errors"
)

// Small AST constructors; positions encode the statement index so tests can
// assert where a diagnostic was reported.

func pos(line int) ast.Position { return ast.Position{Filename: "test.qrl", Line: line, Column: 1} }

func ident(name string) ast.Ident { return ast.Ident{Value: name} }

func typ(name string, args ...*ast.TypeExpr) *ast.TypeExpr {
	return &ast.TypeExpr{Name: ident(name), Args: args}
}

func name(n string) *ast.IdentExpr { return &ast.IdentExpr{Name: n} }

func num(v string) *ast.IntLit { return &ast.IntLit{Value: v} }

func str(v string) *ast.StringLit { return &ast.StringLit{Value: v} }

func boolean(v bool) *ast.BoolLit { return &ast.BoolLit{Value: v} }

func bin(op string, l, r ast.Expr) *ast.BinaryExpr { return &ast.BinaryExpr{Op: op, Left: l, Right: r} }

func call(callee ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Callee: callee, Args: args}
}

func attr(base ast.Expr, field string) *ast.AttributeExpr {
	return &ast.AttributeExpr{Value: base, Attr: ident(field)}
}

func index(base, idx ast.Expr) *ast.IndexExpr { return &ast.IndexExpr{Value: base, Index: idx} }

func let(n string, t *ast.TypeExpr, v ast.Expr) *ast.LetStmt {
	return &ast.LetStmt{Name: ident(n), Type: t, Value: v}
}

func letMut(n string, t *ast.TypeExpr, v ast.Expr) *ast.LetStmt {
	return &ast.LetStmt{Name: ident(n), Type: t, Value: v, Mutable: true}
}

func assign(target, value ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{Target: target, Value: value}
}

func ret(v ast.Expr) *ast.ReturnStmt { return &ast.ReturnStmt{Value: v} }

func exprStmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

func while(cond ast.Expr, body ...ast.Stmt) *ast.WhileStmt {
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func ifStmt(cond ast.Expr, body ...ast.Stmt) *ast.IfStmt {
	return &ast.IfStmt{Branches: []*ast.CondBranch{{Cond: cond, Body: body}}}
}

func param(n string, t *ast.TypeExpr) *ast.Param {
	return &ast.Param{Name: ident(n), Type: t}
}

func fn(n string, params []*ast.Param, ret *ast.TypeExpr, body ...ast.Stmt) *ast.Function {
	return &ast.Function{Name: ident(n), Params: params, Return: ret, Body: body}
}

func module(items ...ast.Item) *ast.Module {
	return &ast.Module{Name: "test", Items: items}
}

// analyze runs a fresh analyzer and returns the diagnostics (nil on success)
func analyze(m *ast.Module) (*Analyzer, errors.List, error) {
	a := NewAnalyzer()
	_, err := a.Analyze(m)
	if list, ok := err.(errors.List); ok {
		return a, list, nil
	}
	return a, nil, err
}
