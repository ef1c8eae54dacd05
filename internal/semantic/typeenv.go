package semantic

import (
	"quorlin/internal/ast"
	"quorlin/internal/types"
)

// ExprID identifies one analyzed expression
type ExprID int

// TypeEnv caches the inferred type of every analyzed expression. Ids are
// handed out in increasing order and never reused.
type TypeEnv struct {
	next  ExprID
	types map[ExprID]types.Type
	ids   map[ast.Expr]ExprID
}

func NewTypeEnv() *TypeEnv {
	return &TypeEnv{
		types: make(map[ExprID]types.Type),
		ids:   make(map[ast.Expr]ExprID),
	}
}

// Register records t for expr under a fresh id
func (te *TypeEnv) Register(expr ast.Expr, t types.Type) ExprID {
	id := te.next
	te.next++
	te.types[id] = t
	if expr != nil {
		te.ids[expr] = id
	}
	return id
}

// Get returns the type recorded under id
func (te *TypeEnv) Get(id ExprID) (types.Type, bool) {
	t, ok := te.types[id]
	return t, ok
}

// Lookup returns the most recent type recorded for expr
func (te *TypeEnv) Lookup(expr ast.Expr) (types.Type, bool) {
	id, ok := te.ids[expr]
	if !ok {
		return nil, false
	}
	return te.Get(id)
}

// Len is the number of ids handed out so far
func (te *TypeEnv) Len() int {
	return int(te.next)
}
