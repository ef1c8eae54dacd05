package ast

type Expr interface {
	Node
	isExpr()
}

func (*IntLit) isExpr() {}

func (*StringLit) isExpr() {}

func (*BoolLit) isExpr() {}

func (*NoneLit) isExpr() {}

func (*IdentExpr) isExpr() {}

func (*BinaryExpr) isExpr() {}

func (*UnaryExpr) isExpr() {}

func (*CallExpr) isExpr() {}

func (*AttributeExpr) isExpr() {}

func (*IndexExpr) isExpr() {}

// Stmt is anything that may appear in a function or block body
type Stmt interface {
	Node
	isStmt()
}

func (*LetStmt) isStmt()      {}
func (*AssignStmt) isStmt()   {}
func (*IfStmt) isStmt()       {}
func (*WhileStmt) isStmt()    {}
func (*ReturnStmt) isStmt()   {}
func (*BreakStmt) isStmt()    {}
func (*ContinueStmt) isStmt() {}
func (*ExprStmt) isStmt()     {}

// Item is a top-level declaration of a module
type Item interface {
	Node
	isItem()
	ItemName() Ident
}

func (*Contract) isItem() {}
func (*Function) isItem() {}
func (*Struct) isItem()   {}
func (*Enum) isItem()     {}

func (c *Contract) ItemName() Ident { return c.Name }
func (f *Function) ItemName() Ident { return f.Name }
func (s *Struct) ItemName() Ident   { return s.Name }
func (e *Enum) ItemName() Ident     { return e.Name }
