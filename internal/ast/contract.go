package ast

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any identifier like variable names, type names, etc.
// Example: "Token", "balances", "owner", "amount"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// Module is the root of a parsed source file
type Module struct {
	Pos    Position
	EndPos Position
	Name   string
	Items  []Item
}

// Contract represents a contract declaration with its storage and methods
// Example: "contract Token:\n    balances: mapping[address, uint256]\n    fn transfer(...)"
type Contract struct {
	Pos       Position
	EndPos    Position
	Name      Ident
	StateVars []*StateVar
	Functions []*Function
}

// StateVar represents a contract storage variable
// Example: "balances: mapping[address, uint256]", "const decimals: uint8"
type StateVar struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Type     *TypeExpr
	Constant bool
}

// Function represents function declarations, both free and contract members
// Example: "fn balance_of(owner: address) -> uint256:"
type Function struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Params []*Param
	Return *TypeExpr // nil when the function returns nothing
	Body   []Stmt
}

// Param represents function parameters
// Example: "owner: address", "mut amount: uint256"
type Param struct {
	Pos     Position
	EndPos  Position
	Name    Ident
	Type    *TypeExpr
	Mutable bool
}

// Struct represents struct declarations
// Example: "struct Position:\n    x: uint256\n    y: uint256"
type Struct struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Fields []*StructField
}

// StructField represents a single named field of a struct
type StructField struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   *TypeExpr
}

// Enum represents enum declarations
// Example: "enum Status:\n    Active\n    Paused"
type Enum struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Variants []Ident
}

// TypeExpr represents a written type, optionally generic
// Example: "uint256", "mapping[address, uint256]", "list[bool]"
type TypeExpr struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Args   []*TypeExpr
}

// LetStmt represents variable declarations
// Example: "let total: uint256 = 0", "let mut counter = 1"
type LetStmt struct {
	Pos     Position
	EndPos  Position
	Mutable bool
	Name    Ident
	Type    *TypeExpr // nil when inferred
	Value   Expr      // nil when declared without initializer
}

// AssignStmt represents assignment statements
// Example: "self.balances[owner] = amount"
type AssignStmt struct {
	Pos    Position
	EndPos Position
	Target Expr
	Value  Expr
}

// IfStmt represents an if/elif/else chain. Branches[0] is the `if` arm,
// the remaining entries are `elif` arms in source order.
type IfStmt struct {
	Pos      Position
	EndPos   Position
	Branches []*CondBranch
	Else     []Stmt
}

// CondBranch is one guarded arm of an IfStmt
type CondBranch struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Body   []Stmt
}

// WhileStmt represents while loops
// Example: "while i < 10:"
type WhileStmt struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Body   []Stmt
}

// ReturnStmt represents return statements
// Example: "return balance", "return"
type ReturnStmt struct {
	Pos    Position
	EndPos Position
	Value  Expr // nil for a bare return
}

type BreakStmt struct {
	Pos    Position
	EndPos Position
}

type ContinueStmt struct {
	Pos    Position
	EndPos Position
}

// ExprStmt represents expression statements
// Example: "self.transfer(to, amount)"
type ExprStmt struct {
	Pos    Position
	EndPos Position
	Expr   Expr
}

// IntLit represents integer literals, kept as written
// Example: "42", "0xff"
type IntLit struct {
	Pos    Position
	EndPos Position
	Value  string
}

type StringLit struct {
	Pos    Position
	EndPos Position
	Value  string
}

type BoolLit struct {
	Pos    Position
	EndPos Position
	Value  bool
}

type NoneLit struct {
	Pos    Position
	EndPos Position
}

// IdentExpr represents a name used as a value
type IdentExpr struct {
	Pos    Position
	EndPos Position
	Name   string
}

// BinaryExpr represents binary operations
// Example: "amount + fee", "balance >= amount", "a and b"
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Left   Expr
	Right  Expr
}

// UnaryExpr represents unary operations
// Example: "-amount", "not paused"
type UnaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Value  Expr
}

// CallExpr represents function and method calls
// Example: "sender()", "self.mint(to, 100)"
type CallExpr struct {
	Pos    Position
	EndPos Position
	Callee Expr
	Args   []Expr
}

// AttributeExpr represents field access
// Example: "self.owner", "Status.Active"
type AttributeExpr struct {
	Pos    Position
	EndPos Position
	Value  Expr
	Attr   Ident
}

// IndexExpr represents indexing into arrays and mappings
// Example: "self.balances[owner]"
type IndexExpr struct {
	Pos    Position
	EndPos Position
	Value  Expr
	Index  Expr
}
