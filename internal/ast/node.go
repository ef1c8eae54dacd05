package ast

import "fmt"

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (m *Module) NodePos() Position    { return m.Pos }
func (m *Module) NodeEndPos() Position { return m.EndPos }
func (*Module) NodeType() NodeType     { return MODULE }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (c *Contract) NodePos() Position    { return c.Pos }
func (c *Contract) NodeEndPos() Position { return c.EndPos }
func (*Contract) NodeType() NodeType     { return CONTRACT }

func (sv *StateVar) NodePos() Position    { return sv.Pos }
func (sv *StateVar) NodeEndPos() Position { return sv.EndPos }
func (*StateVar) NodeType() NodeType      { return STATE_VAR }

func (f *Function) NodePos() Position    { return f.Pos }
func (f *Function) NodeEndPos() Position { return f.EndPos }
func (*Function) NodeType() NodeType     { return FUNCTION }

func (p *Param) NodePos() Position    { return p.Pos }
func (p *Param) NodeEndPos() Position { return p.EndPos }
func (*Param) NodeType() NodeType     { return PARAM }

func (s *Struct) NodePos() Position    { return s.Pos }
func (s *Struct) NodeEndPos() Position { return s.EndPos }
func (*Struct) NodeType() NodeType     { return STRUCT }

func (sf *StructField) NodePos() Position    { return sf.Pos }
func (sf *StructField) NodeEndPos() Position { return sf.EndPos }
func (*StructField) NodeType() NodeType      { return STRUCT_FIELD }

func (e *Enum) NodePos() Position    { return e.Pos }
func (e *Enum) NodeEndPos() Position { return e.EndPos }
func (*Enum) NodeType() NodeType     { return ENUM }

func (t *TypeExpr) NodePos() Position    { return t.Pos }
func (t *TypeExpr) NodeEndPos() Position { return t.EndPos }
func (*TypeExpr) NodeType() NodeType     { return TYPE }

func (l *LetStmt) NodePos() Position    { return l.Pos }
func (l *LetStmt) NodeEndPos() Position { return l.EndPos }
func (*LetStmt) NodeType() NodeType     { return LET_STMT }

func (a *AssignStmt) NodePos() Position    { return a.Pos }
func (a *AssignStmt) NodeEndPos() Position { return a.EndPos }
func (*AssignStmt) NodeType() NodeType     { return ASSIGN_STMT }

func (is *IfStmt) NodePos() Position    { return is.Pos }
func (is *IfStmt) NodeEndPos() Position { return is.EndPos }
func (*IfStmt) NodeType() NodeType      { return IF_STMT }

func (cb *CondBranch) NodePos() Position    { return cb.Pos }
func (cb *CondBranch) NodeEndPos() Position { return cb.EndPos }
func (*CondBranch) NodeType() NodeType      { return COND_BRANCH }

func (w *WhileStmt) NodePos() Position    { return w.Pos }
func (w *WhileStmt) NodeEndPos() Position { return w.EndPos }
func (*WhileStmt) NodeType() NodeType     { return WHILE_STMT }

func (r *ReturnStmt) NodePos() Position    { return r.Pos }
func (r *ReturnStmt) NodeEndPos() Position { return r.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }

func (b *BreakStmt) NodePos() Position    { return b.Pos }
func (b *BreakStmt) NodeEndPos() Position { return b.EndPos }
func (*BreakStmt) NodeType() NodeType     { return BREAK_STMT }

func (c *ContinueStmt) NodePos() Position    { return c.Pos }
func (c *ContinueStmt) NodeEndPos() Position { return c.EndPos }
func (*ContinueStmt) NodeType() NodeType     { return CONTINUE_STMT }

func (e *ExprStmt) NodePos() Position    { return e.Pos }
func (e *ExprStmt) NodeEndPos() Position { return e.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (il *IntLit) NodePos() Position    { return il.Pos }
func (il *IntLit) NodeEndPos() Position { return il.EndPos }
func (*IntLit) NodeType() NodeType      { return INT_LIT }

func (sl *StringLit) NodePos() Position    { return sl.Pos }
func (sl *StringLit) NodeEndPos() Position { return sl.EndPos }
func (*StringLit) NodeType() NodeType      { return STRING_LIT }

func (bl *BoolLit) NodePos() Position    { return bl.Pos }
func (bl *BoolLit) NodeEndPos() Position { return bl.EndPos }
func (*BoolLit) NodeType() NodeType      { return BOOL_LIT }

func (n *NoneLit) NodePos() Position    { return n.Pos }
func (n *NoneLit) NodeEndPos() Position { return n.EndPos }
func (*NoneLit) NodeType() NodeType     { return NONE_LIT }

func (ie *IdentExpr) NodePos() Position    { return ie.Pos }
func (ie *IdentExpr) NodeEndPos() Position { return ie.EndPos }
func (*IdentExpr) NodeType() NodeType      { return IDENT_EXPR }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (u *UnaryExpr) NodePos() Position    { return u.Pos }
func (u *UnaryExpr) NodeEndPos() Position { return u.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (c *CallExpr) NodePos() Position    { return c.Pos }
func (c *CallExpr) NodeEndPos() Position { return c.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (a *AttributeExpr) NodePos() Position    { return a.Pos }
func (a *AttributeExpr) NodeEndPos() Position { return a.EndPos }
func (*AttributeExpr) NodeType() NodeType     { return ATTRIBUTE_EXPR }

func (ix *IndexExpr) NodePos() Position    { return ix.Pos }
func (ix *IndexExpr) NodeEndPos() Position { return ix.EndPos }
func (*IndexExpr) NodeType() NodeType      { return INDEX_EXPR }

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
