package ast

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

func indentBody(b *strings.Builder, body []Stmt) {
	if len(body) == 0 {
		b.WriteString("\n" + indentUnit + "pass")
		return
	}
	for _, stmt := range body {
		b.WriteString("\n" + indentUnit + strings.ReplaceAll(stmt.String(), "\n", "\n"+indentUnit))
	}
}

func (m *Module) String() string {
	items := make([]string, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, item.String())
	}
	return strings.Join(items, "\n\n")
}

func (i *Ident) String() string {
	return i.Value
}

func (c *Contract) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("contract %s:", c.Name.Value))
	for _, sv := range c.StateVars {
		b.WriteString("\n" + indentUnit + sv.String())
	}
	for _, fn := range c.Functions {
		b.WriteString("\n\n" + indentUnit + strings.ReplaceAll(fn.String(), "\n", "\n"+indentUnit))
	}
	if len(c.StateVars) == 0 && len(c.Functions) == 0 {
		b.WriteString("\n" + indentUnit + "pass")
	}

	return b.String()
}

func (sv *StateVar) String() string {
	if sv.Constant {
		return fmt.Sprintf("const %s: %s", sv.Name.Value, sv.Type)
	}
	return fmt.Sprintf("%s: %s", sv.Name.Value, sv.Type)
}

func (f *Function) String() string {
	var b strings.Builder

	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}

	b.WriteString(fmt.Sprintf("fn %s(%s)", f.Name.Value, strings.Join(params, ", ")))
	if f.Return != nil {
		b.WriteString(" -> " + f.Return.String())
	}
	b.WriteString(":")
	indentBody(&b, f.Body)

	return b.String()
}

func (p *Param) String() string {
	if p.Mutable {
		return fmt.Sprintf("mut %s: %s", p.Name.Value, p.Type)
	}
	return fmt.Sprintf("%s: %s", p.Name.Value, p.Type)
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("struct %s:", s.Name.Value))
	for _, f := range s.Fields {
		b.WriteString("\n" + indentUnit + f.String())
	}
	return b.String()
}

func (sf *StructField) String() string {
	return fmt.Sprintf("%s: %s", sf.Name.Value, sf.Type)
}

func (e *Enum) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("enum %s:", e.Name.Value))
	for _, v := range e.Variants {
		b.WriteString("\n" + indentUnit + v.Value)
	}
	return b.String()
}

func (t *TypeExpr) String() string {
	if t == nil {
		return "<inferred>"
	}
	if len(t.Args) == 0 {
		return t.Name.Value
	}
	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s[%s]", t.Name.Value, strings.Join(args, ", "))
}

func (l *LetStmt) String() string {
	var b strings.Builder
	b.WriteString("let ")
	if l.Mutable {
		b.WriteString("mut ")
	}
	b.WriteString(l.Name.Value)
	if l.Type != nil {
		b.WriteString(": " + l.Type.String())
	}
	if l.Value != nil {
		b.WriteString(" = " + l.Value.String())
	}
	return b.String()
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

func (is *IfStmt) String() string {
	var b strings.Builder
	for i, br := range is.Branches {
		if i > 0 {
			b.WriteString("\nel")
		}
		b.WriteString(br.String())
	}
	if is.Else != nil {
		b.WriteString("\nelse:")
		indentBody(&b, is.Else)
	}
	return b.String()
}

func (cb *CondBranch) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("if %s:", cb.Cond))
	indentBody(&b, cb.Body)
	return b.String()
}

func (w *WhileStmt) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("while %s:", w.Cond))
	indentBody(&b, w.Body)
	return b.String()
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

func (*BreakStmt) String() string { return "break" }

func (*ContinueStmt) String() string { return "continue" }

func (e *ExprStmt) String() string {
	return e.Expr.String()
}

func (il *IntLit) String() string { return il.Value }

func (sl *StringLit) String() string { return fmt.Sprintf("%q", sl.Value) }

func (bl *BoolLit) String() string {
	if bl.Value {
		return "True"
	}
	return "False"
}

func (*NoneLit) String() string { return "None" }

func (ie *IdentExpr) String() string { return ie.Name }

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (u *UnaryExpr) String() string {
	if u.Op == "not" {
		return fmt.Sprintf("not %s", u.Value)
	}
	return u.Op + u.Value.String()
}

func (c *CallExpr) String() string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

func (a *AttributeExpr) String() string {
	return fmt.Sprintf("%s.%s", a.Value, a.Attr.Value)
}

func (ix *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", ix.Value, ix.Index)
}
