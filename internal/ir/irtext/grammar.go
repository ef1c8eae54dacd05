package irtext

import "github.com/alecthomas/participle/v2/lexer"

// File is the parse tree of one textual IR module
type File struct {
	Pos   lexer.Position
	Name  string  `EOL* "module" @(Ident | Opcode) EOL+`
	Items []*Item `@@*`
}

type Item struct {
	Contract *ContractDecl `  @@`
	Function *FunctionDecl `| @@`
}

type ContractDecl struct {
	Pos     lexer.Position
	Name    string    `"contract" @(Ident | Opcode) "{" EOL+`
	Members []*Member `@@* "}" EOL*`
}

type Member struct {
	Storage  *StorageDecl  `  @@`
	Event    *EventDecl    `| @@`
	Function *FunctionDecl `| @@`
}

type StorageDecl struct {
	Pos      lexer.Position
	Name     string   `"storage" @(Ident | Opcode) ":"`
	Type     *TypeRef `@@`
	Constant bool     `@"const"?`
	Slot     *string  `("@" @Int)? EOL+`
}

type EventDecl struct {
	Pos    lexer.Position
	Name   string        `"event" @(Ident | Opcode) "("`
	Fields []*EventField `(@@ ("," @@)*)? ")" EOL+`
}

type EventField struct {
	Indexed bool     `@"indexed"?`
	Name    string   `@(Ident | Opcode) ":"`
	Type    *TypeRef `@@`
}

// TypeRef is a type name with optional bracketed arguments, as in
// mapping[address, uint256]
type TypeRef struct {
	Pos  lexer.Position
	Name string     `@Ident`
	Args []*TypeRef `("[" @@ ("," @@)* "]")?`
}

type FunctionDecl struct {
	Pos    lexer.Position
	Name   string       `"fn" @(Ident | Opcode) "("`
	Params []*ParamDecl `(@@ ("," @@)*)? ")"`
	Return *TypeRef     `("->" @@)? "{" EOL+`
	Locals []*LocalDecl `@@*`
	Blocks []*BlockDecl `@@* "}" EOL*`
}

type ParamDecl struct {
	Pos  lexer.Position
	Reg  string   `@Register`
	Name string   `@(Ident | Opcode) ":"`
	Type *TypeRef `@@`
}

type LocalDecl struct {
	Pos  lexer.Position
	Name string `"local" @(Ident | Opcode) "="`
	Reg  string `@Register EOL+`
}

type BlockDecl struct {
	Pos   lexer.Position
	Label string  `@Ident ":" EOL+`
	Lines []*Line `@@*`
}

type Line struct {
	Instruction *InstructionDecl `  @@`
	Terminator  *TerminatorDecl  `| @@`
}

// InstructionDecl covers every instruction form:
//
//	%d = op a, b
//	op a, b
//	%d = call name(a, b)
//	emit Name(a, b)
type InstructionDecl struct {
	Pos      lexer.Position
	Dest     *string    `(@Register "=")?`
	Op       string     `@Opcode`
	Callee   *string    `( @(Ident | Opcode) "("`
	CallArgs []*Operand `  (@@ ("," @@)*)? ")"`
	Args     []*Operand `| @@ ("," @@)* )? EOL+`
}

type Operand struct {
	Pos      lexer.Position
	Register *string `  @Register`
	Int      *string `| @Int`
}

type TerminatorDecl struct {
	Pos    lexer.Position
	Jump   *string     `( "jmp" @Ident`
	Branch *BranchDecl `| "br" @@`
	Return *ReturnDecl `| @@`
	Abort  *AbortDecl  `| @@ ) EOL+`
}

type BranchDecl struct {
	Cond *Operand `@@ ","`
	Then string   `@Ident ","`
	Else string   `@Ident`
}

type ReturnDecl struct {
	Keyword string   `@"ret"`
	Value   *Operand `@@?`
}

type AbortDecl struct {
	Keyword string  `@"abort"`
	Reason  *string `@String?`
}
