package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// High-level constructs
	MODULE
	CONTRACT
	STATE_VAR
	FUNCTION
	PARAM
	STRUCT
	STRUCT_FIELD
	ENUM
	TYPE
	IDENT

	// Statements
	LET_STMT
	ASSIGN_STMT
	IF_STMT
	COND_BRANCH
	WHILE_STMT
	RETURN_STMT
	BREAK_STMT
	CONTINUE_STMT
	EXPR_STMT

	// Expressions
	INT_LIT
	STRING_LIT
	BOOL_LIT
	NONE_LIT
	IDENT_EXPR
	BINARY_EXPR
	UNARY_EXPR
	CALL_EXPR
	ATTRIBUTE_EXPR
	INDEX_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:        "ILLEGAL",
	MODULE:         "MODULE",
	CONTRACT:       "CONTRACT",
	STATE_VAR:      "STATE_VAR",
	FUNCTION:       "FUNCTION",
	PARAM:          "PARAM",
	STRUCT:         "STRUCT",
	STRUCT_FIELD:   "STRUCT_FIELD",
	ENUM:           "ENUM",
	TYPE:           "TYPE",
	IDENT:          "IDENT",
	LET_STMT:       "LET_STMT",
	ASSIGN_STMT:    "ASSIGN_STMT",
	IF_STMT:        "IF_STMT",
	COND_BRANCH:    "COND_BRANCH",
	WHILE_STMT:     "WHILE_STMT",
	RETURN_STMT:    "RETURN_STMT",
	BREAK_STMT:     "BREAK_STMT",
	CONTINUE_STMT:  "CONTINUE_STMT",
	EXPR_STMT:      "EXPR_STMT",
	INT_LIT:        "INT_LIT",
	STRING_LIT:     "STRING_LIT",
	BOOL_LIT:       "BOOL_LIT",
	NONE_LIT:       "NONE_LIT",
	IDENT_EXPR:     "IDENT_EXPR",
	BINARY_EXPR:    "BINARY_EXPR",
	UNARY_EXPR:     "UNARY_EXPR",
	CALL_EXPR:      "CALL_EXPR",
	ATTRIBUTE_EXPR: "ATTRIBUTE_EXPR",
	INDEX_EXPR:     "INDEX_EXPR",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}
