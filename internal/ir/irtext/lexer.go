package irtext

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes textual IR. Newlines are significant: every instruction,
// declaration and label sits on its own line.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments run to the end of the line
		{"Comment", `;[^\n]*`, nil},

		// One or more line breaks, with the indentation that follows
		{"EOL", `(\r?\n[ \t]*)+`, nil},
		{"Whitespace", `[ \t]+`, nil},

		{"Register", `%[0-9]+`, nil},

		// Keywords and opcodes before identifiers (order matters)
		{"Keyword", `\b(module|contract|storage|const|event|indexed|fn|local|jmp|br|ret|abort)\b`, nil},
		{"Opcode", `\b((add|sub|mul|div|mod)(\.checked)?|eq|ne|lt|le|gt|ge|mov|sload|sstore|keccak|caller|call(\.ext)?|emit)\b`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.]*`, nil},

		{"Int", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},

		{"Arrow", `->`, nil},
		{"Punctuation", `[{}()\[\],:=@]`, nil},
	},
})
