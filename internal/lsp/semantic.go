package lsp

import (
	"sort"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"quorlin/internal/ir"
	"quorlin/internal/ir/irtext"
)

// SemanticTokenTypes is the token type legend sent to the client
var SemanticTokenTypes = []string{
	"namespace",
	"class",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"event",
	"keyword",
	"number",
	"string",
	"operator",
	"comment",
}

// SemanticTokenModifiers is the token modifier legend sent to the client
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// SemanticToken is one LSP semantic token. Line and StartChar are 0-based,
// TokenType indexes SemanticTokenTypes and TokenModifiers is a bitmask over
// SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

var symbolNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, t := range irtext.Lexer.Symbols() {
		names[t] = name
	}
	return names
}()

// collectSemanticTokens classifies the tokens of a document. Identifiers
// are classified from the tokens around them, so highlighting keeps working
// while the document does not parse.
func collectSemanticTokens(path, text string) []SemanticToken {
	lex, err := irtext.Lexer.LexString(path, text)
	if err != nil {
		return nil
	}

	var all []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			break
		}
		if symbolNames[tok.Type] != "Whitespace" {
			all = append(all, tok)
		}
	}

	var tokens []SemanticToken
	lineStart := ""
	for i, tok := range all {
		kind := symbolNames[tok.Type]
		if kind == "EOL" {
			lineStart = ""
			continue
		}
		if kind == "Comment" {
			tokens = append(tokens, makeToken(tok, "comment", false))
			continue
		}

		prev, next := neighbour(all, i, -1), neighbour(all, i, 1)
		if lineStart == "" {
			lineStart = tok.Value
		}

		switch kind {
		case "Keyword":
			tokens = append(tokens, makeToken(tok, "keyword", false))
		case "Opcode":
			tokens = append(tokens, makeToken(tok, "operator", false))
		case "Register":
			tokens = append(tokens, makeToken(tok, "variable", next.Value == "=" || symbolNames[next.Type] == "Ident"))
		case "Int":
			tokens = append(tokens, makeToken(tok, "number", false))
		case "String":
			tokens = append(tokens, makeToken(tok, "string", false))
		case "Ident":
			tokenType, decl := classifyIdent(prev, next, lineStart)
			tokens = append(tokens, makeToken(tok, tokenType, decl))
		}
	}
	return tokens
}

func classifyIdent(prev, next lexer.Token, lineStart string) (string, bool) {
	switch prev.Value {
	case "module":
		return "namespace", true
	case "fn":
		return "function", true
	case "contract":
		return "class", true
	case "event":
		return "event", true
	case "emit":
		return "event", false
	case "storage":
		return "property", true
	case "local":
		return "variable", true
	case "call", "call.ext":
		return "function", false
	}

	if lineStart == "jmp" || lineStart == "br" {
		return "namespace", false
	}
	if next.Value == ":" {
		switch symbolNames[prev.Type] {
		case "Register":
			return "parameter", true
		case "", "EOL":
			return "namespace", true
		default:
			return "property", true
		}
	}
	return "type", false
}

// neighbour returns the nearest non-comment token before (dir -1) or after
// (dir 1) index i, or the zero token
func neighbour(tokens []lexer.Token, i, dir int) lexer.Token {
	for j := i + dir; j >= 0 && j < len(tokens); j += dir {
		if symbolNames[tokens[j].Type] != "Comment" {
			return tokens[j]
		}
	}
	return lexer.Token{}
}

func makeToken(tok lexer.Token, tokenType string, declaration bool) SemanticToken {
	modifiers := 0
	if declaration {
		modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
	}
	return SemanticToken{
		Line:           uint32(tok.Pos.Line - 1),
		StartChar:      uint32(tok.Pos.Column - 1),
		Length:         uint32(utf8.RuneCountInString(tok.Value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}

var opcodes = []string{
	"add", "sub", "mul", "div", "mod",
	"add.checked", "sub.checked", "mul.checked", "div.checked", "mod.checked",
	"eq", "ne", "lt", "le", "gt", "ge",
	"mov", "sload", "sstore", "keccak", "caller", "call", "call.ext", "emit",
}

var keywords = []string{
	"module", "contract", "storage", "const", "event", "indexed", "fn", "local",
	"jmp", "br", "ret", "abort",
}

// completionItems lists opcodes, keywords and, when the document parsed,
// block labels, callable functions and event names
func completionItems(m *ir.Module) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	add := func(label string, kind protocol.CompletionItemKind, detail string) {
		item := protocol.CompletionItem{Label: label, Kind: &kind}
		if detail != "" {
			item.Detail = ptrString(detail)
		}
		items = append(items, item)
	}

	for _, op := range opcodes {
		add(op, protocol.CompletionItemKindOperator, "")
	}
	for _, kw := range keywords {
		add(kw, protocol.CompletionItemKindKeyword, "")
	}
	if m == nil {
		return items
	}

	labels := make(map[string]bool)
	for _, f := range m.AllFunctions() {
		for label := range f.Blocks {
			labels[label] = true
		}
	}
	sorted := make([]string, 0, len(labels))
	for label := range labels {
		sorted = append(sorted, label)
	}
	sort.Strings(sorted)
	for _, label := range sorted {
		add(label, protocol.CompletionItemKindReference, "block")
	}

	for _, f := range m.Functions {
		add(f.Name, protocol.CompletionItemKindFunction, "function")
	}
	for _, c := range m.Contracts {
		for _, f := range c.Functions {
			add(c.Name+"."+f.Name, protocol.CompletionItemKindMethod, "method")
		}
		for _, e := range c.Events {
			add(e.Name, protocol.CompletionItemKindEvent, e.Signature())
		}
	}
	return items
}
