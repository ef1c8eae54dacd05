package semantic

import (
	"sort"

	"quorlin/internal/errors"
)

// ScopeID indexes a frame in the ScopeTable arena
type ScopeID int

// NoScope is the parent of the root frame
const NoScope ScopeID = -1

// Scope is one lexical frame
type Scope struct {
	ID      ScopeID
	Parent  ScopeID
	symbols map[string]*Symbol
}

// ScopeTable stores every frame of one analysis run in a single arena.
// Frames refer to their parent by index; the current frame moves on
// Push and Pop in strict LIFO order.
type ScopeTable struct {
	scopes  []*Scope
	current ScopeID
}

// NewScopeTable creates a table holding only the root frame
func NewScopeTable() *ScopeTable {
	st := &ScopeTable{}
	st.scopes = append(st.scopes, &Scope{ID: 0, Parent: NoScope, symbols: make(map[string]*Symbol)})
	st.current = 0
	return st
}

// Current returns the id of the current frame
func (st *ScopeTable) Current() ScopeID {
	return st.current
}

// Depth is the number of frames between the current frame and the root
func (st *ScopeTable) Depth() int {
	depth := 0
	for id := st.scopes[st.current].Parent; id != NoScope; id = st.scopes[id].Parent {
		depth++
	}
	return depth
}

// Push creates a child of the current frame and makes it current
func (st *ScopeTable) Push() ScopeID {
	id := ScopeID(len(st.scopes))
	st.scopes = append(st.scopes, &Scope{ID: id, Parent: st.current, symbols: make(map[string]*Symbol)})
	st.current = id
	return id
}

// Pop makes the parent of the current frame current. Popping the root is a
// no-op and reports false.
func (st *ScopeTable) Pop() bool {
	parent := st.scopes[st.current].Parent
	if parent == NoScope {
		return false
	}
	st.current = parent
	return true
}

// Define binds sym in the current frame. A name already bound in the same
// frame is a DuplicateDefinition located at sym; bindings in ancestor frames
// are shadowed.
func (st *ScopeTable) Define(sym *Symbol) error {
	frame := st.scopes[st.current]
	if _, exists := frame.symbols[sym.Name]; exists {
		return errors.DuplicateDefinition(sym.Name, sym.DeclaredAt)
	}
	frame.symbols[sym.Name] = sym
	return nil
}

// Lookup finds the nearest binding of name, walking outward from the current frame
func (st *ScopeTable) Lookup(name string) (*Symbol, bool) {
	for id := st.current; id != NoScope; id = st.scopes[id].Parent {
		if sym, ok := st.scopes[id].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only the current frame
func (st *ScopeTable) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := st.scopes[st.current].symbols[name]
	return sym, ok
}

// Visible returns the names visible from the current frame whose symbol
// has the given kind, nearest binding wins, sorted.
func (st *ScopeTable) Visible(kind SymbolKind) []string {
	seen := make(map[string]bool)
	var names []string
	for id := st.current; id != NoScope; id = st.scopes[id].Parent {
		for name, sym := range st.scopes[id].symbols {
			if seen[name] {
				continue
			}
			seen[name] = true
			if sym.Kind == kind {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
