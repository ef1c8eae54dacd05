package ir

import "strings"

// Effects is the set of side effects an instruction may have
type Effects uint8

const (
	// EffectStorageRead reads contract storage
	EffectStorageRead Effects = 1 << iota
	// EffectStorageWrite writes contract storage
	EffectStorageWrite
	// EffectLog appends to the transaction log
	EffectLog
	// EffectCall transfers control to another function or contract
	EffectCall
	// EffectMayAbort may revert the transaction (checked arithmetic)
	EffectMayAbort
)

// Pure is the empty effect set
const Pure Effects = 0

// Observable reports whether the effect is visible outside the function:
// storage writes, log entries and calls.
func (e Effects) Observable() bool {
	return e&(EffectStorageWrite|EffectLog|EffectCall) != 0
}

// MayAbort reports whether the instruction can revert
func (e Effects) MayAbort() bool {
	return e&EffectMayAbort != 0
}

// Removable reports whether dropping an unused instruction with these
// effects keeps program behavior unchanged
func (e Effects) Removable() bool {
	return !e.Observable() && !e.MayAbort()
}

func (e Effects) String() string {
	if e == Pure {
		return "pure"
	}
	var parts []string
	if e&EffectStorageRead != 0 {
		parts = append(parts, "storage-read")
	}
	if e&EffectStorageWrite != 0 {
		parts = append(parts, "storage-write")
	}
	if e&EffectLog != 0 {
		parts = append(parts, "log")
	}
	if e&EffectCall != 0 {
		parts = append(parts, "call")
	}
	if e&EffectMayAbort != 0 {
		parts = append(parts, "may-abort")
	}
	return strings.Join(parts, "|")
}

func (i Arith) Effects() Effects {
	if i.Checked {
		return EffectMayAbort
	}
	return Pure
}

func (Compare) Effects() Effects { return Pure }
func (Assign) Effects() Effects  { return Pure }
func (SLoad) Effects() Effects   { return EffectStorageRead }
func (SStore) Effects() Effects  { return EffectStorageWrite }
func (Keccak) Effects() Effects  { return Pure }

// Caller reads the transaction context, which is fixed for one invocation
func (Caller) Effects() Effects { return Pure }

// Call effects are not analyzed across functions; every call may do anything
func (Call) Effects() Effects {
	return EffectCall | EffectStorageRead | EffectStorageWrite | EffectLog | EffectMayAbort
}

func (Emit) Effects() Effects { return EffectLog }
