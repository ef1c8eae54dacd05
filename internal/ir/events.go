package ir

import (
	"encoding/hex"
	"strings"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"quorlin/internal/types"
)

// Event is a log entry a contract can emit
type Event struct {
	Name   string
	Params []*EventParam
}

// EventParam is one field of an event; indexed fields become topics
type EventParam struct {
	Name    string
	Type    types.Type
	Indexed bool
}

// Signature is the canonical "Name(type,...)" form used for the topic hash
func (e *Event) Signature() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = ABITypeName(p.Type)
	}
	return e.Name + "(" + strings.Join(names, ",") + ")"
}

// Topic is the keccak-256 hash of the event signature
func (e *Event) Topic() [32]byte {
	return Keccak256([]byte(e.Signature()))
}

// TopicHex is Topic as 0x-prefixed hex
func (e *Event) TopicHex() string {
	topic := e.Topic()
	return "0x" + hex.EncodeToString(topic[:])
}

// FindEvent looks up an event by name
func (c *Contract) FindEvent(name string) *Event {
	for _, e := range c.Events {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// ABITypeName renders a type the way ABI signatures spell it
func ABITypeName(t types.Type) string {
	switch t := t.(type) {
	case types.String:
		return "string"
	case types.Array:
		return ABITypeName(t.Elem) + "[]"
	case types.Named:
		if t.Kind == types.EnumKind {
			return "uint8"
		}
		if t.Kind == types.ContractKind {
			return "address"
		}
		return t.Name
	case nil:
		return ""
	default:
		return t.String()
	}
}

// Keccak256 hashes data with the legacy (pre-standard) Keccak used by the EVM
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// StorageSlot assigns a storage variable to its base slot
type StorageSlot struct {
	Name string
	Slot uint64
	Type types.Type
}

// ComputeLayout assigns consecutive slots to the non-constant state variables
func ComputeLayout(vars []*StateVar) []*StorageSlot {
	var layout []*StorageSlot
	var next uint64
	for _, v := range vars {
		if v.Constant {
			continue
		}
		layout = append(layout, &StorageSlot{Name: v.Name, Slot: next, Type: v.Type})
		next++
	}
	return layout
}

// SlotOf returns the base slot of a state variable
func (c *Contract) SlotOf(name string) (*StorageSlot, bool) {
	for _, s := range c.StorageLayout {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Word is the slot number as a 256-bit constant
func (s *StorageSlot) Word() Const {
	return ConstInt(s.Slot)
}

// ElementSlot is the slot of mapping[key]: keccak256(key . slot), both as
// 32-byte big-endian words
func (s *StorageSlot) ElementSlot(key *uint256.Int) *uint256.Int {
	slot := uint256.NewInt(s.Slot)
	k := key.Bytes32()
	b := slot.Bytes32()
	sum := Keccak256(k[:], b[:])
	return new(uint256.Int).SetBytes32(sum[:])
}

// DataSlot is the first slot of a dynamic array's elements: keccak256(slot)
func (s *StorageSlot) DataSlot() *uint256.Int {
	b := uint256.NewInt(s.Slot).Bytes32()
	sum := Keccak256(b[:])
	return new(uint256.Int).SetBytes32(sum[:])
}

// SlotInfo is one row of a resolved storage layout
type SlotInfo struct {
	Name    string
	Type    types.Type
	Base    Const
	Data    *uint256.Int // lists: slot of the first element
	Element *uint256.Int // mappings: slot of the requested key
}

// Layout resolves where each storage variable of c lives. For mappings the
// slot of key is included when key is not nil.
func (c *Contract) Layout(key *uint256.Int) []SlotInfo {
	infos := make([]SlotInfo, 0, len(c.StorageLayout))
	for _, s := range c.StorageLayout {
		info := SlotInfo{Name: s.Name, Type: s.Type, Base: s.Word()}
		switch s.Type.(type) {
		case types.Array:
			info.Data = s.DataSlot()
		case types.Mapping:
			if key != nil {
				info.Element = s.ElementSlot(key)
			}
		}
		infos = append(infos, info)
	}
	return infos
}
