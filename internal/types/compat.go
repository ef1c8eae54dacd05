package types

// IsInvalid reports whether t is the error sentinel
func IsInvalid(t Type) bool {
	_, ok := t.(Invalid)
	return ok
}

// IsNumeric reports whether arithmetic is defined on t
func IsNumeric(t Type) bool {
	_, ok := t.(Int)
	return ok
}

// Equal is nominal/structural equality: scalars by kind and width,
// containers element-wise, user types by name.
func Equal(a, b Type) bool {
	switch x := a.(type) {
	case Int:
		y, ok := b.(Int)
		return ok && x.Bits == y.Bits && x.Signed == y.Signed
	case Bool, String, Address, Bytes, Unit, None, Invalid:
		return a == b
	case Array:
		y, ok := b.(Array)
		return ok && Equal(x.Elem, y.Elem)
	case Mapping:
		y, ok := b.(Mapping)
		return ok && Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case Named:
		y, ok := b.(Named)
		return ok && x.Name == y.Name && x.Kind == y.Kind
	default:
		return false
	}
}

// Compatible is Equal, except that the error sentinel is compatible with
// everything (including inside containers).
func Compatible(a, b Type) bool {
	if IsInvalid(a) || IsInvalid(b) {
		return true
	}
	switch x := a.(type) {
	case Array:
		y, ok := b.(Array)
		return ok && Compatible(x.Elem, y.Elem)
	case Mapping:
		y, ok := b.(Mapping)
		return ok && Compatible(x.Key, y.Key) && Compatible(x.Value, y.Value)
	}
	return Equal(a, b)
}
