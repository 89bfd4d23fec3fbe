package types

import "cmp"

// Compare orders two descriptions structurally: class first, then payload
// lexicographically. It returns -1, 0 or +1.
func Compare(a, b Type) int {
	if c := cmp.Compare(a.Class(), b.Class()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case Literal:
		return cmp.Compare(x.Kind, b.(Literal).Kind)
	case Builtin:
		return cmp.Compare(x.Kind, b.(Builtin).Kind)
	case Function:
		y := b.(Function)
		if c := cmp.Compare(x.Result, y.Result); c != 0 {
			return c
		}
		return compareIDs(x.Params, y.Params)
	case IntrinsicSig:
		y := b.(IntrinsicSig)
		if c := cmp.Compare(x.Config, y.Config); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Dest, y.Dest); c != 0 {
			return c
		}
		return cmp.Compare(x.Op, y.Op)
	case Tuple:
		y := b.(Tuple)
		for i := 0; i < len(x.Members) && i < len(y.Members); i++ {
			if c := cmp.Compare(x.Members[i].Type, y.Members[i].Type); c != 0 {
				return c
			}
			if c := cmp.Compare(x.Members[i].Name, y.Members[i].Name); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x.Members), len(y.Members))
	case Union:
		return compareIDs(x.Members, b.(Union).Members)
	}
	return 0
}

// Equal reports structural equality.
func Equal(a, b Type) bool { return Compare(a, b) == 0 }

func compareIDs(a, b []TypeID) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
