package types

// Type is a structural type description. Composite variants reference
// their members by TypeID only, so the registry stays a DAG.
type Type interface {
	Class() Class
	isType()
}

// UndefinedType describes the undefined singleton.
type UndefinedType struct{}

// Void is the type of statements and blocks.
type Void struct{}

// Literal is the provisional type of an untyped constant.
type Literal struct {
	Kind LiteralKind
}

// Builtin is a concrete scalar type.
type Builtin struct {
	Kind BuiltinKind
}

// Function is a user function signature.
type Function struct {
	Result TypeID
	Params []TypeID
}

// IntrinsicSig is the type of a `$name` reference. Unused slots are Undefined.
type IntrinsicSig struct {
	Config IntrinsicConfig
	Dest   TypeID
	Op     TypeID
}

// Member is one tuple slot; Name is empty for positional members.
type Member struct {
	Type TypeID
	Name string
}

// Tuple is an ordered list of members.
type Tuple struct {
	Members []Member
}

// Union is a sum of member types.
type Union struct {
	Members []TypeID
}

func (UndefinedType) Class() Class { return ClassUndefined }
func (Void) Class() Class          { return ClassVoid }
func (Literal) Class() Class       { return ClassLiteral }
func (Builtin) Class() Class       { return ClassBuiltin }
func (Function) Class() Class      { return ClassFunction }
func (IntrinsicSig) Class() Class  { return ClassIntrinsic }
func (Tuple) Class() Class         { return ClassTuple }
func (Union) Class() Class         { return ClassUnion }

func (UndefinedType) isType() {}
func (Void) isType()          {}
func (Literal) isType()       {}
func (Builtin) isType()       {}
func (Function) isType()      {}
func (IntrinsicSig) isType()  {}
func (Tuple) isType()         {}
func (Union) isType()         {}

// TupleOf builds a positional tuple description.
func TupleOf(ids ...TypeID) Tuple {
	members := make([]Member, len(ids))
	for i, id := range ids {
		members[i] = Member{Type: id}
	}
	return Tuple{Members: members}
}

// Clone returns a deep copy that can be edited and re-interned.
func (t Tuple) Clone() Tuple {
	return Tuple{Members: append([]Member(nil), t.Members...)}
}

// Types lists the member type ids in order.
func (t Tuple) Types() []TypeID {
	out := make([]TypeID, len(t.Members))
	for i, m := range t.Members {
		out[i] = m.Type
	}
	return out
}

// Params lists the intrinsic's used parameter types, dest first.
func (s IntrinsicSig) Params() []TypeID {
	switch s.Config {
	case ConfigDestOnly:
		return []TypeID{s.Dest}
	case ConfigOpOnly:
		return []TypeID{s.Op}
	case ConfigBoth:
		return []TypeID{s.Dest, s.Op}
	default:
		return nil
	}
}

func clone(t Type) Type {
	switch v := t.(type) {
	case Function:
		return Function{Result: v.Result, Params: append([]TypeID(nil), v.Params...)}
	case Tuple:
		return v.Clone()
	case Union:
		return Union{Members: append([]TypeID(nil), v.Members...)}
	default:
		return t
	}
}
