package types

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"lu/internal/diag"
)

// Registry interns structural type descriptions. It is an append-only
// bijection between shapes and TypeIDs: one dense table per class plus
// a reverse index keyed by the canonical shape.
type Registry struct {
	tables [classCount][]Type
	index  map[string]TypeID
}

// NewRegistry returns a registry holding only the undefined singleton.
func NewRegistry() *Registry {
	r := &Registry{index: make(map[string]TypeID, 64)}
	r.insert(UndefinedType{})
	return r
}

// Seed pre-registers a non-composite type. Seeding twice is a no-op.
// Composite types must go through Intern.
func (r *Registry) Seed(t Type) TypeID {
	if t.Class().Composite() {
		panic(diag.Internalf("types: Seed called with composite %s", t.Class()))
	}
	if id, ok := r.Lookup(t); ok {
		return id
	}
	return r.insert(t)
}

// Intern returns the identifier of a structurally equal type, registering
// composite types on first use. Every referenced member must already exist.
func (r *Registry) Intern(t Type) (TypeID, error) {
	if id, ok := r.Lookup(t); ok {
		return id, nil
	}
	if !t.Class().Composite() {
		return Undefined, diag.Internalf("types: cannot auto-register %s type %s", t.Class(), key(t))
	}
	for _, m := range members(t) {
		if !r.Exists(m) {
			return Undefined, diag.Internalf("types: %s references unknown type %s", t.Class(), m)
		}
	}
	return r.insert(clone(t)), nil
}

// MustIntern is Intern for shapes whose members are known to exist.
func (r *Registry) MustIntern(t Type) TypeID {
	id, err := r.Intern(t)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup finds an already registered type. The index hit is confirmed
// against the stored description.
func (r *Registry) Lookup(t Type) (TypeID, bool) {
	if r == nil || t == nil {
		return Undefined, false
	}
	id, ok := r.index[key(t)]
	if !ok {
		return Undefined, false
	}
	if got, err := r.Resolve(id); err != nil || !Equal(got, t) {
		return Undefined, false
	}
	return id, true
}

// Exists reports whether id addresses a registered type.
func (r *Registry) Exists(id TypeID) bool {
	c := id.Class()
	if c >= classCount {
		return false
	}
	return int(id.Index()) < len(r.tables[c])
}

// Resolve returns the description behind id. The result is shared with
// the registry and must not be mutated; use Tuple.Clone to edit.
func (r *Registry) Resolve(id TypeID) (Type, error) {
	if r == nil {
		return nil, diag.Internalf("types: resolve on nil registry")
	}
	c := id.Class()
	if c >= classCount {
		return nil, diag.Internalf("types: class %d out of range", uint8(c))
	}
	idx := int(id.Index())
	if idx >= len(r.tables[c]) {
		return nil, diag.Internalf("types: %s index %d out of range", c, idx)
	}
	return r.tables[c][idx], nil
}

// Len returns the number of registered types, undefined included.
func (r *Registry) Len() int {
	n := 0
	for _, tbl := range r.tables {
		n += len(tbl)
	}
	return n
}

func (r *Registry) insert(t Type) TypeID {
	c := t.Class()
	idx, err := safecast.Conv[uint32](len(r.tables[c]))
	if err != nil {
		panic(err)
	}
	id := MakeID(c, idx)
	r.tables[c] = append(r.tables[c], t)
	r.index[key(t)] = id
	return id
}

// VoidID returns the seeded void type.
func (r *Registry) VoidID() TypeID {
	return r.Seed(Void{})
}

// BuiltinID returns the seeded builtin of the given kind.
func (r *Registry) BuiltinID(k BuiltinKind) TypeID {
	return r.Seed(Builtin{Kind: k})
}

// LiteralID returns the seeded literal type of the given kind.
func (r *Registry) LiteralID(k LiteralKind) TypeID {
	return r.Seed(Literal{Kind: k})
}

// IsCallable reports whether values of id can be called.
func (r *Registry) IsCallable(id TypeID) bool {
	switch id.Class() {
	case ClassFunction, ClassIntrinsic:
		return r.Exists(id)
	}
	return false
}

// IsBuiltin reports whether id is the builtin of kind k.
func (r *Registry) IsBuiltin(id TypeID, k BuiltinKind) bool {
	t, err := r.Resolve(id)
	if err != nil {
		return false
	}
	b, ok := t.(Builtin)
	return ok && b.Kind == k
}

// TupleArity returns the member count of a tuple type.
func (r *Registry) TupleArity(id TypeID) (int, bool) {
	tup, ok := r.TupleOf(id)
	if !ok {
		return 0, false
	}
	return len(tup.Members), true
}

// TupleOf returns the tuple description behind id.
func (r *Registry) TupleOf(id TypeID) (Tuple, bool) {
	if id.Class() != ClassTuple {
		return Tuple{}, false
	}
	t, err := r.Resolve(id)
	if err != nil {
		return Tuple{}, false
	}
	tup, ok := t.(Tuple)
	return tup, ok
}

func members(t Type) []TypeID {
	switch v := t.(type) {
	case Function:
		return append([]TypeID{v.Result}, v.Params...)
	case IntrinsicSig:
		return []TypeID{v.Dest, v.Op}
	case Tuple:
		return v.Types()
	case Union:
		return v.Members
	}
	return nil
}

// key renders the canonical structural shape used by the reverse index.
func key(t Type) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(t.Class())))
	sb.WriteByte(':')
	switch v := t.(type) {
	case Literal:
		sb.WriteString(strconv.Itoa(int(v.Kind)))
	case Builtin:
		sb.WriteString(strconv.Itoa(int(v.Kind)))
	case Function:
		writeID(&sb, v.Result)
		sb.WriteByte('(')
		for _, p := range v.Params {
			writeID(&sb, p)
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case IntrinsicSig:
		sb.WriteString(strconv.Itoa(int(v.Config)))
		sb.WriteByte(',')
		writeID(&sb, v.Dest)
		sb.WriteByte(',')
		writeID(&sb, v.Op)
	case Tuple:
		for _, m := range v.Members {
			writeID(&sb, m.Type)
			if m.Name != "" {
				sb.WriteString(strconv.Quote(m.Name))
			}
			sb.WriteByte(',')
		}
	case Union:
		for _, m := range v.Members {
			writeID(&sb, m)
			sb.WriteByte('|')
		}
	}
	return sb.String()
}

func writeID(sb *strings.Builder, id TypeID) {
	sb.WriteString(strconv.FormatUint(uint64(id), 16))
}
