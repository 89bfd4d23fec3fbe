package types

import "strings"

// Label returns a user-facing name for id.
func (r *Registry) Label(id TypeID) string {
	return r.labelDepth(id, 0)
}

func (r *Registry) labelDepth(id TypeID, depth int) string {
	if depth > 8 {
		return "..."
	}
	if r == nil {
		return "?"
	}
	t, err := r.Resolve(id)
	if err != nil {
		return "?"
	}
	switch v := t.(type) {
	case UndefinedType:
		return "undefined"
	case Void:
		return "void"
	case Literal:
		return v.Kind.String() + " literal"
	case Builtin:
		return v.Kind.String()
	case Function:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, p := range v.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(r.labelDepth(p, depth+1))
		}
		sb.WriteString(") -> ")
		sb.WriteString(r.labelDepth(v.Result, depth+1))
		return sb.String()
	case IntrinsicSig:
		return "$(" + r.labelDepth(v.Dest, depth+1) + ", " + r.labelDepth(v.Op, depth+1) + ")"
	case Tuple:
		parts := make([]string, len(v.Members))
		for i, m := range v.Members {
			if m.Name != "" {
				parts[i] = m.Name + ": " + r.labelDepth(m.Type, depth+1)
			} else {
				parts[i] = r.labelDepth(m.Type, depth+1)
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Union:
		parts := make([]string, len(v.Members))
		for i, m := range v.Members {
			parts[i] = r.labelDepth(m, depth+1)
		}
		return strings.Join(parts, " | ")
	}
	return "?"
}
