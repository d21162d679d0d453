package coerce

// Coerce rewrites a value tree so that every leaf is a string while the
// container shape (object keys and order, array order and length) is
// unchanged. It is total and idempotent: string leaves pass through, null
// becomes the empty string, numbers keep their literal form, and booleans
// become "true"/"false".
func Coerce(v Value) Value {
	switch v.Kind {
	case Null:
		return Value{Kind: String}
	case String:
		return v
	case Number:
		return Value{Kind: String, Str: v.Num}
	case Bool:
		if v.B {
			return Value{Kind: String, Str: "true"}
		}
		return Value{Kind: String, Str: "false"}
	case Array:
		out := Value{Kind: Array, Elems: make([]Value, len(v.Elems))}
		for i, elem := range v.Elems {
			out.Elems[i] = Coerce(elem)
		}
		return out
	case Object:
		out := Value{Kind: Object, Members: make([]Member, len(v.Members))}
		for i, m := range v.Members {
			out.Members[i] = Member{Key: m.Key, Value: Coerce(m.Value)}
		}
		return out
	}
	return Value{Kind: String}
}
