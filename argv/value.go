package argv

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	KindAbsent ValueKind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
	KindCount
	KindList
)

// String returns the kind name, mostly for error messages and tests.
func (k ValueKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindCount:
		return "count"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the tagged union produced by parsing a single destination.
// The zero Value is Absent. Values are immutable once stored in a Result.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	u    uint64
	f    float64
	b    bool
	n    uint32
	list []string
}

// Constructors, one per kind.

func StringValue(s string) Value { return Value{kind: KindString, s: s} }
func IntValue(i int64) Value     { return Value{kind: KindInt, i: i} }
func UintValue(u uint64) Value   { return Value{kind: KindUint, u: u} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }
func CountValue(n uint32) Value  { return Value{kind: KindCount, n: n} }
func ListValue(l []string) Value { return Value{kind: KindList, list: l} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether the value holds nothing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Str returns the string payload. Only string-kinded values qualify;
// use String for a display form of any kind.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Int returns a signed integer view of the value. Unsigned and counter
// payloads convert only when they fit in int64.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		if v.u > math.MaxInt64 {
			return 0, false
		}
		return int64(v.u), true
	case KindCount:
		return int64(v.n), true
	default:
		return 0, false
	}
}

// Uint returns an unsigned view of the value. Signed payloads convert
// only when non-negative.
func (v Value) Uint() (uint64, bool) {
	switch v.kind {
	case KindUint:
		return v.u, true
	case KindInt:
		if v.i < 0 {
			return 0, false
		}
		return uint64(v.i), true
	case KindCount:
		return uint64(v.n), true
	default:
		return 0, false
	}
}

// Float returns the float payload. Integer payloads widen for
// convenience; values beyond 2^53 lose precision, which is the usual
// float64 contract, not a range failure.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	default:
		return 0, false
	}
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Count returns the counter payload.
func (v Value) Count() (uint32, bool) {
	if v.kind != KindCount {
		return 0, false
	}
	return v.n, true
}

// List returns the accumulated string list. The slice is shared with the
// Result; callers must not mutate it.
func (v Value) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// String renders the canonical text form of the value. Coercing the
// output back through the validator recovers an equivalent value for
// every kind where serialization is meaningful.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindCount:
		return strconv.FormatUint(uint64(v.n), 10)
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// appendItem returns a list value extended by one element. Absent values
// start a fresh list; arrival order is preserved.
func (v Value) appendItem(item string) Value {
	if v.kind != KindList {
		return ListValue([]string{item})
	}
	return ListValue(append(v.list, item))
}

// increment returns a counter value one higher than the current one.
// Absent values start at 1.
func (v Value) increment() Value {
	if v.kind != KindCount {
		return CountValue(1)
	}
	return CountValue(v.n + 1)
}
