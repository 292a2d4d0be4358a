package argv

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoerceScalars(t *testing.T) {
	cases := []struct {
		raw  string
		typ  ArgType
		want Value
	}{
		{"hello", TypeString, StringValue("hello")},
		{"/tmp/x", TypePath, StringValue("/tmp/x")},
		{"-42", TypeInt, IntValue(-42)},
		{"0xFF", TypeInt, IntValue(255)},
		{"0o17", TypeInt, IntValue(15)},
		{"42", TypeUint, UintValue(42)},
		{"3.5", TypeFloat, FloatValue(3.5)},
		{"true", TypeBool, BoolValue(true)},
		{"off", TypeBool, BoolValue(false)},
		{"7", TypeCounter, CountValue(7)},
	}
	for _, tc := range cases {
		got, err := Coerce(tc.raw, tc.typ)
		if err != nil {
			t.Errorf("Coerce(%q, %s): %v", tc.raw, tc.typ, err)
			continue
		}
		if got.Kind() != tc.want.Kind() || got.String() != tc.want.String() {
			t.Errorf("Coerce(%q, %s) = %v/%v, want %v/%v",
				tc.raw, tc.typ, got.Kind(), got, tc.want.Kind(), tc.want)
		}
	}
}

func TestCoerceList(t *testing.T) {
	v, err := Coerce("a,b,c", TypeList)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := v.List()
	if !ok || !cmp.Equal(l, []string{"a", "b", "c"}) {
		t.Errorf("List() = %v, %v", l, ok)
	}
}

func TestCoerceFailures(t *testing.T) {
	cases := []struct {
		raw string
		typ ArgType
	}{
		{"abc", TypeInt},
		{"-1", TypeUint},
		{"", TypeInt},
		{"1.2.3", TypeFloat},
		{"maybe", TypeBool},
		{"-1", TypeCounter},
		{"4294967296", TypeCounter}, // one past uint32
	}
	for _, tc := range cases {
		v, err := Coerce(tc.raw, tc.typ)
		if err == nil {
			t.Errorf("Coerce(%q, %s) = %v, want error", tc.raw, tc.typ, v)
			continue
		}
		pe, ok := err.(*ParseError)
		if !ok || pe.Kind != ErrInvalidValue {
			t.Errorf("Coerce(%q, %s) error = %v, want invalid-value", tc.raw, tc.typ, err)
		}
	}
}

func TestParseBoolVocabulary(t *testing.T) {
	truthy := []string{"true", "TRUE", "yes", "Yes", "on", "1", "t", "y"}
	falsy := []string{"false", "FALSE", "no", "No", "off", "0", "f", "n"}
	for _, raw := range truthy {
		if b, err := ParseBool(raw); err != nil || !b {
			t.Errorf("ParseBool(%q) = %v, %v, want true", raw, b, err)
		}
	}
	for _, raw := range falsy {
		if b, err := ParseBool(raw); err != nil || b {
			t.Errorf("ParseBool(%q) = %v, %v, want false", raw, b, err)
		}
	}
	if _, err := ParseBool("2"); err == nil {
		t.Error("ParseBool(\"2\") succeeded")
	}
}

func TestInChoicesIsExact(t *testing.T) {
	choices := []string{"fast", "full"}
	if !InChoices("fast", choices) {
		t.Error("exact member rejected")
	}
	if InChoices("Fast", choices) {
		t.Error("case-insensitive match accepted")
	}
	if InChoices("fas", choices) {
		t.Error("prefix accepted")
	}
}

func TestRangeCheckers(t *testing.T) {
	inRange := IntRange(1, 10)
	if err := inRange(5); err != nil {
		t.Errorf("IntRange accepted value errored: %v", err)
	}
	if err := inRange(11); err == nil {
		t.Error("IntRange passed out-of-range value")
	} else if pe, ok := err.(*ParseError); !ok || pe.Kind != ErrValidation {
		t.Errorf("IntRange error = %v", err)
	}

	if err := UintRange(1, 3)(4); err == nil {
		t.Error("UintRange passed out-of-range value")
	}
	if err := FloatRange(0, 1)(math.NaN()); err == nil {
		t.Error("FloatRange passed NaN")
	}
	if err := LengthRange(2, 4)("abcde"); err == nil {
		t.Error("LengthRange passed an overlong string")
	}
}
