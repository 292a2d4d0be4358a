package argv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coerce converts a raw string to a typed Value per the declared type.
// It is pure: no environment, no filesystem. Failures are *ParseError
// with kind ErrInvalidValue.
func Coerce(raw string, t ArgType) (Value, error) {
	switch t {
	case TypeString, TypePath, TypeChoice, TypeCustom:
		return StringValue(raw), nil

	case TypeInt:
		i, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return Value{}, invalidValue(raw, "integer")
		}
		return IntValue(i), nil

	case TypeUint:
		u, err := strconv.ParseUint(raw, 0, 64)
		if err != nil {
			return Value{}, invalidValue(raw, "unsigned integer")
		}
		return UintValue(u), nil

	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, invalidValue(raw, "float")
		}
		return FloatValue(f), nil

	case TypeBool:
		b, err := ParseBool(raw)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil

	case TypeCounter:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return Value{}, invalidValue(raw, "counter")
		}
		return CountValue(uint32(n)), nil

	case TypeList:
		if raw == "" {
			return ListValue(nil), nil
		}
		return ListValue(strings.Split(raw, ",")), nil

	default:
		return Value{}, newParseError(ErrInvalidValue, "unsupported value type %q", t)
	}
}

// ParseBool accepts a fixed vocabulary, case-insensitively:
// true/false, yes/no, on/off, 1/0, t/f, y/n.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "yes", "on", "1", "t", "y":
		return true, nil
	case "false", "no", "off", "0", "f", "n":
		return false, nil
	default:
		return false, invalidValue(raw, "boolean")
	}
}

// InChoices reports exact, case-sensitive membership of raw in the
// choice set.
func InChoices(raw string, choices []string) bool {
	for _, c := range choices {
		if raw == c {
			return true
		}
	}
	return false
}

func invalidValue(raw, want string) *ParseError {
	return &ParseError{
		Kind:    ErrInvalidValue,
		Message: fmt.Sprintf("invalid %s value %q", want, raw),
		Value:   raw,
	}
}

// Composable range and length checks. The engine does not enforce these
// on its own; extended schemas call them from a Callback or after the
// parse.

// IntRange returns a check requiring min <= v <= max.
func IntRange(min, max int64) func(int64) error {
	return func(v int64) error {
		if v < min || v > max {
			return &ParseError{
				Kind:    ErrValidation,
				Message: fmt.Sprintf("value %d is not within range [%d, %d]", v, min, max),
			}
		}
		return nil
	}
}

// UintRange returns a check requiring min <= v <= max.
func UintRange(min, max uint64) func(uint64) error {
	return func(v uint64) error {
		if v < min || v > max {
			return &ParseError{
				Kind:    ErrValidation,
				Message: fmt.Sprintf("value %d is not within range [%d, %d]", v, min, max),
			}
		}
		return nil
	}
}

// FloatRange returns a check requiring min <= v <= max and rejecting
// NaN.
func FloatRange(min, max float64) func(float64) error {
	return func(v float64) error {
		if math.IsNaN(v) || v < min || v > max {
			return &ParseError{
				Kind:    ErrValidation,
				Message: fmt.Sprintf("value %g is not within range [%g, %g]", v, min, max),
			}
		}
		return nil
	}
}

// LengthRange returns a check bounding the length of a raw string in
// bytes.
func LengthRange(min, max int) func(string) error {
	return func(s string) error {
		if len(s) < min || len(s) > max {
			return &ParseError{
				Kind:    ErrValidation,
				Message: fmt.Sprintf("length %d is not within range [%d, %d]", len(s), min, max),
				Value:   s,
			}
		}
		return nil
	}
}
