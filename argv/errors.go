package argv

import "fmt"

// ErrorKind categorizes parse, schema and validation failures. The set is
// closed: every failure surfaced by this package carries one of these.
type ErrorKind string

const (
	// Parse-time failures.
	ErrUnknownOption     ErrorKind = "unknown_option"
	ErrMissingValue      ErrorKind = "missing_value"
	ErrMissingRequired   ErrorKind = "missing_required"
	ErrInvalidValue      ErrorKind = "invalid_value"
	ErrInvalidChoice     ErrorKind = "invalid_choice"
	ErrUnknownSubcommand ErrorKind = "unknown_subcommand"
	ErrMissingSubcommand ErrorKind = "missing_subcommand"

	// Schema-definition failures, reported by Build before any parse.
	ErrSchema ErrorKind = "schema"

	// Extended-validator failures (range/length checks, callbacks).
	ErrValidation ErrorKind = "validation"
)

// ParseError is the structured error returned by a failed parse or an
// invalid schema build. The first failure aborts the pass; nothing is
// accumulated or retried.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Arg     string // offending option/argument name, when known
	Value   string // offending raw value, when known

	// Suggestion is advisory "did you mean" text computed by edit
	// distance against known long names. It never drives recovery.
	Suggestion string
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return e.Message + " (did you mean '--" + e.Suggestion + "'?)"
	}
	return e.Message
}

func newParseError(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func schemaError(format string, args ...any) *ParseError {
	return newParseError(ErrSchema, format, args...)
}
