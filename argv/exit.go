package argv

import (
	"errors"
	"fmt"
	"os"
)

// Conventional process exit codes for parse outcomes.
const (
	ExitOK        = 0
	ExitFailure   = 1 // unclassified errors
	ExitUsage     = 2 // the vector did not match the schema
	ExitBadValue  = 3 // a value failed coercion or validation
	ExitBadSchema = 4 // the schema itself is malformed
)

// ExitCode maps a Parse error to a process exit code. Nil maps to
// ExitOK so callers can exit with the return value unconditionally.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		return ExitFailure
	}
	switch pe.Kind {
	case ErrUnknownOption, ErrMissingValue, ErrMissingRequired,
		ErrUnknownSubcommand, ErrMissingSubcommand:
		return ExitUsage
	case ErrInvalidValue, ErrInvalidChoice, ErrValidation:
		return ExitBadValue
	case ErrSchema:
		return ExitBadSchema
	default:
		return ExitFailure
	}
}

// Exit reports err on the configured error writer and terminates the
// process with the mapped code. Called by Run when ExitOnError is set;
// exported for programs that drive Parse themselves.
func Exit(err error, settings Settings) {
	if err != nil {
		fmt.Fprintf(settings.errOutput(), "error: %s\n", err)
	}
	os.Exit(ExitCode(err))
}

// Run parses the process arguments and applies the Settings exit
// policy: on error it either exits with the mapped code or returns the
// error for the caller to handle.
func Run(spec *Spec, settings Settings) (*Result, error) {
	res, err := ParseOSArgs(spec, settings)
	if err != nil && settings.ExitOnError {
		Exit(err, settings)
	}
	return res, err
}
