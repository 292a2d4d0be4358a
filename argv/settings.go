package argv

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorMode selects when collaborator output is colorized.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota // colorize when Output is a terminal
	ColorAlways
	ColorNever
)

// Settings is the explicit configuration value threaded into the engine
// and the help/completion collaborators. Set it up once before any
// parse; the core treats it as read-only for the duration of a pass.
// There is no package-level singleton.
type Settings struct {
	// Color controls ANSI output from the help renderer.
	Color ColorMode

	// ShowDefaults appends "(default: X)" annotations in help output.
	ShowDefaults bool

	// ExitOnError is a policy flag for the surrounding application; the
	// engine itself never terminates the process. See ExitCode.
	ExitOnError bool

	// SuggestionDistance is the maximum edit distance for "did you
	// mean" suggestions on unknown options and subcommands. Zero
	// disables suggestions.
	SuggestionDistance int

	// Output receives help/version text; ErrOutput receives nothing
	// from the engine but is exposed for callers printing errors.
	Output    io.Writer
	ErrOutput io.Writer
}

// DefaultSettings returns the usual terminal setup: auto color,
// defaults shown, suggestions within distance 2, standard streams.
func DefaultSettings() Settings {
	return Settings{
		Color:              ColorAuto,
		ShowDefaults:       true,
		SuggestionDistance: 2,
		Output:             os.Stdout,
		ErrOutput:          os.Stderr,
	}
}

// colorEnabled resolves the effective color decision for the configured
// output writer.
func (s Settings) colorEnabled() bool {
	switch s.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f, ok := s.Output.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// output returns the configured writer, defaulting to stdout so a zero
// Settings still works.
func (s Settings) output() io.Writer {
	if s.Output != nil {
		return s.Output
	}
	return os.Stdout
}

func (s Settings) errOutput() io.Writer {
	if s.ErrOutput != nil {
		return s.ErrOutput
	}
	return os.Stderr
}
