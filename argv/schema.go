// Package argv is a declarative command-line argument parsing engine.
// A Spec describes flags, options, positionals and nested subcommands;
// Parse consumes a raw argument vector against it and produces a typed
// Result or a structured *ParseError.
package argv

import "unicode"

// ArgType declares how a raw value is coerced before storage.
type ArgType string

const (
	TypeString  ArgType = "string"
	TypeInt     ArgType = "int"
	TypeUint    ArgType = "uint"
	TypeFloat   ArgType = "float64"
	TypeBool    ArgType = "bool"
	TypePath    ArgType = "path" // stored as string; no filesystem checks
	TypeChoice  ArgType = "choice"
	TypeList    ArgType = "[]string"
	TypeCounter ArgType = "counter"
	TypeCustom  ArgType = "custom" // stored as string, validated by callback
)

// Action selects what the engine does when a definition matches a token.
// The set is closed and dispatched exhaustively; adding an action is a
// compile-time change in the dispatch switch.
type Action uint8

const (
	ActionStore Action = iota
	ActionStoreTrue
	ActionStoreFalse
	ActionAppend
	ActionExtend
	ActionCount
	ActionHelp
	ActionVersion
	ActionCallback
)

// takesValue reports whether the action consumes a value token.
func (a Action) takesValue() bool {
	switch a {
	case ActionStore, ActionAppend, ActionExtend, ActionCallback:
		return true
	default:
		return false
	}
}

// Cardinality bounds how many values a positional definition absorbs.
// Max < 0 means unbounded.
type Cardinality struct {
	Min, Max int
}

var (
	One        = Cardinality{Min: 1, Max: 1}
	Optional   = Cardinality{Min: 0, Max: 1}
	ZeroOrMore = Cardinality{Min: 0, Max: -1}
	OneOrMore  = Cardinality{Min: 1, Max: -1}
	// Remainder absorbs every bare value left after the declared
	// positionals, like ZeroOrMore but conventionally last.
	Remainder = Cardinality{Min: 0, Max: -1}
)

// Exactly returns a cardinality requiring exactly n values.
func Exactly(n int) Cardinality { return Cardinality{Min: n, Max: n} }

func (c Cardinality) variadic() bool { return c.Max < 0 || c.Max > 1 }

// ArgSpec is one entry in a command's schema: a flag, an option or a
// positional. Constructed through the builders, immutable during parsing.
type ArgSpec struct {
	Name       string // unique destination key
	Short      rune   // single-character alias, 0 when unset
	Long       string // word alias; defaults to Name for non-positionals
	Type       ArgType
	Action     Action
	Card       Cardinality
	Required   bool
	Default    string // string form, coerced through the validator lazily
	Choices    []string
	EnvVar     string
	Positional bool
	Hidden     bool
	Deprecated string // non-empty marks the definition deprecated
	Help       string

	// Callback is invoked with the raw value for ActionCallback.
	Callback func(raw string) error
}

// hasAlias reports whether the definition can be addressed as an option.
func (s *ArgSpec) hasAlias() bool { return s.Short != 0 || s.Long != "" }

// Command is one node of the immutable subcommand tree: its own argument
// definitions plus nested subcommands. Lookup maps are frozen by Build
// and read-only afterwards, so sharing a built tree across goroutines is
// safe.
type Command struct {
	name        string
	description string
	aliases     []string
	args        []*ArgSpec
	subcommands []*Command

	longs       map[string]*ArgSpec
	shorts      map[rune]*ArgSpec
	positionals []*ArgSpec
	path        string // full invocation path, e.g. "app remote add"
}

// Name returns the canonical command name.
func (c *Command) Name() string { return c.name }

// Description returns the one-line command description.
func (c *Command) Description() string { return c.description }

// Aliases returns the alternative names the command matches.
func (c *Command) Aliases() []string { return c.aliases }

// matches reports whether raw equals the name or any alias,
// case-sensitively.
func (c *Command) matches(raw string) bool {
	if raw == c.name {
		return true
	}
	for _, a := range c.aliases {
		if raw == a {
			return true
		}
	}
	return false
}

// findSub resolves a subcommand by name or alias.
func (c *Command) findSub(raw string) *Command {
	for _, sub := range c.subcommands {
		if sub.matches(raw) {
			return sub
		}
	}
	return nil
}

// subNames returns canonical subcommand names, for suggestions.
func (c *Command) subNames() []string {
	names := make([]string, 0, len(c.subcommands))
	for _, sub := range c.subcommands {
		names = append(names, sub.name)
	}
	return names
}

// longNames returns the long aliases known at this node, for suggestions.
func (c *Command) longNames() []string {
	names := make([]string, 0, len(c.longs))
	for name := range c.longs {
		names = append(names, name)
	}
	return names
}

// freeze builds the alias lookup maps and validates the node. Called
// once per node during Build.
func (c *Command) freeze(path string) error {
	c.path = path
	c.longs = make(map[string]*ArgSpec, len(c.args))
	c.shorts = make(map[rune]*ArgSpec, len(c.args))
	c.positionals = c.positionals[:0]

	seen := make(map[string]bool, len(c.args))
	for _, spec := range c.args {
		if spec.Name == "" {
			return schemaError("%s: argument with empty name", path)
		}
		if seen[spec.Name] {
			return schemaError("%s: duplicate destination %q", path, spec.Name)
		}
		seen[spec.Name] = true

		if spec.Default != "" {
			if _, err := Coerce(spec.Default, spec.Type); err != nil {
				return schemaError("%s: default for %q: %v", path, spec.Name, err)
			}
			if len(spec.Choices) > 0 && !InChoices(spec.Default, spec.Choices) {
				return schemaError("%s: default for %q is not among its choices", path, spec.Name)
			}
		}

		if spec.Positional {
			if spec.hasAlias() {
				return schemaError("%s: positional %q cannot carry option aliases", path, spec.Name)
			}
			c.positionals = append(c.positionals, spec)
			continue
		}
		if !spec.hasAlias() {
			return schemaError("%s: definition %q needs a short or long alias", path, spec.Name)
		}
		if spec.Long != "" {
			if _, dup := c.longs[spec.Long]; dup {
				return schemaError("%s: duplicate long alias --%s", path, spec.Long)
			}
			c.longs[spec.Long] = spec
		}
		if spec.Short != 0 {
			// Clusters are peeled one byte at a time, so a short alias
			// outside the single-byte range could never match.
			if spec.Short > unicode.MaxASCII {
				return schemaError("%s: short alias for %q must be a single ASCII character", path, spec.Name)
			}
			if _, dup := c.shorts[spec.Short]; dup {
				return schemaError("%s: duplicate short alias -%c", path, spec.Short)
			}
			c.shorts[spec.Short] = spec
		}
		if spec.Action == ActionCallback && spec.Callback == nil {
			return schemaError("%s: callback action on %q without a callback", path, spec.Name)
		}
	}

	// An unbounded positional swallows everything after it, so it must
	// be the last declared slot. Exact-N slots may be followed by more.
	for i, pos := range c.positionals {
		if pos.Card.Max < 0 && i != len(c.positionals)-1 {
			return schemaError("%s: variadic positional %q must be declared last", path, pos.Name)
		}
	}

	subSeen := make(map[string]bool, len(c.subcommands))
	for _, sub := range c.subcommands {
		for _, n := range append([]string{sub.name}, sub.aliases...) {
			if subSeen[n] {
				return schemaError("%s: duplicate subcommand name or alias %q", path, n)
			}
			subSeen[n] = true
		}
		if err := sub.freeze(path + " " + sub.name); err != nil {
			return err
		}
	}
	return nil
}

// Spec is the root command specification: program identity, global
// argument definitions and the subcommand tree. Built once, read-only
// during every parse.
type Spec struct {
	root        Command
	version     string
	helpFlag    bool
	versionFlag bool
	requireSub  bool
}

// Name returns the program name.
func (s *Spec) Name() string { return s.root.name }

// Version returns the declared version string.
func (s *Spec) Version() string { return s.version }

// Description returns the program description.
func (s *Spec) Description() string { return s.root.description }

// Root returns the root command node, for the help and completion
// collaborators.
func (s *Spec) Root() *Command { return &s.root }
