package argv

// Builder assembles a Spec with a fluent API. Definitions added here are
// global; Command adds subcommand scopes. Build freezes the tree.
type Builder struct {
	spec Spec
}

// New starts a specification for the named program.
func New(name, description string) *Builder {
	b := &Builder{}
	b.spec.root.name = name
	b.spec.root.description = description
	b.spec.helpFlag = true // -h/--help enabled by default
	return b
}

// Version declares the program version and enables -V/--version.
func (b *Builder) Version(version string) *Builder {
	b.spec.version = version
	b.spec.versionFlag = true
	return b
}

// DisableHelp turns off the built-in -h/--help pseudo-options.
func (b *Builder) DisableHelp() *Builder {
	b.spec.helpFlag = false
	return b
}

// RequireSubcommand makes a parse fail with MissingSubcommand when no
// subcommand is entered, and with UnknownSubcommand when the first bare
// value matches none.
func (b *Builder) RequireSubcommand() *Builder {
	b.spec.requireSub = true
	return b
}

// Flag adds a boolean flag (store_true) to the global scope.
func (b *Builder) Flag(name, help string) *ArgBuilder {
	return addArg(b, nil, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeBool, Action: ActionStoreTrue, Card: Optional,
	})
}

// Option adds a value-taking option (store) to the global scope. The
// default value type is string; change it with Type on the returned
// builder.
func (b *Builder) Option(name, help string) *ArgBuilder {
	return addArg(b, nil, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeString, Action: ActionStore, Card: One,
	})
}

// Counter adds a repeatable counting flag (count) to the global scope.
func (b *Builder) Counter(name, help string) *ArgBuilder {
	return addArg(b, nil, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeCounter, Action: ActionCount, Card: ZeroOrMore,
	})
}

// Choice adds an option restricted to the given values.
func (b *Builder) Choice(name, help string, values ...string) *ArgBuilder {
	return addArg(b, nil, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeChoice, Action: ActionStore, Card: One, Choices: values,
	})
}

// List adds a repeatable option accumulating values in arrival order.
func (b *Builder) List(name, help string) *ArgBuilder {
	return addArg(b, nil, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeList, Action: ActionAppend, Card: ZeroOrMore,
	})
}

// Positional adds a positional argument filled in declaration order.
func (b *Builder) Positional(name, help string) *ArgBuilder {
	return addArg(b, nil, &ArgSpec{
		Name: name, Help: help, Positional: true,
		Type: TypeString, Action: ActionStore, Card: One,
	})
}

// Command adds a subcommand to the root scope.
func (b *Builder) Command(name, description string) *CommandBuilder {
	cmd := &Command{name: name, description: description}
	b.spec.root.subcommands = append(b.spec.root.subcommands, cmd)
	return &CommandBuilder{command: cmd, root: b}
}

// Build validates the schema, freezes the alias lookup maps and returns
// the immutable Spec. Errors are *ParseError with kind ErrSchema.
func (b *Builder) Build() (*Spec, error) {
	if err := b.spec.root.freeze(b.spec.root.name); err != nil {
		return nil, err
	}
	return &b.spec, nil
}

// MustBuild is Build for specs assembled from literals in main functions
// and tests; it panics on a schema error.
func (b *Builder) MustBuild() *Spec {
	spec, err := b.Build()
	if err != nil {
		panic(err)
	}
	return spec
}

// CommandBuilder assembles one subcommand scope. Subcommands nest
// arbitrarily deep.
type CommandBuilder struct {
	command *Command
	root    *Builder
	parent  *CommandBuilder // nil when attached to the root
}

// Alias adds alternative names the command matches, case-sensitively.
func (c *CommandBuilder) Alias(aliases ...string) *CommandBuilder {
	c.command.aliases = append(c.command.aliases, aliases...)
	return c
}

// Flag adds a boolean flag (store_true) to the command.
func (c *CommandBuilder) Flag(name, help string) *ArgBuilder {
	return addArg(c.root, c, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeBool, Action: ActionStoreTrue, Card: Optional,
	})
}

// Option adds a value-taking option (store) to the command.
func (c *CommandBuilder) Option(name, help string) *ArgBuilder {
	return addArg(c.root, c, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeString, Action: ActionStore, Card: One,
	})
}

// Counter adds a repeatable counting flag to the command.
func (c *CommandBuilder) Counter(name, help string) *ArgBuilder {
	return addArg(c.root, c, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeCounter, Action: ActionCount, Card: ZeroOrMore,
	})
}

// Choice adds an option restricted to the given values to the command.
func (c *CommandBuilder) Choice(name, help string, values ...string) *ArgBuilder {
	return addArg(c.root, c, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeChoice, Action: ActionStore, Card: One, Choices: values,
	})
}

// List adds a repeatable accumulating option to the command.
func (c *CommandBuilder) List(name, help string) *ArgBuilder {
	return addArg(c.root, c, &ArgSpec{
		Name: name, Long: name, Help: help,
		Type: TypeList, Action: ActionAppend, Card: ZeroOrMore,
	})
}

// Positional adds a positional argument to the command.
func (c *CommandBuilder) Positional(name, help string) *ArgBuilder {
	return addArg(c.root, c, &ArgSpec{
		Name: name, Help: help, Positional: true,
		Type: TypeString, Action: ActionStore, Card: One,
	})
}

// Command adds a nested subcommand.
func (c *CommandBuilder) Command(name, description string) *CommandBuilder {
	cmd := &Command{name: name, description: description}
	c.command.subcommands = append(c.command.subcommands, cmd)
	return &CommandBuilder{command: cmd, root: c.root, parent: c}
}

// Root returns to the root builder for continued chaining.
func (c *CommandBuilder) Root() *Builder { return c.root }

// Parent returns the enclosing command builder (panics at root level).
func (c *CommandBuilder) Parent() *CommandBuilder {
	if c.parent == nil {
		panic("argv: command is attached to the root; use Root()")
	}
	return c.parent
}

// ArgBuilder configures a single argument definition in place.
type ArgBuilder struct {
	spec *ArgSpec
	root *Builder
	cmd  *CommandBuilder // nil for root-level definitions
}

func addArg(root *Builder, cmd *CommandBuilder, spec *ArgSpec) *ArgBuilder {
	if cmd != nil {
		cmd.command.args = append(cmd.command.args, spec)
	} else {
		root.spec.root.args = append(root.spec.root.args, spec)
	}
	return &ArgBuilder{spec: spec, root: root, cmd: cmd}
}

// Short sets the single-character alias.
func (a *ArgBuilder) Short(short rune) *ArgBuilder {
	a.spec.Short = short
	return a
}

// Long replaces the word alias (defaults to the destination name).
func (a *ArgBuilder) Long(long string) *ArgBuilder {
	a.spec.Long = long
	return a
}

// Type overrides the coercion type.
func (a *ArgBuilder) Type(t ArgType) *ArgBuilder {
	a.spec.Type = t
	return a
}

// Action overrides the dispatch action.
func (a *ArgBuilder) Action(action Action) *ArgBuilder {
	a.spec.Action = action
	return a
}

// Default sets the string-form default, coerced lazily at parse start.
func (a *ArgBuilder) Default(def string) *ArgBuilder {
	a.spec.Default = def
	return a
}

// Required marks the definition as required. A default never satisfies
// requiredness; only a CLI value or the env fallback does.
func (a *ArgBuilder) Required() *ArgBuilder {
	a.spec.Required = true
	return a
}

// Choices restricts accepted raw values to an exact, case-sensitive set.
func (a *ArgBuilder) Choices(values ...string) *ArgBuilder {
	a.spec.Choices = values
	return a
}

// FromEnv names the environment variable consulted when no CLI value
// was supplied. Resolution order is CLI value, then env, then default.
func (a *ArgBuilder) FromEnv(name string) *ArgBuilder {
	a.spec.EnvVar = name
	return a
}

// Hidden hides the definition from help output.
func (a *ArgBuilder) Hidden() *ArgBuilder {
	a.spec.Hidden = true
	return a
}

// Deprecated marks the definition deprecated with a migration note shown
// in help output.
func (a *ArgBuilder) Deprecated(note string) *ArgBuilder {
	a.spec.Deprecated = note
	return a
}

// Card sets the cardinality (mainly for positionals).
func (a *ArgBuilder) Card(card Cardinality) *ArgBuilder {
	a.spec.Card = card
	return a
}

// Variadic makes a positional absorb every remaining bare value.
func (a *ArgBuilder) Variadic() *ArgBuilder {
	a.spec.Card = ZeroOrMore
	a.spec.Type = TypeList
	return a
}

// Callback installs a raw-value callback and switches to ActionCallback.
func (a *ArgBuilder) Callback(fn func(raw string) error) *ArgBuilder {
	a.spec.Callback = fn
	a.spec.Action = ActionCallback
	return a
}

// Root returns to the root builder (panics for command-level
// definitions).
func (a *ArgBuilder) Root() *Builder {
	if a.cmd != nil {
		panic("argv: definition belongs to a command; use Command()")
	}
	return a.root
}

// Command returns to the enclosing command builder (panics for
// root-level definitions).
func (a *ArgBuilder) Command() *CommandBuilder {
	if a.cmd == nil {
		panic("argv: definition belongs to the root; use Root()")
	}
	return a.cmd
}
