package argv

import (
	"fmt"
	"os"
	"strings"

	"github.com/dzonerzy/go-argv/internal/suggest"
)

// Parser drives the tokenizer against one schema node. It owns per-parse
// state; a built Spec can back any number of Parser instances, but a
// single instance must not run unrelated vectors concurrently.
type Parser struct {
	spec     *Spec
	settings Settings
	cmd      *Command

	// Per-parse state, reset at the top of Parse.
	tz        *Tokenizer
	res       *Result
	explicit  map[string]bool // destinations set by a CLI token
	posIdx    int             // next unfilled positional slot
	posFilled int             // values stored into the current slot
	firstBare bool            // no bare value consumed yet
}

// NewParser creates an engine scoped to the root of the given spec.
func NewParser(spec *Spec, settings Settings) *Parser {
	return &Parser{spec: spec, settings: settings, cmd: spec.Root()}
}

// ParseOSArgs parses the process argument vector (program name already
// stripped by the runtime) against the spec.
func ParseOSArgs(spec *Spec, settings Settings) (*Result, error) {
	return NewParser(spec, settings).Parse(os.Args[1:])
}

// Parse runs a single left-to-right pass over the argument vector and
// returns the populated Result, or the first failure as a *ParseError.
// The pass is synchronous and fail-fast; nothing is accumulated or
// retried.
func (p *Parser) Parse(args []string) (*Result, error) {
	p.reset(args)

	// Defaults are observable before any token is read, subject to
	// being overwritten. Required definitions are excluded: a default
	// never satisfies requiredness.
	if err := p.applyDefaults(); err != nil {
		return nil, err
	}

	for {
		tok := p.tz.Next()
		switch tok.Tag {
		case TagEnd:
			return p.finish()

		case TagSeparator:
			// Everything after "--" is captured verbatim, in order,
			// untouched by dispatch. The separator itself is dropped.
			p.res.Remaining = append(p.res.Remaining, p.tz.Rest()...)
			return p.finish()

		case TagLongOption, TagShortOption, TagInlineValue:
			done, err := p.dispatchOption(tok)
			if err != nil {
				return nil, err
			}
			if done {
				// A help/version pseudo-option short-circuits the
				// pass; the partial result is still returned.
				return p.res, nil
			}

		case TagBareValue:
			done, err := p.dispatchBareValue(tok)
			if err != nil {
				return nil, err
			}
			if done {
				return p.res, nil
			}
		}
	}
}

func (p *Parser) reset(args []string) {
	p.tz = NewTokenizer(args)
	p.res = newResult()
	p.explicit = make(map[string]bool, len(p.cmd.args))
	p.posIdx = 0
	p.posFilled = 0
	p.firstBare = true
}

// applyDefaults pre-populates the mapping from declared defaults,
// coercing each string form through the validator.
func (p *Parser) applyDefaults() error {
	for _, spec := range p.cmd.args {
		if spec.Default == "" || spec.Required {
			continue
		}
		v, err := Coerce(spec.Default, spec.Type)
		if err != nil {
			return p.decorate(err, spec)
		}
		p.res.store(spec.Name, v)
	}
	return nil
}

// dispatchOption resolves an option token against the alias maps and
// applies its action. The returned bool signals early termination
// (help/version).
func (p *Parser) dispatchOption(tok Token) (bool, error) {
	spec := p.resolveOption(tok)
	if spec == nil {
		if done, ok := p.tryBuiltin(tok); ok {
			return done, nil
		}
		return false, p.unknownOption(tok)
	}

	hasInline := tok.Tag == TagInlineValue

	// Closed action set, matched exhaustively. Adding an action kind is
	// a compile-time change here.
	switch spec.Action {
	case ActionStoreTrue, ActionStoreFalse, ActionCount,
		ActionHelp, ActionVersion:
		if hasInline {
			return false, &ParseError{
				Kind:    ErrInvalidValue,
				Message: fmt.Sprintf("option %s does not take a value", displayName(spec)),
				Arg:     spec.Name,
				Value:   tok.Inline,
			}
		}
	case ActionStore, ActionAppend, ActionExtend, ActionCallback:
		// Value-taking; handled below.
	}

	switch spec.Action {
	case ActionStoreTrue:
		p.res.store(spec.Name, BoolValue(true))

	case ActionStoreFalse:
		p.res.store(spec.Name, BoolValue(false))

	case ActionCount:
		p.res.bump(spec.Name)

	case ActionHelp:
		p.emitHelp()
		return true, nil

	case ActionVersion:
		p.emitVersion()
		return true, nil

	case ActionStore, ActionAppend, ActionExtend, ActionCallback:
		raw := tok.Inline
		if !hasInline {
			// The value must be the next bare token; anything else
			// (another option, the separator, the end) is a missing
			// value.
			next := p.tz.Peek()
			if next.Tag != TagBareValue {
				return false, &ParseError{
					Kind:    ErrMissingValue,
					Message: fmt.Sprintf("option %s requires a value", displayName(spec)),
					Arg:     spec.Name,
				}
			}
			p.tz.Next()
			raw = next.Raw
		}
		if err := p.storeValue(spec, raw); err != nil {
			return false, err
		}
	}

	p.explicit[spec.Name] = true
	return false, nil
}

// storeValue applies choice validation and coercion, then stores per the
// definition's action.
func (p *Parser) storeValue(spec *ArgSpec, raw string) error {
	switch spec.Action {
	case ActionExtend:
		// Extend splits inline lists and accumulates each element,
		// validating elements individually. The first explicit value
		// replaces a default-seeded list rather than stacking onto it.
		if !p.explicit[spec.Name] {
			p.res.clear(spec.Name)
		}
		for _, part := range strings.Split(raw, ",") {
			if err := p.checkElement(spec, part); err != nil {
				return err
			}
			p.res.appendTo(spec.Name, part)
		}
		return nil

	case ActionAppend:
		if !p.explicit[spec.Name] {
			p.res.clear(spec.Name)
		}
		if err := p.checkElement(spec, raw); err != nil {
			return err
		}
		p.res.appendTo(spec.Name, raw)
		return nil

	case ActionCallback:
		if err := p.checkElement(spec, raw); err != nil {
			return err
		}
		if err := spec.Callback(raw); err != nil {
			if pe, ok := err.(*ParseError); ok {
				return pe
			}
			return &ParseError{
				Kind:    ErrValidation,
				Message: err.Error(),
				Arg:     spec.Name,
				Value:   raw,
			}
		}
		p.res.store(spec.Name, StringValue(raw))
		return nil

	default: // ActionStore
		if err := p.checkChoice(spec, raw); err != nil {
			return err
		}
		v, err := Coerce(raw, spec.Type)
		if err != nil {
			return p.decorate(err, spec)
		}
		p.res.store(spec.Name, v)
		return nil
	}
}

// checkElement validates one accumulated element: choice membership plus
// type coercion (elements of a plain list are strings and always pass).
func (p *Parser) checkElement(spec *ArgSpec, raw string) error {
	if err := p.checkChoice(spec, raw); err != nil {
		return err
	}
	if spec.Type == TypeList || spec.Type == TypeString {
		return nil
	}
	if _, err := Coerce(raw, spec.Type); err != nil {
		return p.decorate(err, spec)
	}
	return nil
}

func (p *Parser) checkChoice(spec *ArgSpec, raw string) error {
	if len(spec.Choices) == 0 || InChoices(raw, spec.Choices) {
		return nil
	}
	return &ParseError{
		Kind: ErrInvalidChoice,
		Message: fmt.Sprintf("invalid value %q for %s (choose from %s)",
			raw, displayName(spec), strings.Join(spec.Choices, ", ")),
		Arg:   spec.Name,
		Value: raw,
	}
}

// decorate attaches the definition name to a bare coercion error.
func (p *Parser) decorate(err error, spec *ArgSpec) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Arg = spec.Name
		pe.Message = pe.Message + " for " + displayName(spec)
		return pe
	}
	return err
}

// dispatchBareValue handles subcommand entry and positional filling. The
// returned bool signals that the pass is complete (subcommand entered).
func (p *Parser) dispatchBareValue(tok Token) (bool, error) {
	// Only the very first positional-position token can open a
	// subcommand; after that, bare values are data.
	if p.firstBare && len(p.cmd.subcommands) > 0 {
		if sub := p.cmd.findSub(tok.Raw); sub != nil {
			return true, p.enterSubcommand(sub)
		}
		if p.spec.requireSub {
			return false, p.unknownSubcommand(tok.Raw)
		}
	}
	p.firstBare = false
	return false, p.acceptPositional(tok.Raw)
}

// enterSubcommand recursively parses the remaining unconsumed vector
// against the subcommand's own definitions with a fresh engine, then
// ends this pass: no further tokens are processed at this level. The
// parent scope is still finalized (env fallback, required checks)
// before the nested result is attached.
func (p *Parser) enterSubcommand(sub *Command) error {
	rest := p.tz.Rest()
	p.res.SubName = sub.name
	if _, err := p.finish(); err != nil {
		return err
	}

	child := &Parser{spec: p.spec, settings: p.settings, cmd: sub}
	subRes, err := child.Parse(rest)
	if err != nil {
		return err
	}

	p.res.Sub = subRes
	p.res.HelpRequested = p.res.HelpRequested || subRes.HelpRequested
	p.res.VersionRequested = p.res.VersionRequested || subRes.VersionRequested
	return nil
}

// acceptPositional files a bare value into the next unfilled positional
// slot, or into the overflow sequence once all slots are full.
func (p *Parser) acceptPositional(raw string) error {
	for p.posIdx < len(p.cmd.positionals) {
		spec := p.cmd.positionals[p.posIdx]

		if spec.Card.variadic() && spec.Card.Max < 0 {
			// Unbounded slot: absorbs this and every later bare value.
			if !p.explicit[spec.Name] {
				p.res.clear(spec.Name)
			}
			if err := p.checkElement(spec, raw); err != nil {
				return err
			}
			p.res.appendTo(spec.Name, raw)
			p.explicit[spec.Name] = true
			return nil
		}

		if p.posFilled < spec.Card.Max {
			if err := p.fillSlot(spec, raw); err != nil {
				return err
			}
			p.posFilled++
			p.explicit[spec.Name] = true
			if p.posFilled >= spec.Card.Max {
				p.posIdx++
				p.posFilled = 0
			}
			return nil
		}
		p.posIdx++
		p.posFilled = 0
	}

	// All positional slots are filled: overflow, never an error.
	p.res.Extra = append(p.res.Extra, raw)
	return nil
}

// fillSlot stores one value into a bounded positional slot. Exact-N
// slots with N > 1 accumulate a list.
func (p *Parser) fillSlot(spec *ArgSpec, raw string) error {
	if spec.Card.Max > 1 {
		if !p.explicit[spec.Name] {
			p.res.clear(spec.Name)
		}
		if err := p.checkElement(spec, raw); err != nil {
			return err
		}
		p.res.appendTo(spec.Name, raw)
		return nil
	}
	if err := p.checkChoice(spec, raw); err != nil {
		return err
	}
	v, err := Coerce(raw, spec.Type)
	if err != nil {
		return p.decorate(err, spec)
	}
	p.res.store(spec.Name, v)
	return nil
}

// finish runs post-loop validation: env-var fallback for definitions not
// set on the CLI, then the required and strict-subcommand checks.
func (p *Parser) finish() (*Result, error) {
	for _, spec := range p.cmd.args {
		if p.explicit[spec.Name] {
			continue
		}

		if spec.EnvVar != "" {
			if envVal, ok := os.LookupEnv(spec.EnvVar); ok {
				if err := p.storeResolved(spec, envVal); err != nil {
					return nil, err
				}
				continue
			}
		}

		if spec.Required {
			return nil, &ParseError{
				Kind:    ErrMissingRequired,
				Message: fmt.Sprintf("required argument %s was not provided", displayName(spec)),
				Arg:     spec.Name,
			}
		}

	}

	// Positional minimums are checked by fill count, not just presence,
	// so a partially filled multi-value slot still fails.
	for _, spec := range p.cmd.args {
		if !spec.Positional || spec.Card.Min == 0 {
			continue
		}
		if l, ok := p.res.List(spec.Name); ok {
			if len(l) < spec.Card.Min {
				return nil, &ParseError{
					Kind: ErrMissingRequired,
					Message: fmt.Sprintf("argument %s requires at least %d values, got %d",
						displayName(spec), spec.Card.Min, len(l)),
					Arg: spec.Name,
				}
			}
		} else if !p.res.Has(spec.Name) {
			return nil, &ParseError{
				Kind:    ErrMissingRequired,
				Message: fmt.Sprintf("required argument %s was not provided", displayName(spec)),
				Arg:     spec.Name,
			}
		}
	}

	if p.spec.requireSub && len(p.cmd.subcommands) > 0 && p.res.SubName == "" {
		return nil, &ParseError{
			Kind:    ErrMissingSubcommand,
			Message: fmt.Sprintf("%s requires a subcommand", p.cmd.name),
		}
	}

	return p.res, nil
}

// storeResolved stores an env-sourced value with the same validation as
// a CLI value, routed per action so accumulating definitions get lists.
func (p *Parser) storeResolved(spec *ArgSpec, raw string) error {
	switch spec.Action {
	case ActionAppend, ActionExtend:
		// An environment value replaces a default-seeded list, same as
		// the first explicit value would.
		p.res.clear(spec.Name)
		for _, part := range strings.Split(raw, ",") {
			if err := p.checkElement(spec, part); err != nil {
				return err
			}
			p.res.appendTo(spec.Name, part)
		}
		return nil
	case ActionCount:
		v, err := Coerce(raw, TypeCounter)
		if err != nil {
			return p.decorate(err, spec)
		}
		p.res.store(spec.Name, v)
		return nil
	default:
		if err := p.checkChoice(spec, raw); err != nil {
			return err
		}
		v, err := Coerce(raw, spec.Type)
		if err != nil {
			return p.decorate(err, spec)
		}
		p.res.store(spec.Name, v)
		return nil
	}
}

// resolveOption looks a token up in the frozen alias maps: long names in
// the long map; single characters in the short map; inline names try the
// long map first, then the short map when one character.
func (p *Parser) resolveOption(tok Token) *ArgSpec {
	switch tok.Tag {
	case TagLongOption:
		return p.cmd.longs[tok.Name]
	case TagShortOption:
		if len(tok.Name) == 1 {
			return p.cmd.shorts[rune(tok.Name[0])]
		}
		return nil
	case TagInlineValue:
		if spec := p.cmd.longs[tok.Name]; spec != nil {
			return spec
		}
		if len(tok.Name) == 1 {
			return p.cmd.shorts[rune(tok.Name[0])]
		}
		return nil
	default:
		return nil
	}
}

// tryBuiltin handles the -h/--help and -V/--version pseudo-options when
// the spec enables them. The second return reports whether the token was
// consumed as a builtin.
func (p *Parser) tryBuiltin(tok Token) (done, ok bool) {
	if tok.Tag == TagInlineValue {
		return false, false
	}
	long := tok.Tag == TagLongOption

	if p.spec.helpFlag && ((long && tok.Name == "help") || (!long && tok.Name == "h")) {
		p.emitHelp()
		return true, true
	}
	if p.spec.versionFlag && ((long && tok.Name == "version") || (!long && tok.Name == "V")) {
		p.emitVersion()
		return true, true
	}
	return false, false
}

// emitHelp delegates to the help renderer; the engine never inspects the
// output.
func (p *Parser) emitHelp() {
	WriteCommandHelp(p.settings.output(), p.spec, p.cmd, p.settings)
	p.res.HelpRequested = true
}

func (p *Parser) emitVersion() {
	fmt.Fprintf(p.settings.output(), "%s %s\n", p.spec.Name(), p.spec.Version())
	p.res.VersionRequested = true
}

func (p *Parser) unknownOption(tok Token) error {
	name := tok.Name
	// Inline tokens may come from either spelling, so the raw prefix
	// decides how the option is echoed back.
	display := "--" + name
	if tok.Tag == TagShortOption || !strings.HasPrefix(tok.Raw, "--") {
		display = "-" + name
	}
	return &ParseError{
		Kind:       ErrUnknownOption,
		Message:    "unknown option: " + display,
		Arg:        name,
		Suggestion: suggest.Best(name, p.cmd.longNames(), p.settings.SuggestionDistance),
	}
}

func (p *Parser) unknownSubcommand(raw string) error {
	err := &ParseError{
		Kind:    ErrUnknownSubcommand,
		Message: fmt.Sprintf("unknown subcommand %q for %s", raw, p.cmd.name),
		Value:   raw,
	}
	if s := suggest.Best(raw, p.cmd.subNames(), p.settings.SuggestionDistance); s != "" {
		err.Message = fmt.Sprintf("%s (did you mean %q?)", err.Message, s)
	}
	return err
}

// displayName renders a definition the way a user typed it.
func displayName(spec *ArgSpec) string {
	switch {
	case spec.Positional:
		return spec.Name
	case spec.Long != "":
		return "--" + spec.Long
	default:
		return "-" + string(spec.Short)
	}
}
