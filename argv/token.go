package argv

import (
	"strings"

	"github.com/dzonerzy/go-argv/internal/intern"
)

// TokenTag classifies one lexical unit of the argument vector.
type TokenTag uint8

const (
	TagEnd TokenTag = iota
	TagLongOption
	TagShortOption
	TagInlineValue
	TagBareValue
	TagSeparator
)

func (t TokenTag) String() string {
	switch t {
	case TagEnd:
		return "end"
	case TagLongOption:
		return "long-option"
	case TagShortOption:
		return "short-option"
	case TagInlineValue:
		return "inline-value"
	case TagBareValue:
		return "bare-value"
	case TagSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Token is one lexical unit. Name and Inline borrow slices of the
// original vector; tokens do not outlive the parse pass that produced
// them.
type Token struct {
	Tag    TokenTag
	Raw    string
	Name   string // extracted option name, when the tag carries one
	Inline string // extracted =value, for TagInlineValue
	Index  int    // position in the original vector
}

// Tokenizer turns a raw string vector into a token stream. It is a
// cursor over the vector plus the in-progress short-cluster state; Peek
// snapshots and restores all of it.
type Tokenizer struct {
	args    []string
	pos     int
	cluster string // unconsumed remainder of a short cluster
	clIndex int    // vector index the cluster came from
	pastSep bool   // a bare "--" was consumed; everything is a value now
}

// NewTokenizer wraps an argument vector (program name already stripped).
func NewTokenizer(args []string) *Tokenizer {
	return &Tokenizer{args: args}
}

// Next returns the next token and advances. At the end of the vector it
// returns TagEnd repeatedly without side effects.
func (t *Tokenizer) Next() Token {
	// Pending cluster members win over the outer cursor.
	if t.cluster != "" {
		name := intern.Byte(t.cluster[0])
		t.cluster = t.cluster[1:]
		return Token{Tag: TagShortOption, Raw: "-" + name, Name: name, Index: t.clIndex}
	}

	if t.pos >= len(t.args) {
		return Token{Tag: TagEnd, Index: len(t.args)}
	}

	raw := t.args[t.pos]
	idx := t.pos
	t.pos++

	if t.pastSep {
		return Token{Tag: TagBareValue, Raw: raw, Index: idx}
	}

	switch {
	case raw == "--":
		t.pastSep = true
		return Token{Tag: TagSeparator, Raw: raw, Index: idx}

	case len(raw) > 2 && strings.HasPrefix(raw, "--"):
		rest := raw[2:]
		if eq := strings.IndexByte(rest, '='); eq != -1 {
			return Token{Tag: TagInlineValue, Raw: raw, Name: rest[:eq], Inline: rest[eq+1:], Index: idx}
		}
		return Token{Tag: TagLongOption, Raw: raw, Name: rest, Index: idx}

	case len(raw) >= 2 && raw[0] == '-' && raw[1] != '-':
		rest := raw[1:]
		if len(rest) == 1 {
			return Token{Tag: TagShortOption, Raw: raw, Name: intern.Byte(rest[0]), Index: idx}
		}
		if rest[1] == '=' {
			return Token{Tag: TagInlineValue, Raw: raw, Name: intern.Byte(rest[0]), Inline: rest[2:], Index: idx}
		}
		// Short cluster: emit the first character now, park the rest so
		// subsequent Next calls peel one character at a time.
		t.cluster = rest[1:]
		t.clIndex = idx
		return Token{Tag: TagShortOption, Raw: raw, Name: intern.Byte(rest[0]), Index: idx}

	default:
		// Includes a lone "-".
		return Token{Tag: TagBareValue, Raw: raw, Index: idx}
	}
}

// Peek returns the next token without advancing, preserving any
// in-progress cluster expansion.
func (t *Tokenizer) Peek() Token {
	saved := *t
	tok := t.Next()
	*t = saved
	return tok
}

// HasMore reports whether Next would return something other than TagEnd.
func (t *Tokenizer) HasMore() bool {
	return t.Peek().Tag != TagEnd
}

// Rest returns the raw arguments not yet consumed by the outer cursor.
// Only meaningful at a raw-argument boundary (no pending cluster).
func (t *Tokenizer) Rest() []string {
	return t.args[t.pos:]
}
