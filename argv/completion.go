package argv

import (
	"fmt"
	"io"
	"strings"
)

// Shells with completion support.
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

// WriteCompletion emits a completion script for the given shell. The
// script is derived entirely from the frozen schema, so it is stable
// for a given Spec and safe to generate at any time. Hidden definitions
// are not offered.
func WriteCompletion(w io.Writer, spec *Spec, shell string) error {
	switch shell {
	case ShellBash:
		writeBashCompletion(w, spec)
	case ShellZsh:
		writeZshCompletion(w, spec)
	case ShellFish:
		writeFishCompletion(w, spec)
	default:
		return fmt.Errorf("unsupported completion shell %q", shell)
	}
	return nil
}

// completionWords returns the tokens offered at one node: visible option
// aliases plus subcommand names and aliases.
func completionWords(cmd *Command) []string {
	var words []string
	for _, a := range cmd.args {
		if a.Positional || a.Hidden {
			continue
		}
		if a.Long != "" {
			words = append(words, "--"+a.Long)
		}
		if a.Short != 0 {
			words = append(words, "-"+string(a.Short))
		}
	}
	for _, sub := range cmd.subcommands {
		words = append(words, sub.name)
		words = append(words, sub.aliases...)
	}
	return words
}

// walkCommands visits every node of the tree, root first.
func walkCommands(cmd *Command, visit func(*Command)) {
	visit(cmd)
	for _, sub := range cmd.subcommands {
		walkCommands(sub, visit)
	}
}

// shellFuncName derives an identifier-safe name from the program name.
func shellFuncName(spec *Spec) string {
	safe := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, spec.Name())
	return "_" + safe + "_complete"
}

// writeBashCompletion emits a bash function that tracks the deepest
// matched command path across the typed words, then offers that node's
// words via compgen.
func writeBashCompletion(w io.Writer, spec *Spec) {
	fn := shellFuncName(spec)
	root := spec.Root()

	fmt.Fprintf(w, "# bash completion for %s\n", spec.Name())
	fmt.Fprintf(w, "%s() {\n", fn)
	fmt.Fprintln(w, `    local cur path opts i`)
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintf(w, "    path=%q\n", root.name)
	fmt.Fprintln(w, `    for ((i = 1; i < COMP_CWORD; i++)); do`)
	fmt.Fprintln(w, `        case "${path} ${COMP_WORDS[i]}" in`)
	walkCommands(root, func(cmd *Command) {
		for _, sub := range cmd.subcommands {
			names := append([]string{sub.name}, sub.aliases...)
			for _, n := range names {
				fmt.Fprintf(w, "        \"%s %s\") path=%q ;;\n",
					cmd.path, n, sub.path)
			}
		}
	})
	fmt.Fprintln(w, `        esac`)
	fmt.Fprintln(w, `    done`)
	fmt.Fprintln(w, `    case "${path}" in`)
	walkCommands(root, func(cmd *Command) {
		fmt.Fprintf(w, "    %q) opts=%q ;;\n",
			cmd.path, strings.Join(completionWords(cmd), " "))
	})
	fmt.Fprintln(w, `    esac`)
	fmt.Fprintln(w, `    COMPREPLY=($(compgen -W "${opts}" -- "${cur}"))`)
	fmt.Fprintln(w, `}`)
	fmt.Fprintf(w, "complete -F %s %s\n", fn, spec.Name())
}

// writeZshCompletion emits a compdef script reusing the same path-walk
// strategy with compadd.
func writeZshCompletion(w io.Writer, spec *Spec) {
	fn := shellFuncName(spec)
	root := spec.Root()

	fmt.Fprintf(w, "#compdef %s\n", spec.Name())
	fmt.Fprintf(w, "%s() {\n", fn)
	fmt.Fprintln(w, `    local path i`)
	fmt.Fprintf(w, "    path=%q\n", root.name)
	fmt.Fprintln(w, `    for ((i = 2; i < CURRENT; i++)); do`)
	fmt.Fprintln(w, `        case "${path} ${words[i]}" in`)
	walkCommands(root, func(cmd *Command) {
		for _, sub := range cmd.subcommands {
			names := append([]string{sub.name}, sub.aliases...)
			for _, n := range names {
				fmt.Fprintf(w, "        \"%s %s\") path=%q ;;\n",
					cmd.path, n, sub.path)
			}
		}
	})
	fmt.Fprintln(w, `        esac`)
	fmt.Fprintln(w, `    done`)
	fmt.Fprintln(w, `    case "${path}" in`)
	walkCommands(root, func(cmd *Command) {
		fmt.Fprintf(w, "    %q) compadd -- %s ;;\n",
			cmd.path, strings.Join(completionWords(cmd), " "))
	})
	fmt.Fprintln(w, `    esac`)
	fmt.Fprintln(w, `}`)
	fmt.Fprintf(w, "compdef %s %s\n", fn, spec.Name())
}

// writeFishCompletion emits fish complete rules: subcommands gated on
// the parent being the current command, options gated on their owning
// command having been seen.
func writeFishCompletion(w io.Writer, spec *Spec) {
	name := spec.Name()
	root := spec.Root()

	fmt.Fprintf(w, "# fish completion for %s\n", name)
	walkCommands(root, func(cmd *Command) {
		cond := "__fish_use_subcommand"
		if cmd != root {
			cond = fmt.Sprintf("__fish_seen_subcommand_from %s",
				strings.Join(append([]string{cmd.name}, cmd.aliases...), " "))
		}
		for _, sub := range cmd.subcommands {
			fmt.Fprintf(w, "complete -c %s -f -n %q -a %q -d %q\n",
				name, cond, sub.name, sub.description)
		}
		for _, a := range cmd.args {
			if a.Positional || a.Hidden {
				continue
			}
			var b strings.Builder
			fmt.Fprintf(&b, "complete -c %s", name)
			if cmd != root {
				fmt.Fprintf(&b, " -n %q", cond)
			}
			if a.Short != 0 {
				fmt.Fprintf(&b, " -s %c", a.Short)
			}
			if a.Long != "" {
				fmt.Fprintf(&b, " -l %s", a.Long)
			}
			if a.Action.takesValue() {
				b.WriteString(" -r")
				if len(a.Choices) > 0 {
					fmt.Fprintf(&b, " -a %q", strings.Join(a.Choices, " "))
				}
			}
			if a.Help != "" {
				fmt.Fprintf(&b, " -d %q", a.Help)
			}
			fmt.Fprintln(w, b.String())
		}
	})
}
