package argv

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// helpPalette holds the sprint functions used by the renderer. With
// color disabled every function is a plain passthrough, so the layout
// code never branches on the color decision.
type helpPalette struct {
	heading func(a ...interface{}) string
	name    func(a ...interface{}) string
	meta    func(a ...interface{}) string
}

func newHelpPalette(enabled bool) helpPalette {
	if !enabled {
		return helpPalette{heading: fmt.Sprint, name: fmt.Sprint, meta: fmt.Sprint}
	}
	return helpPalette{
		heading: color.New(color.Bold, color.FgYellow).SprintFunc(),
		name:    color.New(color.FgGreen).SprintFunc(),
		meta:    color.New(color.Faint).SprintFunc(),
	}
}

// WriteCommandHelp renders the help screen for one command node. Invoked
// by the engine on -h/--help and usable directly by embedding programs.
func WriteCommandHelp(w io.Writer, spec *Spec, cmd *Command, settings Settings) {
	pal := newHelpPalette(settings.colorEnabled())

	if cmd == spec.Root() {
		if spec.Version() != "" {
			fmt.Fprintf(w, "%s %s\n", pal.name(spec.Name()), spec.Version())
		} else {
			fmt.Fprintln(w, pal.name(spec.Name()))
		}
	} else {
		fmt.Fprintln(w, pal.name(cmd.path))
	}
	if cmd.Description() != "" {
		fmt.Fprintln(w, cmd.Description())
	}

	fmt.Fprintf(w, "\n%s\n  %s\n", pal.heading("Usage:"), usageLine(cmd))

	writePositionals(w, pal, cmd)
	writeOptions(w, pal, spec, cmd, settings)
	writeSubcommands(w, pal, cmd)

	if len(cmd.subcommands) > 0 && spec.helpFlag {
		fmt.Fprintf(w, "\nUse \"%s <command> --help\" for more information about a command.\n",
			cmd.path)
	}
}

// usageLine builds the single-line invocation synopsis.
func usageLine(cmd *Command) string {
	var b strings.Builder
	b.WriteString(cmd.path)
	if len(cmd.longs) > 0 || len(cmd.shorts) > 0 {
		b.WriteString(" [options]")
	}
	for _, pos := range cmd.positionals {
		if pos.Hidden {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(positionalMetavar(pos))
	}
	if len(cmd.subcommands) > 0 {
		b.WriteString(" <command>")
	}
	return b.String()
}

func positionalMetavar(spec *ArgSpec) string {
	name := spec.Name
	if spec.Card.variadic() {
		name += "..."
	}
	if spec.Card.Min == 0 {
		return "[" + name + "]"
	}
	return "<" + name + ">"
}

func writePositionals(w io.Writer, pal helpPalette, cmd *Command) {
	rows := make([][2]string, 0, len(cmd.positionals))
	for _, pos := range cmd.positionals {
		if pos.Hidden {
			continue
		}
		rows = append(rows, [2]string{positionalMetavar(pos), pos.Help})
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", pal.heading("Arguments:"))
	writeAligned(w, pal, rows)
}

func writeOptions(w io.Writer, pal helpPalette, spec *Spec, cmd *Command, settings Settings) {
	type row struct {
		sortKey string
		left    string
		right   string
	}
	rows := make([]row, 0, len(cmd.args)+2)

	for _, a := range cmd.args {
		if a.Positional || a.Hidden {
			continue
		}
		rows = append(rows, row{
			sortKey: optionSortKey(a),
			left:    optionSynopsis(a),
			right:   optionDescription(a, settings),
		})
	}
	if spec.helpFlag {
		rows = append(rows, row{"help", "-h, --help", "Show this help and exit"})
	}
	if spec.versionFlag && cmd == spec.Root() {
		rows = append(rows, row{"version", "-V, --version", "Show version and exit"})
	}
	if len(rows) == 0 {
		return
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].sortKey < rows[j].sortKey })

	fmt.Fprintf(w, "\n%s\n", pal.heading("Options:"))
	pairs := make([][2]string, len(rows))
	for i, r := range rows {
		pairs[i] = [2]string{r.left, r.right}
	}
	writeAligned(w, pal, pairs)
}

func optionSortKey(spec *ArgSpec) string {
	if spec.Long != "" {
		return spec.Long
	}
	return string(spec.Short)
}

// optionSynopsis renders the left column: aliases plus a value metavar
// for value-taking actions. Short-only options keep column alignment by
// padding the alias slot.
func optionSynopsis(spec *ArgSpec) string {
	var b strings.Builder
	switch {
	case spec.Short != 0 && spec.Long != "":
		fmt.Fprintf(&b, "-%c, --%s", spec.Short, spec.Long)
	case spec.Long != "":
		fmt.Fprintf(&b, "    --%s", spec.Long)
	default:
		fmt.Fprintf(&b, "-%c", spec.Short)
	}
	if spec.Action.takesValue() {
		fmt.Fprintf(&b, " <%s>", string(spec.Type))
	}
	return b.String()
}

// optionDescription renders the right column with its annotations.
func optionDescription(spec *ArgSpec, settings Settings) string {
	var b strings.Builder
	b.WriteString(spec.Help)
	if spec.Action == ActionCount {
		b.WriteString(" (repeatable)")
	}
	if len(spec.Choices) > 0 {
		fmt.Fprintf(&b, " (choices: %s)", strings.Join(spec.Choices, ", "))
	}
	if settings.ShowDefaults && spec.Default != "" {
		fmt.Fprintf(&b, " (default: %s)", spec.Default)
	}
	if spec.EnvVar != "" {
		fmt.Fprintf(&b, " (env: %s)", spec.EnvVar)
	}
	if spec.Required {
		b.WriteString(" (required)")
	}
	if spec.Deprecated != "" {
		fmt.Fprintf(&b, " (deprecated: %s)", spec.Deprecated)
	}
	return strings.TrimLeft(b.String(), " ")
}

func writeSubcommands(w io.Writer, pal helpPalette, cmd *Command) {
	if len(cmd.subcommands) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", pal.heading("Commands:"))

	rows := make([][2]string, 0, len(cmd.subcommands))
	for _, sub := range cmd.subcommands {
		left := sub.name
		if len(sub.aliases) > 0 {
			left += ", " + strings.Join(sub.aliases, ", ")
		}
		rows = append(rows, [2]string{left, sub.description})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	writeAligned(w, pal, rows)
}

// writeAligned prints two-column rows with the left column padded to the
// widest entry. Width is computed on the raw text before styling, so
// escape sequences never skew alignment.
func writeAligned(w io.Writer, pal helpPalette, rows [][2]string) {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r[0]))
		if r[1] == "" {
			fmt.Fprintf(w, "  %s\n", pal.name(r[0]))
			continue
		}
		fmt.Fprintf(w, "  %s%s   %s\n", pal.name(r[0]), pad, pal.meta(r[1]))
	}
}
