package lang

import (
	"maps"
	"slices"
	"strings"
)

// Builtin variable names and their replacements.
const (
	NextName  = "NEXT"
	NextValue = "@cur_start"
)

// debugStatements are host statements that mark a line to be passed through
// untouched by the preprocessing passes.
var debugStatements = []string{"reset_script_state"}

// skipLine reports whether a tokenized line is exempt from preprocessing:
// blank lines, lines beginning with a quoted literal or comment marker, and
// lines that contain a debug statement.
func skipLine(tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}

	if isQuoted(tokens[0]) || strings.HasPrefix(tokens[0], commentMarker) {
		return true
	}

	for _, stmt := range debugStatements {
		if slices.Contains(tokens, stmt) {
			return true
		}
	}

	return false
}

// Bindings maps variable identifiers to their replacement text.
type Bindings map[string]string

// NewBindings returns the bindings every compilation starts from.
func NewBindings() Bindings {
	return Bindings{NextName: NextValue}
}

// Clone returns an independent copy of b.
func (b Bindings) Clone() Bindings { return maps.Clone(b) }

// substitute rewrites in place every token of line that names a variable.
func (b Bindings) substitute(line []string) {
	for i, tok := range line {
		if val, ok := b[tok]; ok {
			line[i] = val
		}
	}
}

// isAssignment reports whether line has the shape "<ident> = <expr...>".
func isAssignment(line []string, ops Operators) bool {
	return len(line) >= 3 &&
		slices.Contains(ops.Assignment, line[1]) &&
		!isQuoted(line[0])
}

// Resolve substitutes variables throughout a tokenized script.
//
// The script is read in two states. While declaring, each assignment line
// binds its identifier to its right-hand side, itself rewritten using the
// bindings made so far and concatenated without separators. The first line
// that is neither skipped nor an assignment switches to invoking for the
// rest of the script: every token of every line is rewritten and no further
// bindings are made. Assignment lines stay in the output.
//
// Resolve updates b with the bindings it declares. The input lines are not
// modified.
func (b Bindings) Resolve(lines [][]string, ops Operators) [][]string {
	out := make([][]string, len(lines))
	invoking := false

	for i, src := range lines {
		line := slices.Clone(src)
		out[i] = line

		if skipLine(line) {
			continue
		}

		if !invoking && isAssignment(line, ops) {
			b.substitute(line[2:])
			b[line[0]] = strings.Join(line[2:], "")

			continue
		}

		invoking = true

		b.substitute(line)
	}

	return out
}
