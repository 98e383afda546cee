package lang

import (
	"strconv"
)

// ArgKind distinguishes the two shapes an argument may take.
type ArgKind int

const (
	ArgText ArgKind = iota
	ArgInt
)

func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "int"
	default:
		return "text"
	}
}

// Arg is a single coerced statement argument.
type Arg struct {
	Text string
	Int  int64
	Kind ArgKind
}

func (a Arg) String() string {
	if a.Kind == ArgInt {
		return strconv.FormatInt(a.Int, 10)
	}

	return a.Text
}

// parseArgs coerces the argument tokens of a keyword line.
//
// List separators are dropped. Every remaining token that parses as an
// integer literal (with optional base prefix) becomes an [ArgInt]; the rest
// stay [ArgText] with their quotes intact.
func parseArgs(tokens []string) []Arg {
	args := make([]Arg, 0, len(tokens))

	for _, tok := range tokens {
		if tok == "," {
			continue
		}

		if n, err := strconv.ParseInt(tok, 0, 64); err == nil {
			args = append(args, Arg{Kind: ArgInt, Int: n, Text: tok})

			continue
		}

		args = append(args, Arg{Kind: ArgText, Text: tok})
	}

	return args
}

// ArgRule reports whether a keyword's arguments are acceptable.
// A nil ArgRule accepts anything.
type ArgRule func(args []Arg) bool

// optionalText accepts no arguments, or a first argument that is text.
func optionalText(args []Arg) bool {
	return len(args) == 0 || args[0].Kind == ArgText
}

// requiredInt requires a first argument that is an integer.
func requiredInt(args []Arg) bool {
	return len(args) > 0 && args[0].Kind == ArgInt
}

// requiredText requires a non-empty first argument that is text.
func requiredText(args []Arg) bool {
	return len(args) > 0 && args[0].Kind == ArgText && args[0].Text != ""
}

// oneOf requires a first argument spelled exactly as one of choices.
func oneOf(choices ...string) ArgRule {
	return func(args []Arg) bool {
		if len(args) == 0 {
			return false
		}

		s := args[0].String()
		for _, c := range choices {
			if s == c {
				return true
			}
		}

		return false
	}
}

// pair requires exactly two arguments of the given kinds.
func pair(first, second ArgKind) ArgRule {
	return func(args []Arg) bool {
		return len(args) == 2 && args[0].Kind == first && args[1].Kind == second
	}
}
