package lang

import (
	"slices"
	"strings"
)

// Operators lists the operator tokens recognized by the tokenizer.
//
// The order of each list is significant: operators are spaced (and later
// despaced) in sequence, so a longer operator must precede any operator that
// is a prefix of it.
type Operators struct {
	// Delimiters separate lines, arguments and quoted literals.
	Delimiters []string

	// Passthrough operators belong to the host language and are carried
	// into the output unchanged.
	Passthrough []string

	// Assignment binds a variable while the resolver is declaring.
	Assignment []string
}

// DefaultOperators returns the operator table of the composition language.
func DefaultOperators() Operators {
	return Operators{
		Delimiters: []string{",", ";", "\n", `"`},
		Passthrough: []string{
			"`", "~", "!", "%", "^", "&&", "&", "*", "(", ")",
			"-=", "-", "+=", "+", "||", "|", "{", "}", "[", "]",
		},
		Assignment: []string{"="},
	}
}

// All returns every operator in the order they are applied.
func (o Operators) All() []string {
	return slices.Concat(o.Delimiters, o.Passthrough, o.Assignment)
}

const (
	commentMarker = "#"
	listSeparator = ","
)

// quoteMarks are the tokens that delimit a quoted literal.
var quoteMarks = []string{`"`, `'`}

func isQuoteMark(tok string) bool { return slices.Contains(quoteMarks, tok) }

// isQuoted reports whether tok is, or begins, a quoted literal.
func isQuoted(tok string) bool {
	for _, q := range quoteMarks {
		if strings.HasPrefix(tok, q) {
			return true
		}
	}

	return false
}

// Tokenize splits each source line into tokens.
//
// Every operator is surrounded by whitespace, the line is split on runs of
// whitespace, and the tokens between a pair of identical quote marks are
// merged into a single literal that retains its quotes. An unterminated
// quote consumes the rest of its line.
func Tokenize(lines []string, ops Operators) [][]string {
	out := make([][]string, len(lines))

	for i, line := range lines {
		out[i] = tokenizeLine(line, ops)
	}

	return out
}

func tokenizeLine(line string, ops Operators) []string {
	for _, op := range ops.All() {
		line = strings.ReplaceAll(line, op, " "+op+" ")
	}

	return mergeQuoted(strings.Fields(line))
}

// mergeQuoted joins the tokens of each quoted literal.
func mergeQuoted(tokens []string) []string {
	var (
		out     = make([]string, 0, len(tokens))
		literal []string
		open    string
	)

	for _, tok := range tokens {
		switch {
		case open == "" && isQuoteMark(tok):
			open = tok
			literal = literal[:0]

		case open != "" && tok == open:
			out = append(out, open+strings.Join(literal, " ")+open)
			open = ""

		case open != "":
			literal = append(literal, tok)

		default:
			out = append(out, tok)
		}
	}

	return out
}
