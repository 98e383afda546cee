package lang

import (
	"slices"
	"strings"
)

const (
	callMarker   = ":"
	scopeMarker  = "::"
	callOpen     = "("
	callClose    = ")"
	defineSymbol = "def"
)

// Normalize rewrites the shorthand call form "name:" into "name(" and closes
// every call opened on a line with ")" at the end of that line. A call head
// in the first position of a line declares a method, so "def" is prepended.
//
// Tokens containing the scope operator "::" are left alone. Calls nest only
// one level per line: all closing parentheses are appended together at the
// end.
func Normalize(lines [][]string) [][]string {
	out := make([][]string, len(lines))

	for i, src := range lines {
		if skipLine(src) {
			out[i] = slices.Clone(src)

			continue
		}

		out[i] = normalizeLine(src)
	}

	return out
}

func normalizeLine(src []string) []string {
	var (
		line  = make([]string, 0, len(src)+2)
		calls int
	)

	for j, tok := range src {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		if strings.Contains(tok, callMarker) && !strings.Contains(tok, scopeMarker) {
			calls++

			tok = strings.Replace(tok, callMarker, callOpen, 1)

			if j == 0 {
				line = append(line, defineSymbol)
			}
		}

		line = append(line, tok)
	}

	for range calls {
		line = append(line, callClose)
	}

	return line
}
