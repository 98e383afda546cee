package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/altc/lang"
)

// ctrlCommands are the available control commands, entered with a leading
// [ctrlPrefix].
var ctrlCommands = []string{"help", "show", "tree", "undo", "reset", "edit", "save", "clear", "quit"}

// keywordCandidates are the statement keywords a script line may start with.
var keywordCandidates = func() []string {
	var names []string

	for name := range lang.Keywords() {
		if name != lang.KeywordRoot.String() {
			names = append(names, name)
		}
	}

	return names
}()

// isWordBoundary reports whether r delimits words for completion: whitespace
// and the script operators. Underscores are part of words (copy_measure).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', ':', ',', '=',
		'+', '-', '*', '/', '"', '\'':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// leadingWord reports whether the word starting at wordStart is the first
// word of input.
func leadingWord(input string, wordStart int) bool {
	return strings.TrimSpace(input[:wordStart]) == ""
}

// candidatesFor returns the completion candidates for a word: control
// commands after the prefix, keywords or bound names at the start of a script
// line, and bound names elsewhere.
func candidatesFor(input string, wordStart int, names []string) []string {
	if isCtrl(input) {
		if strings.TrimSpace(input[:wordStart]) == string(ctrlPrefix) {
			return ctrlCommands
		}

		return nil
	}

	if leadingWord(input, wordStart) {
		return slices.Concat(keywordCandidates, names)
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// An empty word yields no matches.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	candidates := candidatesFor(input, wordStart, m.names)
	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := suggestionStyle.Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedStyle.Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
