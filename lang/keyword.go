package lang

import (
	"iter"
	"strconv"
	"strings"
)

// Keyword identifies the statement that opens a block in a script.
//
// The zero value, [KeywordNone], marks an attribute line: a line whose first
// token is not a keyword and which is passed through verbatim as a leaf.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordRoot
	KeywordNote
	KeywordPhrase
	KeywordSection
	KeywordRepeat
	KeywordWrite
	KeywordRender
	KeywordFormat
	KeywordDef
	KeywordMeasure
	KeywordCopyMeasure
	KeywordMeter
	KeywordQuantize
	KeywordEnd

	keywordCount
)

var keywordName = [keywordCount]string{
	KeywordNone:        "",
	KeywordRoot:        "root",
	KeywordNote:        "note",
	KeywordPhrase:      "phrase",
	KeywordSection:     "section",
	KeywordRepeat:      "repeat",
	KeywordWrite:       "write",
	KeywordRender:      "render",
	KeywordFormat:      "format",
	KeywordDef:         "def",
	KeywordMeasure:     "measure",
	KeywordCopyMeasure: "copy_measure",
	KeywordMeter:       "meter",
	KeywordQuantize:    "quantize",
	KeywordEnd:         "end",
}

// String returns the keyword as it appears in source.
func (k Keyword) String() string {
	if k < 0 || k >= keywordCount {
		return "Keyword(" + strconv.Itoa(int(k)) + ")"
	}

	return keywordName[k]
}

// MarshalText implements [encoding.TextMarshaler].
func (k Keyword) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// IsStatement reports whether k can begin a keyword line.
//
// The synthetic close keyword and the attribute marker are not statements.
// The root keyword is: a line beginning with "root" is a keyword line that
// can never be attached, since root is nobody's child.
func (k Keyword) IsStatement() bool {
	return k > KeywordNone && k < KeywordEnd
}

// ParseKeyword returns the statement keyword named by s.
// It returns [KeywordNone] and false if s does not name a statement.
func ParseKeyword(s string) (Keyword, bool) {
	for k := KeywordRoot; k < KeywordEnd; k++ {
		if keywordName[k] == s {
			return k, true
		}
	}

	return KeywordNone, false
}

// Keywords returns an iterator over the names of all statement keywords in
// declaration order.
func Keywords() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := KeywordRoot; k < KeywordEnd; k++ {
			if !yield(keywordName[k]) {
				return
			}
		}
	}
}

// keywordList renders ks as a comma-separated list for diagnostics.
func keywordList(ks []Keyword) string {
	var sb strings.Builder

	for i, k := range ks {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(k.String())
	}

	return sb.String()
}
