package lang

import (
	"slices"
	"testing"
)

func TestParseKeyword(t *testing.T) {
	t.Parallel()

	for name := range Keywords() {
		k, ok := ParseKeyword(name)
		if !ok {
			t.Errorf("ParseKeyword(%q) not found", name)

			continue
		}

		if k.String() != name {
			t.Errorf("ParseKeyword(%q).String() = %q", name, k.String())
		}

		if !k.IsStatement() {
			t.Errorf("%s is not a statement", k)
		}
	}

	for _, name := range []string{"", "end", "Note", "notes", "do"} {
		if k, ok := ParseKeyword(name); ok {
			t.Errorf("ParseKeyword(%q) = %s, want none", name, k)
		}
	}
}

func TestRuleRelationsAgree(t *testing.T) {
	t.Parallel()

	for k := KeywordRoot; k < KeywordEnd; k++ {
		for _, c := range RuleOf(k).Children {
			if !slices.Contains(RuleOf(c).Parents, k) {
				t.Errorf("%s accepts %s, but %s does not list it as parent", k, c, c)
			}
		}

		for _, p := range RuleOf(k).Parents {
			if !RuleOf(p).Accepts(k) {
				t.Errorf("%s lists parent %s, but %s does not accept it", k, p, p)
			}
		}
	}
}

func TestRuleBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword    Keyword
		completion []string
		closes     bool
	}{
		{KeywordNote, []string{"do"}, true},
		{KeywordRepeat, []string{"do", "|", "index", "|"}, true},
		{KeywordFormat, []string{}, false},
		{KeywordQuantize, []string{}, false},
		{KeywordDef, []string{}, true},
		{KeywordMeter, []string{"do"}, true},
	}

	for _, tt := range tests {
		rule := RuleOf(tt.keyword)

		if !slices.Equal(rule.Completion, tt.completion) {
			t.Errorf("%s completion = %q, want %q", tt.keyword, rule.Completion, tt.completion)
		}

		if rule.Closes() != tt.closes {
			t.Errorf("%s Closes() = %v, want %v", tt.keyword, rule.Closes(), tt.closes)
		}
	}
}

func TestRuleArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword Keyword
		args    string
		want    bool
	}{
		{KeywordNote, "", true},
		{KeywordNote, `"C4"`, true},
		{KeywordNote, "5", false},
		{KeywordPhrase, `"melody" :`, true},
		{KeywordRepeat, "3", true},
		{KeywordRepeat, "0x10", true},
		{KeywordRepeat, `"three"`, false},
		{KeywordRepeat, "", false},
		{KeywordRender, `"out.wav"`, true},
		{KeywordRender, "1", false},
		{KeywordWrite, "", false},
		{KeywordFormat, "csound", true},
		{KeywordFormat, "midi", true},
		{KeywordFormat, "wav", false},
		{KeywordFormat, `"csound"`, false},
		{KeywordCopyMeasure, `"a", "b"`, true},
		{KeywordCopyMeasure, `"a"`, false},
		{KeywordCopyMeasure, `"a", "b", "c"`, false},
		{KeywordCopyMeasure, `"a", 2`, false},
		{KeywordMeter, "4, 4", true},
		{KeywordMeter, "4", false},
		{KeywordMeter, `"4", 4`, false},
		{KeywordQuantize, "on", true},
		{KeywordQuantize, "off", true},
		{KeywordQuantize, "maybe", false},
	}

	for _, tt := range tests {
		args := parseArgs(tokenizeLine(tt.args, DefaultOperators()))

		if got := RuleOf(tt.keyword).Args(args); got != tt.want {
			t.Errorf("%s %s: valid = %v, want %v", tt.keyword, tt.args, got, tt.want)
		}
	}

	if RuleOf(KeywordDef).Args != nil {
		t.Error("def arguments should be unchecked")
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	args := parseArgs([]string{"4", ",", "0b11", `"x"`, "-", "1_000", "010"})

	want := []Arg{
		{Kind: ArgInt, Int: 4, Text: "4"},
		{Kind: ArgInt, Int: 3, Text: "0b11"},
		{Kind: ArgText, Text: `"x"`},
		{Kind: ArgText, Text: "-"},
		{Kind: ArgInt, Int: 1000, Text: "1_000"},
		{Kind: ArgInt, Int: 8, Text: "010"},
	}

	if !slices.Equal(args, want) {
		t.Errorf("parseArgs() = %v, want %v", args, want)
	}
}
