package lang

import (
	"slices"
	"sync"

	"github.com/expr-lang/expr/vm"
)

// Rule describes how a keyword is parsed, attached and validated.
//
// Rules are immutable once built and are shared by every compilation.
type Rule struct {
	// Args validates the coerced arguments of a keyword line.
	Args ArgRule

	// Structure is the compiled structural predicate evaluated during
	// emission, or nil if the keyword has none.
	Structure *vm.Program

	// Constraint describes Structure for diagnostics.
	Constraint string

	// Completion holds the tokens appended to every keyword line to open
	// its block in the host language.
	Completion []string

	// Close is the text of the synthetic node that closes the block, or
	// empty if the block is not closed.
	Close string

	Children []Keyword
	Parents  []Keyword
}

// Accepts reports whether child is a valid child of the rule's keyword.
func (r *Rule) Accepts(child Keyword) bool {
	return slices.Contains(r.Children, child)
}

// Closes reports whether nodes of the rule's keyword are followed by a close
// node.
func (r *Rule) Closes() bool { return r.Close != "" }

const (
	openBlock   = " do\n"
	openIndexed = " do |index|\n"
	openNone    = "\n"
	closeBlock  = "end\n"
)

// ruleSource is the uncompiled form of a [Rule].
type ruleSource struct {
	args       ArgRule
	structure  string
	constraint string
	completion string
	close      string
	children   []Keyword
	parents    []Keyword
}

// ruleSourceFor returns the rule definition of k.
func ruleSourceFor(k Keyword) ruleSource {
	switch k {
	case KeywordRoot:
		return ruleSource{
			children: []Keyword{
				KeywordNote, KeywordPhrase, KeywordSection, KeywordRepeat,
				KeywordWrite, KeywordRender, KeywordDef, KeywordMeasure,
				KeywordCopyMeasure, KeywordMeter,
			},
		}

	case KeywordNote:
		return ruleSource{
			args:       optionalText,
			completion: openBlock,
			close:      closeBlock,
			parents: []Keyword{
				KeywordRoot, KeywordPhrase, KeywordRepeat, KeywordMeasure,
			},
		}

	case KeywordPhrase:
		return ruleSource{
			args:       optionalText,
			completion: openBlock,
			close:      closeBlock,
			children:   []Keyword{KeywordNote, KeywordRepeat},
			parents:    []Keyword{KeywordRoot, KeywordSection},
		}

	case KeywordSection:
		return ruleSource{
			args:       optionalText,
			completion: openBlock,
			close:      closeBlock,
			children: []Keyword{
				KeywordPhrase, KeywordMeasure, KeywordCopyMeasure,
			},
			parents: []Keyword{KeywordRoot},
		}

	case KeywordRepeat:
		return ruleSource{
			args:       requiredInt,
			completion: openIndexed,
			close:      closeBlock,
			children:   []Keyword{KeywordNote, KeywordMeasure},
			parents:    []Keyword{KeywordRoot, KeywordPhrase},
		}

	case KeywordWrite:
		return ruleSource{
			args:       requiredText,
			structure:  `"format" in Children`,
			constraint: "write must contain a format statement",
			completion: openBlock,
			close:      closeBlock,
			children:   []Keyword{KeywordFormat},
			parents:    []Keyword{KeywordRoot},
		}

	case KeywordRender:
		return ruleSource{
			args:       requiredText,
			completion: openBlock,
			close:      closeBlock,
			parents:    []Keyword{KeywordRoot},
		}

	case KeywordFormat:
		return ruleSource{
			args:       oneOf("csound", "midi"),
			structure:  `Parent == "write"`,
			constraint: "format must appear inside write",
			completion: openNone,
			parents:    []Keyword{KeywordWrite},
		}

	case KeywordDef:
		return ruleSource{
			completion: openNone,
			close:      closeBlock,
			parents:    []Keyword{KeywordRoot},
		}

	case KeywordMeasure:
		return ruleSource{
			args:       optionalText,
			completion: openBlock,
			close:      closeBlock,
			children:   []Keyword{KeywordNote},
			parents: []Keyword{
				KeywordRoot, KeywordSection, KeywordRepeat,
			},
		}

	case KeywordCopyMeasure:
		return ruleSource{
			args:       pair(ArgText, ArgText),
			completion: openBlock,
			close:      closeBlock,
			parents:    []Keyword{KeywordRoot, KeywordSection},
		}

	case KeywordMeter:
		return ruleSource{
			args:       pair(ArgInt, ArgInt),
			completion: openBlock,
			close:      closeBlock,
			children:   []Keyword{KeywordQuantize},
			parents:    []Keyword{KeywordRoot},
		}

	case KeywordQuantize:
		return ruleSource{
			args:       oneOf("on", "off"),
			completion: openNone,
			parents:    []Keyword{KeywordMeter},
		}

	default:
		return ruleSource{}
	}
}

// rules builds the rule table on first use.
var rules = sync.OnceValue(func() *[keywordCount]Rule {
	var table [keywordCount]Rule

	for k := range keywordCount {
		src := ruleSourceFor(k)

		table[k] = Rule{
			Args:       src.args,
			Structure:  mustCompileStructure(src.structure),
			Constraint: src.constraint,
			Completion: tokenizeLine(src.completion, DefaultOperators()),
			Close:      src.close,
			Children:   src.children,
			Parents:    src.parents,
		}
	}

	return &table
})

// RuleOf returns the rule of k. The returned rule must not be modified.
func RuleOf(k Keyword) *Rule {
	if k < 0 || k >= keywordCount {
		return &rules()[KeywordNone]
	}

	return &rules()[k]
}
