package lang

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// nodeEnv is the environment a structural predicate is evaluated against.
type nodeEnv struct {
	Keyword  string   `expr:"Keyword"`
	Parent   string   `expr:"Parent"`
	Children []string `expr:"Children"`
}

// makeNodeEnv describes n to a structural predicate.
func makeNodeEnv(n *Node) nodeEnv {
	env := nodeEnv{
		Keyword:  n.Keyword.String(),
		Children: make([]string, 0, len(n.children)),
	}

	if n.parent != nil {
		env.Parent = n.parent.Keyword.String()
	}

	for _, c := range n.children {
		if c.Keyword != KeywordNone {
			env.Children = append(env.Children, c.Keyword.String())
		}
	}

	return env
}

// mustCompileStructure compiles a structural predicate.
// Predicates are fixed at build time, so a compile failure is a programming
// error.
func mustCompileStructure(src string) *vm.Program {
	if src == "" {
		return nil
	}

	prog, err := expr.Compile(src, expr.Env(nodeEnv{}), expr.AsBool())
	if err != nil {
		panic(ErrPredicate.Wrap(err).Error())
	}

	return prog
}

// satisfies reports whether n meets the structural predicate of its rule.
func satisfies(n *Node) (bool, error) {
	prog := RuleOf(n.Keyword).Structure
	if prog == nil {
		return true, nil
	}

	out, err := expr.Run(prog, makeNodeEnv(n))
	if err != nil {
		return false, ErrPredicate.Wrap(err)
	}

	ok, _ := out.(bool)

	return ok, nil
}
