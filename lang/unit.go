package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/ardnew/altc/log"
)

// Unit holds the state of a single compilation: the tree being built, the
// insertion cursor and the variable bindings.
//
// A Unit is not safe for concurrent use. Separate compilations never share a
// Unit and may run concurrently.
type Unit struct {
	logger   log.Logger
	bindings Bindings
	root     *Node
	cursor   *Node
	name     string
	id       string
	ops      Operators
	indent   int
}

// Option configures a [Unit].
type Option func(*Unit)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(u *Unit) {
		u.logger = logger
	}
}

// WithIndent indents each emitted line by width spaces per nesting level.
// The default of zero emits canonical unindented text.
func WithIndent(width int) Option {
	return func(u *Unit) {
		u.indent = max(width, 0)
	}
}

// WithOperators replaces the operator table.
func WithOperators(ops Operators) Option {
	return func(u *Unit) {
		u.ops = ops
	}
}

// WithBindings predefines variables. Builtin variables of the same name are
// overridden.
func WithBindings(b Bindings) Option {
	return func(u *Unit) {
		maps.Copy(u.bindings, b)
	}
}

// NewUnit returns an empty compilation unit for the named script.
func NewUnit(name string, opts ...Option) *Unit {
	u := &Unit{
		bindings: NewBindings(),
		root:     NewRoot(),
		name:     name,
		id:       uuid.NewString(),
		ops:      DefaultOperators(),
	}

	u.cursor = u.root

	for _, opt := range opts {
		opt(u)
	}

	u.logger = u.logger.With(
		slog.String("script", name),
		slog.String("run", u.id),
	)

	return u
}

// Root returns the root of the tree built so far.
func (u *Unit) Root() *Node { return u.root }

// Bindings returns the variables declared so far.
func (u *Unit) Bindings() Bindings { return u.bindings }

// ID returns the unique identifier of the compilation.
func (u *Unit) ID() string { return u.id }

// Build appends one node per tokenized line to the tree, in order.
//
// Build stops at the first line that cannot be placed and returns an
// [*Error] carrying the tree as it stood.
func (u *Unit) Build(ctx context.Context, lines [][]string) error {
	for i, tokens := range lines {
		err := u.insert(i+1, tokens)
		if err != nil {
			u.logger.DebugContext(ctx, "build halted",
				slog.Any("error", err),
			)

			return err
		}
	}

	return nil
}

// insert builds the node of one source line and places it in the tree.
func (u *Unit) insert(num int, tokens []string) error {
	var (
		kw Keyword
		ok bool
	)

	if len(tokens) > 0 {
		kw, ok = ParseKeyword(tokens[0])
	}

	if !ok {
		u.cursor.add(newLineNode(KeywordNone, tokens, num))

		return nil
	}

	rule := RuleOf(kw)

	// A line that already opens its block, such as canonical output read
	// back in, is not opened twice.
	if n := len(rule.Completion); n > 0 && len(tokens) > n &&
		slices.Equal(tokens[len(tokens)-n:], rule.Completion) {
		tokens = tokens[:len(tokens)-n]
	}

	if rule.Args != nil && !rule.Args(parseArgs(tokens[1:])) {
		return ErrArgument.At(num, kw).
			With(slog.String("args", strings.Join(tokens[1:], " "))).
			WithPartial(u.root)
	}

	node := newLineNode(kw, slices.Concat(tokens, rule.Completion), num)

	parent, ok := u.parentOf(kw)
	if !ok {
		return ErrAttachment.At(num, kw).
			With(
				slog.String("context", u.cursor.Keyword.String()),
				slog.String("parents", keywordList(rule.Parents)),
			).
			WithPartial(u.root)
	}

	parent.add(node)

	if rule.Closes() {
		parent.add(newCloseNode(rule.Close))
	}

	u.cursor = node

	return nil
}

// parentOf selects the node a new keyword node is attached to.
//
// In order of precedence: the cursor itself, if it accepts the keyword;
// the cursor's parent, if the cursor has the same keyword (consecutive
// siblings) or the parent accepts it; otherwise the nearest ancestor of the
// cursor's parent that accepts it. When no ancestor accepts, the node falls
// back to the last one visited if that is the root. A root line never
// attaches.
func (u *Unit) parentOf(kw Keyword) (*Node, bool) {
	if kw == KeywordRoot {
		return nil, false
	}

	cur := u.cursor

	if RuleOf(cur.Keyword).Accepts(kw) {
		return cur, true
	}

	last := cur

	if up := cur.parent; up != nil {
		if cur.Keyword == kw || RuleOf(up.Keyword).Accepts(kw) {
			return up, true
		}

		last = up

		for anc := range up.Ancestors() {
			if RuleOf(anc.Keyword).Accepts(kw) {
				return anc, true
			}

			last = anc
		}
	}

	if last.IsRoot() {
		return last, true
	}

	return nil, false
}
