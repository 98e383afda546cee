package lang

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/altc/log"
)

// Despace removes the whitespace the tokenizer placed around each operator.
// Quote marks are left alone so that quoted literals keep their spacing.
func Despace(text string, ops Operators) string {
	for _, op := range ops.All() {
		if isQuoteMark(op) {
			continue
		}

		text = strings.ReplaceAll(text, " "+op, op)
		text = strings.ReplaceAll(text, op+" ", op)
	}

	return text
}

// Emit validates the tree and writes it to w in pre-order, one node per
// line. The root itself is not written.
//
// Every node is checked against the structural constraint of its keyword
// before its children are visited. Nothing is written to w unless the whole
// tree is valid.
func (u *Unit) Emit(ctx context.Context, w io.Writer) error {
	var (
		buf     bytes.Buffer
		ordinal int
	)

	for n := range u.root.All() {
		if n == u.root {
			continue
		}

		ordinal++

		ok, err := satisfies(n)
		if err != nil || !ok {
			fail := ErrStructure.At(n.Line, n.Keyword).
				With(
					slog.Int("node", ordinal),
					slog.String("constraint", RuleOf(n.Keyword).Constraint),
				).
				WithPartial(u.root)
			if err != nil {
				fail = fail.Wrap(err)
			}

			if u.logger.Enabled(ctx, log.LevelDebug) {
				var dump strings.Builder

				_ = u.root.Print(&dump)

				u.logger.DebugContext(ctx, "illegal structure",
					slog.Any("error", fail),
					slog.String("tree", dump.String()),
				)
			}

			return fail
		}

		if u.indent > 0 && n.Text != "\n" {
			buf.WriteString(strings.Repeat(" ", n.Depth()*u.indent))
		}

		buf.WriteString(Despace(n.Text, u.ops))
	}

	_, err := buf.WriteTo(w)
	if err != nil {
		return ErrEmit.Wrap(err)
	}

	return nil
}
