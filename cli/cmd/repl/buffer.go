package repl

import (
	"context"
	"slices"
	"strings"

	"github.com/ardnew/altc/lang"
)

// replName identifies the buffer in diagnostics.
const replName = "<repl>"

// Buffer is the script composed in a session, one line per entry.
type Buffer struct {
	lines []string
	opts  []lang.Option
}

// NewBuffer returns a buffer holding lines, compiled with opts.
func NewBuffer(lines []string, opts ...lang.Option) *Buffer {
	b := &Buffer{opts: opts}
	for _, line := range lines {
		b.lines = append(b.lines, strings.TrimRight(line, "\r\n"))
	}

	return b
}

// Len returns the number of lines in the buffer.
func (b *Buffer) Len() int { return len(b.lines) }

// Append adds line to the end of the buffer.
func (b *Buffer) Append(line string) {
	b.lines = append(b.lines, strings.TrimRight(line, "\r\n"))
}

// Undo removes the last line and reports whether there was one.
func (b *Buffer) Undo() (string, bool) {
	if len(b.lines) == 0 {
		return "", false
	}

	last := b.lines[len(b.lines)-1]
	b.lines = b.lines[:len(b.lines)-1]

	return last, true
}

// Reset empties the buffer.
func (b *Buffer) Reset() { b.lines = nil }

// Replace sets the buffer content to src.
func (b *Buffer) Replace(src string) {
	b.lines = nil
	for _, line := range lang.SplitLines(src) {
		b.Append(line)
	}
}

// Lines returns a copy of the buffered lines.
func (b *Buffer) Lines() []string { return slices.Clone(b.lines) }

// Source returns the buffer as script text.
func (b *Buffer) Source() string {
	if len(b.lines) == 0 {
		return ""
	}

	return strings.Join(b.lines, "\n") + "\n"
}

// Compile compiles the buffer and returns the result, including the tree.
func (b *Buffer) Compile(ctx context.Context) (*lang.Result, error) {
	return lang.CompileString(ctx, replName, b.Source(), b.opts...)
}

// Output returns the compiled text of the buffer. Unchanged content is not
// recompiled.
func (b *Buffer) Output(ctx context.Context) (string, error) {
	return lang.Canonical(ctx, replName, b.Source(), b.opts...)
}

// Names returns the names bound by assignments in the buffer, sorted. The
// buffer need not compile.
func (b *Buffer) Names() []string {
	ops := lang.DefaultOperators()
	bound := lang.NewBindings()
	bound.Resolve(lang.Tokenize(b.lines, ops), ops)

	names := make([]string, 0, len(bound))
	for name := range bound {
		if name != lang.NextName {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}
