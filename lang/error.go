package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Kind classifies a compilation failure.
type Kind int

const (
	KindNone Kind = iota
	KindArgument
	KindAttachment
	KindStructure
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindAttachment:
		return "attachment"
	case KindStructure:
		return "structure"
	default:
		return "none"
	}
}

// Predefined errors (sentinel values).
var (
	ErrArgument   = newKindError(KindArgument, "illegal argument")
	ErrAttachment = newKindError(KindAttachment, "no valid parent")
	ErrStructure  = newKindError(KindStructure, "illegal structure")
	ErrPredicate  = NewError("structural predicate failed")
	ErrReadInput  = NewError("failed to read input")
	ErrEmit       = NewError("failed to write output")
)

// Error represents a compilation error with optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
//
// Errors raised while building or validating a tree carry the line and
// keyword at fault, and the tree as it stood when compilation halted.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr

	// Partial is the tree built before compilation halted.
	Partial *Node

	Kind    Kind
	Line    int
	Keyword Keyword
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func newKindError(kind Kind, msg string) *Error {
	return &Error{msg: msg, Kind: kind}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.Line > 0 {
		loc := "line " + strconv.Itoa(e.Line)
		if e.Keyword != KeywordNone {
			loc += " (" + e.Keyword.String() + ")"
		}

		part = append(part, loc)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg == t.msg && e.Kind == t.Kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.Kind != KindNone {
		attrs = append(attrs, slog.String("kind", e.Kind.String()))
	}

	if e.Line > 0 {
		attrs = append(attrs, slog.Int("line", e.Line))
	}

	if e.Keyword != KeywordNone {
		attrs = append(attrs, slog.String("keyword", e.Keyword.String()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e

	return &c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// At returns a copy of e located at the given line and keyword.
func (e *Error) At(line int, k Keyword) *Error {
	c := e.clone()
	c.Line = line
	c.Keyword = k

	return c
}

// WithPartial returns a copy of e carrying the tree rooted at root.
func (e *Error) WithPartial(root *Node) *Error {
	c := e.clone()
	c.Partial = root

	return c
}
