package lang

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Result is the outcome of a successful compilation.
type Result struct {
	// Root is the validated tree.
	Root *Node

	// Bindings holds the variables the script declared.
	Bindings Bindings

	// Name identifies the script, typically its path.
	Name string

	// ID uniquely identifies the compilation.
	ID string

	// Text is the canonical block-structured output.
	Text string
}

// SplitLines splits source text into lines, keeping each line's newline.
// A trailing newline does not start an additional empty line.
func SplitLines(src string) []string {
	lines := strings.SplitAfter(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return lines
}

// CompileString compiles the script src.
func CompileString(
	ctx context.Context,
	name, src string,
	opts ...Option,
) (*Result, error) {
	return Compile(ctx, name, SplitLines(src), opts...)
}

// Compile runs every stage of the front end over the lines of a script:
// tokenization, variable resolution, call-form normalization, tree
// construction, and validated emission.
//
// On failure the returned error is an [*Error] whose Partial field holds the
// tree built before compilation halted. No output is produced on failure.
func Compile(
	ctx context.Context,
	name string,
	lines []string,
	opts ...Option,
) (*Result, error) {
	u := NewUnit(name, opts...)

	return u.compile(ctx, lines)
}

func (u *Unit) compile(ctx context.Context, lines []string) (*Result, error) {
	begin := time.Now()

	stage := func(name string, start time.Time) {
		u.logger.TraceContext(ctx, "stage complete",
			slog.String("stage", name),
			slog.Duration("elapsed", time.Since(start)),
		)
	}

	start := time.Now()
	tokens := Tokenize(lines, u.ops)
	stage("tokenize", start)

	start = time.Now()
	tokens = u.bindings.Resolve(tokens, u.ops)
	stage("resolve", start)

	start = time.Now()
	tokens = Normalize(tokens)
	stage("normalize", start)

	start = time.Now()

	err := u.Build(ctx, tokens)
	if err != nil {
		return nil, err
	}

	stage("build", start)

	start = time.Now()

	var out strings.Builder

	err = u.Emit(ctx, &out)
	if err != nil {
		return nil, err
	}

	stage("emit", start)

	u.logger.DebugContext(ctx, "compiled",
		slog.Int("lines", len(lines)),
		slog.Int("bindings", len(u.bindings)),
		slog.Duration("elapsed", time.Since(begin)),
	)

	return &Result{
		Root:     u.root,
		Bindings: u.bindings,
		Name:     u.name,
		ID:       u.id,
		Text:     out.String(),
	}, nil
}
