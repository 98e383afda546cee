package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/altc/lang"
	"github.com/ardnew/altc/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// varFrom returns the kong variable named key, or "" when ctx carries no
// kong context.
func varFrom(ctx context.Context, key string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[key]
}

// stdioPath is the path naming standard input or output.
const stdioPath = "-"

// openScript opens the script at path, or standard input for [stdioPath].
// It returns the name used to identify the script in diagnostics.
func openScript(path string) (io.ReadCloser, string, error) {
	if path == stdioPath || path == "" {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, ErrOpenScript.Wrap(err)
	}

	return f, path, nil
}

// stdout returns w, or os.Stdout when w is nil.
func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}

// compileOptions returns the compiler options shared by all commands.
func compileOptions(indent int) []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithIndent(indent),
	}
}
