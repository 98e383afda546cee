package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/ardnew/altc/lang"
)

// Tree prints the syntax tree of a script.
type Tree struct {
	As     string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"a"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Script string `arg:"" default:"-" help:"Composition script, or '-' for stdin."`

	out io.Writer `kong:"-"`
}

// Run executes the tree command. When compilation fails the tree built up to
// the failure is printed before the error is returned.
func (t *Tree) Run(ctx context.Context) error {
	r, name, err := openScript(t.Script)
	if err != nil {
		return err
	}
	defer r.Close()

	res, err := lang.CompileReader(ctx, name, r, compileOptions(0)...)
	if err != nil {
		var e *lang.Error
		if errors.As(err, &e) && e.Partial != nil {
			_ = t.print(ctx, e.Partial)
		}

		return err
	}

	return t.print(ctx, res.Root)
}

func (t *Tree) print(ctx context.Context, root *lang.Node) error {
	w := stdout(t.out)

	switch t.As {
	case "json":
		return root.FormatJSON(ctx, w, t.Indent)
	case "yaml":
		return root.FormatYAML(ctx, w, t.Indent)
	default:
		return root.Print(w)
	}
}
