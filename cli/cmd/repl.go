package cmd

import (
	"context"
	"os"

	"github.com/ardnew/altc/cli/cmd/repl"
	"github.com/ardnew/altc/lang"
	"github.com/ardnew/altc/log"
)

// Repl composes a script interactively.
type Repl struct {
	Indent int `default:"0" help:"Indent nested blocks by this many spaces."`

	Script string `arg:"" help:"Script loaded into the buffer." optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var lines []string

	if r.Script != "" {
		data, err := os.ReadFile(r.Script)
		if err != nil {
			return ErrOpenScript.Wrap(err)
		}

		lines = lang.SplitLines(string(data))
	}

	return repl.Run(ctx, repl.Config{
		Lines:    lines,
		CacheDir: varFrom(ctx, CacheIdentifier),
		Logger:   log.Default(),
		Compile:  compileOptions(r.Indent),
	})
}
