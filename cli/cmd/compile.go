package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/altc/host"
	"github.com/ardnew/altc/log"
)

// Compile compiles a script and writes the artifact for the host runtime.
type Compile struct {
	Format          string `default:"csound" enum:"csound,midi"  help:"Render format recorded for the host (${enum})." short:"f"`
	Preprocess      bool   `default:"true"   negatable:""        help:"Compile the script; when disabled the raw script is wrapped."`
	Output          string `                                     help:"Output path, or '-' for stdout (default: <script>.tmp)." placeholder:"PATH" short:"o"`
	Bare            bool   `                                     help:"Omit the module prologue and epilogue."`
	Indent          int    `default:"0"                          help:"Indent nested blocks by this many spaces."`
	InstructionPath string `                                     help:"Directories searched for the user instruction file." placeholder:"LIST"`

	Script string `arg:"" help:"Composition script." type:"existingfile"`

	out io.Writer `kong:"-"`
}

func (c *Compile) options() []host.Option {
	return []host.Option{
		host.WithLogger(log.Default()),
		host.WithFormat(host.ParseFormat(c.Format)),
		host.WithPreprocess(c.Preprocess),
		host.WithBare(c.Bare),
		host.WithSearchPath(c.InstructionPath),
		host.WithCompileOptions(compileOptions(c.Indent)...),
	}
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) error {
	return c.build(ctx, c.options()...)
}

func (c *Compile) build(ctx context.Context, opts ...host.Option) error {
	art, err := host.Prepare(ctx, c.Script, opts...)
	if err != nil {
		return err
	}

	if c.Output == stdioPath {
		_, err = art.WriteTo(stdout(c.out))

		return err
	}

	path, err := art.Save(c.Output)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "compiled",
		slog.String("script", c.Script),
		slog.String("output", path),
		slog.String("format", art.Format.String()),
	)

	return nil
}
