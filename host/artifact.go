package host

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ardnew/altc/lang"
	"github.com/ardnew/altc/log"
)

// TempExt is appended to a script path to name the file handed to the host.
const TempExt = ".tmp"

// TempPath returns the path of the host artifact for script.
func TempPath(script string) string { return script + TempExt }

// Artifact is a compiled script wrapped for loading by the host runtime.
type Artifact struct {
	// Script is the path of the source script.
	Script string
	// Instruction is the user instruction file required by the prologue.
	Instruction string
	// Body is the compiled (or raw) script text.
	Body   string
	Format Format
	// Bare omits the prologue and epilogue.
	Bare bool
}

const (
	prologueHead = "require 'util'\nrequire 'global'\nrequire '"
	prologueTail = "'\nmodule Aleatoric\n\n"
	epilogue     = "\n\nend\n"
)

// WriteTo writes the artifact to w: the prologue requiring the host support
// libraries and the instruction file and opening the Aleatoric module, the
// body, then the epilogue closing the module.
func (a Artifact) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	if !a.Bare {
		buf.WriteString(prologueHead + a.Instruction + prologueTail)
	}

	buf.WriteString(a.Body)

	if !a.Bare {
		buf.WriteString(epilogue)
	}

	n, err := buf.WriteTo(w)
	if err != nil {
		return n, lang.ErrEmit.Wrap(err).With(slog.String("script", a.Script))
	}

	return n, nil
}

// Save writes the artifact to path, or to [TempPath] of the script when path
// is empty, and returns the path written.
func (a Artifact) Save(path string) (string, error) {
	if path == "" {
		path = TempPath(a.Script)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", lang.ErrEmit.Wrap(err).With(slog.String("path", path))
	}

	if _, err = a.WriteTo(f); err != nil {
		_ = f.Close()

		return "", err
	}

	if err = f.Close(); err != nil {
		return "", lang.ErrEmit.Wrap(err).With(slog.String("path", path))
	}

	return path, nil
}

type config struct {
	logger     log.Logger
	format     Format
	preprocess bool
	bare       bool
	cached     bool
	searchPath string
	compile    []lang.Option
}

// Option configures [Prepare].
type Option func(config) config

// WithLogger sets the logger used for stage timings.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithFormat sets the render format recorded in the artifact.
func WithFormat(f Format) Option {
	return func(c config) config {
		c.format = f

		return c
	}
}

// WithPreprocess controls whether the script is compiled. When disabled the
// raw script text becomes the artifact body.
func WithPreprocess(enable bool) Option {
	return func(c config) config {
		c.preprocess = enable

		return c
	}
}

// WithBare controls whether the artifact omits its prologue and epilogue.
func WithBare(enable bool) Option {
	return func(c config) config {
		c.bare = enable

		return c
	}
}

// WithCache controls whether compiled output is memoized by content, so that
// preparing an unchanged script again does not recompile it.
func WithCache(enable bool) Option {
	return func(c config) config {
		c.cached = enable

		return c
	}
}

// WithSearchPath sets the list of directories searched for the instruction
// file after the script's own directory.
func WithSearchPath(list string) Option {
	return func(c config) config {
		c.searchPath = list

		return c
	}
}

// WithCompileOptions passes opts to the compiler.
func WithCompileOptions(opts ...lang.Option) Option {
	return func(c config) config {
		c.compile = append(c.compile, opts...)

		return c
	}
}

// Prepare reads script and returns the artifact for the host runtime.
//
// The instruction file is resolved against the script's directory and the
// search path; when it is not found there, the derived name is required as-is
// and left to the host's load path.
func Prepare(ctx context.Context, script string, opts ...Option) (Artifact, error) {
	cfg := config{preprocess: true}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	logger := cfg.logger.With(slog.String("script", script))

	f, err := os.Open(script)
	if err != nil {
		return Artifact{}, lang.ErrReadInput.Wrap(err).With(slog.String("script", script))
	}
	defer f.Close()

	art := Artifact{
		Script:      script,
		Instruction: InstructionFile(script),
		Format:      cfg.format,
		Bare:        cfg.bare,
	}

	if path, ok := Locate(filepath.Base(art.Instruction), cfg.searchPath, filepath.Dir(script)); ok {
		art.Instruction = path
	}

	logger.DebugContext(ctx, "format set",
		slog.String("format", art.Format.String()),
		slog.String("instruction", art.Instruction),
	)

	start := time.Now()

	data, err := io.ReadAll(f)
	if err != nil {
		return Artifact{}, lang.ErrReadInput.Wrap(err).With(slog.String("script", script))
	}

	if !cfg.preprocess {
		art.Body = string(data)

		return art, nil
	}

	compile := append([]lang.Option{lang.WithLogger(cfg.logger)}, cfg.compile...)

	if cfg.cached {
		art.Body, err = lang.Canonical(ctx, script, string(data), compile...)
	} else {
		var res *lang.Result

		if res, err = lang.CompileString(ctx, script, string(data), compile...); err == nil {
			art.Body = res.Text
		}
	}

	if err != nil {
		return Artifact{}, err
	}

	logger.DebugContext(ctx, "preprocessing complete",
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("cached", cfg.cached),
	)

	return art, nil
}
