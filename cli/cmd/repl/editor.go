package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/altc/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-compile-retry loop.
// It writes the buffer to a temporary script, opens the user's editor, and
// compiles the result. On a compile error the user is asked whether to edit
// again; declining keeps the buffer unchanged.
type editCommand struct {
	buffer  *Buffer
	ctxFunc func() context.Context
	logger  log.Logger
	edited  bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-compile-retry loop.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()
	content := c.buffer.Source()

	f, err := os.CreateTemp("", "altc-repl-*.altc")
	if err != nil {
		return err
	}

	path := f.Name()

	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		next := NewBuffer(nil, c.buffer.opts...)
		next.Replace(content)

		_, compileErr := next.Compile(ctx)
		c.logger.TraceContext(ctx, "editor compile attempt",
			slog.Int("lines", next.Len()),
			slog.Bool("success", compileErr == nil),
		)

		if compileErr == nil {
			c.buffer.Replace(content)
			c.edited = true

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", compileErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor launches the user's editor on the file at path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
