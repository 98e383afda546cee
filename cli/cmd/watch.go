package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/altc/host"
	"github.com/ardnew/altc/log"
)

// Watch recompiles a script every time it is written.
type Watch struct {
	Compile `embed:""`
}

// Run executes the watch command until ctx is cancelled. Compile failures
// are logged and watching continues.
func (w *Watch) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	script, err := filepath.Abs(w.Script)
	if err != nil {
		return ErrWatch.Wrap(err)
	}

	// Editors often replace a file rather than write it, so the directory is
	// watched instead of the file.
	if err := watcher.Add(filepath.Dir(script)); err != nil {
		return ErrWatch.Wrap(err).With(slog.String("script", script))
	}

	log.InfoContext(ctx, "watching", slog.String("script", script))

	w.rebuild(ctx)

	return watchLoop(ctx, watcher.Events, watcher.Errors, script, func() { w.rebuild(ctx) })
}

func (w *Watch) rebuild(ctx context.Context) {
	err := w.build(ctx, append(w.options(), host.WithCache(true))...)
	if err != nil {
		log.ErrorContext(ctx, "compile failed", slog.Any("error", err))
	}
}

// watchLoop calls fn for each write to or creation of the file at path until
// ctx is done or events is closed.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	path string,
	fn func(),
) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}

			log.DebugContext(ctx, "script changed", slog.String("op", ev.Op.String()))
			fn()

		case err, ok := <-errs:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}
