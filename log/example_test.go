package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/altc/log"
)

func Example_textFormat() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout(""))

	logger.Info("compiled", slog.String("script", "song.altc"), slog.Int("lines", 12))
	logger.Debug("not shown")
	// Output:
	// level=INFO msg=compiled script=song.altc lines=12
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout(""))

	logger.Trace("stage", slog.String("name", "tokenize"))
	// Output:
	// {"level":"TRACE","msg":"stage","name":"tokenize"}
}

func Example_withContext() {
	logger := log.Make(os.Stderr, log.WithCaller(true)).
		With(slog.String("run", "b1f0"))

	logger.InfoContext(context.Background(), "processing script")
}
