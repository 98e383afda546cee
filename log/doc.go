// Package log provides a leveled structured logger built on [log/slog].
//
// A [Logger] is a value: configuration is fixed when it is made, and every
// derived logger ([Logger.Wrap], [Logger.With]) is a new value. The zero
// Logger discards everything, so components may hold one without checking
// whether logging was configured.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
//	logger = logger.With(slog.String("script", "song.altc"))
//	logger.Info("compiled", slog.Int("lines", 42))
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Trace is below Debug and is used for
// per-stage timings.
//
// # Formats
//
// [FormatText] writes key=value lines. When pretty output is enabled (the
// default) the text is styled with lipgloss, and styling is dropped
// automatically when the output is not a terminal. [FormatJSON] writes one
// JSON object per line.
//
// # Package logger
//
// The package-level functions ([Info], [Error], ...) write through a default
// logger that [Config] and [SetDefault] replace atomically. Context-unaware
// functions use [DefaultContextProvider].
package log
