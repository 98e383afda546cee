// Package cli contains the command line interface for altc.
//
// # Commands
//
//   - compile: compile a script to its target file (the default command)
//   - tree: print the statement tree of a script as text, JSON or YAML
//   - watch: recompile a script whenever it is written
//   - repl: compose a script interactively
//   - init: write the current flag values to the configuration file
//
// # Configuration
//
// Flags are resolved, in order of precedence, from the command line, from
// environment variables prefixed with ALTC_ (ALTC_LOG_LEVEL), from dotenv
// files (.env in the working directory, then in the configuration directory),
// and from config.yaml in the configuration directory:
//
//	log:
//	  level: debug
//	compile:
//	  format: midi
//	instruction_path: /usr/share/altc
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o altc .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Examples
//
//	# Compile to MIDI, writing song.altc.tmp
//	altc -f midi song.altc
//
//	# Print the tree as YAML
//	altc tree --as yaml song.altc
//
//	# Recompile on save with debug logging
//	altc --log-level=debug watch song.altc
package cli
