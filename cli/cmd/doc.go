// Package cmd implements the altc subcommands: compile, tree, watch, repl
// and init.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the configuration file.
	ConfigIdentifier = "config"
)
