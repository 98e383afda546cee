package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used to construct the configuration and cache
// directories and the prefix of environment variables.
//
// It is the base name of the executable without extension, except:
//   - "__debug_bin<N>" (output of the dlv debugger) is replaced with [Name]
//   - leading dots are removed
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string { return prefixOf(executable()) })

var (
	debugBin   = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDot = regexp.MustCompile(`^\.+`)
)

func executable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return os.Args[0]
}

func prefixOf(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	id = debugBin.ReplaceAllString(id, Name)

	if id = leadingDot.ReplaceAllString(id, ""); id == "" {
		return Name
	}

	return id
}

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the cache directory path used for transient files such as
// profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir returns the [Prefix] directory under the platform directory given by
// base, falling back to a hidden directory under the user's home, and then to
// the working directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if dir, err = os.UserHomeDir(); err == nil {
			dir = filepath.Join(dir, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
