package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ardnew/altc/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// baseDotenv is the base name of dotenv files loaded before parsing.
const baseDotenv = ".env"

// defaultDirMode is the permission mode for created directories.
const defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with elem. Without elements it is the configuration directory itself.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// cachePath returns the path formed by joining the cache directory with elem.
func cachePath(elem ...string) string {
	return filepath.Join(append([]string{pkg.CacheDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// loadDotenv sets environment variables from the dotenv files at paths that
// exist. Variables already set in the environment are not overridden, and
// earlier files take precedence over later ones.
func loadDotenv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}
