package host

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/altc/pkg"
)

// InstructionSuffix is appended to a script's base path to name its user
// instruction file.
const InstructionSuffix = "_user_instruction.rb"

// InstructionFile returns the name of the user instruction file paired with
// script: the script path without its last ".altc" extension (matched without
// regard to case) followed by [InstructionSuffix].
//
//	InstructionFile("In_C.altc")     // "In_C_user_instruction.rb"
//	InstructionFile("My.Tune.ALTC")  // "My.Tune_user_instruction.rb"
//	InstructionFile("score")         // "score_user_instruction.rb"
func InstructionFile(script string) string {
	if i := strings.LastIndex(strings.ToLower(script), pkg.ScriptExt); i >= 0 {
		script = script[:i]
	}

	return script + InstructionSuffix
}

// SearchPath returns the directories searched for instruction files as a
// list separated by [os.PathListSeparator]: the entries of prefix followed by
// those of list, keeping only existing directories.
func SearchPath(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(isDir),
	).String()
}

// Locate returns the path of the first regular file named base found in the
// directories of the search list. The boolean result reports whether one was
// found.
func Locate(base, list string, prefix ...string) (string, bool) {
	for _, dir := range filepath.SplitList(SearchPath(list, prefix...)) {
		path := filepath.Join(dir, base)
		if isFile(path) {
			return path, true
		}
	}

	return "", false
}

func isDir(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
