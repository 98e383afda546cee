//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the altc module embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It names the
	// executable, the configuration directory and the environment variable
	// prefix.
	Name = "altc"
	// Description is a short summary used in help output.
	Description = "Aleatoric composition script compiler"
	// ScriptExt is the file extension of composition scripts.
	ScriptExt = ".altc"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
