package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys name flags either directly or nested by their hyphen-separated parts,
// and underscores may stand in for hyphens:
//
//	log-level: debug
//	log:
//	  format: json
//	  pretty: false
//	compile:
//	  format: midi
//	instruction_path: /usr/share/altc
//
// Flags given on the command line or in the environment take precedence.
// A file that is not valid YAML is reported as an error.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", baseConfig, err)
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened YAML keys.
type config map[string]any

// flatten records every leaf of doc under its hyphen-joined key path.
func (c config) flatten(prefix string, doc map[string]any) {
	for key, val := range doc {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := val.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = scalar(val)
	}
}

// scalar converts YAML values to the forms kong's mappers accept: numbers
// as strings and lists as comma-separated strings.
func scalar(val any) any {
	switch v := val.(type) {
	case nil, bool, string:
		return v

	case []any:
		part := make([]string, len(v))
		for i, e := range v {
			part[i] = fmt.Sprint(e)
		}

		return strings.Join(part, ",")

	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. A flag of a subcommand may also be
// given under the command's name.
func (c config) Resolve(
	ktx *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if ktx != nil {
		if cmd := ktx.Selected(); cmd != nil {
			if v, ok := c[cmd.Name+"-"+flag.Name]; ok {
				return v, nil
			}
		}
	}

	return nil, nil
}
