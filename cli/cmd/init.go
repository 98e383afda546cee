package cmd

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/altc/log"
	"github.com/ardnew/altc/profile"
)

// defaultConfigIndent is the indentation width of generated configuration.
const defaultConfigIndent = 2

// Init generates a configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath := varFrom(ctx, ConfigIdentifier)
	if confPath == "" {
		panic("internal error: configuration path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalWithOptions(i.buildConfig(ctx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildConfig collects the values of the application's flags, in declaration
// order, skipping help, version and profiling flags and unset values.
func (i *Init) buildConfig(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return nil
	}

	ignore := []string{"help", "version", profile.Tag}

	var doc yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := flagValue(ktx, flag); ok {
			doc = append(doc, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return doc
}

// flagValue returns the value of flag, or false if it is unset or empty.
func flagValue(ktx *kong.Context, flag *kong.Flag) (any, bool) {
	val := ktx.FlagValue(flag)
	if val == nil {
		return nil, false
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return nil, false
		}

		return rv.String(), true

	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return nil, false
		}
	}

	return val, true
}
