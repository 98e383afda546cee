package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/altc/cli/cmd"
	"github.com/ardnew/altc/pkg"
)

// CLI is the top-level command-line interface for altc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Compile cmd.Compile `cmd:"" default:"withargs" help:"Compile a script to a target file"`
	Tree    cmd.Tree    `cmd:""                    help:"Print the statement tree of a script"`
	Watch   cmd.Watch   `cmd:""                    help:"Recompile a script whenever it changes"`
	Repl    cmd.Repl    `cmd:""                    help:"Compose a script interactively"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the altc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	err = loadDotenv(baseDotenv, configPath(baseDotenv))
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cachePath(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(strings.ToUpper(pkg.Prefix())),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}
