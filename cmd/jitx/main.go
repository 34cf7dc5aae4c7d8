package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/typerules"
)

type globalOptions struct {
	Mode     string   `short:"m" help:"Compilation mode (portable, native; numpy and cuda are aliases). Defaults to the config file, then portable."`
	Config   string   `short:"c" type:"existingfile" help:"YAML config file declaring the mode and variables."`
	LogLevel string   `enum:"debug,info,warn,error" default:"info" help:"Log level (debug, info, warn, error)."`
	Vars     []string `name:"var" short:"v" sep:"none" help:"Declare a variable as name=type or name=type:value, eg. x=int32:5."`

	logger log.Logger `kong:"-"`
	config *config    `kong:"-"`
}

var cli struct {
	globalOptions

	Infer   inferCmd   `cmd:"" help:"Print the element type inferred for a literal."`
	Resolve resolveCmd `cmd:"" help:"Print the kernel an operator resolves to."`
	Check   checkCmd   `cmd:"" help:"Type check an expression and print its element type."`
	Eval    evalCmd    `cmd:"" help:"Evaluate an expression in portable emulation."`
	Emit    emitCmd    `cmd:"" help:"Print device code computing an expression."`
	Parse   parseCmd   `cmd:"" help:"Dump the syntax tree of an expression."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("jitx"),
		kong.Description("Type rules for elementwise kernel compilation."),
		kong.UsageOnError(),
	)
	opts := &cli.globalOptions
	opts.logger = newLogger(opts.LogLevel)
	cfg, err := loadConfig(opts.Config)
	ctx.FatalIfErrorf(err)
	opts.config = cfg
	err = ctx.Run(opts)
	if err != nil {
		level.Error(opts.logger).Log("cmd", ctx.Command(), "err", err)
		os.Exit(1)
	}
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	var option level.Option
	switch lvl {
	case "debug":
		option = level.AllowDebug()
	case "warn":
		option = level.AllowWarn()
	case "error":
		option = level.AllowError()
	default:
		option = level.AllowInfo()
	}
	return level.NewFilter(logger, option)
}

// mode returns the mode from the command line, falling back to the config
// file and then to portable.
func (g *globalOptions) mode() (typerules.Mode, error) {
	text := g.Mode
	if text == "" && g.config != nil {
		text = g.config.Mode
	}
	if text == "" {
		return typerules.Portable, nil
	}
	return typerules.ParseMode(text)
}

// variables merges the config file's variables with those on the command
// line, which take precedence.
func (g *globalOptions) variables() (map[string]dtype.Kind, map[string]dtype.Value, error) {
	kinds := map[string]dtype.Kind{}
	values := map[string]dtype.Value{}
	decls := []string{}
	if g.config != nil {
		for _, name := range g.config.varNames() {
			decls = append(decls, name+"="+g.config.Vars[name])
		}
	}
	decls = append(decls, g.Vars...)
	for _, decl := range decls {
		v, err := parseVar(decl)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "invalid variable %q", decl)
		}
		kinds[v.name] = v.kind
		if v.value != nil {
			values[v.name] = *v.value
		} else {
			delete(values, v.name)
		}
	}
	return kinds, values, nil
}
