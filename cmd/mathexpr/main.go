// Command mathexpr evaluates arithmetic expressions.
//
// Expressions come from the command line, or one per line from a file or
// standard input. Each result is printed on its own line. Input errors are
// shown under the offending text, and evaluation continues with the next
// expression; the exit status is 1 if any expression failed.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zephyrtronium/mathexpr"
)

type cli struct {
	Exprs []string `arg:"" optional:"" help:"Expressions to evaluate. Use -- before expressions that begin with -." name:"expr" sep:"none"`

	In         string   `help:"Read expressions from FILE, one per line, or '-' for stdin. Default stdin if no expressions are given." placeholder:"FILE"`
	Given      []string `help:"Bind a variable to the value of an expression. May be repeated." short:"g" placeholder:"NAME=EXPR" sep:"none"`
	Config     string   `help:"YAML file of variable and function bindings." short:"c" type:"existingfile" placeholder:"FILE"`
	Fmt        string   `help:"Format verb for results." default:"%g"`
	Echo       bool     `help:"Print each parse tree before its result."`
	NoDefaults bool     `help:"Do not bind the default constants and functions."`
	Check      bool     `help:"Resolve every name in each expression before evaluating it."`

	Profile    string `help:"Enable profiling." enum:",${profileModes}" default:"" placeholder:"MODE"`
	ProfileDir string `help:"Profile output directory." default:"." type:"path"`

	LogLevel  string `help:"Set log level." enum:"debug,info,warn,error" default:"warn"`
	LogFormat string `help:"Set log format." enum:"text,json" default:"text"`
}

func main() {
	os.Exit(run(context.Background(), os.Exit, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit status.
func run(ctx context.Context, exit func(int), args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("mathexpr"),
		kong.Description("Evaluate arithmetic expressions."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"profileModes": strings.Join(profileModes(), ",")},
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := newLogger(stderr, c.LogLevel, c.LogFormat)
	defer startProfile(ctx, logger, c.Profile, c.ProfileDir)()

	env := mathexpr.NewEnv()
	if !c.NoDefaults {
		env = mathexpr.NewEnv(mathexpr.Defaults())
	}
	d := diagnoser{w: stderr, env: env}
	if c.Config != "" {
		cfg, err := loadConfig(c.Config)
		if err != nil {
			logger.ErrorContext(ctx, "loading config", slog.String("path", c.Config), slog.Any("error", err))
			d.report(err)
			return 1
		}
		if err := cfg.bind(ctx, logger, env); err != nil {
			d.report(err)
			return 1
		}
	}
	for _, g := range c.Given {
		if err := bindGiven(ctx, logger, env, g); err != nil {
			d.report(err)
			return 1
		}
	}

	srcs, err := sources(c.Exprs, c.In, stdin)
	if err != nil {
		logger.ErrorContext(ctx, "reading input", slog.String("in", c.In), slog.Any("error", err))
		fmt.Fprintln(stderr, err)
		return 1
	}
	status := 0
	verb := c.Fmt + "\n"
	for _, s := range srcs {
		r, err := evaluate(ctx, logger, env, s, c.Check, func(e *mathexpr.Expr) {
			if c.Echo {
				fmt.Fprintf(stdout, "%v : ", e)
			}
		})
		if err != nil {
			d.report(err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, verb, r)
	}
	return status
}

// source is a named piece of input text holding one expression.
type source struct {
	name string
	text string
}

// sources collects the expressions to evaluate.
func sources(args []string, in string, stdin io.Reader) ([]source, error) {
	var srcs []source
	var r io.Reader
	switch {
	case in == "-", in == "" && len(args) == 0:
		in, r = "stdin", stdin
	case in != "":
		f, err := os.Open(in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if r != nil {
		sc := bufio.NewScanner(r)
		for n := 1; sc.Scan(); n++ {
			if strings.TrimSpace(sc.Text()) == "" {
				continue
			}
			srcs = append(srcs, source{name: fmt.Sprintf("%s:%d", in, n), text: sc.Text()})
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", in, err)
		}
	}
	for i, arg := range args {
		srcs = append(srcs, source{name: fmt.Sprintf("arg %d", i+1), text: arg})
	}
	return srcs, nil
}

// evaluate parses and evaluates one expression. Errors are wrapped in a
// *sourceError.
func evaluate(ctx context.Context, logger *slog.Logger, env *mathexpr.Env, s source, check bool, parsed func(*mathexpr.Expr)) (float64, error) {
	e, err := mathexpr.ParseString(s.text)
	if err != nil {
		logger.InfoContext(ctx, "parse failed", slog.String("source", s.name), slog.Any("error", err))
		return 0, &sourceError{name: s.name, src: s.text, err: err}
	}
	logger.DebugContext(ctx, "parsed",
		slog.String("source", s.name),
		slog.String("tree", e.String()),
		slog.Any("vars", e.Vars()),
		slog.Any("funcs", e.Funcs()),
	)
	if parsed != nil {
		parsed(e)
	}
	if check {
		if err := e.Check(env); err != nil {
			logger.InfoContext(ctx, "check failed", slog.String("source", s.name), slog.Any("error", err))
			return 0, &sourceError{name: s.name, src: s.text, err: err}
		}
	}
	r, err := e.Eval(env)
	if err != nil {
		logger.InfoContext(ctx, "evaluation failed", slog.String("source", s.name), slog.Any("error", err))
		return 0, &sourceError{name: s.name, src: s.text, err: err}
	}
	logger.DebugContext(ctx, "evaluated", slog.String("source", s.name), slog.Float64("result", r))
	return r, nil
}

// bindGiven binds a variable from a NAME=EXPR definition.
func bindGiven(ctx context.Context, logger *slog.Logger, env *mathexpr.Env, def string) error {
	name, src, ok := strings.Cut(def, "=")
	if !ok {
		return fmt.Errorf(`variable definitions must be "name=expr", not %q`, def)
	}
	name = strings.TrimSpace(name)
	if err := checkName(name); err != nil {
		return err
	}
	s := source{name: "given " + name, text: src}
	v, err := evaluate(ctx, logger, env, s, false, nil)
	if err != nil {
		return err
	}
	env.SetVariable(name, v)
	logger.DebugContext(ctx, "bound variable", slog.String("name", name), slog.Float64("value", v))
	return nil
}

// checkName verifies that name is a single identifier.
func checkName(name string) error {
	toks, err := mathexpr.Scan(name)
	if err != nil || len(toks) != 2 || toks[0].Kind != mathexpr.TokenIdentifier {
		return fmt.Errorf("%q is not a valid name", name)
	}
	return nil
}
