// package main is the lc command line interface: an untyped lambda calculus
// beta reduction tool with an interactive REPL.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/jackrosenthal/lambdacalc"
)

const appName = "lc"

// flag names
const (
	configFlagName    = "config"
	showASTFlagName   = "show-ast"
	maxStepsFlagName  = "max-steps"
	noPreludeFlagName = "no-prelude"
	plainFlagName     = "plain"
	debugFlagName     = "debug"
	statsFlagName     = "stats"
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  configFlagName,
		Usage: "path to the config file (default: $XDG_CONFIG_HOME/lc/config.yaml)",
	},
	&cli.BoolFlag{
		Name:  showASTFlagName,
		Usage: "dump the syntax tree of every term that gets printed",
	},
	&cli.IntFlag{
		Name:  maxStepsFlagName,
		Usage: "stop reducing after this many beta steps (0 = no limit)",
		Value: defaultMaxSteps,
	},
	&cli.BoolFlag{
		Name:  noPreludeFlagName,
		Usage: "start with an empty definitions table",
	},
	&cli.BoolFlag{
		Name:  plainFlagName,
		Usage: "disable colored output",
	},
	&cli.BoolFlag{
		Name:  debugFlagName,
		Usage: "log parse and reduction timings to stderr",
	},
}

func main() {
	app := &cli.App{
		Name:    appName,
		Usage:   "untyped lambda calculus beta reduction tool",
		Version: fmt.Sprintf("%s (built %s)", lambdacalc.Version, lambdacalc.BuildDate),
		Flags:   globalFlags,
		Action:  cmdRepl,
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "start the interactive prompt (the default)",
				Action: cmdRepl,
			},
			{
				Name:      "eval",
				Usage:     "reduce a single term to normal form and exit",
				ArgsUsage: "[term]",
				Description: "Reduces the term given as an argument, or read from stdin\n" +
					"when no argument is present, and prints its normal form.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  statsFlagName,
						Usage: "report step count and timing to stderr",
					},
				},
				Action: cmdEval,
			},
			{
				Name:  "version",
				Usage: "print the compiled version",
				Action: func(*cli.Context) error {
					fmt.Println(lambdacalc.Version)
					return nil
				},
			},
		},
	}
	app.RunAndExitOnError()
}

// newSession builds a session with the table the config asks for.
func newSession(cfg *config) (*lambdacalc.Session, error) {
	sess := lambdacalc.NewSession()
	if !cfg.NoPrelude {
		if err := sess.LoadPrelude(); err != nil {
			return nil, err
		}
	}
	for _, path := range cfg.Prelude {
		data, err := os.ReadFile(expandHome(path))
		if err != nil {
			return nil, fmt.Errorf("prelude %s: %w", path, err)
		}
		if err := sess.LoadDefinitions(string(data)); err != nil {
			return nil, fmt.Errorf("prelude %s: %w", path, err)
		}
	}
	return sess, nil
}

func newLogger(cfg *config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func cmdEval(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger := newLogger(cfg)

	src := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if src == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return cli.Exit(fmt.Sprintf("%s: cannot read stdin: %v", appName, err), 1)
		}
		src = strings.TrimSpace(string(data))
	}
	if src == "" {
		return cli.Exit(fmt.Sprintf("usage: %s eval <term>", appName), 2)
	}

	sess, err := newSession(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	start := time.Now()
	term, def, err := sess.Parse(src)
	if err != nil {
		return cli.Exit(lambdacalc.WrapErrorWithSource(err, src), 1)
	}
	if def != nil {
		// A bare definition has nothing to reduce.
		return nil
	}
	if !lambdacalc.IsFullyBound(term) {
		return cli.Exit(lambdacalc.WrapErrorWithSource(&lambdacalc.NotFullyBoundError{}, src), 1)
	}
	logger.Debug("parsed", "term", lambdacalc.PrintTerm(term), "elapsed", time.Since(start))

	limit := cfg.MaxSteps
	if limit == 0 {
		limit = math.MaxInt
	}
	start = time.Now()
	final, steps, done := lambdacalc.Normalize(term, limit)
	elapsed := time.Since(start)
	logger.Debug("reduced", "steps", steps, "elapsed", elapsed)

	if cfg.ShowAST {
		fmt.Print(lambdacalc.TreeString(final))
	}
	fmt.Println(lambdacalc.PrintTerm(final))

	if ctx.Bool(statsFlagName) {
		fmt.Fprintf(os.Stderr, "%s steps in %s\n",
			humanize.Comma(int64(steps)), elapsed.Round(time.Microsecond))
	}
	if !done {
		return cli.Exit(fmt.Sprintf("no normal form after %s steps", humanize.Comma(int64(steps))), 1)
	}
	return nil
}
