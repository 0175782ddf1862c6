package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"github.com/tevino/abool/v2"
	"github.com/urfave/cli/v2"

	"github.com/jackrosenthal/lambdacalc"
)

const helpText = `
REPL commands:
  :help     Show this help
  :defs     List the definitions table
  :reset    Reset the session to its initial definitions
  :quit     Exit the REPL

Tab inserts λ. After an open '{' it completes shorthand names instead.
`

var (
	errText    = color.New(color.FgRed).SprintFunc()
	stepArrow  = color.New(color.FgGreen).SprintFunc()
	noticeText = color.New(color.FgYellow).SprintFunc()
)

// interrupted flips when Ctrl+C arrives outside the prompt, so a runaway
// reduction can be abandoned without killing the process.
var interrupted = abool.NewBool(false)

func applyColorMode(cfg *config) {
	if cfg.Plain || (cfg.Color != nil && !*cfg.Color) {
		color.NoColor = true
	}
}

func cmdRepl(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	applyColorMode(cfg)
	logger := newLogger(cfg)

	sess, err := newSession(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("lc %s\nCtrl+C cancels, Ctrl+D exits. Type :help for commands.\n",
		lambdacalc.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completer(sess))

	histPath := expandHome(cfg.History)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		for sig := range sigc {
			if sig == os.Interrupt {
				interrupted.Set()
				continue
			}
			ln.Close()
			os.Exit(130)
		}
	}()

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, errText(err.Error()))
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(input, ":") {
			if quit := replCommand(sess, cfg, input); quit {
				return nil
			}
			continue
		}

		evalLine(sess, cfg, logger, input)
	}
	return nil
}

// replCommand handles a :command line and reports whether to exit.
func replCommand(sess *lambdacalc.Session, cfg *config, input string) bool {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		fmt.Print(helpText)
	case ":defs":
		printDefs(sess)
	case ":reset":
		next, err := newSession(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, errText(err.Error()))
			return false
		}
		*sess = *next
		fmt.Printf("session reset, %d definitions loaded\n", sess.Defs.Len())
	default:
		fmt.Println("unknown command. Type :help for the list.")
	}
	return false
}

func printDefs(sess *lambdacalc.Session) {
	if sess.Defs.Len() == 0 {
		fmt.Println("no definitions")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Term"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, name := range sess.Defs.Names() {
		t, _ := sess.Defs.Lookup(name)
		table.Append([]string{"{" + name + "}", lambdacalc.PrintTerm(t)})
	}
	table.Render()
}

// evalLine runs one input through parse, reduction and recognition,
// printing the full report.
func evalLine(sess *lambdacalc.Session, cfg *config, logger *slog.Logger, input string) {
	start := time.Now()
	term, def, err := sess.Parse(input)
	if err != nil {
		fmt.Println(errText(lambdacalc.WrapErrorWithSource(err, input)))
		return
	}
	logger.Debug("parsed", "elapsed", time.Since(start))

	if def != nil {
		sess.Define(def)
		return
	}
	if !lambdacalc.IsFullyBound(term) {
		fmt.Println(errText(lambdacalc.WrapErrorWithSource(&lambdacalc.NotFullyBoundError{}, input)))
		return
	}

	fmt.Println("INPUT", lambdacalc.PrintTerm(term))
	if cfg.ShowAST {
		fmt.Print(lambdacalc.TreeString(term))
	}

	interrupted.UnSet()
	start = time.Now()
	seq := lambdacalc.NewReduction(term)
	stopped := false
	for seq.HasNext() {
		if (cfg.MaxSteps > 0 && seq.Steps() >= cfg.MaxSteps) || interrupted.IsSet() {
			stopped = true
			break
		}
		next := seq.Next()
		fmt.Println(stepArrow("β ==>"), lambdacalc.PrintTerm(next))
		if cfg.ShowAST {
			fmt.Print(lambdacalc.TreeString(next))
		}
	}
	logger.Debug("reduced", "steps", seq.Steps(), "elapsed", time.Since(start))

	if stopped {
		steps := humanize.Comma(int64(seq.Steps()))
		if interrupted.IsSet() {
			interrupted.UnSet()
			fmt.Println(noticeText(fmt.Sprintf("... interrupted after %s steps", steps)))
		} else {
			fmt.Println(noticeText(fmt.Sprintf("... stopped after %s steps (no normal form reached)", steps)))
		}
		return
	}

	fmt.Println()
	printRecognition(sess, seq.Current())
}

// printRecognition reports the shorthand forms of a normal form: its value
// as a Church numeral first, then every alpha-equivalent defined name.
func printRecognition(sess *lambdacalc.Session, t lambdacalc.Term) {
	rec := sess.Recognize(t)
	if !rec.Any() {
		fmt.Println("No known shorthand representations.")
		return
	}
	fmt.Println("Potential shorthand representations:")
	if rec.IsNumeral {
		fmt.Printf("-> As Church numeral %d\n", rec.Numeral)
	}
	for _, name := range rec.Names {
		fmt.Printf("-> As {%s}\n", name)
	}
}

// completer inserts λ on tab, the one character the grammar needs that
// keyboards lack. A tab after an open '{' completes shorthand names.
func completer(sess *lambdacalc.Session) liner.Completer {
	return func(line string) []string {
		if i := strings.LastIndex(line, "{"); i >= 0 && !strings.Contains(line[i:], "}") {
			prefix := strings.ToUpper(line[i+1:])
			var out []string
			for _, name := range sess.Defs.Names() {
				if strings.HasPrefix(name, prefix) {
					out = append(out, line[:i+1]+strings.ToLower(name)+"}")
				}
			}
			return out
		}
		if strings.HasSuffix(line, `\`) {
			return []string{strings.TrimSuffix(line, `\`) + "λ"}
		}
		return []string{line + "λ"}
	}
}
