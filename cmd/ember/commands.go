package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/metaphox/ember-lang/ast"
	"github.com/metaphox/ember-lang/config"
	"github.com/metaphox/ember-lang/repl"
	"github.com/metaphox/ember-lang/runner"
)

var dumpFlag = cli.BoolFlag{
	Name:  "dump",
	Usage: "Dump the full node structure instead of source form",
}

func runCommand(cfg *config.Config) cli.Command {
	return cli.Command{
		Name:      "run",
		Usage:     "Execute a script",
		ArgsUsage: "<file>",
		Action: func(ctx *cli.Context) error {
			return runScript(ctx, *cfg)
		},
		Description: `The run command executes a script, writing whatever it prints to
standard output. An error that escapes every try block stops the
script and the command fails.`,
	}
}

func tokensCommand() cli.Command {
	return cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a script",
		ArgsUsage: "<file>",
		Action: func(ctx *cli.Context) error {
			src, err := readSource(ctx)
			if err != nil {
				return err
			}
			r, err := runner.New(ctx.App.Writer, 0)
			if err != nil {
				return err
			}
			toks, err := r.Tokens(src)
			if err != nil {
				return err
			}
			printTokens(ctx.App.Writer, toks)
			return nil
		},
	}
}

func astCommand() cli.Command {
	return cli.Command{
		Name:      "ast",
		Usage:     "Print the syntax tree of a script",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{dumpFlag},
		Action: func(ctx *cli.Context) error {
			src, err := readSource(ctx)
			if err != nil {
				return err
			}
			r, err := runner.New(ctx.App.Writer, 0)
			if err != nil {
				return err
			}
			prog, err := r.Compile(src)
			if err != nil {
				return err
			}
			printProgram(ctx.App.Writer, prog, ctx.Bool(dumpFlag.Name))
			return nil
		},
	}
}

func replCommand(cfg *config.Config) cli.Command {
	return cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Action: func(ctx *cli.Context) error {
			r, err := runner.New(ctx.App.Writer, cfg.CacheSize)
			if err != nil {
				return err
			}
			errOut := color.New(color.FgRed)
			report := func(err error) {
				errOut.Fprintln(color.Error, err)
			}
			return repl.Run(context.Background(), cfg.Repl, r, report)
		},
	}
}

// runScript executes the file named by the first argument. An interrupt
// stops the script between statements.
func runScript(ctx *cli.Context, cfg config.Config) error {
	src, err := readSource(ctx)
	if err != nil {
		return err
	}
	r, err := runner.New(ctx.App.Writer, cfg.CacheSize)
	if err != nil {
		return err
	}
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Debug("Running script", "file", ctx.Args().First(), "bytes", len(src))
	return r.Run(runCtx, src)
}

// readSource returns the contents of the file named by the first argument.
func readSource(ctx *cli.Context) (string, error) {
	file := ctx.Args().First()
	if file == "" {
		return "", errors.New("missing script file argument")
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrap(err, "cannot read script")
	}
	return string(b), nil
}

// printTokens renders toks as a table, one row per token.
func printTokens(w io.Writer, toks []ast.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Kind", "Text"})
	table.SetAutoWrapText(false)
	for i, tok := range toks {
		text := tok.Literal
		if tok.Type == ast.STRING {
			text = strconv.Quote(text)
		}
		table.Append([]string{strconv.Itoa(i), tok.Type.String(), text})
	}
	table.Render()
}

// printProgram writes prog in source form, or as a full node dump.
func printProgram(w io.Writer, prog *ast.Program, dump bool) {
	if !dump {
		fmt.Fprint(w, prog.String())
		return
	}
	// Methods stay off so nodes print as structs rather than source form.
	cs := spew.ConfigState{
		Indent:                  "  ",
		DisableMethods:          true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cs.Fdump(w, prog)
}
