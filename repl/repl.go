// Package repl implements the interactive Ember prompt.
//
// A Session keeps one interpreter alive, so variables and functions declared
// on one line are visible on the next. Input that stops in the middle of a
// construct (an open brace, a trailing operator, an open string) is held
// back and completed by the following lines.
package repl

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"

	"github.com/metaphox/ember-lang/config"
	"github.com/metaphox/ember-lang/interpreter"
	"github.com/metaphox/ember-lang/lexer"
	"github.com/metaphox/ember-lang/parser"
	"github.com/metaphox/ember-lang/runner"
)

// continuationPrompt is shown while a construct is still open.
const continuationPrompt = "...    "

// Session evaluates successive inputs against one environment.
type Session struct {
	runner  *runner.Runner
	interp  *interpreter.Interpreter
	pending []string // lines of an unfinished input
}

// NewSession starts a session whose output goes to r's writer.
func NewSession(r *runner.Runner) *Session {
	return &Session{runner: r, interp: r.Interpreter()}
}

// Pending reports whether the session is waiting for more lines to complete
// an input.
func (s *Session) Pending() bool { return len(s.pending) > 0 }

// Eval feeds one line. If the accumulated input is incomplete it is kept and
// Eval returns nil; otherwise it is compiled and executed, and the buffer is
// cleared whatever the outcome.
func (s *Session) Eval(ctx context.Context, line string) error {
	s.pending = append(s.pending, line)
	src := strings.Join(s.pending, "\n")

	prog, err := s.runner.Compile(src)
	if incomplete(err) {
		return nil
	}
	s.pending = nil
	if err != nil {
		return err
	}
	return s.runner.Exec(ctx, s.interp, prog)
}

// Reset drops any unfinished input.
func (s *Session) Reset() { s.pending = nil }

// incomplete reports whether err only says the input ended too early.
func incomplete(err error) bool {
	var lerr *lexer.LexError
	if errors.As(err, &lerr) {
		return lerr.AtEnd
	}
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return perr.AtEnd
	}
	return false
}

// Run reads lines from the terminal until EOF or Ctrl-C, evaluating each
// through a Session. Errors from the script are passed to report and do not
// end the session. Ctrl-C while an input is running stops that input only.
func Run(ctx context.Context, cfg config.Repl, r *runner.Runner, report func(error)) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				log.Warn("Failed to read REPL history", "file", cfg.HistoryFile, "err", err)
			}
			f.Close()
		}
	}

	sess := NewSession(r)
	for {
		prompt := cfg.Prompt
		if sess.Pending() {
			prompt = continuationPrompt
		}
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			if sess.Pending() {
				sess.Reset()
				continue
			}
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" && !sess.Pending() {
			continue
		}
		line.AppendHistory(input)

		evalCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		err = sess.Eval(evalCtx, input)
		stop()
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			err = errors.New("interrupted")
		}
		if err != nil {
			report(err)
		}
	}

	if cfg.HistoryFile != "" {
		f, err := os.Create(cfg.HistoryFile)
		if err != nil {
			log.Warn("Failed to save REPL history", "file", cfg.HistoryFile, "err", err)
			return nil
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			log.Warn("Failed to save REPL history", "file", cfg.HistoryFile, "err", err)
		}
	}
	return nil
}
