// Package runner ties the Ember lexer, parser and interpreter into one
// source-to-output pipeline.
//
// Compiled programs are kept in an LRU cache keyed by source text. Syntax
// trees are never modified after parsing, so a cached program can be run any
// number of times, by any number of interpreters.
package runner

import (
	"context"
	"io"

	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"

	"github.com/metaphox/ember-lang/ast"
	"github.com/metaphox/ember-lang/interpreter"
	"github.com/metaphox/ember-lang/lexer"
	"github.com/metaphox/ember-lang/parser"
)

// Runner compiles and runs Ember source.
type Runner struct {
	out   io.Writer
	cache *lru.Cache // source string -> *ast.Program, nil when disabled
	log   log.Logger
}

// New creates a Runner whose programs print to out, caching up to cacheSize
// compiled programs. A cacheSize of zero disables the cache.
func New(out io.Writer, cacheSize int) (*Runner, error) {
	r := &Runner{out: out, log: log.New("pkg", "runner")}
	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = cache
	}
	return r, nil
}

// Tokens returns the token stream of src.
func (r *Runner) Tokens(src string) ([]ast.Token, error) {
	return lexer.Tokenize(src)
}

// Compile tokenizes and parses src.
func (r *Runner) Compile(src string) (*ast.Program, error) {
	if r.cache != nil {
		if prog, ok := r.cache.Get(src); ok {
			r.log.Trace("Compiled program cache hit", "bytes", len(src))
			return prog.(*ast.Program), nil
		}
	}
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	r.log.Debug("Compiled program", "tokens", len(toks), "statements", len(prog.Statements))
	if r.cache != nil {
		r.cache.Add(src, prog)
	}
	return prog, nil
}

// Run compiles src and executes it on a fresh interpreter.
func (r *Runner) Run(ctx context.Context, src string) error {
	prog, err := r.Compile(src)
	if err != nil {
		return err
	}
	return r.Exec(ctx, interpreter.New(r.out), prog)
}

// Exec executes prog on in, keeping whatever in has already bound.
func (r *Runner) Exec(ctx context.Context, in *interpreter.Interpreter, prog *ast.Program) error {
	return in.RunContext(ctx, prog)
}

// Interpreter returns a new interpreter that prints to the runner's output.
func (r *Runner) Interpreter() *interpreter.Interpreter {
	return interpreter.New(r.out)
}

// Cached reports how many compiled programs are in the cache.
func (r *Runner) Cached() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Len()
}
