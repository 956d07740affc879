package interpreter

import (
	"sort"

	"github.com/metaphox/ember-lang/ast"
)

// Environment is the single flat name → value mapping the interpreter reads
// and writes. Functions live in their own namespace so that a variable and a
// function may share a name without shadowing each other.
//
// There is no parent chain. A function call gets a fresh Environment holding
// a copy of every caller entry plus the parameters, and the caller's
// Environment is put back when the call ends, so nothing the callee does is
// visible afterwards.
type Environment struct {
	vars  map[string]Value
	funcs map[string]*ast.FunctionDeclaration
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		vars:  make(map[string]Value),
		funcs: make(map[string]*ast.FunctionDeclaration),
	}
}

// Get returns the variable bound to name.
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v, replacing any previous binding.
func (e *Environment) Set(name string, v Value) {
	e.vars[name] = v
}

// Function returns the function declared under name.
func (e *Environment) Function(name string) (*ast.FunctionDeclaration, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

// Declare stores fn under its name, replacing any previous declaration.
func (e *Environment) Declare(fn *ast.FunctionDeclaration) {
	e.funcs[fn.Name] = fn
}

// Names returns the sorted variable names.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// callFrame builds the environment a call runs in: a copy of e with each
// params[i] bound to args[i]. Parameters shadow caller variables of the same
// name. len(params) must equal len(args).
func (e *Environment) callFrame(params []string, args []Value) *Environment {
	frame := &Environment{
		vars:  make(map[string]Value, len(e.vars)+len(params)),
		funcs: make(map[string]*ast.FunctionDeclaration, len(e.funcs)),
	}
	for name, v := range e.vars {
		frame.vars[name] = v
	}
	for name, fn := range e.funcs {
		frame.funcs[name] = fn
	}
	for i, name := range params {
		frame.vars[name] = args[i]
	}
	return frame
}
