// Package interp implements the tree-walking evaluator of §4.8: a total
// function over internal/ast nodes that either returns a value.Value or
// executes a statement's side effect (binding a name, appending to the
// print log).
package interp

import (
	"github.com/dekarrin/fsmql/internal/ast"
	"github.com/dekarrin/fsmql/internal/env"
	"github.com/dekarrin/fsmql/internal/loader"
	"github.com/dekarrin/fsmql/internal/value"
)

// Interpreter holds the mutable state one program run needs: its
// environment, the loader boundary, and the accumulated print log.
type Interpreter struct {
	Env    *env.Environment
	Loader loader.Loader
	log    []string
}

// New returns an Interpreter with a fresh top-level environment, backed by
// l for load(kind, source) expressions.
func New(l loader.Loader) *Interpreter {
	return &Interpreter{Env: env.New(), Loader: l}
}

// Log returns every line appended by a print statement so far, in order.
func (i *Interpreter) Log() []string {
	return append([]string(nil), i.log...)
}

// Run evaluates every statement of prog in order, per §4.8's statement
// semantics. On error, evaluation stops immediately; prints already issued
// remain in Log().
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := i.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execStmt(stmt ast.Stmt) error {
	switch stmt.Kind() {
	case ast.KindLet:
		v, err := i.Eval(stmt.Let.Value)
		if err != nil {
			return err
		}
		i.Env.Let(stmt.Let.Name, v)
		return nil
	case ast.KindPrint:
		v, err := i.Eval(stmt.Print.Value)
		if err != nil {
			return err
		}
		i.log = append(i.log, Render(v))
		return nil
	default:
		return nil
	}
}

// lambdaBody adapts an ast.Expr + its owning Interpreter into the
// value.LambdaBody contract, so value.Value stays free of any dependency
// on internal/ast or internal/interp.
type lambdaBody struct {
	interp *Interpreter
	expr   ast.Expr
}

func (l lambdaBody) EvalLambdaBody(e value.Env) (value.Value, error) {
	concreteEnv, ok := e.(*env.Environment)
	if !ok {
		panic("interp: lambda called with foreign Env implementation")
	}
	saved := l.interp.Env
	l.interp.Env = concreteEnv
	defer func() { l.interp.Env = saved }()
	return l.interp.Eval(l.expr)
}

// applyLambda calls a TypeLambda value with arg, per §4.7: push a frame
// binding the parameter onto the lambda's captured environment snapshot,
// evaluate the body, then pop. The caller's own environment is restored
// automatically since lambdaBody.EvalLambdaBody swaps i.Env back after use.
func (i *Interpreter) applyLambda(fn value.Value, arg value.Value) (value.Value, error) {
	param, body, capturedEnv := fn.LambdaParts()
	concreteEnv, ok := capturedEnv.(*env.Environment)
	if !ok {
		panic("interp: lambda captured a foreign Env implementation")
	}
	local := concreteEnv.Clone()
	local.Push()
	local.Let(param, arg)

	lb, ok := body.(lambdaBody)
	if !ok {
		panic("interp: lambda body is not an interp.lambdaBody")
	}
	return lb.EvalLambdaBody(local)
}
