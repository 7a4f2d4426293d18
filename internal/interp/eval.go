package interp

import (
	"fmt"

	"github.com/dekarrin/fsmql/internal/ast"
	"github.com/dekarrin/fsmql/internal/automaton"
	"github.com/dekarrin/fsmql/internal/fsmerrors"
	"github.com/dekarrin/fsmql/internal/graph"
	"github.com/dekarrin/fsmql/internal/value"
)

// Eval evaluates e against i's current environment, per §4.8's expression
// semantics table.
func (i *Interpreter) Eval(e ast.Expr) (value.Value, error) {
	switch e.Kind() {
	case ast.KindIntLit:
		return value.Int(e.IntLit.Value), nil

	case ast.KindStrLit:
		return value.Str(e.StrLit.Value), nil

	case ast.KindSetLit:
		elems, err := i.evalAll(e.SetLit.Elems)
		if err != nil {
			return value.Value{}, err
		}
		return value.Set(elems), nil

	case ast.KindTupleLit:
		elems, err := i.evalAll(e.TupleLit.Elems)
		if err != nil {
			return value.Value{}, err
		}
		return value.Tuple(elems), nil

	case ast.KindVar:
		v, ok := i.Env.Lookup(e.Var.Name)
		if !ok {
			return value.Value{}, fsmerrors.Uninitialized(e.Var.Name)
		}
		return v, nil

	case ast.KindLambda:
		snapshot := i.Env.Snapshot()
		return value.Lambda(e.Lambda.Param, lambdaBody{interp: i, expr: e.Lambda.Body}, snapshot), nil

	case ast.KindLoad:
		return i.evalLoad(e.Load)

	case ast.KindSetOp:
		return i.evalSetOp(e.SetOp)

	case ast.KindGetOp:
		return i.evalGetOp(e.GetOp)

	case ast.KindBinOp:
		return i.evalBinOp(e.BinOp)

	case ast.KindStar:
		operand, err := i.Eval(e.Star.Operand)
		if err != nil {
			return value.Value{}, err
		}
		fsm, err := asFsm("*", operand)
		if err != nil {
			return value.Value{}, err
		}
		return value.Fsm(automaton.Star(fsm)), nil

	case ast.KindInSet:
		target, err := i.Eval(e.InSet.Value)
		if err != nil {
			return value.Value{}, err
		}
		setVal, err := i.Eval(e.InSet.Set)
		if err != nil {
			return value.Value{}, err
		}
		if setVal.Type() != value.TypeSet {
			return value.Value{}, fsmerrors.TypeMismatch("in", "Set", setVal.Type().String())
		}
		if value.Contains(setVal, target) {
			return value.Int(1), nil
		}
		return value.Int(0), nil

	case ast.KindMap:
		return i.evalMap(e.Map)

	case ast.KindFilter:
		return i.evalFilter(e.Filter)

	default:
		return value.Value{}, fsmerrors.TypeMismatchf("unrecognized expression node")
	}
}

func (i *Interpreter) evalAll(exprs []ast.Expr) ([]value.Value, error) {
	out := make([]value.Value, len(exprs))
	for idx, e := range exprs {
		v, err := i.Eval(e)
		if err != nil {
			return nil, err
		}
		out[idx] = v
	}
	return out, nil
}

func (i *Interpreter) evalLoad(l *ast.Load) (value.Value, error) {
	switch l.SourceKind {
	case ast.LoadPath:
		a, err := i.Loader.LoadPath(l.Source)
		if err != nil {
			return value.Value{}, err
		}
		return value.Fsm(a), nil
	case ast.LoadName:
		a, err := i.Loader.LoadName(l.Source)
		if err != nil {
			return value.Value{}, err
		}
		return value.Fsm(a), nil
	case ast.LoadRegex:
		a, err := i.Loader.LoadRegex(l.Source)
		if err != nil {
			return value.Value{}, err
		}
		return value.Fsm(a), nil
	default:
		return value.Value{}, fsmerrors.LoadFailure(l.Source, fmt.Errorf("unrecognized load kind"))
	}
}

func (i *Interpreter) evalSetOp(s *ast.SetOp) (value.Value, error) {
	setVal, err := i.Eval(s.Set)
	if err != nil {
		return value.Value{}, err
	}
	fsmVal, err := i.Eval(s.Fsm)
	if err != nil {
		return value.Value{}, err
	}
	if setVal.Type() != value.TypeSet {
		return value.Value{}, fsmerrors.TypeMismatch(s.Op.String(), "Set", setVal.Type().String())
	}
	a, err := asFsm(s.Op.String(), fsmVal)
	if err != nil {
		return value.Value{}, err
	}

	out := a.Copy()
	names, err := vertexNames(setVal)
	if err != nil {
		return value.Value{}, err
	}

	switch s.Op {
	case ast.SetOpSetStart:
		for _, start := range a.Start() {
			out.RemoveStart(start)
		}
		for _, n := range names {
			out.AddStart(n)
		}
	case ast.SetOpSetFinal:
		for _, final := range a.Final() {
			out.RemoveFinal(final)
		}
		for _, n := range names {
			out.AddFinal(n)
		}
	case ast.SetOpAddStart:
		for _, n := range names {
			out.AddStart(n)
		}
	case ast.SetOpAddFinal:
		for _, n := range names {
			out.AddFinal(n)
		}
	}
	return value.Fsm(out), nil
}

func vertexNames(setVal value.Value) ([]string, error) {
	elems := setVal.AsSet()
	names := make([]string, len(elems))
	for idx, e := range elems {
		if e.Type() != value.TypeStr {
			return nil, fsmerrors.TypeMismatch("setStart/setFinal/addStart/addFinal", "Set of Str", "Set of "+e.Type().String())
		}
		names[idx] = e.AsStr()
	}
	return names, nil
}

func (i *Interpreter) evalGetOp(g *ast.GetOp) (value.Value, error) {
	fsmVal, err := i.Eval(g.Fsm)
	if err != nil {
		return value.Value{}, err
	}
	a, err := asFsm(g.Op.String(), fsmVal)
	if err != nil {
		return value.Value{}, err
	}

	switch g.Op {
	case ast.GetOpStartOf:
		return value.Set(strVals(a.Start())), nil
	case ast.GetOpFinalOf:
		return value.Set(strVals(a.Final())), nil
	case ast.GetOpReachableOf:
		return value.Set(strVals(automaton.Reachable(a))), nil
	case ast.GetOpVerticesOf:
		return value.Set(strVals(graph.FromNFA(a).Vertices)), nil
	case ast.GetOpEdgesOf:
		triples := graph.FromNFA(a).EdgeTriples()
		elems := make([]value.Value, len(triples))
		for idx, t := range triples {
			elems[idx] = value.Tuple([]value.Value{value.Str(t[0]), value.Str(t[1]), value.Str(t[2])})
		}
		return value.Set(elems), nil
	case ast.GetOpLabelsOf:
		return value.Set(strVals(graph.FromNFA(a).Labels())), nil
	default:
		return value.Value{}, fsmerrors.TypeMismatchf("unrecognized get-op")
	}
}

func strVals(ss []string) []value.Value {
	out := make([]value.Value, len(ss))
	for i, s := range ss {
		out[i] = value.Str(s)
	}
	return out
}

func (i *Interpreter) evalBinOp(b *ast.BinOp) (value.Value, error) {
	left, err := i.Eval(b.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := i.Eval(b.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch b.Op {
	case ast.BinOpEqual:
		// §9's open question: `==` across distinct variants returns Int(0)
		// rather than raising a type mismatch.
		if left.Equal(right) {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case ast.BinOpAnd:
		la, err := asFsm("&&", left)
		if err != nil {
			return value.Value{}, err
		}
		ra, err := asFsm("&&", right)
		if err != nil {
			return value.Value{}, err
		}
		product, _ := automaton.Intersect(la, ra)
		return value.Fsm(product), nil
	case ast.BinOpOr:
		la, err := asFsm("||", left)
		if err != nil {
			return value.Value{}, err
		}
		ra, err := asFsm("||", right)
		if err != nil {
			return value.Value{}, err
		}
		return value.Fsm(automaton.Union(la, ra)), nil
	case ast.BinOpConcat:
		la, err := asFsm("++", left)
		if err != nil {
			return value.Value{}, err
		}
		ra, err := asFsm("++", right)
		if err != nil {
			return value.Value{}, err
		}
		return value.Fsm(automaton.Concat(la, ra)), nil
	default:
		return value.Value{}, fsmerrors.TypeMismatchf("unrecognized binary operator")
	}
}

func (i *Interpreter) evalMap(m *ast.MapExpr) (value.Value, error) {
	lambda, err := i.Eval(m.Lambda)
	if err != nil {
		return value.Value{}, err
	}
	if lambda.Type() != value.TypeLambda {
		return value.Value{}, fsmerrors.TypeMismatch("map", "Lambda", lambda.Type().String())
	}
	setVal, err := i.Eval(m.Set)
	if err != nil {
		return value.Value{}, err
	}
	if setVal.Type() != value.TypeSet {
		return value.Value{}, fsmerrors.TypeMismatch("map", "Set", setVal.Type().String())
	}

	elems := setVal.AsSet()
	out := make([]value.Value, len(elems))
	for idx, e := range elems {
		r, err := i.applyLambda(lambda, e)
		if err != nil {
			return value.Value{}, err
		}
		out[idx] = r
	}
	return value.Set(out), nil
}

func (i *Interpreter) evalFilter(f *ast.FilterExpr) (value.Value, error) {
	lambda, err := i.Eval(f.Lambda)
	if err != nil {
		return value.Value{}, err
	}
	if lambda.Type() != value.TypeLambda {
		return value.Value{}, fsmerrors.TypeMismatch("filter", "Lambda", lambda.Type().String())
	}
	setVal, err := i.Eval(f.Set)
	if err != nil {
		return value.Value{}, err
	}
	if setVal.Type() != value.TypeSet {
		return value.Value{}, fsmerrors.TypeMismatch("filter", "Set", setVal.Type().String())
	}

	zero := value.Int(0)
	var out []value.Value
	for _, e := range setVal.AsSet() {
		r, err := i.applyLambda(lambda, e)
		if err != nil {
			return value.Value{}, err
		}
		if !r.Equal(zero) {
			out = append(out, e)
		}
	}
	return value.Set(out), nil
}

func asFsm(op string, v value.Value) (*automaton.NFA, error) {
	if v.Type() != value.TypeFsm {
		return nil, fsmerrors.TypeMismatch(op, "Fsm", v.Type().String())
	}
	return v.AsFsm(), nil
}
