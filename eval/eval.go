// Package eval runs a checked tree directly.
package eval

import (
	"strconv"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/types"
)

type Value interface {
	Type() types.ResolvedType
	String() string
	is_Value()
}

// Int is an unsigned 64-bit integer. Arithmetic wraps.
type Int uint64

func (v Int) Type() types.ResolvedType { return types.Int64 }
func (v Int) String() string           { return strconv.FormatUint(uint64(v), 10) }
func (v Int) is_Value()                {}

type Bool bool

func (v Bool) Type() types.ResolvedType { return types.Bool }
func (v Bool) String() string           { return strconv.FormatBool(bool(v)) }
func (v Bool) is_Value()                {}

type Checked = ast.Expression[types.ResolvedType]

// Evaluator holds the bindings of one program. Top-level lets stay bound
// between successful calls to Evaluate; a failed call leaves the bindings as
// they were on entry.
type Evaluator struct {
	names []map[string]Value
}

func NewEvaluator() *Evaluator {
	return &Evaluator{names: []map[string]Value{{}}}
}

// Evaluate runs a tree with a fresh Evaluator.
func Evaluate(e Checked) (Value, error) {
	return NewEvaluator().Evaluate(e)
}

func (ev *Evaluator) Evaluate(e Checked) (Value, error) {
	snap := ev.Snapshot()
	v, err := ev.eval(e)
	if err != nil {
		ev.Restore(snap)
		return nil, tracerr.Wrap(err)
	}
	return v, nil
}

// Snapshot is a copy of an Evaluator's bindings.
type Snapshot struct {
	names []map[string]Value
}

func copyScopes(from []map[string]Value) []map[string]Value {
	to := make([]map[string]Value, len(from))
	for i, scope := range from {
		to[i] = make(map[string]Value, len(scope))
		for name, val := range scope {
			to[i][name] = val
		}
	}
	return to
}

func (ev *Evaluator) Snapshot() Snapshot {
	return Snapshot{names: copyScopes(ev.names)}
}

func (ev *Evaluator) Restore(snap Snapshot) {
	ev.names = copyScopes(snap.names)
}

func (ev *Evaluator) pushScope() {
	ev.names = append(ev.names, make(map[string]Value))
}

func (ev *Evaluator) popScope() {
	ev.names = ev.names[:len(ev.names)-1]
}

func (ev *Evaluator) top() map[string]Value {
	if len(ev.names) == 0 {
		ev.pushScope()
	}
	return ev.names[len(ev.names)-1]
}

func (ev *Evaluator) lookup(id ast.Identifier) (Value, error) {
	for i := len(ev.names) - 1; i >= 0; i-- {
		val, ok := ev.names[i][id.Name]
		if ok {
			return val, nil
		}
	}

	return nil, errors.UnboundIdentifier{Name: id.Name, Location: id.Pos}
}

func (ev *Evaluator) eval(e Checked) (Value, error) {
	return ast.Accept[types.ResolvedType, Value](e, evaluator{ev})
}

type evaluator struct {
	ev *Evaluator
}

func (v evaluator) VisitNumberLiteral(e ast.NumberLiteral[types.ResolvedType]) (Value, error) {
	return Int(e.Value), nil
}

func (v evaluator) VisitBooleanLiteral(e ast.BooleanLiteral[types.ResolvedType]) (Value, error) {
	return Bool(e.Value), nil
}

func (v evaluator) VisitBinaryOp(e ast.BinaryOp[types.ResolvedType]) (Value, error) {
	lhs, err := v.ev.eval(e.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := v.ev.eval(e.Right)
	if err != nil {
		return nil, err
	}

	l, lok := lhs.(Int)
	r, rok := rhs.(Int)
	if !lok || !rok {
		return nil, errors.Unsupported{What: e.Op.String() + " on " + lhs.Type().String(), Location: e.Pos}
	}

	switch e.Op {
	case ast.Add:
		return l + r, nil
	case ast.Sub:
		return l - r, nil
	case ast.Mul:
		return l * r, nil
	case ast.Div:
		if r == 0 {
			return nil, errors.DivisionByZero{Location: e.Pos}
		}
		return l / r, nil
	}

	return nil, errors.Unsupported{What: "operator " + e.Op.String(), Location: e.Pos}
}

func (v evaluator) VisitLet(e ast.Let[types.ResolvedType]) (Value, error) {
	val, err := v.ev.eval(e.Value)
	if err != nil {
		return nil, err
	}

	v.ev.top()[e.To.Name] = val
	return val, nil
}

func (v evaluator) VisitVariableReference(e ast.VariableReference[types.ResolvedType]) (Value, error) {
	return v.ev.lookup(e.Identifier)
}

func (v evaluator) VisitBlock(e ast.Block[types.ResolvedType]) (Value, error) {
	if len(e.Body) == 0 {
		return nil, errors.EmptyBlock{Location: e.Pos}
	}

	v.ev.pushScope()
	defer v.ev.popScope()

	var last Value
	for _, statement := range e.Body {
		val, err := v.ev.eval(statement)
		if err != nil {
			return nil, err
		}
		last = val
	}

	return last, nil
}

func (v evaluator) VisitConditional(e ast.Conditional[types.ResolvedType]) (Value, error) {
	cond, err := v.ev.eval(e.Condition)
	if err != nil {
		return nil, err
	}

	b, ok := cond.(Bool)
	if !ok {
		return nil, errors.ConditionNotBool{Got: cond.Type(), Src: ast.String(e.Condition), Location: e.Condition.Span()}
	}

	if b {
		return v.ev.eval(e.Then)
	}
	return v.ev.eval(e.Else)
}
