// Package typecheck resolves a type for every node of a parsed tree.
package typecheck

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/huck", "typecheck")

// Checked is a tree carrying a resolved type on every node.
type Checked = ast.Expression[types.ResolvedType]

// Checker owns one scope stack. It is not safe for concurrent use; checking
// independent programs in parallel needs one Checker each.
type Checker struct {
	scopes *ScopeStack
}

func NewChecker() *Checker {
	return NewCheckerWithScopes(NewScopeStack())
}

// NewCheckerWithScopes checks against caller-supplied bindings. Top-level
// lets are added to the innermost scope of s.
func NewCheckerWithScopes(s *ScopeStack) *Checker {
	return &Checker{scopes: s}
}

func (c *Checker) Scopes() *ScopeStack {
	return c.scopes
}

// Check builds a new, fully typed tree from e. The input is never modified.
// On failure no tree is returned and the scope stack holds exactly the
// bindings it had on entry.
func (c *Checker) Check(e ast.Expression[ast.Unit]) (Checked, error) {
	snap := c.scopes.Snapshot()
	checked, err := c.check(e)
	if err != nil {
		c.scopes.Restore(snap)
		return nil, tracerr.Wrap(err)
	}

	if plog.LevelAt(capnslog.DEBUG) {
		plog.Debugf("checked %s", ast.Format(checked, types.ResolvedType.String))
	}
	return checked, nil
}

func (c *Checker) check(e ast.Expression[ast.Unit]) (Checked, error) {
	return ast.Accept[ast.Unit, Checked](e, checker{c})
}

type checker struct {
	c *Checker
}

func (v checker) VisitNumberLiteral(e ast.NumberLiteral[ast.Unit]) (Checked, error) {
	return ast.NumberLiteral[types.ResolvedType]{Value: e.Value, Meta: types.Int64, Pos: e.Pos}, nil
}

func (v checker) VisitBooleanLiteral(e ast.BooleanLiteral[ast.Unit]) (Checked, error) {
	return ast.BooleanLiteral[types.ResolvedType]{Value: e.Value, Meta: types.Bool, Pos: e.Pos}, nil
}

func (v checker) VisitBinaryOp(e ast.BinaryOp[ast.Unit]) (Checked, error) {
	lhs, err := v.c.check(e.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := v.c.check(e.Right)
	if err != nil {
		return nil, err
	}

	if lt, rt := lhs.Metadata(), rhs.Metadata(); lt != rt {
		return nil, errors.TypeMismatch{
			Context:  "operands of " + e.Op.String(),
			Left:     lt,
			Right:    rt,
			LeftSrc:  ast.String(e.Left),
			RightSrc: ast.String(e.Right),
			Location: e.Pos,
		}
	}

	return ast.BinaryOp[types.ResolvedType]{
		Op:    e.Op,
		Left:  lhs,
		Right: rhs,
		Meta:  lhs.Metadata(),
		Pos:   e.Pos,
	}, nil
}

func (v checker) VisitLet(e ast.Let[ast.Unit]) (Checked, error) {
	// the name is not in scope inside its own initializer
	value, err := v.c.check(e.Value)
	if err != nil {
		return nil, err
	}

	v.c.scopes.Define(e.To.Name, value.Metadata())
	plog.Tracef("bound %s: %s at depth %d", e.To.Name, value.Metadata(), v.c.scopes.Depth())

	return ast.Let[types.ResolvedType]{
		To:    e.To,
		Value: value,
		Meta:  value.Metadata(),
		Pos:   e.Pos,
	}, nil
}

func (v checker) VisitVariableReference(e ast.VariableReference[ast.Unit]) (Checked, error) {
	t, ok := v.c.scopes.Lookup(e.Name)
	if !ok {
		return nil, errors.UnboundIdentifier{Name: e.Name, Location: e.Pos}
	}

	return ast.VariableReference[types.ResolvedType]{Identifier: e.Identifier, Meta: t}, nil
}

func (v checker) VisitBlock(e ast.Block[ast.Unit]) (Checked, error) {
	if len(e.Body) == 0 {
		return nil, errors.EmptyBlock{Location: e.Pos}
	}

	v.c.scopes.pushScope()
	defer v.c.scopes.popScope()

	body := make([]Checked, 0, len(e.Body))
	for _, expr := range e.Body {
		checked, err := v.c.check(expr)
		if err != nil {
			return nil, err
		}
		body = append(body, checked)
	}

	return ast.Block[types.ResolvedType]{
		Body: body,
		Meta: body[len(body)-1].Metadata(),
		Pos:  e.Pos,
	}, nil
}

func (v checker) VisitConditional(e ast.Conditional[ast.Unit]) (Checked, error) {
	cond, err := v.c.check(e.Condition)
	if err != nil {
		return nil, err
	}
	if cond.Metadata() != types.Bool {
		return nil, errors.ConditionNotBool{
			Got:      cond.Metadata(),
			Src:      ast.String(e.Condition),
			Location: e.Condition.Span(),
		}
	}

	then, err := v.c.check(e.Then)
	if err != nil {
		return nil, err
	}
	elseExpr, err := v.c.check(e.Else)
	if err != nil {
		return nil, err
	}

	if tt, et := then.Metadata(), elseExpr.Metadata(); tt != et {
		return nil, errors.TypeMismatch{
			Context:  "branches of if",
			Left:     tt,
			Right:    et,
			LeftSrc:  ast.String(e.Then),
			RightSrc: ast.String(e.Else),
			Location: e.Pos,
		}
	}

	return ast.Conditional[types.ResolvedType]{
		Condition: cond,
		Then:      then,
		Else:      elseExpr,
		Meta:      then.Metadata(),
		Pos:       e.Pos,
	}, nil
}
