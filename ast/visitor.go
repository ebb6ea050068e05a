package ast

import (
	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/types"
)

// Visitor has one method per node kind. Passes that fold a tree of T into an
// R implement it and hand it to Accept.
type Visitor[T, R any] interface {
	VisitNumberLiteral(NumberLiteral[T]) (R, error)
	VisitBooleanLiteral(BooleanLiteral[T]) (R, error)
	VisitBinaryOp(BinaryOp[T]) (R, error)
	VisitLet(Let[T]) (R, error)
	VisitVariableReference(VariableReference[T]) (R, error)
	VisitBlock(Block[T]) (R, error)
	VisitConditional(Conditional[T]) (R, error)
}

// Accept dispatches e to the matching method of v.
func Accept[T, R any](e Expression[T], v Visitor[T, R]) (R, error) {
	switch expr := e.(type) {
	case NumberLiteral[T]:
		return v.VisitNumberLiteral(expr)
	case BooleanLiteral[T]:
		return v.VisitBooleanLiteral(expr)
	case BinaryOp[T]:
		return v.VisitBinaryOp(expr)
	case Let[T]:
		return v.VisitLet(expr)
	case VariableReference[T]:
		return v.VisitVariableReference(expr)
	case Block[T]:
		return v.VisitBlock(expr)
	case Conditional[T]:
		return v.VisitConditional(expr)
	}

	var zero R
	var at types.Span
	if e != nil {
		at = e.Span()
	}
	return zero, errors.Unsupported{What: "expression", Location: at}
}
