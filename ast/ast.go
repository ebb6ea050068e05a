// Package ast holds the expression tree shared by every stage.
//
// Nodes are parameterized over a metadata type T attached to each node. The
// parser produces Expression[Unit]; the checker rebuilds the same shape as
// Expression[types.ResolvedType].
package ast

import "github.com/pontaoski/huck/types"

// Unit is the metadata of a tree that has not been checked yet.
type Unit struct{}

type Expression[T any] interface {
	Metadata() T
	Span() types.Span
	is_Expression()
}

type Identifier struct {
	Name string
	Pos  types.Span
}

type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}

type NumberLiteral[T any] struct {
	Value uint64
	Meta  T
	Pos   types.Span
}

func (v NumberLiteral[T]) Metadata() T      { return v.Meta }
func (v NumberLiteral[T]) Span() types.Span { return v.Pos }
func (v NumberLiteral[T]) is_Expression()   {}

type BooleanLiteral[T any] struct {
	Value bool
	Meta  T
	Pos   types.Span
}

func (v BooleanLiteral[T]) Metadata() T      { return v.Meta }
func (v BooleanLiteral[T]) Span() types.Span { return v.Pos }
func (v BooleanLiteral[T]) is_Expression()   {}

type BinaryOp[T any] struct {
	Op    Operator
	Left  Expression[T]
	Right Expression[T]
	Meta  T
	Pos   types.Span
}

func (v BinaryOp[T]) Metadata() T      { return v.Meta }
func (v BinaryOp[T]) Span() types.Span { return v.Pos }
func (v BinaryOp[T]) is_Expression()   {}

// Let binds To for the rest of the enclosing block. Its own value is the
// value of the initializer.
type Let[T any] struct {
	To    Identifier
	Value Expression[T]
	Meta  T
	Pos   types.Span
}

func (v Let[T]) Metadata() T      { return v.Meta }
func (v Let[T]) Span() types.Span { return v.Pos }
func (v Let[T]) is_Expression()   {}

type VariableReference[T any] struct {
	Identifier
	Meta T
}

func (v VariableReference[T]) Metadata() T      { return v.Meta }
func (v VariableReference[T]) Span() types.Span { return v.Pos }
func (v VariableReference[T]) is_Expression()   {}

// Block evaluates Body in order; its value is the value of the last element.
type Block[T any] struct {
	Body []Expression[T]
	Meta T
	Pos  types.Span
}

func (v Block[T]) Metadata() T      { return v.Meta }
func (v Block[T]) Span() types.Span { return v.Pos }
func (v Block[T]) is_Expression()   {}

type Conditional[T any] struct {
	Condition Expression[T]
	Then      Expression[T]
	Else      Expression[T]
	Meta      T
	Pos       types.Span
}

func (v Conditional[T]) Metadata() T      { return v.Meta }
func (v Conditional[T]) Span() types.Span { return v.Pos }
func (v Conditional[T]) is_Expression()   {}
