package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders e as an S-expression, e.g. (- 1 (* 2 3)).
func String[T any](e Expression[T]) string {
	return Format(e, nil)
}

// Format renders e like String, appending ":"+meta(m) to every node when meta
// is not nil.
func Format[T any](e Expression[T], meta func(T) string) string {
	s, err := Accept[T, string](e, formatter[T]{meta})
	if err != nil {
		return fmt.Sprintf("<%s>", err)
	}
	return s
}

type formatter[T any] struct {
	meta func(T) string
}

func (f formatter[T]) annotate(s string, m T) string {
	if f.meta == nil {
		return s
	}
	return s + ":" + f.meta(m)
}

func (f formatter[T]) sub(e Expression[T]) string {
	s, err := Accept[T, string](e, f)
	if err != nil {
		return fmt.Sprintf("<%s>", err)
	}
	return s
}

func (f formatter[T]) VisitNumberLiteral(v NumberLiteral[T]) (string, error) {
	return f.annotate(strconv.FormatUint(v.Value, 10), v.Meta), nil
}

func (f formatter[T]) VisitBooleanLiteral(v BooleanLiteral[T]) (string, error) {
	return f.annotate(strconv.FormatBool(v.Value), v.Meta), nil
}

func (f formatter[T]) VisitBinaryOp(v BinaryOp[T]) (string, error) {
	head := f.annotate(v.Op.String(), v.Meta)
	return fmt.Sprintf("(%s %s %s)", head, f.sub(v.Left), f.sub(v.Right)), nil
}

func (f formatter[T]) VisitLet(v Let[T]) (string, error) {
	head := f.annotate("let", v.Meta)
	return fmt.Sprintf("(%s %s %s)", head, v.To.Name, f.sub(v.Value)), nil
}

func (f formatter[T]) VisitVariableReference(v VariableReference[T]) (string, error) {
	return f.annotate(v.Name, v.Meta), nil
}

func (f formatter[T]) VisitBlock(v Block[T]) (string, error) {
	parts := []string{f.annotate("block", v.Meta)}
	for _, e := range v.Body {
		parts = append(parts, f.sub(e))
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

func (f formatter[T]) VisitConditional(v Conditional[T]) (string, error) {
	head := f.annotate("if", v.Meta)
	return fmt.Sprintf("(%s %s %s %s)", head, f.sub(v.Condition), f.sub(v.Then), f.sub(v.Else)), nil
}
