package ast

import (
	"testing"

	"github.com/pontaoski/huck/types"
)

func num(n uint64) Expression[Unit] { return NumberLiteral[Unit]{Value: n} }

func TestString(t *testing.T) {
	cases := []struct {
		expr Expression[Unit]
		want string
	}{
		{num(420), "420"},
		{BooleanLiteral[Unit]{Value: true}, "true"},
		{BinaryOp[Unit]{Op: Sub, Left: num(1), Right: BinaryOp[Unit]{Op: Mul, Left: num(2), Right: num(3)}}, "(- 1 (* 2 3))"},
		{Block[Unit]{Body: []Expression[Unit]{
			Let[Unit]{To: Identifier{Name: "x"}, Value: num(42)},
			BinaryOp[Unit]{Op: Add, Left: VariableReference[Unit]{Identifier: Identifier{Name: "x"}}, Right: num(1)},
		}}, "(block (let x 42) (+ x 1))"},
		{Conditional[Unit]{
			Condition: BooleanLiteral[Unit]{Value: false},
			Then:      Block[Unit]{Body: []Expression[Unit]{num(1)}},
			Else:      Block[Unit]{Body: []Expression[Unit]{num(2)}},
		}, "(if false (block 1) (block 2))"},
	}

	for _, c := range cases {
		if got := String(c.expr); got != c.want {
			t.Errorf("got %s, want %s", got, c.want)
		}
	}
}

func TestFormatWithMetadata(t *testing.T) {
	e := BinaryOp[types.ResolvedType]{
		Op:    Div,
		Left:  NumberLiteral[types.ResolvedType]{Value: 6, Meta: types.Int64},
		Right: NumberLiteral[types.ResolvedType]{Value: 3, Meta: types.Int64},
		Meta:  types.Int64,
	}

	got := Format[types.ResolvedType](e, types.ResolvedType.String)
	if want := "(/:int64 6:int64 3:int64)"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

type countingVisitor struct{}

func (countingVisitor) VisitNumberLiteral(NumberLiteral[Unit]) (int, error)   { return 1, nil }
func (countingVisitor) VisitBooleanLiteral(BooleanLiteral[Unit]) (int, error) { return 1, nil }
func (c countingVisitor) VisitBinaryOp(v BinaryOp[Unit]) (int, error) {
	l, _ := Accept[Unit, int](v.Left, c)
	r, _ := Accept[Unit, int](v.Right, c)
	return 1 + l + r, nil
}
func (c countingVisitor) VisitLet(v Let[Unit]) (int, error) {
	n, _ := Accept[Unit, int](v.Value, c)
	return 1 + n, nil
}
func (countingVisitor) VisitVariableReference(VariableReference[Unit]) (int, error) { return 1, nil }
func (c countingVisitor) VisitBlock(v Block[Unit]) (int, error) {
	total := 1
	for _, e := range v.Body {
		n, _ := Accept[Unit, int](e, c)
		total += n
	}
	return total, nil
}
func (c countingVisitor) VisitConditional(v Conditional[Unit]) (int, error) {
	a, _ := Accept[Unit, int](v.Condition, c)
	b, _ := Accept[Unit, int](v.Then, c)
	d, _ := Accept[Unit, int](v.Else, c)
	return 1 + a + b + d, nil
}

func TestAccept(t *testing.T) {
	e := Block[Unit]{Body: []Expression[Unit]{
		Let[Unit]{To: Identifier{Name: "x"}, Value: BinaryOp[Unit]{Op: Add, Left: num(1), Right: num(2)}},
		VariableReference[Unit]{Identifier: Identifier{Name: "x"}},
	}}

	n, err := Accept[Unit, int](e, countingVisitor{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Fatalf("got %d nodes, want 6", n)
	}

	if _, err := Accept[Unit, int](nil, countingVisitor{}); err == nil {
		t.Fatal("expected an error for a nil expression")
	}
}
