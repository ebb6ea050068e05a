package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/huck/types"
)

// IllegalCharacter is reported by the lexer for a character that cannot start
// any token. It is distinct from running out of input, which yields EOF.
type IllegalCharacter struct {
	Char     rune
	Location types.Span
}

func (e IllegalCharacter) Error() string {
	return fmt.Sprintf("illegal character %q. %s", e.Char, e.Location)
}

// UnexpectedEOF is the parser's Eof failure: input ran out where a token was
// required.
type UnexpectedEOF struct {
	Expected []types.TokenKind
	Location types.Span
}

func (e UnexpectedEOF) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected end of input. %s", e.Location)
	}
	return fmt.Sprintf("unexpected end of input, expected one of [%s]. %s", kindList(e.Expected), e.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of [%s]. %s", e.Got, kindList(e.Expected), e.Location)
}

type NoPrefixRule struct {
	Got      types.Token
	Location types.Span
}

func (e NoPrefixRule) Error() string {
	return fmt.Sprintf("no prefix rule for token %s. %s", e.Got, e.Location)
}

type NoInfixRule struct {
	Got      types.Token
	Location types.Span
}

func (e NoInfixRule) Error() string {
	return fmt.Sprintf("no infix rule for token %s. %s", e.Got, e.Location)
}

type EmptyBlock struct {
	Location types.Span
}

func (e EmptyBlock) Error() string {
	return fmt.Sprintf("blocks must contain at least one expression. %s", e.Location)
}

type InvalidNumber struct {
	Text     string
	Err      error
	Location types.Span
}

func (e InvalidNumber) Error() string {
	return fmt.Sprintf("invalid number %s: %s. %s", e.Text, e.Err, e.Location)
}

func (e InvalidNumber) Unwrap() error {
	return e.Err
}

// TypeMismatch is reported when two types that must agree do not. Context
// names what was compared, e.g. "operands of +" or "branches of if".
type TypeMismatch struct {
	Context  string
	Left     types.ResolvedType
	Right    types.ResolvedType
	LeftSrc  string
	RightSrc string
	Location types.Span
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("cannot typecheck %s: %s has type %s but %s has type %s. %s",
		e.Context, e.LeftSrc, e.Left, e.RightSrc, e.Right, e.Location)
}

type ConditionNotBool struct {
	Got      types.ResolvedType
	Src      string
	Location types.Span
}

func (e ConditionNotBool) Error() string {
	return fmt.Sprintf("condition %s has type %s, not bool. %s", e.Src, e.Got, e.Location)
}

type UnboundIdentifier struct {
	Name     string
	Location types.Span
}

func (e UnboundIdentifier) Error() string {
	return fmt.Sprintf("unbound identifier %s. %s", e.Name, e.Location)
}

type DivisionByZero struct {
	Location types.Span
}

func (e DivisionByZero) Error() string {
	return fmt.Sprintf("division by zero. %s", e.Location)
}

// Unsupported is raised by later stages for a node they were not given a
// rule for.
type Unsupported struct {
	What     string
	Location types.Span
}

func (e Unsupported) Error() string {
	return fmt.Sprintf("unsupported %s. %s", e.What, e.Location)
}

func kindList(k []types.TokenKind) string {
	var s []string
	for _, kind := range k {
		s = append(s, kind.String())
	}
	return strings.Join(s, ", ")
}
