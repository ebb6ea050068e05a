package parser

import (
	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/types"
)

// Precedence is a rung on the binding ladder, lowest first.
type Precedence int

const (
	Bottom Precedence = iota
	Expr
	AddSub
	MultDiv
	Top
)

func (p Precedence) next() Precedence {
	if p >= Top {
		return Top
	}
	return p + 1
}

func (p Precedence) String() string {
	return [...]string{"Bottom", "Expr", "AddSub", "MultDiv", "Top"}[p]
}

type prefixRule func(p *Parser, tok types.Token) ast.Expression[ast.Unit]

type infixRule struct {
	prec  Precedence
	parse func(p *Parser, tok types.Token, lhs ast.Expression[ast.Unit]) ast.Expression[ast.Unit]
}

var (
	prefixRules map[types.TokenKind]prefixRule
	infixRules  map[types.TokenKind]infixRule
)

// The tables refer to parser methods that read the tables, so they are
// filled in init rather than in their declarations.
func init() {
	prefixRules = map[types.TokenKind]prefixRule{
		types.INT:      (*Parser).parseNumber,
		types.TRUE:     (*Parser).parseBoolean,
		types.FALSE:    (*Parser).parseBoolean,
		types.IDENT:    (*Parser).parseVariable,
		types.LPAREN:   (*Parser).parseGrouping,
		types.LBRACKET: (*Parser).parseBlock,
		types.LET:      (*Parser).parseLet,
		types.IF:       (*Parser).parseIf,
	}

	infixRules = map[types.TokenKind]infixRule{
		types.PLUS:  binary(ast.Add, AddSub),
		types.MINUS: binary(ast.Sub, AddSub),
		types.STAR:  binary(ast.Mul, MultDiv),
		types.SLASH: binary(ast.Div, MultDiv),
	}
}
