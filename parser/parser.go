package parser

import (
	"runtime"
	"strconv"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/lexer"
	"github.com/pontaoski/huck/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/huck", "parser")

type Parser struct {
	l *lexer.Lexer
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l}
}

// Parse reads exactly one expression followed by the end of input. The first
// error aborts the whole parse; it is returned wrapped with a stack trace.
func (p *Parser) Parse() (expr ast.Expression[ast.Unit], err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			expr = nil
			err = tracerr.Wrap(rerr)
		}
	}()

	expr = p.parsePrec(Bottom)
	if tok := p.next(); tok.Kind != types.EOF {
		panic(errors.NoInfixRule{Got: tok, Location: tok.Location})
	}

	if plog.LevelAt(capnslog.DEBUG) {
		plog.Debugf("parsed %s", ast.String(expr))
	}
	return expr, nil
}

func (p *Parser) next() types.Token {
	tok, err := p.l.Lex()
	if err != nil {
		panic(err)
	}
	return tok
}

// expect consumes the next token, which must be one of k.
func (p *Parser) expect(k ...types.TokenKind) types.Token {
	tok := p.next()
	for _, kind := range k {
		if tok.Kind == kind {
			return tok
		}
	}

	if tok.Kind == types.EOF {
		panic(errors.UnexpectedEOF{Expected: k, Location: tok.Location})
	}
	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

// parsePrec parses an expression whose infix operators all bind at least as
// tightly as min.
func (p *Parser) parsePrec(min Precedence) ast.Expression[ast.Unit] {
	tok := p.next()
	if tok.Kind == types.EOF {
		panic(errors.UnexpectedEOF{Location: tok.Location})
	}

	prefix, ok := prefixRules[tok.Kind]
	if !ok {
		panic(errors.NoPrefixRule{Got: tok, Location: tok.Location})
	}
	plog.Tracef("prefix %s at %s", tok, min)

	lhs := prefix(p, tok)

	for {
		next, err := p.l.Peek()
		if err != nil {
			// reported by whoever consumes the token
			break
		}

		rule, ok := infixRules[next.Kind]
		if !ok || rule.prec < min {
			break
		}

		p.next()
		plog.Tracef("infix %s at %s", next, min)
		lhs = rule.parse(p, next, lhs)
	}

	return lhs
}

func (p *Parser) parseNumber(tok types.Token) ast.Expression[ast.Unit] {
	n, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		panic(errors.InvalidNumber{Text: tok.Text, Err: err, Location: tok.Location})
	}
	return ast.NumberLiteral[ast.Unit]{Value: n, Pos: tok.Location}
}

func (p *Parser) parseBoolean(tok types.Token) ast.Expression[ast.Unit] {
	return ast.BooleanLiteral[ast.Unit]{Value: tok.Kind == types.TRUE, Pos: tok.Location}
}

func (p *Parser) parseVariable(tok types.Token) ast.Expression[ast.Unit] {
	return ast.VariableReference[ast.Unit]{Identifier: ast.Identifier{Name: tok.Text, Pos: tok.Location}}
}

func (p *Parser) parseGrouping(tok types.Token) ast.Expression[ast.Unit] {
	inner := p.parsePrec(Expr)
	p.expect(types.RPAREN)
	return inner
}

// parseBlock should be called when the parser is past the opening brace.
func (p *Parser) parseBlock(open types.Token) ast.Expression[ast.Unit] {
	if p.l.PeekIs(types.RBRACKET) {
		end := p.next()
		panic(errors.EmptyBlock{Location: open.Location.Join(end.Location)})
	}

	body := []ast.Expression[ast.Unit]{p.parsePrec(Expr)}
	for p.l.PeekIs(types.EOS) {
		p.next()
		body = append(body, p.parsePrec(Expr))
	}
	end := p.expect(types.RBRACKET)

	return ast.Block[ast.Unit]{Body: body, Pos: open.Location.Join(end.Location)}
}

func (p *Parser) parseLet(tok types.Token) ast.Expression[ast.Unit] {
	name := p.expect(types.IDENT)
	p.expect(types.EQUALS)
	value := p.parsePrec(Expr)

	return ast.Let[ast.Unit]{
		To:    ast.Identifier{Name: name.Text, Pos: name.Location},
		Value: value,
		Pos:   tok.Location.Join(value.Span()),
	}
}

func (p *Parser) parseIf(tok types.Token) ast.Expression[ast.Unit] {
	cond := p.parsePrec(Expr)
	then := p.parseBlock(p.expect(types.LBRACKET))
	p.expect(types.ELSE)
	elseExpr := p.parseBlock(p.expect(types.LBRACKET))

	return ast.Conditional[ast.Unit]{
		Condition: cond,
		Then:      then,
		Else:      elseExpr,
		Pos:       tok.Location.Join(elseExpr.Span()),
	}
}

func binary(op ast.Operator, prec Precedence) infixRule {
	return infixRule{
		prec: prec,
		parse: func(p *Parser, _ types.Token, lhs ast.Expression[ast.Unit]) ast.Expression[ast.Unit] {
			rhs := p.parsePrec(prec.next())
			return ast.BinaryOp[ast.Unit]{
				Op:    op,
				Left:  lhs,
				Right: rhs,
				Pos:   lhs.Span().Join(rhs.Span()),
			}
		},
	}
}
