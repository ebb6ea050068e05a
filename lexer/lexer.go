package lexer

import (
	"bufio"
	"io"
	"unicode"

	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/types"
)

// Lexer produces tokens on demand from a reader. It keeps no history besides
// a single peeked token, so a fresh scan needs a fresh Lexer.
type Lexer struct {
	pos       types.Position
	reader    *bufio.Reader
	peeked    *types.Token
	peekedErr error
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

var punctuation = map[rune]types.TokenKind{
	'+': types.PLUS,
	'-': types.MINUS,
	'*': types.STAR,
	'/': types.SLASH,
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACKET,
	'}': types.RBRACKET,
	'=': types.EQUALS,
	';': types.EOS,
}

var keywords = map[string]types.TokenKind{
	"let":   types.LET,
	"true":  types.TRUE,
	"false": types.FALSE,
	"if":    types.IF,
	"else":  types.ELSE,
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) kinded(t types.TokenKind) types.Token {
	return types.Token{
		Location: types.SingleCharSpan(l.pos),
		Kind:     t,
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// lexWhile extends lit with every following rune matching pred.
func (l *Lexer) lexWhile(lit string, pred func(rune) bool) (string, error) {
	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return lit, nil
			}
			return lit, err
		}

		if !pred(r) {
			return lit, l.reader.UnreadRune()
		}

		l.pos.Column++
		lit += string(r)
	}
}

func (l *Lexer) Peek() (types.Token, error) {
	if l.peeked != nil {
		return *l.peeked, l.peekedErr
	}

	tok, err := l.lex()
	l.peeked = &tok
	l.peekedErr = err

	return tok, err
}

// PeekIs reports whether the next token is one of k. A failed peek reports
// false; the failure is returned by the following Lex.
func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token, err := l.Peek()
	if err != nil {
		return false
	}
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

// Lex returns the next token. At the end of input it returns an EOF token,
// and keeps doing so on every later call.
func (l *Lexer) Lex() (types.Token, error) {
	if l.peeked != nil {
		tok, err := *l.peeked, l.peekedErr
		l.peeked, l.peekedErr = nil, nil
		return tok, err
	}

	return l.lex()
}

func (l *Lexer) lex() (types.Token, error) {
	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return l.kinded(types.EOF), nil
			}
			return types.Token{}, err
		}

		l.pos.Column++

		if kind, ok := punctuation[r]; ok {
			return l.kinded(kind), nil
		}

		switch {
		case r == '\n':
			l.newline()
			continue
		case isSpace(r):
			continue
		case isDigit(r):
			from := l.pos
			lit, err := l.lexWhile(string(r), isDigit)
			if err != nil {
				return types.Token{}, err
			}

			return types.Token{Kind: types.INT, Text: lit, Location: types.Span{From: from, To: l.pos}}, nil
		case firstChar(r):
			from := l.pos
			lit, err := l.lexWhile(string(r), otherChar)
			if err != nil {
				return types.Token{}, err
			}

			span := types.Span{From: from, To: l.pos}
			if kind, ok := keywords[lit]; ok {
				return types.Token{Kind: kind, Location: span}, nil
			}

			return types.Token{Kind: types.IDENT, Text: lit, Location: span}, nil
		}

		return types.Token{}, errors.IllegalCharacter{
			Char:     r,
			Location: types.SingleCharSpan(l.pos),
		}
	}
}

// All lexes until EOF, leaving the EOF token out of the result.
func (l *Lexer) All() (ret []types.Token, err error) {
	t, err := l.Lex()
	for err == nil && t.Kind != types.EOF {
		ret = append(ret, t)
		t, err = l.Lex()
	}
	return
}
