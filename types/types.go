package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota

	PLUS
	MINUS
	STAR
	SLASH
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	EQUALS
	EOS

	LET
	IF
	ELSE
	TRUE
	FALSE

	INT
	IDENT
)

var tokenKindNames = map[TokenKind]string{
	EOF:      "EOF",
	PLUS:     "PLUS",
	MINUS:    "MINUS",
	STAR:     "STAR",
	SLASH:    "SLASH",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
	LBRACKET: "LBRACKET",
	RBRACKET: "RBRACKET",
	EQUALS:   "EQUALS",
	EOS:      "EOS",
	LET:      "LET",
	IF:       "IF",
	ELSE:     "ELSE",
	TRUE:     "TRUE",
	FALSE:    "FALSE",
	INT:      "INT",
	IDENT:    "IDENT",
}

func (t TokenKind) String() string {
	if name, ok := tokenKindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Join returns the span covering both s and o, assuming s starts first.
func (s Span) Join(o Span) Span {
	return Span{From: s.From, To: o.To}
}

// Token is a lexical unit. Text is only meaningful for INT and IDENT.
type Token struct {
	Kind     TokenKind
	Text     string
	Location Span
}

func (t Token) String() string {
	switch t.Kind {
	case INT, IDENT:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
	return t.Kind.String()
}
