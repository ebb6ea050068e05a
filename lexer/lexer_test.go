package lexer

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/types"
)

func lexString(t *testing.T, s string) []types.Token {
	t.Helper()

	l := NewLexer(strings.NewReader(s), "stdin")
	tokens, err := l.All()
	if err != nil {
		t.Fatalf("lexing %q: %s", s, err)
	}
	return tokens
}

func kindsOf(tokens []types.Token) (ret []types.TokenKind) {
	for _, tok := range tokens {
		ret = append(ret, tok.Kind)
	}
	return
}

func TestLexer(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []types.Token
	}{
		{"whitespace", " \t      \n\n  \n", nil},
		{"number", "1124\n", []types.Token{{Kind: types.INT, Text: "1124"}}},
		{"operators", "* - + / ( )\n", []types.Token{
			{Kind: types.STAR}, {Kind: types.MINUS}, {Kind: types.PLUS},
			{Kind: types.SLASH}, {Kind: types.LPAREN}, {Kind: types.RPAREN},
		}},
		{"keywords", "let if else true false", []types.Token{
			{Kind: types.LET}, {Kind: types.IF}, {Kind: types.ELSE},
			{Kind: types.TRUE}, {Kind: types.FALSE},
		}},
		{"identifiers", "x _tmp let2 iffy", []types.Token{
			{Kind: types.IDENT, Text: "x"}, {Kind: types.IDENT, Text: "_tmp"},
			{Kind: types.IDENT, Text: "let2"}, {Kind: types.IDENT, Text: "iffy"},
		}},
		{"block", "{let x = 42; x+1}", []types.Token{
			{Kind: types.LBRACKET}, {Kind: types.LET}, {Kind: types.IDENT, Text: "x"},
			{Kind: types.EQUALS}, {Kind: types.INT, Text: "42"}, {Kind: types.EOS},
			{Kind: types.IDENT, Text: "x"}, {Kind: types.PLUS}, {Kind: types.INT, Text: "1"},
			{Kind: types.RBRACKET},
		}},
		{"digits then letters", "12ab", []types.Token{
			{Kind: types.INT, Text: "12"}, {Kind: types.IDENT, Text: "ab"},
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := lexString(t, c.in)
			if len(got) != len(c.want) {
				t.Fatalf("got %s, want %s", repr.String(got), repr.String(c.want))
			}
			for i := range got {
				if got[i].Kind != c.want[i].Kind || got[i].Text != c.want[i].Text {
					t.Fatalf("token %d: got %s, want %s", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestLexerLocations(t *testing.T) {
	tokens := lexString(t, "let abc =\n  420")
	want := []types.Span{
		{From: types.Position{Line: 1, Column: 1}, To: types.Position{Line: 1, Column: 3}},
		{From: types.Position{Line: 1, Column: 5}, To: types.Position{Line: 1, Column: 7}},
		{From: types.Position{Line: 1, Column: 9}, To: types.Position{Line: 1, Column: 9}},
		{From: types.Position{Line: 2, Column: 3}, To: types.Position{Line: 2, Column: 5}},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %s", repr.String(tokens))
	}
	for i, tok := range tokens {
		from, to := tok.Location.From, tok.Location.To
		if from.Line != want[i].From.Line || from.Column != want[i].From.Column ||
			to.Line != want[i].To.Line || to.Column != want[i].To.Column {
			t.Errorf("token %s: got %s, want %s", tok, tok.Location, want[i])
		}
		if from.Filename != "stdin" {
			t.Errorf("token %s: lost filename", tok)
		}
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	l := NewLexer(strings.NewReader("1 + $"), "stdin")
	tokens, err := l.All()

	var illegal errors.IllegalCharacter
	if !goerrors.As(err, &illegal) {
		t.Fatalf("expected IllegalCharacter, got %v", err)
	}
	if illegal.Char != '$' || illegal.Location.From.Column != 5 {
		t.Fatalf("got %s", repr.String(illegal))
	}
	if got := kindsOf(tokens); len(got) != 2 {
		t.Fatalf("tokens before the failure were lost: %v", got)
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := NewLexer(strings.NewReader("7"), "stdin")
	if tok, err := l.Lex(); err != nil || tok.Kind != types.INT {
		t.Fatalf("got %s, %v", tok, err)
	}
	for i := 0; i < 3; i++ {
		if tok, err := l.Lex(); err != nil || tok.Kind != types.EOF {
			t.Fatalf("got %s, %v", tok, err)
		}
	}
}

func TestLexerPeek(t *testing.T) {
	l := NewLexer(strings.NewReader("( x"), "stdin")

	if !l.PeekIs(types.LPAREN) {
		t.Fatal("expected LPAREN to be peeked")
	}
	if !l.PeekIs(types.RPAREN, types.LPAREN) {
		t.Fatal("peeking twice must not advance")
	}
	if tok, _ := l.Lex(); tok.Kind != types.LPAREN {
		t.Fatalf("got %s", tok)
	}
	if tok, _ := l.Peek(); tok.Kind != types.IDENT || tok.Text != "x" {
		t.Fatalf("got %s", tok)
	}
}

func TestLexerPeekedFailure(t *testing.T) {
	l := NewLexer(strings.NewReader("#"), "stdin")
	if l.PeekIs(types.EOF) {
		t.Fatal("a failed peek must not match")
	}
	if _, err := l.Lex(); err == nil {
		t.Fatal("the peeked failure must be returned by Lex")
	}
}
