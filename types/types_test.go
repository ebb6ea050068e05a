package types

import "testing"

func TestSpanString(t *testing.T) {
	s := Span{
		From: Position{Line: 1, Column: 3, Filename: "main.huck"},
		To:   Position{Line: 2, Column: 5, Filename: "main.huck"},
	}
	if got, want := s.String(), "main.huck:1:3-2:5"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	p := Position{Line: 4, Column: 1}
	if got, want := p.String(), "<unknown>:4:1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: PLUS}, "PLUS"},
		{Token{Kind: INT, Text: "42"}, "INT(42)"},
		{Token{Kind: IDENT, Text: "x"}, "IDENT(x)"},
		{Token{Kind: TokenKind(999)}, "TokenKind(999)"},
	}
	for _, c := range cases {
		if got := c.tok.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestResolvedTypeUnmarshalText(t *testing.T) {
	var rt ResolvedType
	if err := rt.UnmarshalText([]byte("int64")); err != nil || rt != Int64 {
		t.Fatalf("got %s, %v", rt, err)
	}
	if err := rt.UnmarshalText([]byte("float64")); err == nil {
		t.Fatal("expected an error for an unknown type name")
	}
}
