// Package frontend chains the lexer, parser and checker.
package frontend

import (
	"io"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/lexer"
	"github.com/pontaoski/huck/parser"
	"github.com/pontaoski/huck/typecheck"
	"github.com/pontaoski/huck/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/huck", "frontend")

func Tokens(r io.Reader, filename string) ([]types.Token, error) {
	toks, err := lexer.NewLexer(r, filename).All()
	if err != nil {
		return toks, tracerr.Wrap(err)
	}
	return toks, nil
}

func Parse(r io.Reader, filename string) (ast.Expression[ast.Unit], error) {
	plog.Debugf("parsing %s", filename)
	return parser.NewParser(lexer.NewLexer(r, filename)).Parse()
}

// Check parses and checks r with a fresh checker.
func Check(r io.Reader, filename string) (typecheck.Checked, error) {
	return CheckWith(typecheck.NewChecker(), r, filename)
}

// CheckWith parses r and checks it against the bindings already held by c.
func CheckWith(c *typecheck.Checker, r io.Reader, filename string) (typecheck.Checked, error) {
	expr, err := Parse(r, filename)
	if err != nil {
		return nil, err
	}

	plog.Debugf("checking %s", filename)
	return c.Check(expr)
}

func CheckString(src string) (typecheck.Checked, error) {
	return Check(strings.NewReader(src), "<string>")
}
