package codegen

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/frontend"
	"github.com/pontaoski/huck/types"
)

func generate(t *testing.T, src string, s Settings) string {
	t.Helper()

	checked, err := frontend.CheckString(src)
	if err != nil {
		t.Fatalf("checking %q: %s", src, err)
	}
	m, err := Generate(checked, s)
	if err != nil {
		t.Fatalf("generating %q: %s", src, err)
	}
	return m.String()
}

func mustContain(t *testing.T, ir string, parts ...string) {
	t.Helper()

	for _, part := range parts {
		if !strings.Contains(ir, part) {
			t.Errorf("expected IR to contain %q:\n%s", part, ir)
		}
	}
}

func TestGenerateArithmetic(t *testing.T) {
	ir := generate(t, "{let x = 42; x * 2 - 4 / x + 1}", Settings{})
	mustContain(t, ir,
		"define i64 @huck_eval()",
		"mul i64 42, 2",
		"udiv i64 4, 42",
		"sub i64",
		"add i64",
		"define i32 @main()",
		"trunc i64",
		"@__huck_types",
	)
}

func TestGenerateConditional(t *testing.T) {
	ir := generate(t, "if true { 1 } else { if false { 2 } else { 3 } }", Settings{})
	mustContain(t, ir,
		"br i1",
		"then.0:",
		"else.0:",
		"ifcont.0:",
		"then.1:",
		"phi i64",
	)
}

func TestGenerateBool(t *testing.T) {
	ir := generate(t, "{let b = false; b}", Settings{})
	mustContain(t, ir, "define i1 @huck_eval()", "ret i1 false", "zext i1")
}

func TestGenerateLibrary(t *testing.T) {
	ir := generate(t, "7", Settings{IsLibrary: true, PackageName: "seven"})
	if strings.Contains(ir, "@main") {
		t.Fatalf("libraries must not define main:\n%s", ir)
	}
	// quotes are hex-escaped inside LLVM character arrays
	mustContain(t, ir, `\22package\22:\22seven\22`, `\22result\22:\22int64\22`)
}

func TestGenerateDivisionByConstantZero(t *testing.T) {
	checked, err := frontend.CheckString("5 / 0")
	if err != nil {
		t.Fatal(err)
	}

	m, err := Generate(checked, Settings{})
	var e errors.DivisionByZero
	if !goerrors.As(tracerr.Unwrap(err), &e) {
		t.Fatalf("expected DivisionByZero, got %v", err)
	}
	if m != nil {
		t.Fatal("a failed generation must not return a module")
	}
}

func TestGenerateRejectsUnit(t *testing.T) {
	_, err := Generate(ast.Block[types.ResolvedType]{Meta: types.Unit}, Settings{})
	var e errors.Unsupported
	if !goerrors.As(tracerr.Unwrap(err), &e) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
}

func TestGenerateRejectsBoolArithmetic(t *testing.T) {
	checked, err := frontend.CheckString("if true { true + false } else { false }")
	if err != nil {
		t.Fatal(err)
	}

	m, err := Generate(checked, Settings{})
	var e errors.Unsupported
	if !goerrors.As(tracerr.Unwrap(err), &e) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
	if m != nil {
		t.Fatal("a failed generation must not return a module")
	}
}

func TestParseTypeInfo(t *testing.T) {
	info, err := ParseTypeInfo(`{"package":"p","result":"bool"}`)
	if err != nil {
		t.Fatal(err)
	}
	if info.Package != "p" || info.Result != types.Bool {
		t.Fatalf("got %+v", info)
	}
}
