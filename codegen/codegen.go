// Package codegen lowers a checked tree to LLVM IR.
package codegen

import (
	"fmt"
	"runtime"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/errors"
	"github.com/pontaoski/huck/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/huck", "codegen")

type Checked = ast.Expression[types.ResolvedType]

const (
	// EvalFunc computes the program's value.
	EvalFunc = "huck_eval"
	// TypeInfoSymbol holds the JSON type information of a built module.
	TypeInfoSymbol = "__huck_types"
)

type Settings struct {
	// IsLibrary leaves out the main entry point.
	IsLibrary   bool
	PackageName string
}

func llvmType(t types.ResolvedType) *irtypes.IntType {
	switch t {
	case types.Int64:
		return irtypes.I64
	case types.Bool:
		return irtypes.I1
	}

	panic(errors.Unsupported{What: "type " + t.String()})
}

type ctx struct {
	names  []map[string]value.Value
	fn     *ir.Func
	block  *ir.Block
	blocks int
}

func (c *ctx) pushScope() {
	c.names = append(c.names, make(map[string]value.Value))
}

func (c *ctx) popScope() {
	c.names = c.names[:len(c.names)-1]
}

func (c *ctx) top() map[string]value.Value {
	return c.names[len(c.names)-1]
}

func (c *ctx) lookup(id ast.Identifier) value.Value {
	for i := len(c.names) - 1; i >= 0; i-- {
		val, ok := c.names[i][id.Name]
		if ok {
			return val
		}
	}

	panic(errors.UnboundIdentifier{Name: id.Name, Location: id.Pos})
}

func (c *ctx) newBlock(name string) *ir.Block {
	return c.fn.NewBlock(fmt.Sprintf("%s.%d", name, c.blocks))
}

// Generate builds a module whose EvalFunc returns the value of e. Unless the
// settings ask for a library, main returns that value as the exit code.
func Generate(e Checked, s Settings) (m *ir.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			m = nil
			err = tracerr.Wrap(rerr)
		}
	}()

	m = ir.NewModule()
	result := e.Metadata()

	fn := m.NewFunc(EvalFunc, llvmType(result))
	c := &ctx{
		names: []map[string]value.Value{{}},
		fn:    fn,
		block: fn.NewBlock("entry"),
	}

	ret := c.codegenExpression(e)
	c.block.NewRet(ret)

	registerTypeInfoWithModule(TypeInfo{Package: s.PackageName, Result: result}, m)

	if !s.IsLibrary {
		opening := m.NewFunc("main", irtypes.I32)
		bloc := opening.NewBlock("entry")

		val := bloc.NewCall(fn)
		var code value.Value
		if result == types.Bool {
			code = bloc.NewZExt(val, irtypes.I32)
		} else {
			code = bloc.NewTrunc(val, irtypes.I32)
		}
		bloc.NewRet(code)
	}

	plog.Debugf("generated %d blocks for %s", len(fn.Blocks), EvalFunc)
	return m, nil
}

func (c *ctx) codegenExpression(e Checked) value.Value {
	v, err := ast.Accept[types.ResolvedType, value.Value](e, emitter{c})
	if err != nil {
		panic(err)
	}
	return v
}

type emitter struct {
	c *ctx
}

func (v emitter) VisitNumberLiteral(e ast.NumberLiteral[types.ResolvedType]) (value.Value, error) {
	return constant.NewInt(irtypes.I64, int64(e.Value)), nil
}

func (v emitter) VisitBooleanLiteral(e ast.BooleanLiteral[types.ResolvedType]) (value.Value, error) {
	return constant.NewBool(e.Value), nil
}

func (v emitter) VisitBinaryOp(e ast.BinaryOp[types.ResolvedType]) (value.Value, error) {
	if e.Meta != types.Int64 {
		return nil, errors.Unsupported{What: e.Op.String() + " on " + e.Meta.String(), Location: e.Pos}
	}

	c := v.c
	lhs := c.codegenExpression(e.Left)
	rhs := c.codegenExpression(e.Right)

	switch e.Op {
	case ast.Add:
		return c.block.NewAdd(lhs, rhs), nil
	case ast.Sub:
		return c.block.NewSub(lhs, rhs), nil
	case ast.Mul:
		return c.block.NewMul(lhs, rhs), nil
	case ast.Div:
		if k, ok := rhs.(*constant.Int); ok && k.X.Sign() == 0 {
			return nil, errors.DivisionByZero{Location: e.Pos}
		}
		return c.block.NewUDiv(lhs, rhs), nil
	}

	return nil, errors.Unsupported{What: "operator " + e.Op.String(), Location: e.Pos}
}

func (v emitter) VisitLet(e ast.Let[types.ResolvedType]) (value.Value, error) {
	val := v.c.codegenExpression(e.Value)
	v.c.top()[e.To.Name] = val

	return val, nil
}

func (v emitter) VisitVariableReference(e ast.VariableReference[types.ResolvedType]) (value.Value, error) {
	return v.c.lookup(e.Identifier), nil
}

func (v emitter) VisitBlock(e ast.Block[types.ResolvedType]) (value.Value, error) {
	if len(e.Body) == 0 {
		return nil, errors.EmptyBlock{Location: e.Pos}
	}

	var last value.Value

	v.c.pushScope()
	defer v.c.popScope()
	for _, statement := range e.Body {
		last = v.c.codegenExpression(statement)
	}

	return last, nil
}

func (v emitter) VisitConditional(e ast.Conditional[types.ResolvedType]) (value.Value, error) {
	c := v.c
	condVal := c.codegenExpression(e.Condition)

	thenBloc := c.newBlock("then")
	elseBloc := c.newBlock("else")
	mergeBloc := c.newBlock("ifcont")
	c.blocks++

	condCmp := c.block.NewICmp(enum.IPredNE, condVal, constant.False)
	c.block.NewCondBr(condCmp, thenBloc, elseBloc)

	// each arm may open blocks of its own, so the phi takes whichever block
	// the arm finished in
	c.block = thenBloc
	thenValue := c.codegenExpression(e.Then)
	thenEnd := c.block
	thenEnd.NewBr(mergeBloc)

	c.block = elseBloc
	elseValue := c.codegenExpression(e.Else)
	elseEnd := c.block
	elseEnd.NewBr(mergeBloc)

	c.block = mergeBloc
	return mergeBloc.NewPhi(ir.NewIncoming(thenValue, thenEnd), ir.NewIncoming(elseValue, elseEnd)), nil
}
