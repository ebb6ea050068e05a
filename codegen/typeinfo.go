package codegen

import (
	"encoding/json"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"

	"github.com/pontaoski/huck/types"
)

// TypeInfo is stored as JSON in the TypeInfoSymbol global.
type TypeInfo struct {
	Package string             `json:"package,omitempty"`
	Result  types.ResolvedType `json:"result"`
}

func registerTypeInfoWithModule(t TypeInfo, m *ir.Module) {
	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}

	g := m.NewGlobalDef(TypeInfoSymbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
}

func ParseTypeInfo(data string) (t TypeInfo, err error) {
	err = json.Unmarshal([]byte(data), &t)
	return
}
