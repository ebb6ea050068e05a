// Package reader loads the type information embedded in a built library.
package reader

import (
	"github.com/coreos/pkg/dlopen"

	"github.com/pontaoski/huck/codegen"
)

import "C"

func ReadTypeInfo(from string) (codegen.TypeInfo, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return codegen.TypeInfo{}, err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(codegen.TypeInfoSymbol)
	if err != nil {
		return codegen.TypeInfo{}, err
	}

	return codegen.ParseTypeInfo(C.GoString((*C.char)(sym)))
}
