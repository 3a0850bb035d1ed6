package reader

import "github.com/coreos/pkg/dlopen"

import "C"

// ReadTypeInfo loads a compiled haumea library and reads back the
// typeinfo JSON the code generator embedded into it.
func ReadTypeInfo(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}

	sym, err := handle.GetSymbolPointer("__haumea_types")
	if err != nil {
		return "", err
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}
