package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pontaoski/haumeago/reader"
)

type typeInfo struct {
	Functions map[string]string `json:"functions"`
}

// emitTypeInfo embeds the module's typeinfo into the generated C as an
// exported symbol, so it can be read back out of a compiled library.
func (g *generator) emitTypeInfo(ast AST) {
	t := typeInfo{Functions: map[string]string{}}
	for _, fn := range ast.Functions {
		t.Functions[fn.Ident.Name] = fn.String()
	}

	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(&g.out, "const char __haumea_types[] = %s;\n\n", cQuote(string(data)))
}

func cQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func getTypeInfoFromFile(f string) (t typeInfo, err error) {
	data, err := reader.ReadTypeInfo(f)
	if err != nil {
		return typeInfo{}, err
	}

	err = json.Unmarshal([]byte(data), &t)
	return
}
