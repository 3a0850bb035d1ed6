package main

import (
	"fmt"
	"strings"
)

func (f Function) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.Name)
	}
	return fmt.Sprintf("func(%s) long;", strings.Join(params, ", "))
}
