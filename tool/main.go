// astgen generates the marker-method boilerplate for closed sum types
// (Statement, Expression and friends) from a small declaration language:
//
//	type Expression =
//	    | IntegerLit of "int64"
//	    | Var of Identifier
//	    ;
//
// Variants that need fields of their own are written by hand next to the
// generated ones.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type Variant struct {
	Name string `@Ident "of"`
	Kind string `(@Ident | @String | @RawString)`
}

type Declaration struct {
	Name     string     `"type" @Ident "="`
	Plain    *string    `(  (@Ident | @String | @RawString)`
	Variants *[]Variant ` | ("|" (@@))*)`
	I        struct{}   `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decl := range t.Declarations {
		if decl.Name == name && decl.Variants != nil {
			return true
		}
	}
	return false
}

func GenerateDecls(pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by astgen. DO NOT EDIT.")

	for _, decl := range t.Declarations {
		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
		} else if decl.Variants != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Variants {
				if t.IsSumType(it.Kind) {
					f.Type().Id(it.Name).Struct(Id(it.Kind))
				} else {
					f.Type().Id(it.Name).Id(it.Kind)
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: astgen <input> <output> <package>")
		os.Exit(1)
	}

	parser := participle.MustBuild(&TypeDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := TypeDecls{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, &ast)), os.ModePerm)
	if err != nil {
		panic(err)
	}
}
