package main

import (
	"strings"
	"testing"
)

func compileString(t *testing.T, src string, s settings) (string, error) {
	t.Helper()

	ast := mustParse(t, src)
	return codegen(ast, s)
}

func mustCompile(t *testing.T, src string) string {
	t.Helper()

	out, err := compileString(t, src, settings{})
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return out
}

func TestFactorialOutput(t *testing.T) {
	out := mustCompile(t, factorialSource)

	for _, want := range []string{
		"#include <stdio.h>",
		"long factorial(long n);",
		"int main();",
		"(n == 0l)",
		"return 1l;",
		"return (n * factorial((n - 1l)));",
		"display(factorial(5l));",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestDeterminism(t *testing.T) {
	first := mustCompile(t, factorialSource)
	second := mustCompile(t, factorialSource)
	if first != second {
		t.Error("expected identical output for identical input")
	}
}

func TestPrototypesPrecedeBodies(t *testing.T) {
	out := mustCompile(t, `to is_even with (n) do
    if n = 0 then do
        return 1
    end
    return is_odd(n - 1)
end
to is_odd with (n) do
    if n = 0 then do
        return 0
    end
    return is_even(n - 1)
end
to main do
    display(is_even(10))
end
`)

	lastPrototype := -1
	for _, proto := range []string{
		"long is_even(long n);",
		"long is_odd(long n);",
		"int main();",
	} {
		idx := strings.Index(out, proto)
		if idx < 0 {
			t.Fatalf("expected a prototype %q\n%s", proto, out)
		}
		if idx > lastPrototype {
			lastPrototype = idx
		}
	}

	for _, body := range []string{
		"long is_even(long n) {",
		"long is_odd(long n) {",
		"int main() {",
	} {
		idx := strings.Index(out, body)
		if idx < 0 {
			t.Fatalf("expected a body %q\n%s", body, out)
		}
		if idx < lastPrototype {
			t.Errorf("expected every prototype to precede the body %q", body)
		}
	}
}

func TestPrecedenceGrouping(t *testing.T) {
	out := mustCompile(t, "to main do\n    return 2 + 3 * 4\nend")
	if !strings.Contains(out, "return (2l + (3l * 4l));") {
		t.Errorf("expected grouped arithmetic\n%s", out)
	}
}

func TestLeftAssociativeOutput(t *testing.T) {
	out := mustCompile(t, "to main do\n    return 10 - 3 - 2\nend")
	if !strings.Contains(out, "return ((10l - 3l) - 2l);") {
		t.Errorf("expected left-grouped subtraction\n%s", out)
	}
}

func TestEmptyBodyFallsThrough(t *testing.T) {
	out := mustCompile(t, "to main do end")
	if !strings.Contains(out, "int main() {\n    return 0;\n}") {
		t.Errorf("expected an implicit return 0\n%s", out)
	}
}

func TestVariableStatements(t *testing.T) {
	out := mustCompile(t, `to main do
    variable x
    set x to 3
    change x by 4
    display(x)
end
`)

	for _, want := range []string{
		"long x;",
		"x = 3l;",
		"x += 4l;",
		"display(x);",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestWordOperators(t *testing.T) {
	out := mustCompile(t, "to main do\n    return 7 modulo 2 and not 0\nend")

	for _, want := range []string{"%", "&&", "(!0l)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestForEachOutput(t *testing.T) {
	out := mustCompile(t, `to main do
    for each i in 1 to 10 do
        display(i)
    end
end
`)

	for _, want := range []string{
		"long __haumea_tmp_1 = 1l;",
		"long __haumea_tmp_2 = 10l;",
		"long __haumea_tmp_3 = 1l;",
		"for (long i = __haumea_tmp_1; (__haumea_tmp_1 < __haumea_tmp_2 ? i < __haumea_tmp_2 : i > __haumea_tmp_2); i += __haumea_tmp_3)",
		"display(i);",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestInclusiveForEachOutput(t *testing.T) {
	out := mustCompile(t, "to main do\n    for each i in 1 through 10 do end\nend")
	if !strings.Contains(out, "i <= __haumea_tmp_2") {
		t.Errorf("expected an inclusive comparison\n%s", out)
	}
}

func TestLoopOutput(t *testing.T) {
	out := mustCompile(t, `to main do
    variable x
    set x to 0
    while x < 3 do
        change x by 1
    end
    forever do
        display(x)
    end
end
`)

	for _, want := range []string{
		"while ((x < 3l))",
		"while (1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestUnbracedBodyGetsBraces(t *testing.T) {
	out := mustCompile(t, "to main do\n    if 1 then return 2\nend")

	if !strings.Contains(out, "if (1l)\n    {\n        return 2l;\n    }") {
		t.Errorf("expected the then branch to be braced\n%s", out)
	}
}

func TestTypeInfoEmbedded(t *testing.T) {
	out := mustCompile(t, factorialSource)

	want := `const char __haumea_types[] = "{\"functions\":{\"factorial\":\"func(n) long;\",\"main\":\"func() long;\"}}";`
	if !strings.Contains(out, want) {
		t.Errorf("expected embedded typeinfo %q\n%s", want, out)
	}
}

func TestModuleComment(t *testing.T) {
	out, err := compileString(t, "to main do end", settings{packageName: "demo"})
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	if !strings.HasPrefix(out, "/* haumea module demo */\n") {
		t.Errorf("expected a module comment\n%s", out)
	}
}

func TestLibraryMode(t *testing.T) {
	out, err := compileString(t, "to twice with (n) do\n    return n * 2\nend", settings{isLibrary: true})
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	if !strings.Contains(out, "long twice(long n);") {
		t.Errorf("expected a prototype without main\n%s", out)
	}
	if strings.Contains(out, "int main()") {
		t.Errorf("expected no main in library mode\n%s", out)
	}
}

func TestCodegenErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"missing main", "to f do end", "no main function"},
		{"main with parameters", "to main with (x) do end", "main may not take parameters"},
		{"duplicate function", "to main do end\nto main do end", "declared more than once"},
		{"shadowed intrinsic", "to display with (n) do end\nto main do end", "shadow a built-in"},
		{"undefined function", "to main do\n    frobnicate(1)\nend", "undefined function frobnicate"},
		{"wrong intrinsic arity", "to main do\n    display(1, 2)\nend", "display takes 1 arguments, got 2"},
		{"wrong function arity", "to f with (a, b) do end\nto main do\n    f(1)\nend", "f takes 2 arguments, got 1"},
		{"undefined variable", "to main do\n    return x\nend", "variable x has not been declared"},
		{"set of undeclared", "to main do\n    set x to 1\nend", "variable x has not been declared"},
		{"redeclared variable", "to main do\n    variable x\n    variable x\nend", "declared more than once in this block"},
		{"block scope ends", "to main do\n    do\n        variable x\n    end\n    return x\nend", "variable x has not been declared"},
	}

	for _, c := range cases {
		_, err := compileString(t, c.src, settings{})
		if err == nil {
			t.Errorf("%s: expected a codegen error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: expected error to contain %q, got %v", c.name, c.want, err)
		}
	}
}

func TestParametersAreInScope(t *testing.T) {
	out := mustCompile(t, "to f with (a, b) do\n    return a + b\nend\nto main do\n    display(f(1, 2))\nend")
	if !strings.Contains(out, "return (a + b);") {
		t.Errorf("expected parameters to resolve\n%s", out)
	}
}

func TestNoPartialOutputOnError(t *testing.T) {
	out, err := compileString(t, "to main do\n    frobnicate(1)\nend", settings{})
	if err == nil {
		t.Fatal("expected a codegen error")
	}
	if out != "" {
		t.Errorf("expected no output alongside an error, got %q", out)
	}
}
