package main

import (
	"fmt"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/haumeago/errors"
)

type settings struct {
	isLibrary   bool
	packageName string
}

type generator struct {
	out    strings.Builder
	funcs  map[string]Function
	scopes []map[string]bool
	temps  int
}

// codegen translates a parsed module into a single C translation unit.
// The same AST always yields byte-identical output: functions are emitted
// in declaration order and the typeinfo JSON has sorted keys.
func codegen(ast AST, s settings) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	g := &generator{funcs: map[string]Function{}}

	for _, fn := range ast.Functions {
		if _, ok := intrinsics[fn.Ident.Name]; ok {
			panic(errors.RedefinedIntrinsic{
				Name:     fn.Ident.Name,
				Location: fn.Ident.Pos,
			})
		}
		if _, ok := g.funcs[fn.Ident.Name]; ok {
			panic(errors.DuplicateFunction{
				Name:     fn.Ident.Name,
				Location: fn.Ident.Pos,
			})
		}
		g.funcs[fn.Ident.Name] = fn
	}

	if !s.isLibrary {
		mainFn, ok := g.funcs["main"]
		if !ok {
			panic(errors.NoMainFunction{})
		}
		if len(mainFn.Params) != 0 {
			panic(errors.MainHasParameters{Location: mainFn.Ident.Pos})
		}
	}

	if s.packageName != "" {
		fmt.Fprintf(&g.out, "/* haumea module %s */\n", s.packageName)
	}
	g.out.WriteString(prolog)
	g.emitTypeInfo(ast)

	// C needs every function declared before the first call to it, so a
	// prototype for each goes ahead of all bodies. Mutually recursive
	// functions then compile in any declaration order.
	for _, fn := range ast.Functions {
		g.out.WriteString(signature(fn) + ";\n")
	}

	for _, fn := range ast.Functions {
		g.emitFunction(fn)
	}
	g.out.WriteString(epilog)

	return g.out.String(), nil
}

func signature(fn Function) string {
	if fn.Ident.Name == "main" && len(fn.Params) == 0 {
		return "int main()"
	}

	var params []string
	for _, p := range fn.Params {
		params = append(params, "long "+p.Name)
	}
	return fmt.Sprintf("long %s(%s)", fn.Ident.Name, strings.Join(params, ", "))
}

func (g *generator) emitFunction(fn Function) {
	g.out.WriteString("\n")
	g.out.WriteString(signature(fn) + " {\n")

	g.pushScope()
	for _, p := range fn.Params {
		g.declare(p.Name)
	}
	for _, stmt := range fn.Body {
		g.statement(stmt, 1)
	}
	g.popScope()

	// A function that falls off its last statement returns 0; this also
	// makes an empty body legal.
	if fn.Ident.Name == "main" && len(fn.Params) == 0 {
		g.out.WriteString("    return 0;\n")
	} else {
		g.out.WriteString("    return 0l;\n")
	}
	g.out.WriteString("}\n")
}

func (g *generator) statement(stmt Statement, depth int) {
	switch v := stmt.(type) {
	case Return:
		g.writeIndent(depth)
		fmt.Fprintf(&g.out, "return %s;\n", g.expression(v.Value))
	case Block:
		g.writeIndent(depth)
		g.out.WriteString("{\n")
		g.pushScope()
		for _, sub := range v {
			g.statement(sub, depth+1)
		}
		g.popScope()
		g.writeIndent(depth)
		g.out.WriteString("}\n")
	case Call:
		g.checkCall(v)
		g.writeIndent(depth)
		fmt.Fprintf(&g.out, "%s(%s);\n", v.Function.Name, g.arguments(v))
	case Declare:
		if g.declaredHere(v.Ident.Name) {
			panic(errors.RedeclaredVariable{
				Name:     v.Ident.Name,
				Location: v.Ident.Pos,
			})
		}
		g.declare(v.Ident.Name)
		g.writeIndent(depth)
		fmt.Fprintf(&g.out, "long %s;\n", v.Ident.Name)
	case Set:
		g.checkDeclared(v.To)
		g.writeIndent(depth)
		fmt.Fprintf(&g.out, "%s = %s;\n", v.To.Name, g.expression(v.Value))
	case Change:
		g.checkDeclared(v.To)
		g.writeIndent(depth)
		fmt.Fprintf(&g.out, "%s += %s;\n", v.To.Name, g.expression(v.By))
	case If:
		g.writeIndent(depth)
		fmt.Fprintf(&g.out, "if (%s)\n", g.expression(v.Condition))
		g.bodyStatement(v.Then, depth)
		if v.Else != nil {
			g.writeIndent(depth)
			g.out.WriteString("else\n")
			g.bodyStatement(v.Else, depth)
		}
	case Forever:
		g.writeIndent(depth)
		g.out.WriteString("while (1)\n")
		g.bodyStatement(v.Body, depth)
	case While:
		g.writeIndent(depth)
		fmt.Fprintf(&g.out, "while (%s)\n", g.expression(v.Condition))
		g.bodyStatement(v.Body, depth)
	case ForEach:
		g.emitForEach(v, depth)
	default:
		panic("unhandled")
	}
}

// bodyStatement emits the body of a control-flow statement. Non-block
// bodies get braces of their own so that a nested if can never capture an
// outer else.
func (g *generator) bodyStatement(stmt Statement, depth int) {
	if blk, ok := stmt.(Block); ok {
		g.statement(blk, depth)
		return
	}

	g.writeIndent(depth)
	g.out.WriteString("{\n")
	g.pushScope()
	g.statement(stmt, depth+1)
	g.popScope()
	g.writeIndent(depth)
	g.out.WriteString("}\n")
}

// emitForEach hoists the range bounds and step into temporaries so they
// are evaluated once, then counts toward the end bound from whichever
// side the range starts on.
func (g *generator) emitForEach(v ForEach, depth int) {
	comparator, negComparator := "<", ">"
	if v.Inclusive {
		comparator, negComparator = "<=", ">="
	}

	from := g.tempName()
	to := g.tempName()
	step := g.tempName()

	g.writeIndent(depth)
	fmt.Fprintf(&g.out, "long %s = %s;\n", from, g.expression(v.From))
	g.writeIndent(depth)
	fmt.Fprintf(&g.out, "long %s = %s;\n", to, g.expression(v.To))
	g.writeIndent(depth)
	fmt.Fprintf(&g.out, "long %s = %s;\n", step, g.expression(v.Step))

	cond := fmt.Sprintf("(%s < %s ? %s %s %s : %s %s %s)",
		from, to,
		v.Ident.Name, comparator, to,
		v.Ident.Name, negComparator, to)

	g.writeIndent(depth)
	fmt.Fprintf(&g.out, "for (long %s = %s; %s; %s += %s)\n",
		v.Ident.Name, from, cond, v.Ident.Name, step)

	g.pushScope()
	g.declare(v.Ident.Name)
	g.bodyStatement(v.Body, depth)
	g.popScope()
}

func (g *generator) expression(expr Expression) string {
	switch v := expr.(type) {
	case IntegerLit:
		return fmt.Sprintf("%dl", int64(v))
	case Var:
		g.checkDeclared(Identifier(v))
		return v.Name
	case BinaryOp:
		return fmt.Sprintf("(%s %s %s)",
			g.expression(v.Left), cName(v.Operator), g.expression(v.Right))
	case UnaryOp:
		return fmt.Sprintf("(%s%s)", cName(v.Operator), g.expression(v.Operand))
	case Call:
		g.checkCall(v)
		return fmt.Sprintf("%s(%s)", v.Function.Name, g.arguments(v))
	}

	panic("unhandled")
}

func (g *generator) arguments(c Call) string {
	var args []string
	for _, arg := range c.Arguments {
		args = append(args, g.expression(arg))
	}
	return strings.Join(args, ", ")
}

func (g *generator) checkCall(c Call) {
	if arity, ok := intrinsics[c.Function.Name]; ok {
		if len(c.Arguments) != arity {
			panic(errors.WrongArgumentCount{
				Name:     c.Function.Name,
				Expected: arity,
				Got:      len(c.Arguments),
				Location: c.Function.Pos,
			})
		}
		return
	}

	fn, ok := g.funcs[c.Function.Name]
	if !ok {
		panic(errors.UndefinedFunction{
			Name:     c.Function.Name,
			Location: c.Function.Pos,
		})
	}
	if len(c.Arguments) != len(fn.Params) {
		panic(errors.WrongArgumentCount{
			Name:     c.Function.Name,
			Expected: len(fn.Params),
			Got:      len(c.Arguments),
			Location: c.Function.Pos,
		})
	}
}

func (g *generator) checkDeclared(ident Identifier) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if g.scopes[i][ident.Name] {
			return
		}
	}

	panic(errors.UndefinedVariable{
		Name:     ident.Name,
		Location: ident.Pos,
	})
}

func (g *generator) declaredHere(name string) bool {
	return g.scopes[len(g.scopes)-1][name]
}

func (g *generator) declare(name string) {
	g.scopes[len(g.scopes)-1][name] = true
}

func (g *generator) pushScope() {
	g.scopes = append(g.scopes, map[string]bool{})
}

func (g *generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

func (g *generator) tempName() string {
	g.temps++
	return fmt.Sprintf("__haumea_tmp_%d", g.temps)
}

func (g *generator) writeIndent(depth int) {
	g.out.WriteString(strings.Repeat("    ", depth))
}

// cName maps a source operator to its C spelling. Source `=` is equality,
// never assignment, so it becomes `==`.
func cName(op Operator) string {
	data := map[Operator]string{
		Add:        "+",
		Sub:        "-",
		Negate:     "-",
		Mul:        "*",
		Div:        "/",
		Modulo:     "%",
		Equals:     "==",
		NotEquals:  "!=",
		Lt:         "<",
		Gt:         ">",
		Lte:        "<=",
		Gte:        ">=",
		LogicalAnd: "&&",
		LogicalOr:  "||",
		LogicalNot: "!",
		BitAnd:     "&",
		BitOr:      "|",
		BitNot:     "~",
	}
	return data[op]
}
