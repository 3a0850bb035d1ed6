package main

import "github.com/pontaoski/haumeago/types"

type Identifier struct {
	Name string
	Pos  types.Span
}

type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Modulo
	Equals
	NotEquals
	Lt
	Gt
	Lte
	Gte
	LogicalAnd
	LogicalOr
	LogicalNot
	BitAnd
	BitOr
	BitNot
	Negate
)

type Expression interface {
	is_Expression()
}

type IntegerLit int64

func (v IntegerLit) is_Expression() {}

type Var Identifier

func (v Var) is_Expression() {}

type BinaryOp struct {
	Operator Operator
	Left     Expression
	Right    Expression
}

func (v BinaryOp) is_Expression() {}

type UnaryOp struct {
	Operator Operator
	Operand  Expression
}

func (v UnaryOp) is_Expression() {}

// Call appears both as an expression and as a statement; a call is the
// only expression that may stand alone as a statement.
type Call struct {
	Function  Identifier
	Arguments []Expression
}

func (v Call) is_Expression() {}
func (v Call) is_Statement()  {}

type Statement interface {
	is_Statement()
}

type Return struct {
	Value Expression
}

func (v Return) is_Statement() {}

type Block []Statement

func (v Block) is_Statement() {}

type If struct {
	Condition Expression
	Then      Statement
	Else      Statement
}

func (v If) is_Statement() {}

type Set struct {
	To    Identifier
	Value Expression
}

func (v Set) is_Statement() {}

type Change struct {
	To Identifier
	By Expression
}

func (v Change) is_Statement() {}

type Declare struct {
	Ident Identifier
}

func (v Declare) is_Statement() {}

type Forever struct {
	Body Statement
}

func (v Forever) is_Statement() {}

type While struct {
	Condition Expression
	Body      Statement
}

func (v While) is_Statement() {}

type ForEach struct {
	Ident Identifier
	From  Expression
	To    Expression
	Step  Expression

	// Inclusive distinguishes `through` ranges from `to` ranges.
	Inclusive bool

	Body Statement
}

func (v ForEach) is_Statement() {}

type Function struct {
	Ident  Identifier
	Params []Identifier
	Body   Block
}
