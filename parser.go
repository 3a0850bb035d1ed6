package main

import (
	"strconv"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/haumeago/errors"
	"github.com/pontaoski/haumeago/lexer"
	"github.com/pontaoski/haumeago/types"
)

type AST struct {
	Functions []Function
}

type Parser struct {
	l   *lexer.Lexer
	ast AST
}

func NewParser(l *lexer.Lexer) Parser {
	a := AST{}
	return Parser{l, a}
}

func (p *Parser) Parse() (err error) {
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
	for {
		tok, _ := p.l.LexExpecting(types.TO, types.EOF)

		if tok.Kind == types.EOF {
			return
		}

		p.ast.Functions = append(p.ast.Functions, p.parseFunction())
	}
}

func (p *Parser) parseIdent() Identifier {
	tok, name := p.l.LexExpecting(types.IDENT)
	return Identifier{Name: name, Pos: tok.Location}
}

// parseFunction is called with the `to` keyword already consumed.
func (p *Parser) parseFunction() Function {
	name := p.parseIdent()

	var params []Identifier
	if p.l.PeekIs(types.WITH) {
		p.l.LexExpecting(types.WITH)
		p.l.LexExpecting(types.LPAREN)
		if !p.l.PeekIs(types.RPAREN) {
			for {
				param := p.parseIdent()
				for _, seen := range params {
					if seen.Name == param.Name {
						panic(errors.DuplicateParameter{
							Name:     param.Name,
							Location: param.Pos,
						})
					}
				}
				params = append(params, param)

				if p.l.PeekIs(types.COMMA) {
					p.l.LexExpecting(types.COMMA)
					continue
				}
				break
			}
		}
		p.l.LexExpecting(types.RPAREN)
	}

	p.l.LexExpecting(types.DO)
	body := p.parseBlock()

	return Function{
		Ident:  name,
		Params: params,
		Body:   body,
	}
}

// parseBlock is called with the opening `do` already consumed; it consumes
// the matching `end`.
func (p *Parser) parseBlock() Block {
	var statements []Statement

	for !p.l.PeekIs(types.END) {
		if p.l.PeekIs(types.EOF) {
			tok, _ := p.l.Peek()
			panic(errors.ExpectedOneOfKindGotKind{
				Expected: []types.TokenKind{types.END},
				Got:      tok.Kind,
				Location: tok.Location,
			})
		}

		statements = append(statements, p.parseStatement())
	}
	p.l.LexExpecting(types.END)

	return Block(statements)
}

func (p *Parser) parseStatement() Statement {
	tok, _ := p.l.Peek()

	switch tok.Kind {
	case types.RETURN:
		p.l.LexExpecting(types.RETURN)
		return Return{Value: p.parseExpression()}
	case types.DO:
		p.l.LexExpecting(types.DO)
		return p.parseBlock()
	case types.IF:
		p.l.LexExpecting(types.IF)
		cond := p.parseExpression()
		p.l.LexExpecting(types.THEN)
		then := p.parseStatement()

		var elseClause Statement
		if p.l.PeekIs(types.ELSE) {
			p.l.LexExpecting(types.ELSE)
			elseClause = p.parseStatement()
		}

		return If{
			Condition: cond,
			Then:      then,
			Else:      elseClause,
		}
	case types.SET:
		p.l.LexExpecting(types.SET)
		to := p.parseIdent()
		p.l.LexExpecting(types.TO)
		return Set{To: to, Value: p.parseExpression()}
	case types.CHANGE:
		p.l.LexExpecting(types.CHANGE)
		to := p.parseIdent()
		p.l.LexExpecting(types.BY)
		return Change{To: to, By: p.parseExpression()}
	case types.VARIABLE:
		p.l.LexExpecting(types.VARIABLE)
		return Declare{Ident: p.parseIdent()}
	case types.FOREVER:
		p.l.LexExpecting(types.FOREVER)
		return Forever{Body: p.parseStatement()}
	case types.WHILE:
		p.l.LexExpecting(types.WHILE)
		return While{
			Condition: p.parseExpression(),
			Body:      p.parseStatement(),
		}
	case types.FOR:
		return p.parseForEach()
	case types.IDENT:
		// A bare expression is only a legal statement when it is a call.
		ident := p.parseIdent()
		return Call{
			Function:  ident,
			Arguments: p.parseArguments(),
		}
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: []types.TokenKind{
			types.RETURN, types.DO, types.IF, types.SET, types.CHANGE,
			types.VARIABLE, types.FOREVER, types.WHILE, types.FOR, types.IDENT,
		},
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

func (p *Parser) parseForEach() Statement {
	p.l.LexExpecting(types.FOR)
	p.l.LexExpecting(types.EACH)
	ident := p.parseIdent()
	p.l.LexExpecting(types.IN)
	from := p.parseExpression()
	rangeTok, _ := p.l.LexExpecting(types.TO, types.THROUGH)
	to := p.parseExpression()

	var step Expression = IntegerLit(1)
	if p.l.PeekIs(types.BY) {
		p.l.LexExpecting(types.BY)
		step = p.parseExpression()
	}

	return ForEach{
		Ident:     ident,
		From:      from,
		To:        to,
		Step:      step,
		Inclusive: rangeTok.Kind == types.THROUGH,
		Body:      p.parseStatement(),
	}
}

func (p *Parser) parseArguments() []Expression {
	p.l.LexExpecting(types.LPAREN)

	var args []Expression
	if !p.l.PeekIs(types.RPAREN) {
		for {
			args = append(args, p.parseExpression())

			if p.l.PeekIs(types.COMMA) {
				p.l.LexExpecting(types.COMMA)
				continue
			}
			break
		}
	}
	p.l.LexExpecting(types.RPAREN)

	return args
}

var binaryOperators = map[types.TokenKind]Operator{
	types.PLUS:      Add,
	types.MINUS:     Sub,
	types.STAR:      Mul,
	types.SLASH:     Div,
	types.MODULO:    Modulo,
	types.EQUALS:    Equals,
	types.NOTEQUALS: NotEquals,
	types.LESS:      Lt,
	types.GREATER:   Gt,
	types.LESSEQ:    Lte,
	types.GREATEREQ: Gte,
	types.AND:       LogicalAnd,
	types.OR:        LogicalOr,
	types.AMPERSAND: BitAnd,
	types.PIPE:      BitOr,
}

// binaryTier parses one tier of left-associative binary operators, with
// next parsing the tighter-binding tier beneath it.
func (p *Parser) binaryTier(next func() Expression, kinds ...types.TokenKind) Expression {
	lh := next()
	for {
		ok, tok, _ := p.l.PeekIsWithRet(kinds...)
		if !ok {
			return lh
		}
		p.l.LexExpecting(tok.Kind)

		lh = BinaryOp{
			Operator: binaryOperators[tok.Kind],
			Left:     lh,
			Right:    next(),
		}
	}
}

func (p *Parser) parseExpression() Expression {
	return p.parseLogical()
}

func (p *Parser) parseLogical() Expression {
	return p.binaryTier(p.parseBitwise, types.AND, types.OR)
}

func (p *Parser) parseBitwise() Expression {
	return p.binaryTier(p.parseComparison, types.AMPERSAND, types.PIPE)
}

func (p *Parser) parseComparison() Expression {
	return p.binaryTier(p.parseAdditive,
		types.EQUALS, types.NOTEQUALS, types.LESS, types.GREATER,
		types.LESSEQ, types.GREATEREQ)
}

func (p *Parser) parseAdditive() Expression {
	return p.binaryTier(p.parseMultiplicative, types.PLUS, types.MINUS)
}

func (p *Parser) parseMultiplicative() Expression {
	return p.binaryTier(p.parseUnary, types.STAR, types.SLASH, types.MODULO)
}

func (p *Parser) parseUnary() Expression {
	unary := map[types.TokenKind]Operator{
		types.MINUS: Negate,
		types.NOT:   LogicalNot,
		types.TILDE: BitNot,
	}

	ok, tok, _ := p.l.PeekIsWithRet(types.MINUS, types.NOT, types.TILDE)
	if !ok {
		return p.parseExpressionLeaf()
	}
	p.l.LexExpecting(tok.Kind)

	return UnaryOp{
		Operator: unary[tok.Kind],
		Operand:  p.parseUnary(),
	}
}

func (p *Parser) parseExpressionLeaf() Expression {
	tok, lit := p.l.LexExpecting(types.INT, types.IDENT, types.LPAREN)

	switch tok.Kind {
	case types.INT:
		parsed, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			panic(err)
		}
		return IntegerLit(parsed)
	case types.LPAREN:
		expr := p.parseExpression()
		p.l.LexExpecting(types.RPAREN)
		return expr
	case types.IDENT:
		if p.l.PeekIs(types.LPAREN) {
			return Call{
				Function:  Identifier{Name: lit, Pos: tok.Location},
				Arguments: p.parseArguments(),
			}
		}

		return Var(Identifier{Name: lit, Pos: tok.Location})
	}

	panic("unhandled")
}
