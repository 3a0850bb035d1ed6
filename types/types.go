package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	LPAREN
	RPAREN
	COMMA

	PLUS
	MINUS
	STAR
	SLASH
	EQUALS
	NOTEQUALS
	LESS
	GREATER
	LESSEQ
	GREATEREQ
	AMPERSAND
	PIPE
	TILDE

	INT

	IDENT

	TO
	WITH
	DO
	END
	IF
	THEN
	ELSE
	RETURN
	SET
	CHANGE
	VARIABLE
	BY
	FOREVER
	WHILE
	FOR
	EACH
	IN
	THROUGH

	AND
	OR
	NOT
	MODULO
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:       "EOF",
		ILLEGAL:   "ILLEGAL",
		LPAREN:    "LPAREN",
		RPAREN:    "RPAREN",
		COMMA:     "COMMA",
		PLUS:      "PLUS",
		MINUS:     "MINUS",
		STAR:      "STAR",
		SLASH:     "SLASH",
		EQUALS:    "EQUALS",
		NOTEQUALS: "NOTEQUALS",
		LESS:      "LESS",
		GREATER:   "GREATER",
		LESSEQ:    "LESSEQ",
		GREATEREQ: "GREATEREQ",
		AMPERSAND: "AMPERSAND",
		PIPE:      "PIPE",
		TILDE:     "TILDE",
		INT:       "INT",
		IDENT:     "IDENT",
		TO:        "TO",
		WITH:      "WITH",
		DO:        "DO",
		END:       "END",
		IF:        "IF",
		THEN:      "THEN",
		ELSE:      "ELSE",
		RETURN:    "RETURN",
		SET:       "SET",
		CHANGE:    "CHANGE",
		VARIABLE:  "VARIABLE",
		BY:        "BY",
		FOREVER:   "FOREVER",
		WHILE:     "WHILE",
		FOR:       "FOR",
		EACH:      "EACH",
		IN:        "IN",
		THROUGH:   "THROUGH",
		AND:       "AND",
		OR:        "OR",
		NOT:       "NOT",
		MODULO:    "MODULO",
	}
	return data[t]
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Location Span
}
