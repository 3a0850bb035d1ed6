package lexer

import (
	"bufio"
	"io"
	"unicode"

	"github.com/pontaoski/haumeago/errors"
	"github.com/pontaoski/haumeago/types"
)

type Lexer struct {
	pos          types.Position
	reader       *bufio.Reader
	peeked       *types.Token
	peekedString string
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos.Column--
}

func (l *Lexer) kinded(t types.TokenKind) types.Token {
	return types.Token{
		Location: types.SingleCharSpan(l.pos),
		Kind:     t,
	}
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func (l *Lexer) lexIdent() (types.Position, types.Position, string) {
	var lit string
	var from types.Position
	var to types.Position

	r, _, err := l.reader.ReadRune()
	l.pos.Column++
	from = l.pos

	for {
		if err != nil {
			if err == io.EOF {
				return from, to, lit
			}
			panic(err)
		}

		if otherChar(r) {
			lit += string(r)
		} else {
			l.backup()
			to = l.pos
			return from, to, lit
		}

		r, _, err = l.reader.ReadRune()
		l.pos.Column++
		to = l.pos
	}
}

// skipComment is called after the opening /* has been consumed. Comments
// nest, so a depth is kept.
func (l *Lexer) skipComment(opened types.Position) {
	depth := 1
	for depth > 0 {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				panic(errors.UnterminatedComment{
					Location: types.SingleCharSpan(opened),
				})
			}
			panic(err)
		}

		l.pos.Column++

		switch r {
		case '\n':
			l.newline()
		case '*':
			if l.peekByteIs('/') {
				l.mustReadRune()
				depth--
			}
		case '/':
			if l.peekByteIs('*') {
				l.mustReadRune()
				depth++
			}
		}
	}
}

func (l *Lexer) mustReadRune() {
	if _, _, err := l.reader.ReadRune(); err != nil {
		panic(err)
	}
	l.pos.Column++
}

func (l *Lexer) peekByteIs(b byte) bool {
	byt, err := l.reader.Peek(1)
	if err != nil && err != io.EOF {
		panic(err)
	}
	if err == io.EOF {
		return false
	}

	return byt[0] == b
}

func (l *Lexer) Peek() (types.Token, string) {
	if l.peeked != nil {
		return *l.peeked, l.peekedString
	}

	tok, str := l.Lex()
	l.peeked = &tok
	l.peekedString = str

	return tok, str
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token, _ := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (l *Lexer) PeekIsWithRet(k ...types.TokenKind) (bool, types.Token, string) {
	token, lit := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true, token, lit
		}
	}

	return false, types.Token{}, ""
}

func (l *Lexer) LexExpecting(k ...types.TokenKind) (types.Token, string) {
	token, lit := l.Lex()
	for _, kind := range k {
		if token.Kind == kind {
			return token, lit
		}
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      token.Kind,
		Location: token.Location,
	})
}

func (l *Lexer) Lex() (types.Token, string) {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked, l.peekedString
	}

	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return l.kinded(types.EOF), ""
			}
			panic(err)
		}

		l.pos.Column++

		switch r {
		case '\n':
			l.newline()
			continue
		case '/':
			if l.peekByteIs('*') {
				opened := l.pos
				l.mustReadRune()
				l.skipComment(opened)
				continue
			}
			return l.kinded(types.SLASH), "/"
		case '<':
			if l.peekByteIs('=') {
				l.mustReadRune()
				return l.kinded(types.LESSEQ), "<="
			}
			return l.kinded(types.LESS), "<"
		case '>':
			if l.peekByteIs('=') {
				l.mustReadRune()
				return l.kinded(types.GREATEREQ), ">="
			}
			return l.kinded(types.GREATER), ">"
		case '!':
			if l.peekByteIs('=') {
				l.mustReadRune()
				return l.kinded(types.NOTEQUALS), "!="
			}
			panic(errors.UnexpectedCharacter{
				Character: r,
				Location:  types.SingleCharSpan(l.pos),
			})
		}

		data := map[rune]types.TokenKind{
			'(': types.LPAREN,
			')': types.RPAREN,
			',': types.COMMA,
			'+': types.PLUS,
			'-': types.MINUS,
			'*': types.STAR,
			'=': types.EQUALS,
			'&': types.AMPERSAND,
			'|': types.PIPE,
			'~': types.TILDE,
		}

		if kind, ok := data[r]; ok {
			return l.kinded(kind), string(r)
		}

		keywords := map[string]types.TokenKind{
			"to":       types.TO,
			"with":     types.WITH,
			"do":       types.DO,
			"end":      types.END,
			"if":       types.IF,
			"then":     types.THEN,
			"else":     types.ELSE,
			"return":   types.RETURN,
			"set":      types.SET,
			"change":   types.CHANGE,
			"variable": types.VARIABLE,
			"by":       types.BY,
			"forever":  types.FOREVER,
			"while":    types.WHILE,
			"for":      types.FOR,
			"each":     types.EACH,
			"in":       types.IN,
			"through":  types.THROUGH,
			"and":      types.AND,
			"or":       types.OR,
			"not":      types.NOT,
			"modulo":   types.MODULO,
		}

		switch {
		case unicode.IsDigit(r):
			var runes string
			runes += string(r)
			for {
				r, _, err := l.reader.ReadRune()
				if err != nil {
					if err == io.EOF {
						return l.kinded(types.INT), runes
					}
					panic(err)
				}
				l.pos.Column++

				if !unicode.IsDigit(r) {
					l.backup()
					return l.kinded(types.INT), runes
				}

				runes += string(r)
			}
		case unicode.IsSpace(r):
			continue
		case firstChar(r):
			l.backup()
			from, to, lit := l.lexIdent()

			if kind, ok := keywords[lit]; ok {
				return types.Token{Kind: kind, Location: types.Span{From: from, To: to}}, lit
			}

			return types.Token{Kind: types.IDENT, Location: types.Span{From: from, To: to}}, lit
		}

		panic(errors.UnexpectedCharacter{
			Character: r,
			Location:  types.SingleCharSpan(l.pos),
		})
	}
}

type testToken struct {
	t types.Token
	s string
}

func (l *Lexer) lexToEOF() (ret []testToken) {
	t, s := l.Lex()
	for t.Kind != types.EOF {
		ret = append(ret, testToken{
			t: t,
			s: s,
		})
		t, s = l.Lex()
	}
	return
}
