package lexer

import (
	"strings"
	"testing"

	"github.com/pontaoski/haumeago/errors"
	"github.com/pontaoski/haumeago/types"
)

func lexAll(t *testing.T, src string) (tokens []testToken, err error) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = rerr
		}
	}()

	l := NewLexer(strings.NewReader(src), "test.hau")
	tokens = l.lexToEOF()
	return
}

func TestTokenKinds(t *testing.T) {
	cases := []struct {
		lexeme string
		kind   types.TokenKind
	}{
		{"to", types.TO},
		{"with", types.WITH},
		{"do", types.DO},
		{"end", types.END},
		{"if", types.IF},
		{"then", types.THEN},
		{"else", types.ELSE},
		{"return", types.RETURN},
		{"set", types.SET},
		{"change", types.CHANGE},
		{"variable", types.VARIABLE},
		{"by", types.BY},
		{"forever", types.FOREVER},
		{"while", types.WHILE},
		{"for", types.FOR},
		{"each", types.EACH},
		{"in", types.IN},
		{"through", types.THROUGH},
		{"and", types.AND},
		{"or", types.OR},
		{"not", types.NOT},
		{"modulo", types.MODULO},
		{"(", types.LPAREN},
		{")", types.RPAREN},
		{",", types.COMMA},
		{"+", types.PLUS},
		{"-", types.MINUS},
		{"*", types.STAR},
		{"/", types.SLASH},
		{"=", types.EQUALS},
		{"!=", types.NOTEQUALS},
		{"<", types.LESS},
		{">", types.GREATER},
		{"<=", types.LESSEQ},
		{">=", types.GREATEREQ},
		{"&", types.AMPERSAND},
		{"|", types.PIPE},
		{"~", types.TILDE},
		{"42", types.INT},
		{"factorial", types.IDENT},
		{"_private", types.IDENT},
		{"ends", types.IDENT},
		{"too", types.IDENT},
	}

	for _, c := range cases {
		tokens, err := lexAll(t, c.lexeme)
		if err != nil {
			t.Errorf("lexing %q: unexpected error %v", c.lexeme, err)
			continue
		}
		if len(tokens) != 1 {
			t.Errorf("lexing %q: expected 1 token, got %d", c.lexeme, len(tokens))
			continue
		}
		if tokens[0].t.Kind != c.kind {
			t.Errorf("lexing %q: expected %s, got %s", c.lexeme, c.kind, tokens[0].t.Kind)
		}
		if tokens[0].s != c.lexeme {
			t.Errorf("lexing %q: expected literal %q, got %q", c.lexeme, c.lexeme, tokens[0].s)
		}
	}
}

func TestLexProgram(t *testing.T) {
	tokens, err := lexAll(t, "to double with (n) do\n    return n * 2\nend")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	expected := []types.TokenKind{
		types.TO, types.IDENT, types.WITH, types.LPAREN, types.IDENT,
		types.RPAREN, types.DO, types.RETURN, types.IDENT, types.STAR,
		types.INT, types.END,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, kind := range expected {
		if tokens[i].t.Kind != kind {
			t.Errorf("token %d: expected %s, got %s", i, kind, tokens[i].t.Kind)
		}
	}
}

func TestComments(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		kinds []types.TokenKind
	}{
		{"between tokens", "1 /* ignored */ 2", []types.TokenKind{types.INT, types.INT}},
		{"nested", "1 /* outer /* inner */ still outer */ 2", []types.TokenKind{types.INT, types.INT}},
		{"spanning lines", "1 /* a\nb\nc */ 2", []types.TokenKind{types.INT, types.INT}},
		{"only a comment", "/* nothing here */", nil},
	}

	for _, c := range cases {
		tokens, err := lexAll(t, c.src)
		if err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
			continue
		}
		if len(tokens) != len(c.kinds) {
			t.Errorf("%s: expected %d tokens, got %d", c.name, len(c.kinds), len(tokens))
			continue
		}
		for i, kind := range c.kinds {
			if tokens[i].t.Kind != kind {
				t.Errorf("%s: token %d: expected %s, got %s", c.name, i, kind, tokens[i].t.Kind)
			}
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	_, err := lexAll(t, "1 /* no close")
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(errors.UnterminatedComment); !ok {
		t.Fatalf("expected UnterminatedComment, got %T: %v", err, err)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	for _, src := range []string{"1 $ 2", "!", "to f do ? end"} {
		_, err := lexAll(t, src)
		if err == nil {
			t.Errorf("lexing %q: expected an error", src)
			continue
		}
		if _, ok := err.(errors.UnexpectedCharacter); !ok {
			t.Errorf("lexing %q: expected UnexpectedCharacter, got %T: %v", src, err, err)
		}
	}
}

func TestPositions(t *testing.T) {
	tokens, err := lexAll(t, "to f\ndo end")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}

	expected := []types.Position{
		{Line: 1, Column: 1, Filename: "test.hau"},
		{Line: 1, Column: 4, Filename: "test.hau"},
		{Line: 2, Column: 1, Filename: "test.hau"},
		{Line: 2, Column: 4, Filename: "test.hau"},
	}
	for i, pos := range expected {
		if tokens[i].t.Location.From != pos {
			t.Errorf("token %d: expected position %s, got %s", i, pos, tokens[i].t.Location.From)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := NewLexer(strings.NewReader("if then"), "test.hau")

	if !l.PeekIs(types.IF) {
		t.Fatal("expected to peek IF")
	}
	if !l.PeekIs(types.IF) {
		t.Fatal("peeking should not consume the token")
	}

	tok, _ := l.Lex()
	if tok.Kind != types.IF {
		t.Fatalf("expected IF, got %s", tok.Kind)
	}
	tok, _ = l.Lex()
	if tok.Kind != types.THEN {
		t.Fatalf("expected THEN, got %s", tok.Kind)
	}
	tok, _ = l.Lex()
	if tok.Kind != types.EOF {
		t.Fatalf("expected EOF, got %s", tok.Kind)
	}
}
