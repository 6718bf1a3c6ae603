package lexer

import (
	"testing"

	"surgelint/internal/diag"
	"surgelint/internal/source"
	"surgelint/internal/token"
)

func tokenize(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sg", []byte(input))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, bag
}

func TestLexer_OperatorsAndKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []token.Kind
	}{
		{
			name:  "double comparison",
			input: "x == y || x > y",
			kinds: []token.Kind{token.Ident, token.EqEq, token.Ident, token.OrOr, token.Ident, token.Gt, token.Ident},
		},
		{
			name:  "compare arm",
			input: "Some(v) => v;",
			kinds: []token.Kind{token.Ident, token.LParen, token.Ident, token.RParen, token.FatArrow, token.Ident, token.Semicolon},
		},
		{
			name:  "attribute",
			input: "@allow(\"eq_op\")",
			kinds: []token.Kind{token.At, token.Ident, token.LParen, token.StringLit, token.RParen},
		},
		{
			name:  "shift vs comparison",
			input: "a << b <= c",
			kinds: []token.Kind{token.Ident, token.Shl, token.Ident, token.LtEq, token.Ident},
		},
		{
			name:  "keywords",
			input: "loop { if true { break; } }",
			kinds: []token.Kind{token.KwLoop, token.LBrace, token.KwIf, token.KwTrue, token.LBrace, token.KwBreak, token.Semicolon, token.RBrace, token.RBrace},
		},
		{
			name:  "wildcard",
			input: "_ => 0;",
			kinds: []token.Kind{token.Underscore, token.FatArrow, token.IntLit, token.Semicolon},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, bag := tokenize(t, tt.input)
			if bag.HasErrors() {
				t.Fatalf("unexpected lex errors: %v", bag.Items())
			}
			if len(tokens) != len(tt.kinds) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.kinds))
			}
			for i, kind := range tt.kinds {
				if tokens[i].Kind != kind {
					t.Fatalf("token %d = %v, want %v", i, tokens[i].Kind, kind)
				}
			}
		})
	}
}

func TestLexer_SkipsComments(t *testing.T) {
	tokens, bag := tokenize(t, "a // line comment\n/* block */ b")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(tokens) != 2 || tokens[0].Text != "a" || tokens[1].Text != "b" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestLexer_Spans(t *testing.T) {
	tokens, _ := tokenize(t, "let x = 10;")
	// "10" starts at byte 8.
	lit := tokens[3]
	if lit.Kind != token.IntLit || lit.Span.Start != 8 || lit.Span.End != 10 {
		t.Fatalf("literal token = %+v", lit)
	}
}

func TestLexer_ReportsUnterminatedString(t *testing.T) {
	_, bag := tokenize(t, "\"oops")
	if !bag.HasErrors() {
		t.Fatal("expected unterminated string diagnostic")
	}
	if bag.Items()[0].Code != CodeUnterminatedString {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}

func TestLexer_ReportsUnknownChar(t *testing.T) {
	_, bag := tokenize(t, "a ~ b")
	if !bag.HasErrors() {
		t.Fatal("expected unknown character diagnostic")
	}
	if bag.Items()[0].Code != CodeUnknownChar {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}
