package parser

import (
	"testing"
)

func kindsOf(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	const (
		ws = TokenWhitespace
		id = TokenIdent
		op = TokenOperator
	)
	tests := []struct {
		name  string
		input string
		kinds []TokenKind
	}{
		{
			"method header",
			"public static <T> void f();",
			[]TokenKind{TokenPublic, ws, TokenStatic, ws, TokenLT, id, TokenGT, ws, TokenVoid, ws, id, TokenLParen, TokenRParen, TokenSemicolon},
		},
		{
			"annotated field",
			"@Inject final int[] xs = {1};",
			[]TokenKind{TokenAt, id, ws, TokenFinal, ws, TokenInt, TokenLBracket, TokenRBracket, ws, id, ws, TokenAssign, ws, TokenLBrace, TokenIntLiteral, TokenRBrace, TokenSemicolon},
		},
		{
			"generic type keeps angle brackets",
			"List<String>",
			[]TokenKind{id, TokenLT, id, TokenGT},
		},
		{
			"compound operators collapse",
			"a += b >>> 2",
			[]TokenKind{id, ws, op, ws, id, ws, op, ws, TokenIntLiteral},
		},
		{
			"comparison is not an assignment",
			"a == b != c <= d",
			[]TokenKind{id, ws, op, ws, id, ws, op, ws, id, ws, op, ws, id},
		},
		{
			"lambda and method reference",
			"x -> String::valueOf",
			[]TokenKind{id, ws, op, ws, id, TokenColonColon, id},
		},
		{
			"varargs and wildcard",
			"Class<?>... cs",
			[]TokenKind{id, TokenLT, TokenQuestion, TokenGT, TokenEllipsis, ws, id},
		},
		{
			"declaration keywords",
			"sealed interface I permits A {}",
			[]TokenKind{TokenSealed, ws, TokenInterface, ws, id, ws, TokenPermits, ws, id, ws, TokenLBrace, TokenRBrace},
		},
		{
			"comments are trivia",
			"int /* a */ x; // b",
			[]TokenKind{TokenInt, ws, TokenComment, ws, id, TokenSemicolon, ws, TokenLineComment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kindsOf(Tokenize([]byte(tt.input), "test.java"))
			if len(got) != len(tt.kinds) {
				t.Fatalf("kinds = %v, want %v", got, tt.kinds)
			}
			for i := range got {
				if got[i] != tt.kinds[i] {
					t.Errorf("token %d: Kind = %v, want %v", i, got[i], tt.kinds[i])
				}
			}
		})
	}
}

func TestLexerSingleTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"_private$1", TokenIdent},
		{"1_000L", TokenIntLiteral},
		{"0xDEAD_BEEF", TokenIntLiteral},
		{"0b1010", TokenIntLiteral},
		{"1.5e-10", TokenFloatLiteral},
		{"3.14f", TokenFloatLiteral},
		{`"with \"escapes\""`, TokenStringLiteral},
		{`'\''`, TokenCharLiteral},
		{"\"\"\"\n    hello\n    \"\"\"", TokenTextBlock},
		{"/** doc\n * more */", TokenComment},
		{"// line", TokenLineComment},
		{" \t\n ", TokenWhitespace},
		{"#", TokenError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
			if next := lexer.NextToken(); next.Kind != TokenEOF {
				t.Errorf("trailing token %v", next)
			}
		})
	}
}

func TestLexerContextualKeywords(t *testing.T) {
	tests := []struct {
		input string
		kinds []TokenKind
	}{
		{"non-sealed", []TokenKind{TokenNonSealed}},
		{"non-sealedX", []TokenKind{TokenIdent, TokenOperator, TokenIdent}},
		{"non - sealed", []TokenKind{TokenIdent, TokenWhitespace, TokenOperator, TokenWhitespace, TokenSealed}},
		{"record", []TokenKind{TokenRecord}},
		{"var", []TokenKind{TokenVar}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize([]byte(tt.input), "test.java")
			if len(tokens) != len(tt.kinds) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.kinds), tokens)
			}
			for i, want := range tt.kinds {
				if tokens[i].Kind != want {
					t.Errorf("token %d: Kind = %v, want %v", i, tokens[i].Kind, want)
				}
			}
		})
	}
}

func TestTokenizeReproducesInput(t *testing.T) {
	inputs := []string{
		"",
		"public class Foo { }",
		"int x = 0x1F + 3.5e-2f; // trailing\n",
		"/* unterminated",
		"String s = \"unterminated\nchar c = '\\'';",
		"List<Map<String, Integer>> m = new HashMap<>();",
		"café = 1; # été",
		"class A {\r\n}\r\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var got string
			offset := 0
			for _, tok := range Tokenize([]byte(input), "test.java") {
				if tok.Span.Start.Offset != offset {
					t.Errorf("token %q starts at %d, want %d", tok.Literal, tok.Span.Start.Offset, offset)
				}
				offset = tok.Span.End.Offset
				got += tok.Literal
			}
			if got != input {
				t.Errorf("concatenated literals = %q, want %q", got, input)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Tokenize([]byte("foo\n  bar"), "Test.java")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(tokens), tokens)
	}

	bar := tokens[2].Span
	want := Position{File: "Test.java", Offset: 6, Line: 2, Column: 3}
	if bar.Start != want {
		t.Errorf("bar starts at %v, want %v", bar.Start, want)
	}
	if bar.End.Offset != 9 || bar.End.Column != 6 {
		t.Errorf("bar ends at %d (column %d), want 9 (column 6)", bar.End.Offset, bar.End.Column)
	}

	lexer := NewLexer(nil, "Empty.java")
	if tok := lexer.NextToken(); tok.Kind != TokenEOF {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenEOF)
	}
}
