package parser

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits Java source into tokens. Whitespace and comments are
// returned as tokens too, so the concatenated literals of all tokens
// reproduce the input exactly.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) hasPrefix(s string) bool {
	return len(l.input)-l.pos >= len(s) && string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// NextToken returns the next token, or a TokenEOF token once the input
// is exhausted. It never fails: unrecognized bytes become TokenError.
func (l *Lexer) NextToken() Token {
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case ch == '/' && l.peekN(1) == '/':
		for l.peek() != 0 && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenLineComment, start)
	case ch == '/' && l.peekN(1) == '*':
		l.advanceN(2)
		for l.pos < len(l.input) && !l.hasPrefix("*/") {
			l.advance()
		}
		if l.hasPrefix("*/") {
			l.advanceN(2)
		}
		return l.token(TokenComment, start)
	case isSpace(ch):
		for isSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, start)
	case isJavaLetter(l.input[l.pos:]):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case ch == '\'':
		l.scanQuoted('\'')
		return l.token(TokenCharLiteral, start)
	case l.hasPrefix(`"""`):
		l.advanceN(3)
		for l.pos < len(l.input) && !l.hasPrefix(`"""`) {
			if l.peek() == '\\' {
				l.advance()
			}
			l.advance()
		}
		if l.hasPrefix(`"""`) {
			l.advanceN(3)
		}
		return l.token(TokenTextBlock, start)
	case ch == '"':
		l.scanQuoted('"')
		return l.token(TokenStringLiteral, start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for l.pos < len(l.input) && isJavaLetterOrDigit(l.input[l.pos:]) {
		_, size := utf8.DecodeRune(l.input[l.pos:])
		l.advanceN(size)
	}
	tok := l.token(TokenIdent, start)

	if tok.Literal == "non" && l.hasPrefix("-sealed") {
		rest := l.input[l.pos+len("-sealed"):]
		if len(rest) == 0 || !isJavaLetterOrDigit(rest) {
			l.advanceN(len("-sealed"))
			return l.token(TokenNonSealed, start)
		}
	}

	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

// scanNumber accepts every Java numeric literal form without validating
// it: digits, underscores, radix prefixes, exponents and type suffixes.
func (l *Lexer) scanNumber(start Position) Token {
	kind := TokenIntLiteral
	hex := l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X')
	if hex {
		l.advanceN(2)
	}
	for {
		ch := l.peek()
		switch {
		case ch == '.' && isDigitOrHex(l.peekN(1), hex):
			kind = TokenFloatLiteral
			l.advance()
		case ch == '.' && !hex && kind == TokenIntLiteral && !isJavaLetter(l.input[l.pos+1:]):
			kind = TokenFloatLiteral
			l.advance()
		case (ch == 'e' || ch == 'E') && !hex, (ch == 'p' || ch == 'P') && hex:
			kind = TokenFloatLiteral
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
		case isDigitOrHex(ch, hex) || ch == '_':
			l.advance()
		case ch == 'f' || ch == 'F' || ch == 'd' || ch == 'D':
			kind = TokenFloatLiteral
			l.advance()
			return l.token(kind, start)
		case ch == 'l' || ch == 'L':
			l.advance()
			return l.token(kind, start)
		case ch == 'b' || ch == 'B':
			// 0b prefix
			l.advance()
		default:
			return l.token(kind, start)
		}
	}
}

func (l *Lexer) scanQuoted(quote byte) {
	l.advance()
	for l.peek() != 0 && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
}

type operator struct {
	text string
	kind TokenKind
}

// operators is ordered so that longer operators are tried first.
var operators = []operator{
	{">>>=", TokenOperator},
	{"<<=", TokenOperator},
	{">>=", TokenOperator},
	{">>>", TokenOperator},
	{"...", TokenEllipsis},
	{"::", TokenColonColon},
	{"->", TokenOperator},
	{"==", TokenOperator},
	{"!=", TokenOperator},
	{"<=", TokenOperator},
	{">=", TokenOperator},
	{"&&", TokenOperator},
	{"||", TokenOperator},
	{"++", TokenOperator},
	{"--", TokenOperator},
	{"<<", TokenOperator},
	{">>", TokenOperator},
	{"+=", TokenOperator},
	{"-=", TokenOperator},
	{"*=", TokenOperator},
	{"/=", TokenOperator},
	{"%=", TokenOperator},
	{"&=", TokenOperator},
	{"|=", TokenOperator},
	{"^=", TokenOperator},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{";", TokenSemicolon},
	{",", TokenComma},
	{".", TokenDot},
	{"@", TokenAt},
	{"=", TokenAssign},
	{"<", TokenLT},
	{">", TokenGT},
	{"?", TokenQuestion},
	{":", TokenOperator},
	{"!", TokenOperator},
	{"~", TokenOperator},
	{"+", TokenOperator},
	{"-", TokenOperator},
	{"*", TokenOperator},
	{"/", TokenOperator},
	{"%", TokenOperator},
	{"&", TokenOperator},
	{"|", TokenOperator},
	{"^", TokenOperator},
}

func (l *Lexer) scanOperator(start Position) Token {
	for _, op := range operators {
		if l.hasPrefix(op.text) {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}
	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// Tokenize lexes the whole input, trivia included, without the final
// TokenEOF.
func Tokenize(input []byte, file string) []Token {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isDigitOrHex(ch byte, hex bool) bool {
	if isDigit(ch) {
		return true
	}
	return hex && ((ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F'))
}

func isJavaLetter(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	ch := b[0]
	if ch >= utf8.RuneSelf {
		r, _ := utf8.DecodeRune(b)
		return unicode.IsLetter(r)
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	if b[0] >= utf8.RuneSelf {
		r, _ := utf8.DecodeRune(b)
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return isJavaLetter(b) || isDigit(b[0])
}
