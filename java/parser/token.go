package parser

import "strconv"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.File != "" {
		s = p.File + ":" + s
	}
	return s
}

type Span struct {
	Start Position
	End   Position
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether inner lies within s.
func (s Span) Contains(inner Span) bool {
	return s.Start.Offset <= inner.Start.Offset && inner.End.Offset <= s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Primitive types
	TokenBoolean
	TokenByte
	TokenChar
	TokenShort
	TokenInt
	TokenLong
	TokenFloat
	TokenDouble
	TokenVoid

	// Modifiers
	TokenPublic
	TokenProtected
	TokenPrivate
	TokenStatic
	TokenAbstract
	TokenFinal
	TokenNative
	TokenSynchronized
	TokenTransient
	TokenVolatile
	TokenStrictfp
	TokenDefault
	TokenSealed
	TokenNonSealed

	// Declaration keywords
	TokenPackage
	TokenImport
	TokenClass
	TokenInterface
	TokenEnum
	TokenRecord
	TokenExtends
	TokenImplements
	TokenPermits
	TokenThrows

	// Remaining reserved words
	TokenAssert
	TokenBreak
	TokenCase
	TokenCatch
	TokenConst
	TokenContinue
	TokenDo
	TokenElse
	TokenFinally
	TokenFor
	TokenGoto
	TokenIf
	TokenInstanceof
	TokenNew
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTry
	TokenWhile
	TokenVar
	TokenYield

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon
	TokenAssign
	TokenLT
	TokenGT
	TokenQuestion

	// TokenOperator covers every other operator; Literal holds its text.
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenBoolean:       "boolean",
	TokenByte:          "byte",
	TokenChar:          "char",
	TokenShort:         "short",
	TokenInt:           "int",
	TokenLong:          "long",
	TokenFloat:         "float",
	TokenDouble:        "double",
	TokenVoid:          "void",
	TokenPublic:        "public",
	TokenProtected:     "protected",
	TokenPrivate:       "private",
	TokenStatic:        "static",
	TokenAbstract:      "abstract",
	TokenFinal:         "final",
	TokenNative:        "native",
	TokenSynchronized:  "synchronized",
	TokenTransient:     "transient",
	TokenVolatile:      "volatile",
	TokenStrictfp:      "strictfp",
	TokenDefault:       "default",
	TokenSealed:        "sealed",
	TokenNonSealed:     "non-sealed",
	TokenPackage:       "package",
	TokenImport:        "import",
	TokenClass:         "class",
	TokenInterface:     "interface",
	TokenEnum:          "enum",
	TokenRecord:        "record",
	TokenExtends:       "extends",
	TokenImplements:    "implements",
	TokenPermits:       "permits",
	TokenThrows:        "throws",
	TokenAssert:        "assert",
	TokenBreak:         "break",
	TokenCase:          "case",
	TokenCatch:         "catch",
	TokenConst:         "const",
	TokenContinue:      "continue",
	TokenDo:            "do",
	TokenElse:          "else",
	TokenFinally:       "finally",
	TokenFor:           "for",
	TokenGoto:          "goto",
	TokenIf:            "if",
	TokenInstanceof:    "instanceof",
	TokenNew:           "new",
	TokenReturn:        "return",
	TokenSuper:         "super",
	TokenSwitch:        "switch",
	TokenThis:          "this",
	TokenThrow:         "throw",
	TokenTry:           "try",
	TokenWhile:         "while",
	TokenVar:           "var",
	TokenYield:         "yield",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenAt:            "@",
	TokenColonColon:    "::",
	TokenAssign:        "=",
	TokenLT:            "<",
	TokenGT:            ">",
	TokenQuestion:      "?",
	TokenOperator:      "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether the kind carries no grammatical weight.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment || k == TokenLineComment
}

// IsPrimitiveType reports whether the kind names a primitive type or void.
func (k TokenKind) IsPrimitiveType() bool {
	return k >= TokenBoolean && k <= TokenVoid
}

// IsModifier reports whether the kind is a declaration modifier keyword.
func (k TokenKind) IsModifier() bool {
	return k >= TokenPublic && k <= TokenNonSealed
}

// IsTypeDeclKeyword reports whether the kind starts a type declaration.
// record is contextual; the outline parser checks what follows it.
func (k TokenKind) IsTypeDeclKeyword() bool {
	switch k {
	case TokenClass, TokenInterface, TokenEnum, TokenRecord:
		return true
	}
	return false
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// Is reports whether the token has the given kind.
func (t *Token) Is(kind TokenKind) bool {
	return t != nil && t.Kind == kind
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"assert":       TokenAssert,
	"boolean":      TokenBoolean,
	"break":        TokenBreak,
	"byte":         TokenByte,
	"case":         TokenCase,
	"catch":        TokenCatch,
	"char":         TokenChar,
	"class":        TokenClass,
	"const":        TokenConst,
	"continue":     TokenContinue,
	"default":      TokenDefault,
	"do":           TokenDo,
	"double":       TokenDouble,
	"else":         TokenElse,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"finally":      TokenFinally,
	"float":        TokenFloat,
	"for":          TokenFor,
	"goto":         TokenGoto,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"instanceof":   TokenInstanceof,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"return":       TokenReturn,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"switch":       TokenSwitch,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throw":        TokenThrow,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"try":          TokenTry,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"while":        TokenWhile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
	"var":          TokenVar,
	"yield":        TokenYield,
	"record":       TokenRecord,
	"sealed":       TokenSealed,
	"permits":      TokenPermits,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// IsIdentifierLike reports whether a token of this kind may serve as a name.
// Contextual keywords are only reserved in specific positions.
func (k TokenKind) IsIdentifierLike() bool {
	switch k {
	case TokenIdent, TokenVar, TokenYield, TokenRecord, TokenSealed, TokenPermits:
		return true
	}
	return false
}
