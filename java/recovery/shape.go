package recovery

import "github.com/dhamidi/stray/java/parser"

// shapeParser matches a run against the skeleton
//
//	Modifiers? TypeParameters? Type Name (FieldRest | MethodRest)
//
// Each step takes the index of the next node to examine and returns the
// index after what it consumed, with ok == false when the run cannot be a
// declaration.
type shapeParser struct {
	run []*parser.Node
}

func parseShape(run []*parser.Node) (MemberShape, bool) {
	if len(run) == 0 {
		return MemberShape{}, false
	}
	s := &shapeParser{run: run}

	i := s.modifiers(0)
	i, generic := s.typeParameters(i)
	i, ok := s.typ(i)
	if !ok || !s.isName(i) {
		return MemberShape{}, false
	}
	i++

	kind := MemberField
	last, ok := -1, false
	if !generic {
		last, ok = s.field(i)
	}
	if !ok {
		kind = MemberMethod
		last, ok = s.method(i)
	}
	if !ok {
		return MemberShape{}, false
	}
	return MemberShape{
		Kind: kind,
		Range: TextRange{
			Start: run[0].Span.Start.Offset,
			End:   run[last].Span.End.Offset,
		},
	}, true
}

func (s *shapeParser) at(i int) *parser.Node {
	if i < 0 || i >= len(s.run) {
		return nil
	}
	return s.run[i]
}

func (s *shapeParser) isToken(i int, kind parser.TokenKind) bool {
	n := s.at(i)
	return n != nil && n.IsToken(kind)
}

func (s *shapeParser) isKind(i int, kind parser.NodeKind) bool {
	n := s.at(i)
	return n != nil && n.Kind == kind
}

func (s *shapeParser) isName(i int) bool {
	n := s.at(i)
	return n != nil && n.TokenKind().IsIdentifierLike()
}

// modifiers skips a modifier list. Bare modifier keywords and annotations
// are accepted as well.
func (s *shapeParser) modifiers(i int) int {
	for {
		n := s.at(i)
		switch {
		case n == nil:
			return i
		case n.Kind == parser.KindModifiers, n.Kind == parser.KindAnnotation, n.TokenKind().IsModifier():
			i++
		default:
			return i
		}
	}
}

func (s *shapeParser) typeParameters(i int) (int, bool) {
	if s.isKind(i, parser.KindTypeParameters) {
		return i + 1, true
	}
	return i, false
}

// typeArguments skips any type argument or type parameter lists.
func (s *shapeParser) typeArguments(i int) int {
	for s.isKind(i, parser.KindTypeArguments) || s.isKind(i, parser.KindTypeParameters) {
		i++
	}
	return i
}

// typ matches a primitive type, or a name with optional qualification
// steps, followed by array dimensions.
func (s *shapeParser) typ(i int) (int, bool) {
	n := s.at(i)
	switch {
	case n == nil:
		return i, false
	case n.TokenKind().IsPrimitiveType():
		i++
	case n.TokenKind().IsIdentifierLike():
		i = s.typeArguments(i + 1)
		for s.isToken(i, parser.TokenDot) {
			i = s.modifiers(i + 1)
			if !s.isName(i) {
				return i, false
			}
			i = s.typeArguments(i + 1)
		}
	default:
		return i, false
	}
	return s.dims(i), true
}

// dims skips '[' ']' pairs, each optionally followed by annotations.
func (s *shapeParser) dims(i int) int {
	for s.isToken(i, parser.TokenLBracket) && s.isToken(i+1, parser.TokenRBracket) {
		i += 2
		if s.isKind(i, parser.KindModifiers) {
			i++
		}
	}
	return i
}

// field matches the rest of a field declaration and returns the index of
// its terminating ';'.
func (s *shapeParser) field(i int) (int, bool) {
	i = s.dims(i)
	switch {
	case s.isToken(i, parser.TokenSemicolon):
		return i, true
	case s.isToken(i, parser.TokenAssign):
		braces := 0
		for i++; i < len(s.run); i++ {
			switch s.run[i].TokenKind() {
			case parser.TokenLBrace:
				braces++
			case parser.TokenRBrace:
				braces--
				if braces < 0 {
					return i, false
				}
			case parser.TokenSemicolon:
				if braces == 0 {
					return i, true
				}
			}
		}
	}
	return i, false
}

// method matches the rest of a method declaration and returns the index
// of its terminating ';' or closing '}'.
func (s *shapeParser) method(i int) (int, bool) {
	if !s.isToken(i, parser.TokenLParen) {
		return i, false
	}
	i, ok := s.balanced(i, parser.TokenLParen, parser.TokenRParen)
	if !ok {
		return i, false
	}
	i = s.modifiers(i + 1)
	i = s.dims(i)

	if s.isToken(i, parser.TokenThrows) {
		if i, ok = s.throwsList(i + 1); !ok {
			return i, false
		}
	}

	switch {
	case s.isToken(i, parser.TokenSemicolon):
		return i, true
	case s.isToken(i, parser.TokenLBrace):
		return s.balanced(i, parser.TokenLBrace, parser.TokenRBrace)
	}
	return i, false
}

// throwsList matches one or more comma separated qualified type names.
func (s *shapeParser) throwsList(i int) (int, bool) {
	for {
		if !s.isName(i) {
			return i, false
		}
		i = s.typeArguments(i + 1)
		for s.isToken(i, parser.TokenDot) {
			i = s.modifiers(i + 1)
			if !s.isName(i) {
				return i, false
			}
			i = s.typeArguments(i + 1)
		}
		if !s.isToken(i, parser.TokenComma) {
			return i, true
		}
		i++
	}
}

// balanced starts at an opening token and returns the index of the token
// that brings the nesting depth back to zero.
func (s *shapeParser) balanced(i int, opening, closing parser.TokenKind) (int, bool) {
	depth := 0
	for ; i < len(s.run); i++ {
		switch s.run[i].TokenKind() {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return i, false
}
