package parser

import (
	"io"
	"strings"
)

// ExpectedTypeDecl is the message of error nodes that mark declarations
// found outside of any type declaration.
const ExpectedTypeDecl = "class, interface, enum, or record expected"

type Option func(*outliner)

func WithFile(path string) Option {
	return func(p *outliner) {
		p.file = path
	}
}

// ParseOutline reads r completely and returns its outline tree.
func ParseOutline(r io.Reader, opts ...Option) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseOutlineBytes(data, opts...), nil
}

// ParseOutlineBytes builds the declaration-level tree of a Java file.
//
// The tree keeps every byte of src: whitespace and comments become leaves,
// and anything that cannot be placed is wrapped in an Error node. Members
// found at file level are kept as FieldDecl or MethodDecl nodes followed by
// an empty Error node, the way an IDE parser reports them.
func ParseOutlineBytes(src []byte, opts ...Option) *Node {
	p := &outliner{}
	for _, opt := range opts {
		opt(p)
	}
	p.tokens = Tokenize(src, p.file)
	p.eof = Position{File: p.file, Offset: len(src), Line: 1, Column: 1}
	if n := len(p.tokens); n > 0 {
		p.eof = p.tokens[n-1].Span.End
	}
	return p.parseFile()
}

type outliner struct {
	file   string
	tokens []Token
	pos    int
	eof    Position
}

// peek returns the next significant token without consuming trivia.
func (p *outliner) peek() *Token {
	return p.peekN(0)
}

func (p *outliner) peekN(n int) *Token {
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].Kind.IsTrivia() {
			continue
		}
		if n == 0 {
			return &p.tokens[i]
		}
		n--
	}
	return nil
}

func (p *outliner) peekKind() TokenKind {
	if tok := p.peek(); tok != nil {
		return tok.Kind
	}
	return TokenEOF
}

// trivia consumes whitespace and comments up to the next significant token.
func (p *outliner) trivia() []*Node {
	var nodes []*Node
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind.IsTrivia() {
		nodes = append(nodes, leaf(&p.tokens[p.pos]))
		p.pos++
	}
	return nodes
}

// take consumes the trivia before the next significant token and the token
// itself, appending both to n.
func (p *outliner) take(n *Node) *Node {
	for _, t := range p.trivia() {
		n.AddChild(t)
	}
	if p.pos >= len(p.tokens) {
		return nil
	}
	tok := leaf(&p.tokens[p.pos])
	p.pos++
	n.AddChild(tok)
	return tok
}

func leaf(tok *Token) *Node {
	kind := KindToken
	switch tok.Kind {
	case TokenWhitespace:
		kind = KindWhitespace
	case TokenComment, TokenLineComment:
		kind = KindComment
	}
	return &Node{Kind: kind, Span: tok.Span, Token: tok}
}

// finish sets the span of n from its first and last child.
func finish(n *Node) *Node {
	if len(n.Children) > 0 {
		n.Span = Span{
			Start: n.Children[0].Span.Start,
			End:   n.Children[len(n.Children)-1].Span.End,
		}
	}
	return n
}

func (p *outliner) parseFile() *Node {
	file := &Node{Kind: KindFile}
	for {
		for _, t := range p.trivia() {
			file.AddChild(t)
		}
		tok := p.peek()
		if tok == nil {
			break
		}
		switch tok.Kind {
		case TokenPackage:
			file.AddChild(p.parseStatement(KindPackageDecl))
		case TokenImport:
			file.AddChild(p.parseImports())
		case TokenRBrace, TokenSemicolon:
			p.take(file)
		default:
			p.parseTopLevel(file)
		}
	}
	finish(file)
	if len(file.Children) == 0 {
		file.Span = Span{Start: p.eof, End: p.eof}
	}
	return file
}

// parseStatement consumes tokens up to and including the next ';'.
func (p *outliner) parseStatement(kind NodeKind) *Node {
	n := &Node{Kind: kind}
	for {
		tok := p.take(n)
		if tok == nil || tok.IsToken(TokenSemicolon) {
			break
		}
		if next := p.peekKind(); next == TokenImport || next == TokenPackage || next == TokenRBrace || p.atTypeDecl() {
			break
		}
	}
	return finish(n)
}

func (p *outliner) parseImports() *Node {
	list := &Node{Kind: KindImportList}
	list.AddChild(p.parseStatement(KindImportDecl))
	for p.peekKind() == TokenImport {
		for _, t := range p.trivia() {
			list.AddChild(t)
		}
		list.AddChild(p.parseStatement(KindImportDecl))
	}
	return finish(list)
}

// parseLead parses the modifiers and type parameters that may start a
// declaration, together with the trivia that follows each of them.
func (p *outliner) parseLead() []*Node {
	var lead []*Node
	if mods := p.parseModifiers(); mods != nil {
		lead = append(lead, mods)
		lead = append(lead, p.trivia()...)
	}
	if p.peekKind() == TokenLT {
		if tparams := p.parseAngles(KindTypeParameters); tparams != nil {
			lead = append(lead, tparams)
			lead = append(lead, p.trivia()...)
		}
	}
	return lead
}

func (p *outliner) parseTopLevel(file *Node) {
	lead := p.parseLead()
	if p.atTypeDecl() {
		file.AddChild(p.parseClass(lead))
		return
	}

	r := p.parseRun(true)
	if r.complete {
		decl := &Node{Kind: KindFieldDecl}
		if r.method {
			decl.Kind = KindMethodDecl
		}
		var tail []*Node
		decl.Children, tail = splitTrailingTrivia(append(lead, r.nodes...))
		finish(decl)
		file.AddChild(decl)
		file.AddChild(&Node{
			Kind:  KindError,
			Span:  Span{Start: decl.Span.End, End: decl.Span.End},
			Error: &Error{Message: ExpectedTypeDecl},
		})
		for _, t := range tail {
			file.AddChild(t)
		}
		return
	}

	for _, n := range lead {
		file.AddChild(n)
	}
	errNode := &Node{Kind: KindError, Error: &Error{Message: ExpectedTypeDecl}}
	errNode.Children = r.nodes
	if len(errNode.Children) == 0 {
		at := p.eof
		if tok := p.peek(); tok != nil {
			at = tok.Span.Start
		}
		errNode.Span = Span{Start: at, End: at}
		if len(lead) == 0 {
			// Nothing was consumed; skip one token to guarantee progress.
			p.take(errNode)
			finish(errNode)
		}
	} else {
		finish(errNode)
	}
	file.AddChild(errNode)
}

// splitTrailingTrivia separates the whitespace and comments at the end of
// nodes from the rest.
func splitTrailingTrivia(nodes []*Node) (body, tail []*Node) {
	i := len(nodes)
	for i > 0 && nodes[i-1].IsTrivia() {
		i--
	}
	return nodes[:i], nodes[i:]
}

func (p *outliner) parseModifiers() *Node {
	var mods *Node
	for {
		kind := p.peekKind()
		isAnnotation := kind == TokenAt && p.peekN(1) != nil && p.peekN(1).Kind != TokenInterface
		if !kind.IsModifier() && !isAnnotation {
			break
		}
		if mods == nil {
			mods = &Node{Kind: KindModifiers}
		}
		if isAnnotation {
			for _, t := range p.trivia() {
				mods.AddChild(t)
			}
			mods.AddChild(p.parseAnnotation())
		} else {
			p.take(mods)
		}
	}
	if mods == nil {
		return nil
	}
	return finish(mods)
}

// parseAnnotation parses '@' Name ('.' Name)* and an optional argument
// list. The caller has checked that the next token is '@'.
func (p *outliner) parseAnnotation() *Node {
	n := &Node{Kind: KindAnnotation}
	p.take(n)
	if p.peekKind().IsIdentifierLike() {
		p.take(n)
		for p.peekKind() == TokenDot && p.peekN(1) != nil && p.peekN(1).Kind.IsIdentifierLike() {
			p.take(n)
			p.take(n)
		}
	}
	if p.peekKind() == TokenLParen {
		depth := 0
		for {
			tok := p.take(n)
			if tok == nil {
				break
			}
			switch tok.TokenKind() {
			case TokenLParen:
				depth++
			case TokenRParen:
				depth--
			}
			if depth == 0 {
				break
			}
		}
	}
	return finish(n)
}

// parseAngles parses a balanced '<' ... '>' group. It restores the input
// position and returns nil when the group is not closed before a token
// that cannot appear in a type argument list.
func (p *outliner) parseAngles(kind NodeKind) *Node {
	start := p.pos
	n := &Node{Kind: kind}
	depth := 0
	for {
		tok := p.take(n)
		if tok == nil {
			p.pos = start
			return nil
		}
		switch tok.TokenKind() {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenOperator:
			if strings.Trim(tok.Token.Literal, ">") == "" {
				depth -= len(tok.Token.Literal)
			} else {
				p.pos = start
				return nil
			}
		case TokenSemicolon, TokenLBrace, TokenRBrace, TokenLParen, TokenRParen, TokenAssign:
			p.pos = start
			return nil
		}
		if depth < 0 {
			p.pos = start
			return nil
		}
		if depth == 0 {
			return finish(n)
		}
	}
}

// atTypeDecl reports whether the next tokens start a type declaration,
// possibly after modifiers.
func (p *outliner) atTypeDecl() bool {
	i := 0
	for {
		tok := p.peekN(i)
		if tok == nil {
			return false
		}
		switch {
		case tok.Kind.IsModifier():
			i++
			continue
		case tok.Kind == TokenAt:
			next := p.peekN(i + 1)
			if next != nil && next.Kind == TokenInterface {
				return true
			}
			i = p.skipAnnotationAhead(i)
			continue
		case tok.Kind == TokenClass, tok.Kind == TokenInterface, tok.Kind == TokenEnum:
			return true
		case tok.Kind == TokenRecord:
			next := p.peekN(i + 1)
			return next != nil && next.Kind.IsIdentifierLike()
		}
		return false
	}
}

// skipAnnotationAhead returns the lookahead index after the annotation
// starting at lookahead index i.
func (p *outliner) skipAnnotationAhead(i int) int {
	i++
	for {
		tok := p.peekN(i)
		if tok == nil || !tok.Kind.IsIdentifierLike() {
			break
		}
		i++
		if dot := p.peekN(i); dot == nil || dot.Kind != TokenDot {
			break
		}
		i++
	}
	if tok := p.peekN(i); tok != nil && tok.Kind == TokenLParen {
		depth := 0
		for tok := p.peekN(i); tok != nil; tok = p.peekN(i) {
			i++
			if tok.Kind == TokenLParen {
				depth++
			} else if tok.Kind == TokenRParen {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	return i
}

func (p *outliner) parseClass(lead []*Node) *Node {
	cls := &Node{Kind: KindClassDecl, Children: lead}
	var keyword TokenKind
	for {
		kind := p.peekKind()
		if kind == TokenLBrace || kind == TokenEOF || kind == TokenRBrace || kind == TokenSemicolon {
			break
		}
		if kind == TokenPackage || kind == TokenImport {
			return finish(cls)
		}
		tok := p.take(cls)
		if keyword == TokenEOF && tok.TokenKind().IsTypeDeclKeyword() {
			keyword = tok.TokenKind()
		}
	}
	if p.peekKind() != TokenLBrace {
		if p.peekKind() == TokenSemicolon {
			p.take(cls)
		}
		return finish(cls)
	}
	p.take(cls)

	if keyword == TokenEnum {
		p.parseEnumConstants(cls)
	}
	p.parseClassBody(cls)
	if p.peekKind() == TokenRBrace {
		p.take(cls)
	}
	return finish(cls)
}

// parseEnumConstants consumes the constant list of an enum body up to and
// including the ';' that ends it.
func (p *outliner) parseEnumConstants(cls *Node) {
	depth := 0
	for {
		kind := p.peekKind()
		if kind == TokenEOF || (depth == 0 && kind == TokenRBrace) {
			return
		}
		p.take(cls)
		switch kind {
		case TokenLParen, TokenLBrace, TokenLBracket:
			depth++
		case TokenRParen, TokenRBrace, TokenRBracket:
			depth--
		case TokenSemicolon:
			if depth == 0 {
				return
			}
		}
	}
}

func (p *outliner) parseClassBody(cls *Node) {
	for {
		for _, t := range p.trivia() {
			cls.AddChild(t)
		}
		switch p.peekKind() {
		case TokenEOF, TokenRBrace:
			return
		case TokenSemicolon:
			p.take(cls)
			continue
		}
		member, tail := p.parseMember()
		cls.AddChild(member)
		for _, t := range tail {
			cls.AddChild(t)
		}
	}
}

// parseMember parses one class body declaration. Trivia that ends up
// after it belongs to the class and is returned separately.
func (p *outliner) parseMember() (*Node, []*Node) {
	lead := p.parseLead()
	if p.atTypeDecl() {
		return p.parseClass(lead), nil
	}
	if p.peekKind() == TokenLBrace {
		init := &Node{Kind: KindInitializer, Children: lead}
		p.takeBalanced(init)
		return finish(init), nil
	}

	r := p.parseRun(false)
	decl := &Node{Kind: KindFieldDecl}
	var tail []*Node
	decl.Children, tail = splitTrailingTrivia(append(lead, r.nodes...))
	switch {
	case !r.complete:
		decl.Kind = KindError
		decl.Error = &Error{Message: "';' expected"}
		if len(r.nodes) == 0 {
			decl.Error.Message = "identifier expected"
		}
	case r.method:
		decl.Kind = KindMethodDecl
	}
	return finish(decl), tail
}

// takeBalanced consumes a '{' ... '}' block into n.
func (p *outliner) takeBalanced(n *Node) {
	depth := 0
	for {
		tok := p.take(n)
		if tok == nil {
			return
		}
		switch tok.TokenKind() {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			depth--
		}
		if depth == 0 {
			return
		}
	}
}

type run struct {
	nodes    []*Node
	complete bool
	method   bool
}

// parseRun consumes the tokens of one member declaration. The run ends
// after a ';' at nesting depth zero or after the '}' closing a body, and
// stops early (incomplete) at the '}' closing the enclosing class. At file
// level it also stops before package, import and type declarations.
//
// Before any initializer, '<' groups that follow a name become
// TypeArguments and annotations become Modifiers, so the result has the
// same shape as the nodes an IDE tree holds for a declaration.
func (p *outliner) parseRun(topLevel bool) run {
	var r run
	holder := &Node{}
	depth := 0
	assigned := false
	var prev TokenKind = TokenEOF

	for {
		tok := p.peek()
		if tok == nil {
			break
		}
		if depth == 0 {
			if tok.Kind == TokenRBrace {
				break
			}
			if topLevel && prev != TokenDot && (tok.Kind == TokenPackage || tok.Kind == TokenImport || p.atTypeDecl()) {
				break
			}
		}

		if depth == 0 && !assigned {
			if tok.Kind == TokenLT && prev.IsIdentifierLike() {
				holder.Children = append(holder.Children, p.trivia()...)
				if args := p.parseAngles(KindTypeArguments); args != nil {
					holder.AddChild(args)
					prev = TokenGT
					continue
				}
			}
			if tok.Kind == TokenAt {
				holder.Children = append(holder.Children, p.trivia()...)
				if mods := p.parseModifiers(); mods != nil {
					holder.AddChild(mods)
					prev = TokenAt
					continue
				}
			}
		}

		node := p.take(holder)
		kind := node.TokenKind()
		prev = kind
		switch kind {
		case TokenLParen:
			if depth == 0 && !assigned {
				r.method = true
			}
			depth++
		case TokenLBracket:
			depth++
		case TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket:
			if depth > 0 {
				depth--
			}
		case TokenRBrace:
			depth--
			if depth == 0 && !assigned {
				r.complete = true
			}
		case TokenAssign:
			if depth == 0 {
				assigned = true
			}
		case TokenSemicolon:
			if depth == 0 {
				r.complete = true
			}
		}
		if r.complete {
			break
		}
	}
	r.nodes = holder.Children
	return r
}
