package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	KindFile
	KindPackageDecl
	KindImportList
	KindImportDecl
	KindClassDecl

	// Members
	KindFieldDecl
	KindMethodDecl
	KindInitializer

	KindModifiers
	KindAnnotation
	KindTypeParameters
	KindTypeArguments

	// Leaves
	KindToken
	KindWhitespace
	KindComment
)

var nodeKindNames = map[NodeKind]string{
	KindError:          "Error",
	KindFile:           "File",
	KindPackageDecl:    "PackageDecl",
	KindImportList:     "ImportList",
	KindImportDecl:     "ImportDecl",
	KindClassDecl:      "ClassDecl",
	KindFieldDecl:      "FieldDecl",
	KindMethodDecl:     "MethodDecl",
	KindInitializer:    "Initializer",
	KindModifiers:      "Modifiers",
	KindAnnotation:     "Annotation",
	KindTypeParameters: "TypeParameters",
	KindTypeArguments:  "TypeArguments",
	KindToken:          "Token",
	KindWhitespace:     "Whitespace",
	KindComment:        "Comment",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Message string
}

// Node is an element of the outline tree. Leaves (Token, Whitespace,
// Comment) carry a Token; every other kind is defined by its children.
// Nodes are not modified once ParseOutline returns.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

// IsTrivia reports whether n is whitespace or a comment.
func (n *Node) IsTrivia() bool {
	return n.Kind == KindWhitespace || n.Kind == KindComment
}

// IsToken reports whether n is a token leaf of the given kind.
func (n *Node) IsToken(kind TokenKind) bool {
	return n.Kind == KindToken && n.Token.Is(kind)
}

// TokenKind returns the kind of a token leaf, or TokenError for any
// other node.
func (n *Node) TokenKind() TokenKind {
	if n.Kind != KindToken || n.Token == nil {
		return TokenError
	}
	return n.Token.Kind
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstToken returns the first direct token child of the given kind.
func (n *Node) FirstToken(kind TokenKind) *Node {
	for _, child := range n.Children {
		if child.IsToken(kind) {
			return child
		}
	}
	return nil
}

// LastToken returns the last direct token child of the given kind.
func (n *Node) LastToken(kind TokenKind) *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if n.Children[i].IsToken(kind) {
			return n.Children[i]
		}
	}
	return nil
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Text returns the source text covered by n, rebuilt from its leaves.
func (n *Node) Text() string {
	var sb strings.Builder
	n.Walk(func(node *Node) bool {
		if node.Token != nil {
			sb.WriteString(node.Token.Literal)
		}
		return true
	})
	return sb.String()
}

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// PathTo returns the chain of nodes from n down to target, both included,
// or nil when target is not part of the tree rooted at n.
func (n *Node) PathTo(target *Node) []*Node {
	if n == target {
		return []*Node{n}
	}
	if !n.Span.Contains(target.Span) {
		return nil
	}
	for _, child := range n.Children {
		if path := child.PathTo(target); path != nil {
			return append([]*Node{n}, path...)
		}
	}
	return nil
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	var sb strings.Builder
	n.writeIndent(&sb, indent, showPositions)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil && n.Kind == KindToken {
		sb.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		if child.IsTrivia() {
			continue
		}
		child.writeIndent(sb, indent+1, showPositions)
	}
}

// ClassBraces returns the brace tokens delimiting the body of a ClassDecl.
// rbrace is nil when the body was never closed; both are nil for a
// declaration without a body.
func (n *Node) ClassBraces() (lbrace, rbrace *Node) {
	lbrace = n.FirstToken(TokenLBrace)
	if lbrace == nil {
		return nil, nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		child := n.Children[i]
		if child.IsTrivia() {
			continue
		}
		if child != lbrace && child.IsToken(TokenRBrace) {
			rbrace = child
		}
		break
	}
	return lbrace, rbrace
}
