package recovery

import "github.com/dhamidi/stray/java/parser"

// collectRun gathers the nodes that may belong to the declaration ending
// at anchor: the member parts before it, walking backwards, followed by
// the anchor's own children. Error nodes are replaced by their contents
// and trivia is dropped. ok is false when recovery must not be attempted.
func collectRun(file, anchor *parser.Node) (run []*parser.Node, ok bool) {
	path := file.PathTo(anchor)
	if len(path) < 2 {
		return nil, false
	}
	if inClass(path) || hasUnclosedClass(file) {
		return nil, false
	}

	siblings := path[len(path)-2].Children
	at := indexOf(siblings, anchor)
	if at < 0 {
		return nil, false
	}

	var parts []*parser.Node
walk:
	for i := at - 1; i >= 0; i-- {
		sibling := siblings[i]
		if !isMemberPart(sibling) {
			break
		}
		switch sibling.Kind {
		case parser.KindFieldDecl, parser.KindMethodDecl:
			parts = appendReversed(parts, flatten(sibling))
			break walk
		case parser.KindError:
			parts = appendReversed(parts, flatten(sibling))
		default:
			parts = append(parts, sibling)
		}
	}
	reverse(parts)
	parts = append(parts, flatten(anchor)...)

	run = parts[:0]
	for _, part := range parts {
		if !part.IsTrivia() {
			run = append(run, part)
		}
	}
	return run, true
}

// inClass reports whether the last node of path lies between the braces
// of its innermost enclosing class.
func inClass(path []*parser.Node) bool {
	anchor := path[len(path)-1]
	for i := len(path) - 2; i >= 0; i-- {
		if path[i].Kind != parser.KindClassDecl {
			continue
		}
		lbrace, rbrace := path[i].ClassBraces()
		if lbrace == nil || rbrace == nil {
			return false
		}
		return lbrace.Span.End.Offset <= anchor.Span.Start.Offset &&
			anchor.Span.End.Offset <= rbrace.Span.Start.Offset
	}
	return false
}

func hasUnclosedClass(file *parser.Node) bool {
	for _, child := range file.ChildrenOfKind(parser.KindClassDecl) {
		if _, rbrace := child.ClassBraces(); rbrace == nil {
			return true
		}
	}
	return false
}

// isMemberPart reports whether n can be part of a member declaration. A
// completed class ends with the '}' that bounds the run, so it is not.
func isMemberPart(n *parser.Node) bool {
	switch n.Kind {
	case parser.KindPackageDecl, parser.KindImportList, parser.KindImportDecl, parser.KindClassDecl:
		return false
	}
	return !n.IsToken(parser.TokenRBrace)
}

// flatten returns the children of n with nested error nodes replaced by
// their own contents.
func flatten(n *parser.Node) []*parser.Node {
	var out []*parser.Node
	for _, child := range n.Children {
		if child.IsError() {
			out = append(out, flatten(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

func indexOf(nodes []*parser.Node, target *parser.Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

func appendReversed(dst, src []*parser.Node) []*parser.Node {
	for i := len(src) - 1; i >= 0; i-- {
		dst = append(dst, src[i])
	}
	return dst
}

func reverse(nodes []*parser.Node) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
