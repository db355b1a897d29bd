// Package diagnose turns an outline tree into diagnostics. Error nodes that
// hold a complete field or method declaration are reported as members
// written outside of a class, with a fix that moves them back inside.
package diagnose

import (
	"sort"

	"github.com/dhamidi/stray/java/parser"
	"github.com/dhamidi/stray/java/recovery"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	}
	return "unknown"
}

type Code string

const (
	CodeMethodOutsideClass Code = "method-outside-class"
	CodeFieldOutsideClass  Code = "field-outside-class"
	CodeSyntax             Code = "syntax"
	CodeMissingRBrace      Code = "missing-rbrace"
	CodeMissingLBrace      Code = "missing-lbrace"
)

// Edit replaces the bytes [Start, End) of a source with NewText.
type Edit struct {
	Start   int
	End     int
	NewText string
}

type Fix struct {
	Title string
	Edits []Edit
}

type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Start    parser.Position
	End      parser.Position

	// Member is set when the diagnostic reports a recovered declaration.
	Member *recovery.MemberShape
	Fixes  []Fix
}

type Option func(*analyzer)

// WithIndent sets the indentation of members moved into a class.
func WithIndent(indent string) Option {
	return func(a *analyzer) {
		a.indent = indent
	}
}

const DefaultIndent = "    "

type analyzer struct {
	file    *parser.Node
	src     []byte
	lines   *LineIndex
	indent  string
	newline string
	diags   []Diagnostic
	seen    map[recovery.TextRange]bool
}

// Analyze reports the problems found in the outline tree of src. It does
// not modify file.
func Analyze(file *parser.Node, src []byte, opts ...Option) []Diagnostic {
	if file == nil {
		return nil
	}
	a := &analyzer{
		file:    file,
		src:     src,
		lines:   NewLineIndex(src),
		indent:  DefaultIndent,
		newline: lineTerminator(src),
		seen:    make(map[recovery.TextRange]bool),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.visit(nil, file)
	sort.SliceStable(a.diags, func(i, j int) bool {
		return a.diags[i].Start.Offset < a.diags[j].Start.Offset
	})
	return a.diags
}

func (a *analyzer) visit(parent, n *parser.Node) {
	switch {
	case n.IsError():
		a.reportError(parent, n)
		return
	case n.Kind == parser.KindClassDecl:
		lbrace, rbrace := n.ClassBraces()
		switch {
		case lbrace == nil:
			// A declaration without a body also keeps members of the
			// file from being recovered.
			a.add(Diagnostic{
				Code:     CodeMissingLBrace,
				Severity: SeverityError,
				Message:  "'{' expected",
				Start:    a.lines.Position(n.Span.Start.Offset),
				End:      a.lines.Position(n.Span.End.Offset),
			})
		case rbrace == nil:
			a.add(Diagnostic{
				Code:     CodeMissingRBrace,
				Severity: SeverityError,
				Message:  "'}' expected",
				Start:    n.Span.End,
				End:      n.Span.End,
			})
		}
	}
	for _, child := range n.Children {
		a.visit(n, child)
	}
}

func (a *analyzer) reportError(parent, n *parser.Node) {
	shape, ok := recovery.TryRecoverMember(a.file, n)
	// A shape ending before the anchor belongs to an earlier declaration
	// that has its own anchor.
	if ok && shape.Range.End >= n.Span.Start.Offset {
		if a.seen[shape.Range] {
			return
		}
		a.seen[shape.Range] = true

		d := Diagnostic{
			Code:     CodeFieldOutsideClass,
			Severity: SeverityError,
			Message:  "field declaration outside of a class",
			Start:    a.lines.Position(shape.Range.Start),
			End:      a.lines.Position(shape.Range.End),
			Member:   &shape,
		}
		if shape.Kind == recovery.MemberMethod {
			d.Code = CodeMethodOutsideClass
			d.Message = "method declaration outside of a class"
		}
		if fix, ok := a.moveIntoClass(shape.Range); ok {
			d.Fixes = append(d.Fixes, fix)
		}
		a.add(d)
		return
	}

	span := n.Span
	if span.Len() == 0 && parent != nil {
		if prev := previousSibling(parent, n); prev != nil {
			span = prev.Span
		}
	}
	msg := "syntax error"
	if n.Error != nil && n.Error.Message != "" {
		msg = n.Error.Message
	}
	a.add(Diagnostic{
		Code:     CodeSyntax,
		Severity: SeverityError,
		Message:  msg,
		Start:    a.lines.Position(span.Start.Offset),
		End:      a.lines.Position(span.End.Offset),
	})
}

func (a *analyzer) add(d Diagnostic) {
	a.diags = append(a.diags, d)
}

// previousSibling returns the declaration directly before n, skipping
// trivia, or nil if there is none.
func previousSibling(parent, n *parser.Node) *parser.Node {
	for i := len(parent.Children) - 1; i > 0; i-- {
		if parent.Children[i] != n {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			prev := parent.Children[j]
			if prev.IsTrivia() {
				continue
			}
			if prev.Kind == parser.KindFieldDecl || prev.Kind == parser.KindMethodDecl {
				return prev
			}
			return nil
		}
	}
	return nil
}
