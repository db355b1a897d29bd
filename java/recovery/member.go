// Package recovery recognizes field and method declarations that were
// written where the parser expected a type declaration, typically after a
// class was closed too early.
//
// The entry point is TryRecoverMember. It reads an outline tree without
// modifying it, keeps no state between calls and may be called from many
// goroutines at once, as long as each tree is not mutated meanwhile.
package recovery

import (
	"fmt"

	"github.com/dhamidi/stray/java/parser"
)

type MemberKind int

const (
	MemberField MemberKind = iota + 1
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	}
	return "unknown"
}

// TextRange is a half-open byte range [Start, End).
type TextRange struct {
	Start int
	End   int
}

func (r TextRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset lies within r.
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

func (r TextRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// MemberShape is a recovered declaration: its kind and the source range
// from its first token through its terminating ';' or '}'.
type MemberShape struct {
	Kind  MemberKind
	Range TextRange
}

func (m MemberShape) String() string {
	return m.Kind.String() + " " + m.Range.String()
}

// TryRecoverMember decides whether the error node anchor, together with
// the siblings before it, forms a complete field or method declaration.
//
// Recovery is not attempted when the anchor sits inside a class body
// delimited by both braces, or when any top-level class of file lacks its
// closing brace. Any other input that does not match a declaration is
// reported as ok == false; TryRecoverMember never panics on malformed
// trees.
func TryRecoverMember(file, anchor *parser.Node) (MemberShape, bool) {
	if file == nil || anchor == nil || !anchor.IsError() {
		return MemberShape{}, false
	}
	run, ok := collectRun(file, anchor)
	if !ok {
		return MemberShape{}, false
	}
	return parseShape(run)
}
