package diagnose

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/stray/java/parser"
	"github.com/dhamidi/stray/java/recovery"
)

var (
	ErrOverlappingEdits = errors.New("overlapping edits")
	ErrEditOutOfRange   = errors.New("edit out of range")
)

const MoveIntoClassTitle = "Move member into class"

// moveIntoClass builds the fix that cuts the member at r and pastes it
// before the closing brace of the nearest preceding top-level class, or of
// the nearest following one.
func (a *analyzer) moveIntoClass(r recovery.TextRange) (Fix, bool) {
	var before, after *parser.Node
	for _, cls := range a.file.ChildrenOfKind(parser.KindClassDecl) {
		if _, rbrace := cls.ClassBraces(); rbrace == nil {
			continue
		}
		switch {
		case cls.Span.End.Offset <= r.Start:
			before = cls
		case cls.Span.Start.Offset >= r.End && after == nil:
			after = cls
		}
	}
	target := before
	if target == nil {
		target = after
	}
	if target == nil {
		return Fix{}, false
	}

	r = a.withLeadingComments(r)
	_, rbrace := target.ClassBraces()
	insert := a.insertion(rbrace.Span.Start.Offset, a.reindent(r))
	start, end := a.cutRange(r)
	return Fix{
		Title: MoveIntoClassTitle,
		Edits: []Edit{insert, {Start: start, End: end}},
	}, true
}

// withLeadingComments extends r back over the comments written on the
// lines directly above it, such as its doc comment. A blank line, or code
// before a comment on its line, ends the extension.
func (a *analyzer) withLeadingComments(r recovery.TextRange) recovery.TextRange {
	var comments []*parser.Node
	a.file.Walk(func(n *parser.Node) bool {
		if n.Kind == parser.KindComment && n.Span.End.Offset <= r.Start {
			comments = append(comments, n)
		}
		return n.Span.Start.Offset < r.Start
	})

	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		gap := string(a.src[c.Span.End.Offset:r.Start])
		if strings.TrimSpace(gap) != "" {
			break
		}
		if strings.Count(gap, "\n") > 1 {
			break
		}
		if strings.TrimSpace(string(a.src[a.lineStart(c.Span.Start.Offset):c.Span.Start.Offset])) != "" {
			break
		}
		r.Start = c.Span.Start.Offset
	}
	return r
}

// lineTerminator returns the line break used by most lines of src.
func lineTerminator(src []byte) string {
	crlf := bytes.Count(src, []byte("\r\n"))
	if crlf > 0 && crlf >= bytes.Count(src, []byte("\n"))-crlf {
		return "\r\n"
	}
	return "\n"
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func (a *analyzer) lineStart(offset int) int {
	for offset > 0 && a.src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// cutRange widens r to its whole line when nothing else is written on it.
func (a *analyzer) cutRange(r recovery.TextRange) (start, end int) {
	start = r.Start
	for start > 0 && isBlank(a.src[start-1]) {
		start--
	}
	if start > 0 && a.src[start-1] != '\n' {
		return r.Start, r.End
	}
	end = r.End
	for end < len(a.src) && isBlank(a.src[end]) {
		end++
	}
	if end < len(a.src) && a.src[end] != '\n' {
		return r.Start, r.End
	}
	if end < len(a.src) {
		end++
	}
	return start, end
}

// reindent returns the member text with every non-blank line prefixed by
// the configured indentation, relative to the member's original column.
func (a *analyzer) reindent(r recovery.TextRange) string {
	prefix := string(a.src[a.lineStart(r.Start):r.Start])
	if strings.TrimSpace(prefix) != "" {
		prefix = ""
	}
	lines := strings.Split(string(a.src[r.Start:r.End]), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if i > 0 {
			line = strings.TrimPrefix(line, prefix)
		}
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = a.indent + line
	}
	return strings.Join(lines, a.newline)
}

// insertion places text on its own line before the brace at offset.
func (a *analyzer) insertion(offset int, text string) Edit {
	start := offset
	for start > 0 && isBlank(a.src[start-1]) {
		start--
	}
	if start == 0 || a.src[start-1] == '\n' {
		return Edit{Start: start, End: start, NewText: text + a.newline}
	}
	return Edit{Start: offset, End: offset, NewText: a.newline + text + a.newline}
}

// Apply returns src with the edits applied. Edits refer to offsets of the
// original src; inserts at the same offset keep their relative order.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var out []byte
	last := 0
	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return nil, fmt.Errorf("[%d,%d) in %d bytes: %w", e.Start, e.End, len(src), ErrEditOutOfRange)
		}
		if i > 0 && e.Start < sorted[i-1].End {
			return nil, fmt.Errorf("[%d,%d) and [%d,%d): %w",
				sorted[i-1].Start, sorted[i-1].End, e.Start, e.End, ErrOverlappingEdits)
		}
		out = append(out, src[last:e.Start]...)
		out = append(out, e.NewText...)
		last = e.End
	}
	return append(out, src[last:]...), nil
}

// FixAll applies the first fix of every diagnostic that has one and
// returns the new source along with the number of fixes applied.
func FixAll(src []byte, diags []Diagnostic) ([]byte, int, error) {
	var edits []Edit
	applied := 0
	for _, d := range diags {
		if len(d.Fixes) == 0 {
			continue
		}
		edits = append(edits, d.Fixes[0].Edits...)
		applied++
	}
	if applied == 0 {
		return src, 0, nil
	}
	out, err := Apply(src, edits)
	if err != nil {
		return nil, 0, err
	}
	return out, applied, nil
}
