package diagnose

import (
	"sort"
	"unicode/utf8"

	"github.com/dhamidi/stray/java/parser"
)

// LineIndex converts between byte offsets and line/column positions of a
// source. Columns are 1-based byte columns, matching the lexer; the UTF16
// methods use the 0-based line and UTF-16 character positions of LSP.
type LineIndex struct {
	src    []byte
	starts []int
}

func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

func (x *LineIndex) clamp(offset int) int {
	return max(0, min(offset, len(x.src)))
}

// line returns the 0-based line holding offset.
func (x *LineIndex) line(offset int) int {
	return sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1
}

func (x *LineIndex) Position(offset int) parser.Position {
	offset = x.clamp(offset)
	line := x.line(offset)
	return parser.Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - x.starts[line] + 1,
	}
}

// UTF16Position returns the LSP position of offset.
func (x *LineIndex) UTF16Position(offset int) (line, character int) {
	offset = x.clamp(offset)
	line = x.line(offset)
	for _, r := range string(x.src[x.starts[line]:offset]) {
		character += utf16Len(r)
	}
	return line, character
}

// UTF16Offset returns the byte offset of an LSP position. Positions past
// the end of a line map to its end.
func (x *LineIndex) UTF16Offset(line, character int) int {
	if line < 0 {
		return 0
	}
	if line >= len(x.starts) {
		return len(x.src)
	}
	offset := x.starts[line]
	for character > 0 && offset < len(x.src) && x.src[offset] != '\n' {
		r, size := utf8.DecodeRune(x.src[offset:])
		character -= utf16Len(r)
		offset += size
	}
	return offset
}

func utf16Len(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
