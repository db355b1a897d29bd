package diagnose

import "testing"

func TestLineIndexPosition(t *testing.T) {
	x := NewLineIndex([]byte("ab\ncd\n\nef"))
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
		{100, 4, 3},
		{-5, 1, 1},
	}

	for _, tt := range tests {
		p := x.Position(tt.offset)
		if p.Line != tt.line || p.Column != tt.column {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, p.Line, p.Column, tt.line, tt.column)
		}
	}
}

func TestLineIndexUTF16(t *testing.T) {
	// é is two bytes and one UTF-16 unit; 😀 is four bytes and two units.
	src := "aé😀b\nc"
	x := NewLineIndex([]byte(src))
	tests := []struct {
		offset    int
		line      int
		character int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{3, 0, 2},
		{7, 0, 4},
		{8, 0, 5},
		{9, 1, 0},
		{10, 1, 1},
	}

	for _, tt := range tests {
		line, character := x.UTF16Position(tt.offset)
		if line != tt.line || character != tt.character {
			t.Errorf("UTF16Position(%d) = %d:%d, want %d:%d", tt.offset, line, character, tt.line, tt.character)
		}
		if got := x.UTF16Offset(tt.line, tt.character); got != tt.offset {
			t.Errorf("UTF16Offset(%d, %d) = %d, want %d", tt.line, tt.character, got, tt.offset)
		}
	}

	if got := x.UTF16Offset(0, 99); got != 8 {
		t.Errorf("UTF16Offset past line end = %d, want 8", got)
	}
	if got := x.UTF16Offset(7, 0); got != len(src) {
		t.Errorf("UTF16Offset past last line = %d, want %d", got, len(src))
	}
}
