package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, 'D', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'D' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected 'D' red", cell)
	}

	// Out of bounds writes are ignored
	s.SetCell(-1, 0, 'A', ColorRed)
	s.SetCell(100, 0, 'A', ColorRed)
	s.SetCell(0, 100, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hallo", ColorGreen)

	if !strings.HasPrefix(s.Row(1), "  Hallo") {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
	if s.GetCell(3, 1).Color != ColorGreen {
		t.Error("DrawText should apply color")
	}

	s.DrawText(18, 0, "Hallo", ColorDefault)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'a' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorDefault)

	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' || s.Get(1, 4) != '└' || s.Get(5, 4) != '┘' {
		t.Error("box corners not drawn correctly")
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn correctly")
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc", ColorDefault)
	s.DrawText(0, 1, "def", ColorDefault)

	if got := s.String(); got != "abc\ndef" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Errorf("after resize dimensions = %dx%d", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("resize should clear the buffer")
	}
}
