package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, '@')
	if got := s.Get(3, 2); got != '@' {
		t.Errorf("Get(3, 2) = %q, want '@'", got)
	}

	// Out of bounds writes are ignored, reads return space
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, 5, 'x')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("out-of-bounds Get = %q, want space", got)
	}
}

func TestScreenSetCellColor(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetCell(1, 1, '#', ColorRed)
	cell := s.GetCell(1, 1)
	if cell.Rune != '#' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, want {'#' ColorRed}", cell)
	}

	if got := s.GetCell(99, 99); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("out-of-bounds GetCell = %+v, want default space", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetCell(0, 0, 'x', ColorGreen)

	s.Clear()

	cell := s.GetCell(0, 0)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("Clear left cell %+v", cell)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 3, 'A')

	s.Resize(20, 20)

	if got := s.Get(2, 3); got != 'A' {
		t.Errorf("Resize should preserve content, Get(2, 3) = %q", got)
	}
	if s.Width() != 20 || s.Height() != 20 {
		t.Errorf("size after resize = %dx%d, want 20x20", s.Width(), s.Height())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "hi")

	if s.Get(2, 1) != 'h' || s.Get(3, 1) != 'i' {
		t.Error("DrawText did not write expected runes")
	}

	// Clipped text should not panic
	s.DrawText(8, 1, "long text")
	if s.Get(9, 1) != 'o' {
		t.Errorf("clipped text should keep in-bounds runes, got %q", s.Get(9, 1))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	got := s.String()
	want := "a  \n  b"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if strings.Count(got, "\n") != 1 {
		t.Errorf("String() should have height-1 newlines, got %d", strings.Count(got, "\n"))
	}
}

func TestScreenDrawLines(t *testing.T) {
	s := NewScreen(10, 10)

	s.DrawHLine(0, 5, 10, '=')
	for x := 0; x < 10; x++ {
		if s.Get(x, 5) != '=' {
			t.Fatalf("DrawHLine missing rune at x=%d", x)
		}
	}

	s.DrawVLine(3, 0, 10, '|')
	for y := 0; y < 10; y++ {
		if s.Get(3, y) != '|' {
			t.Fatalf("DrawVLine missing rune at y=%d", y)
		}
	}
}
