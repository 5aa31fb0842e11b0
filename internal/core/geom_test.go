package core

import "testing"

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 4, 4), true},
		{"touching right edge", NewRect(10, 0, 5, 5), false},
		{"touching bottom edge", NewRect(0, 10, 5, 5), false},
		{"disjoint", NewRect(20, 20, 5, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.b, got, tt.want)
			}
			// Intersection is symmetric
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("reverse Intersects(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	if !r.Contains(10, 10) {
		t.Error("Contains should include top-left corner")
	}
	if r.Contains(15, 15) {
		t.Error("Contains should exclude bottom-right corner")
	}
	if r.Contains(9, 12) {
		t.Error("Contains should exclude points left of the rect")
	}
}

func TestRectFIntersects(t *testing.T) {
	a := NewRectF(0, 0, 10, 10)

	if !a.Intersects(NewRectF(9.5, 9.5, 5, 5)) {
		t.Error("overlapping float rects should intersect")
	}
	if a.Intersects(NewRectF(10, 0, 5, 5)) {
		t.Error("edge-touching float rects should not intersect")
	}
}

func TestRectFDeflate(t *testing.T) {
	r := NewRectF(10, 20, 30, 40).Deflate(4)

	if r.X != 14 || r.Y != 24 || r.W != 22 || r.H != 32 {
		t.Errorf("Deflate(4) = %+v, want {14 24 22 32}", r)
	}
}

func TestRectFContainsRect(t *testing.T) {
	outer := NewRectF(0, 100, 50, 140)

	if !outer.ContainsRect(NewRectF(10, 120, 20, 20)) {
		t.Error("inner rect should be contained")
	}
	if outer.ContainsRect(NewRectF(10, 90, 20, 20)) {
		t.Error("rect extending above should not be contained")
	}
	if outer.ContainsRect(NewRectF(10, 230, 20, 20)) {
		t.Error("rect extending below should not be contained")
	}
}

func TestCircleIntersectsRect(t *testing.T) {
	r := NewRectF(10, 10, 20, 20)

	tests := []struct {
		name       string
		cx, cy, cr float64
		want       bool
	}{
		{"center inside", 20, 20, 1, true},
		{"overlapping edge", 5, 20, 6, true},
		{"near corner outside", 5, 5, 5, false},
		{"near corner inside", 7, 7, 5, true},
		{"far away", 100, 100, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CircleIntersectsRect(tt.cx, tt.cy, tt.cr, r); got != tt.want {
				t.Errorf("CircleIntersectsRect(%v, %v, %v) = %v, want %v",
					tt.cx, tt.cy, tt.cr, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %d, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %d, want 10", got)
	}

	if got := ClampF(-30.5, -30, 90); got != -30 {
		t.Errorf("ClampF(-30.5, -30, 90) = %v, want -30", got)
	}
	if got := ClampF(120, -30, 90); got != 90 {
		t.Errorf("ClampF(120, -30, 90) = %v, want 90", got)
	}
}
