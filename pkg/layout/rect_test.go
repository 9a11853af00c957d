package layout

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 40, Height: 60}
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"MinX", r.MinX(), 10},
		{"MaxX", r.MaxX(), 50},
		{"MinY", r.MinY(), 20},
		{"MaxY", r.MaxY(), 80},
		{"CenterX", r.CenterX(), 30},
		{"CenterY", r.CenterY(), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"positive", Rect{Width: 1, Height: 1}, false},
		{"zero width", Rect{Width: 0, Height: 10}, true},
		{"zero height", Rect{Width: 10, Height: 0}, true},
		{"negative", Rect{Width: -5, Height: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	got := Rect{X: 16, Y: 0, Width: 158, Height: 316}.Inset(16)
	want := Rect{X: 32, Y: 16, Width: 126, Height: 284}
	if got != want {
		t.Errorf("Inset() = %+v, want %+v", got, want)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 348, Height: 0}
	b := Rect{X: 16, Y: 159, Width: 316, Height: 158}
	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 348, Height: 317}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{X: 15, Y: 15, Width: 10, Height: 10}, true},
		{"contained", Rect{X: 12, Y: 12, Width: 2, Height: 2}, true},
		{"containing", Rect{X: 0, Y: 0, Width: 100, Height: 100}, true},
		{"touching right edge", Rect{X: 20, Y: 10, Width: 10, Height: 10}, false},
		{"touching bottom edge", Rect{X: 10, Y: 20, Width: 10, Height: 10}, false},
		{"disjoint", Rect{X: 50, Y: 50, Width: 1, Height: 1}, false},
		{"empty inside", Rect{X: 12, Y: 12, Width: 0, Height: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("Intersects() not symmetric: %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectSplit(t *testing.T) {
	r := Rect{X: 16, Y: 0, Width: 317, Height: 159}

	left, right := r.SplitX()
	if left.Width != 158 || right.Width != 159 || right.X != 174 {
		t.Errorf("SplitX() = %+v, %+v", left, right)
	}
	if left.Width+right.Width != r.Width {
		t.Error("SplitX() widths do not add up")
	}

	top, bottom := r.SplitY()
	if top.Height != 79 || bottom.Height != 80 || bottom.Y != 79 {
		t.Errorf("SplitY() = %+v, %+v", top, bottom)
	}
}
