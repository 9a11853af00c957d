package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    layout.Rect
		wantErr bool
	}{
		{"0,0,100,50", layout.Rect{Width: 100, Height: 50}, false},
		{" 10, 20.5 ,30,40 ", layout.Rect{X: 10, Y: 20.5, Width: 30, Height: 40}, false},
		{"0,0,0,0", layout.Rect{}, false},
		{"0,0,100", layout.Rect{}, true},
		{"a,0,1,1", layout.Rect{}, true},
		{"0,0,-1,1", layout.Rect{}, true},
		{"0,0,NaN,1", layout.Rect{}, true},
	}
	for _, tt := range tests {
		got, err := parseRect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseRect(%q) error code = %s", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("parseRect(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestTrimLayoutSuffix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"grid.layout.json", "grid.json"},
		{"dir/grid.layout.json", "dir/grid.json"},
		{"grid.json", "grid.json"},
	}
	for _, tt := range tests {
		if got := trimLayoutSuffix(tt.in); got != tt.want {
			t.Errorf("trimLayoutSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(1, 7, 2, true)
	for _, want := range []string{"1 tile", "7 segments", "2 unplaced", "cached"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine missing %q: %q", want, line)
		}
	}
	if strings.Contains(statsLine(3, 1, 0, false), "unplaced") {
		t.Error("complete packing should not report unplaced tiles")
	}
}
