package errors

import (
	"math"
	"testing"
)

func TestValidatePadding(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"default", 16, false},
		{"fractional", 0.5, false},

		{"zero", 0, true},
		{"negative", -4, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePadding(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePadding(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfiguration) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfiguration)
			}
		})
	}
}

func TestValidateSpacing(t *testing.T) {
	if err := ValidateSpacing(8); err != nil {
		t.Errorf("ValidateSpacing(8) = %v", err)
	}
	if err := ValidateSpacing(0); err == nil {
		t.Error("ValidateSpacing(0) should fail")
	}
}

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		padding float64
		wantErr bool
	}{
		{"phone", 348, 16, false},
		{"just above", 33, 16, false},

		{"exactly twice padding", 32, 16, true},
		{"below", 10, 16, true},
		{"zero", 0, 16, true},
		{"negative", -100, 16, true},
		{"inf", math.Inf(1), 16, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidth(tt.width, tt.padding)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidth(%v, %v) error = %v, wantErr %v", tt.width, tt.padding, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRect(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		wantErr    bool
	}{
		{"viewport", 0, 0, 348, 600, false},
		{"empty", 10, 10, 0, 0, false},
		{"negative origin", -10, -10, 5, 5, false},

		{"negative width", 0, 0, -1, 10, true},
		{"negative height", 0, 0, 10, -1, true},
		{"nan", math.NaN(), 0, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRect(tt.x, tt.y, tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRect() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTileCount(t *testing.T) {
	if err := ValidateTileCount(0); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateTileCount(0) = %v, want INVALID_INPUT", err)
	}
	if err := ValidateTileCount(MaxTiles + 1); err == nil {
		t.Error("ValidateTileCount(MaxTiles+1) should fail")
	}
	if err := ValidateTileCount(17); err != nil {
		t.Errorf("ValidateTileCount(17) = %v", err)
	}
}
