package model

import "testing"

func TestValidAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount int
		want   bool
	}{
		{"minimum", 1, true},
		{"maximum", 32000, true},
		{"typical", 200, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"above maximum", 32001, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidAmount(tt.amount); got != tt.want {
				t.Errorf("ValidAmount(%d) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestValidCookingTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		minutes int
		want    bool
	}{
		{"minimum", 1, true},
		{"maximum", 32000, true},
		{"zero", 0, false},
		{"above maximum", 32001, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidCookingTime(tt.minutes); got != tt.want {
				t.Errorf("ValidCookingTime(%d) = %v, want %v", tt.minutes, got, tt.want)
			}
		})
	}
}
