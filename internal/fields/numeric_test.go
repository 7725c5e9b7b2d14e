package fields

import (
	"encoding/json"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain_integer", "45", 45, true},
		{"decimal", "450000.50", 450000.50, true},
		{"thousands_separators", "4,50,000", 450000, true},
		{"surrounding_whitespace", "  1200000 \t", 1200000, true},
		{"empty", "", 0, false},
		{"only_whitespace", "   ", 0, false},
		{"not_a_number", "forty five", 0, false},
		{"trailing_garbage", "45 HP", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"float64", 42.5, 42.5, true},
		{"int", 42, 42, true},
		{"int64", int64(7), 7, true},
		{"json_number", json.Number("450000"), 450000, true},
		{"numeric_string", "45", 45, true},
		{"string_with_commas", "4,50,000", 450000, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"non_numeric_string", "NOT_FOUND", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.input)
			if ok != tt.ok {
				t.Fatalf("ToFloat(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ToFloat(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
