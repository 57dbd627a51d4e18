package numeric

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "120", 120},
		{"decimal", "3.75", 3.75},
		{"thousands separator", "1,200", 1200},
		{"spaces", " 1 200 ", 1200},
		{"separator and decimal", "12,345.5", 12345.5},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"mixed garbage", "12abc", 0},
		{"negative", "-5", -5},
		{"nan literal", "NaN", 0},
		{"infinity literal", "Inf", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0.1, 0.2, 1.0); got != 0.2 {
		t.Fatalf("expected lower bound, got %v", got)
	}
	if got := Clamp(1.5, 0.2, 1.0); got != 1.0 {
		t.Fatalf("expected upper bound, got %v", got)
	}
	if got := Clamp(0.65, 0.2, 1.0); got != 0.65 {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestFlexibleUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want float64
	}{
		{"number", `{"v": 42.5}`, 42.5},
		{"string number", `{"v": "42.5"}`, 42.5},
		{"string with separator", `{"v": "1,200"}`, 1200},
		{"null", `{"v": null}`, 0},
		{"empty string", `{"v": ""}`, 0},
		{"garbage string", `{"v": "abc"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V Flexible `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.json), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.V.Float64() != tt.want {
				t.Fatalf("got %v, want %v", out.V.Float64(), tt.want)
			}
		})
	}
}

func TestFlexibleRejectsNonNumericJSON(t *testing.T) {
	var out struct {
		V Flexible `json:"v"`
	}
	if err := json.Unmarshal([]byte(`{"v": {"a": 1}}`), &out); err == nil {
		t.Fatal("expected error for object value")
	}
}
