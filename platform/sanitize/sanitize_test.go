package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"simple tag", "<b>bold</b>", "bold"},
		{"script tag", `<script>alert("x")</script>`, `alert("x")`},
		{"encoded tag", "&lt;img src=x onerror=alert(1)&gt;", ""},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"surrounding whitespace", "  name  ", "name"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Fatalf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextPtr(t *testing.T) {
	if got := TextPtr(nil); got != nil {
		t.Fatal("expected nil for nil input")
	}
	in := "<i>Riyadh</i>"
	got := TextPtr(&in)
	if got == nil || *got != "Riyadh" {
		t.Fatalf("got %v", got)
	}
}
