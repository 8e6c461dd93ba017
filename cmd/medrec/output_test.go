package main

import (
	"strings"
	"testing"
	"time"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"Aspirin", 10, "Aspirin"},
		{"Acetaminophen", 10, "Acetami..."},
		{"Ibuprofen", 9, "Ibuprofen"},
		{"Paracétamol 500", 10, "Paracét..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	short := "pain relief"
	if got := wrapText(short, 20, "  "); got != short {
		t.Errorf("short text should not wrap, got %q", got)
	}

	got := wrapText("pain relief, fever, inflammation, headache", 20, "  ")
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output, got %q", got)
	}
	for i, line := range lines[1:] {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("continuation line %d missing indent: %q", i+1, line)
		}
	}
}

func TestFormatList(t *testing.T) {
	if got := formatList(nil); got != "-" {
		t.Errorf("formatList(nil) = %q, want -", got)
	}
	if got := formatList([]string{"fever", "pain"}); got != "fever, pain" {
		t.Errorf("formatList = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
