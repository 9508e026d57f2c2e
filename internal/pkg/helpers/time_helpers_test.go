package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"8h", 8 * time.Hour},
		{"90m", 90 * time.Minute},
		{"", time.Hour},
		{"soon", time.Hour},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.in, time.Hour); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(8 * time.Hour); got != 28800 {
		t.Errorf("Seconds = %d", got)
	}
}
