package validation

import (
	"os"
	"testing"
)

func TestMaxMessageLength(t *testing.T) {
	tests := []struct {
		name        string
		envValue    string
		expected    int
		shouldUnset bool
	}{
		{"Default length", "", 4000, true},
		{"Custom length", "8000", 8000, false},
		{"Invalid env value", "invalid", 4000, false},
		{"Zero is rejected", "0", 4000, false},
		{"Negative is rejected", "-5", 4000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldUnset {
				os.Unsetenv("MAX_MESSAGE_LENGTH")
			} else {
				os.Setenv("MAX_MESSAGE_LENGTH", tt.envValue)
			}

			result := MaxMessageLength()
			if result != tt.expected {
				t.Errorf("MaxMessageLength() = %d, want %d", result, tt.expected)
			}
		})
	}
	os.Unsetenv("MAX_MESSAGE_LENGTH")
}

func TestTrimAndLimit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"Normal string", "hello world", 20, "hello world"},
		{"String with spaces", "  hello world  ", 20, "hello world"},
		{"String exceeding limit", "hello world this is too long", 10, "hello worl"},
		{"Empty string", "", 20, ""},
		{"String at limit", "hello", 5, "hello"},
		{"Multi-byte cut backs up to rune boundary", "héllo", 2, "h"},
		{"Multi-byte kept when it fits", "héllo", 3, "hé"},
		{"Emoji never split", "a😀b", 3, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimAndLimit(tt.input, tt.limit)
			if result != tt.expected {
				t.Errorf("TrimAndLimit(%q, %d) = %q, want %q", tt.input, tt.limit, result, tt.expected)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      int
		max      int
		expected int
	}{
		{"Empty uses default", "", 50, 100, 50},
		{"Valid value", "25", 50, 100, 25},
		{"Above max is clamped", "500", 50, 100, 100},
		{"Zero uses default", "0", 50, 100, 50},
		{"Negative uses default", "-3", 50, 100, 50},
		{"Garbage uses default", "abc", 50, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClampLimit(tt.input, tt.def, tt.max)
			if result != tt.expected {
				t.Errorf("ClampLimit(%q, %d, %d) = %d, want %d", tt.input, tt.def, tt.max, result, tt.expected)
			}
		})
	}
}
