package validation

import (
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

func MaxMessageLength() int {
	maxStr := os.Getenv("MAX_MESSAGE_LENGTH")
	if maxStr == "" {
		return 4000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 4000
	}
	return max
}

func MaxCategoryTitleLength() int {
	return 100
}

func MaxRoomNameLength() int {
	return 120
}

func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && len(s) > max {
		// Back up to a rune boundary so the cut never leaves invalid UTF-8.
		for max > 0 && !utf8.RuneStart(s[max]) {
			max--
		}
		return s[:max]
	}
	return s
}

// ClampLimit parses a page-size query value with a default and an upper bound.
func ClampLimit(s string, def, max int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
