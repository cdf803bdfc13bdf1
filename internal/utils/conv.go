package utils

import (
	"strconv"
	"strings"
)

// FormInt parses a submitted number, returning fallback for blank or malformed input.
func FormInt(s string, fallback int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return i
}
