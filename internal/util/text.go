package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeSpaces collapses whitespace runs, including non-breaking spaces, to one space.
func NormalizeSpaces(input string) string {
	input = strings.ReplaceAll(input, "\u00a0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func Truncate(input string, max int) string {
	r := []rune(input)
	if len(r) <= max {
		return input
	}
	return string(r[:max])
}
