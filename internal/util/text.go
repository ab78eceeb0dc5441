package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// CanonicalSerial is the identity form of a serial number: trimmed and uppercased.
func CanonicalSerial(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

func SameSerial(a, b string) bool {
	return CanonicalSerial(a) == CanonicalSerial(b)
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func FirstNonBlank(fallback string, values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return fallback
}

func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
