package pipeline

import "strings"

// NormalizeIP rebuilds a dotted IPv4 string from a raw cell value. Numeric cells
// may arrive with a stray ".0" or as a compact digit run; the compact form is
// split 2+3+3+rest, which is how the inventory sheets encode addresses. Input is
// never rejected: anything that cannot be rebuilt is returned trimmed.
func NormalizeIP(raw string) string {
	// Only the first ".0" goes, wherever it is.
	s := strings.TrimSpace(strings.Replace(raw, ".0", "", 1))
	if s == "" || strings.Contains(s, ".") {
		return s
	}

	r := []rune(s)
	if len(r) >= 10 {
		return string(r[0:2]) + "." + string(r[2:5]) + "." + string(r[5:8]) + "." + string(r[8:])
	}
	return s
}
