package pipeline

import "strings"

// SerialPredicate decides whether a trimmed, uppercased cell value is a printer
// serial number.
type SerialPredicate func(cell string) bool

func HasPrefix(prefix string) SerialPredicate {
	prefix = strings.ToUpper(prefix)
	return func(cell string) bool {
		return prefix != "" && strings.HasPrefix(cell, prefix)
	}
}

// LongWithMarker accepts values longer than minLength that contain marker.
func LongWithMarker(minLength int, marker string) SerialPredicate {
	marker = strings.ToUpper(marker)
	return func(cell string) bool {
		return marker != "" && len([]rune(cell)) > minLength && strings.Contains(cell, marker)
	}
}

func AnyOf(predicates ...SerialPredicate) SerialPredicate {
	return func(cell string) bool {
		for _, p := range predicates {
			if p != nil && p(cell) {
				return true
			}
		}
		return false
	}
}

func (l PrinterLayout) Predicate() SerialPredicate {
	if l.Match != nil {
		return l.Match
	}
	predicates := make([]SerialPredicate, 0, len(l.SerialPrefixes)+1)
	for _, prefix := range l.SerialPrefixes {
		predicates = append(predicates, HasPrefix(prefix))
	}
	if l.SerialMarker != "" {
		predicates = append(predicates, LongWithMarker(l.SerialMarkerMinLength, l.SerialMarker))
	}
	return AnyOf(predicates...)
}
