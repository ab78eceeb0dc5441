package report

import (
	"fmt"
	"io"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

var kindMarks = map[Kind]string{
	KindSuccess: "✔",
	KindError:   "✖",
	KindInfo:    "ℹ",
}

// Notify writes a one-line user notification. Unknown kinds print as info.
func Notify(w io.Writer, kind Kind, message string) {
	mark, ok := kindMarks[kind]
	if !ok {
		kind, mark = KindInfo, kindMarks[KindInfo]
	}
	fmt.Fprintf(w, "%s %s: %s\n", mark, kind, message)
}
