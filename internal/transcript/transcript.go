// Package transcript normalizes and compares build transcripts.
package transcript

import (
	"regexp"
	"strconv"

	"github.com/pmezard/go-difflib/difflib"
)

// totalTimePattern matches the elapsed-time report on the transcript's final
// line together with that line's newline.
var totalTimePattern = regexp.MustCompile(`(?m)^Total time: [0-9]*.*\n\z`)

// Normalize removes the text of a trailing "Total time: ..." line, keeping
// its newline. Any other transcript is returned unchanged.
func Normalize(s string) string {
	return totalTimePattern.ReplaceAllLiteralString(s, "\n")
}

// Diff returns a unified diff of want against got, or "" when they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil || diff == "" {
		return "--- expected\n+++ actual\n-" + strconv.Quote(want) + "\n+" + strconv.Quote(got) + "\n"
	}
	return diff
}
