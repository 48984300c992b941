package scan

import (
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Punctuation that gets replaced with spaces before matching. Hyphens and
// slashes are kept so phrases like "real-time personalization" survive
// normalization intact.
var punctReplacer = strings.NewReplacer(
	",", " ", ".", " ", "!", " ", "?", " ", ";", " ", ":", " ",
	"(", " ", ")", " ", "[", " ", "]", " ", "{", " ", "}", " ",
	`"`, " ", "'", " ",
)

// Normalize prepares raw text for keyword matching: Unicode case folding,
// punctuation replaced with spaces, consecutive whitespace collapsed to a
// single space, leading and trailing whitespace stripped. Pure and
// deterministic; empty input normalizes to "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = foldCaser.String(text)
	text = punctReplacer.Replace(text)

	return strings.Join(strings.Fields(text), " ")
}
