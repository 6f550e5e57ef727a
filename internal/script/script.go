// Package script classifies the writing system of recognized text.
package script

import "regexp"

// Script is the classification result for a piece of text.
type Script int

const (
	// Other is any text without a CJK unified ideograph.
	Other Script = iota
	// Target is text already in the display language (Chinese).
	Target
)

func (s Script) String() string {
	switch s {
	case Target:
		return "target"
	default:
		return "other"
	}
}

var chineseRegex = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)

// Classify returns Target if text contains at least one character in
// U+4E00..U+9FFF, Other otherwise.
func Classify(text string) Script {
	if chineseRegex.MatchString(text) {
		return Target
	}
	return Other
}

// IsTarget reports whether text needs no translation.
func IsTarget(text string) bool {
	return Classify(text) == Target
}
