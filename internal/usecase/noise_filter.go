package usecase

import (
	"regexp"
	"unicode/utf8"
)

// noisePatterns match lines that are structurally not product entries:
// invoice headers, vendor names, summary rows, greetings, bare numbers.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^.*invoice.*#?\d+.*$`),
	regexp.MustCompile(`(?i)^.*traders?.*$`),
	regexp.MustCompile(`(?i)^.*thank.*you.*$`),
	regexp.MustCompile(`(?i)^.*total.*:.*$`),
	regexp.MustCompile(`(?i)^.*tax.*:.*$`),
	regexp.MustCompile(`^\s*\d+\s*$`),
}

// isNoiseLine reports whether a trimmed line should be skipped entirely.
// Lines shorter than three characters are never product entries.
func isNoiseLine(line string) bool {
	if utf8.RuneCountInString(line) < 3 {
		return true
	}
	for _, pattern := range noisePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
