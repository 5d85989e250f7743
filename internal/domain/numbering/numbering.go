// Package numbering formats and parses yearly document numbers such as COT-2026-0001.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Format builds <prefix>-<year>-<seq>. The sequence is zero padded to four
// digits and keeps growing past 9999.
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// YearPrefix is the common prefix of every number issued for year.
func YearPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-", prefix, year)
}

// Sequence extracts the trailing counter of a number issued under prefix for year.
func Sequence(number, prefix string, year int) (int, bool) {
	rest, ok := strings.CutPrefix(number, YearPrefix(prefix, year))
	if !ok || rest == "" {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}
