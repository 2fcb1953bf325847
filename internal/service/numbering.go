package service

import (
	"fmt"
	"strconv"
	"strings"
)

// yearPrefix builds the per-year document number prefix, e.g. "INV-2025-".
func yearPrefix(kind string, year int) string {
	return fmt.Sprintf("%s-%d-", kind, year)
}

// nextNumber derives the next sequential document number from the
// lexicographically highest existing number for the prefix ("" when the year
// has none yet). The sequence restarts at 1 each calendar year.
func nextNumber(prefix, last string) string {
	seq := 1
	if last != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, prefix)); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}
