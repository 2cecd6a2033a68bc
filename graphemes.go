package fstr

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// isGraphemeBoundary reports whether off falls between two grapheme
// clusters of s. Both ends of s are boundaries.
func isGraphemeBoundary(s string, off int) bool {
	if off <= 0 || off >= len(s) {
		return true
	}
	if !utf8.RuneStart(s[off]) {
		return false
	}
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 && pos < off {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		pos += len(cluster)
		rest = next
		state = newState
	}
	return pos == off
}

// nextGrapheme returns the first grapheme cluster of s.
func nextGrapheme(s string) string {
	cluster, _, _, _ := uniseg.StepString(s, -1)
	return cluster
}
