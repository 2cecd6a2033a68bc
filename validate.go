package fstr

import (
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not valid UTF-8 or appears
// binary. Composer input is text; tabs, newlines and carriage returns are
// the only control characters expected in it.
func ValidateInput(src []byte) error {
	var total, control int
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return errors.Errorf("byte %d: %w", i, ErrInvalidUTF8)
		}
		if r == 0 {
			return errors.Errorf("byte %d: %w", i, ErrBinaryInput)
		}
		total++
		if isControlRune(r) {
			control++
		}
		i += size
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return errors.Errorf("%d of %d runes are control characters: %w", control, total, ErrBinaryInput)
	}
	return nil
}

// SanitizeInput drops invalid UTF-8 and control characters other than tab,
// newline and carriage return.
func SanitizeInput(src []byte) string {
	dst := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if (r == utf8.RuneError && size <= 1) || isControlRune(r) {
			i += size
			continue
		}
		dst = append(dst, src[i:i+size]...)
		i += size
	}
	return string(dst)
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	if r < 0x20 || r == 0x7F {
		return true
	}
	return false
}
