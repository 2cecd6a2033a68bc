package fstr

import "gitlab.com/tozd/go/errors"

var (
	// ErrInvalidRange reports a range outside [0, length] or with from > to.
	ErrInvalidRange = errors.Base("invalid range")
	// ErrInvalidSplit reports a split point inside an emoji, a grapheme
	// cluster or an atomic token.
	ErrInvalidSplit = errors.Base("invalid split")
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.Base("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.Base("binary input detected")
)

func checkRange(seq Sequence, from, to int) error {
	if from < 0 || to < from || to > seq.Len() {
		return errors.Errorf("range [%d, %d) of %d: %w", from, to, seq.Len(), ErrInvalidRange)
	}
	return nil
}
