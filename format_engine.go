package fstr

import "gitlab.com/tozd/go/errors"

// ApplyFormat applies update to every token inside [from, to), splitting
// tokens at the range ends and merging neighbors that end up identical.
// The input sequence is left untouched; on error nothing is applied.
func ApplyFormat(seq Sequence, from, to int, update FormatUpdate) (Sequence, error) {
	out, i, j, err := splitRange(seq, from, to)
	if err != nil {
		return nil, errors.Errorf("apply format: %w", err)
	}
	res := make(Sequence, len(out))
	copy(res, out)
	for k := i; k < j; k++ {
		res[k].Format = update.Apply(res[k].Format)
	}
	return Merge(res), nil
}

// UpdateTokenFormat applies update to the token at index.
func UpdateTokenFormat(seq Sequence, index int, update FormatUpdate) (Sequence, error) {
	if index < 0 || index >= len(seq) {
		return nil, errors.Errorf("token %d of %d: %w", index, len(seq), ErrInvalidRange)
	}
	res := make(Sequence, len(seq))
	copy(res, seq)
	res[index].Format = update.Apply(res[index].Format)
	return Merge(res), nil
}
