package fstr

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Sequence is an ordered, gapless list of tokens. Operations never modify
// a Sequence in place; they return a new one.
type Sequence []Token

// Len returns the total byte length of all token values, markdown
// delimiters included.
func (s Sequence) Len() int {
	n := 0
	for _, t := range s {
		n += len(t.Value)
	}
	return n
}

// Text returns the plain text of the sequence without markdown delimiters.
func (s Sequence) Text() string {
	var b strings.Builder
	for _, t := range s {
		if t.Type == TypeMarkdown {
			continue
		}
		b.WriteString(t.Value)
	}
	return b.String()
}

// Markdown returns the source text of the sequence, markdown delimiters
// included.
func (s Sequence) Markdown() string {
	var b strings.Builder
	b.Grow(s.Len())
	for _, t := range s {
		b.WriteString(t.Value)
	}
	return b.String()
}

// locate returns the index of the token containing pos and the offset of
// pos inside it. A position on a boundary resolves to the token that starts
// there; pos == Len resolves to (len(s), 0).
func (s Sequence) locate(pos int) (int, int) {
	start := 0
	for i, t := range s {
		end := start + len(t.Value)
		if pos < end {
			return i, pos - start
		}
		start = end
	}
	return len(s), 0
}

// Merge joins every adjacent pair of mergeable tokens and drops tokens
// with empty values.
func Merge(s Sequence) Sequence {
	out := make(Sequence, 0, len(s))
	// run holds text and link tokens waiting to be joined onto the last
	// token of out, so that a long run is copied once.
	var run []Token
	flush := func() {
		if len(run) > 0 {
			out[len(out)-1] = joinRun(out[len(out)-1], run)
			run = run[:0]
		}
	}
	for _, t := range s {
		if t.Value == "" {
			continue
		}
		if n := len(out); n > 0 && mergeable(out[n-1], t) {
			if t.Type == TypeText || t.Type == TypeLink {
				run = append(run, t)
			} else {
				out[n-1] = join(out[n-1], t)
			}
			continue
		}
		flush()
		out = append(out, t.clone())
	}
	flush()
	return out
}

func mergeable(a, b Token) bool {
	if a.Type != b.Type || a.Format != b.Format {
		return false
	}
	switch a.Type {
	case TypeText:
		return true
	case TypeLink:
		return a.Link == b.Link && a.Auto == b.Auto
	case TypeMention:
		return a.Mention == b.Mention && strings.Contains(a.canonical(), a.Value+b.Value)
	case TypeCommand:
		return a.Command == b.Command && strings.Contains(a.canonical(), a.Value+b.Value)
	case TypeHashTag:
		return a.HashTag == b.HashTag && strings.Contains(a.canonical(), a.Value+b.Value)
	case TypeMarkdown, TypeUserSticker, TypeEmoji, TypeTextEmoji:
		return false
	default:
		panic(fmt.Sprintf("fstr: unknown token type %d", a.Type))
	}
}

// join appends b to a. a must not share its Emoji slice with a caller.
func join(a, b Token) Token {
	shift := len(a.Value)
	a.Value += b.Value
	for _, e := range b.Emoji {
		a.Emoji = append(a.Emoji, Emoji{From: e.From + shift, To: e.To + shift, Emoji: e.Emoji})
	}
	return a
}

// joinRun appends every token of run to a with a single copy of the
// values. a must not share its Emoji slice with a caller.
func joinRun(a Token, run []Token) Token {
	n := len(a.Value)
	for _, t := range run {
		n += len(t.Value)
	}
	var b strings.Builder
	b.Grow(n)
	b.WriteString(a.Value)
	for _, t := range run {
		shift := b.Len()
		b.WriteString(t.Value)
		for _, e := range t.Emoji {
			a.Emoji = append(a.Emoji, Emoji{From: e.From + shift, To: e.To + shift, Emoji: e.Emoji})
		}
	}
	a.Value = b.String()
	return a
}

// SplitAt returns a sequence with a token boundary at offset. Splitting at
// an existing boundary returns s unchanged.
func SplitAt(s Sequence, offset int) (Sequence, error) {
	if err := checkRange(s, offset, offset); err != nil {
		return nil, err
	}
	idx, in := s.locate(offset)
	if in == 0 {
		return s, nil
	}
	if err := checkSplit(s[idx], in); err != nil {
		return nil, errors.Errorf("split at %d: %w", offset, err)
	}
	left, right := splitToken(s[idx], in)
	out := make(Sequence, 0, len(s)+1)
	out = append(out, s[:idx]...)
	out = append(out, left, right)
	out = append(out, s[idx+1:]...)
	return out, nil
}

// checkSplit validates a split of t at the in-token offset in.
func checkSplit(t Token, in int) error {
	if in <= 0 || in >= len(t.Value) {
		return nil
	}
	if t.atomic() {
		return errors.Errorf("inside %s token %q: %w", t.Type, t.Value, ErrInvalidSplit)
	}
	for _, e := range t.Emoji {
		if e.From < in && in < e.To {
			return errors.Errorf("inside emoji %q: %w", t.Value[e.From:e.To], ErrInvalidSplit)
		}
	}
	if !isGraphemeBoundary(t.Value, in) {
		return errors.Errorf("inside grapheme cluster: %w", ErrInvalidSplit)
	}
	return nil
}

// splitToken divides t at in. Both halves keep type, format, payload and
// stickiness.
func splitToken(t Token, in int) (Token, Token) {
	left, right := t, t
	left.Value, right.Value = t.Value[:in], t.Value[in:]
	left.Emoji, right.Emoji = nil, nil
	for _, e := range t.Emoji {
		if e.To <= in {
			left.Emoji = append(left.Emoji, e)
		} else {
			right.Emoji = append(right.Emoji, Emoji{From: e.From - in, To: e.To - in, Emoji: e.Emoji})
		}
	}
	return left, right
}

// splitRange splits s at from and to and returns the new sequence with
// the index range [i, j) of tokens covering [from, to).
func splitRange(s Sequence, from, to int) (Sequence, int, int, error) {
	if err := checkRange(s, from, to); err != nil {
		return nil, 0, 0, err
	}
	out, err := SplitAt(s, from)
	if err != nil {
		return nil, 0, 0, err
	}
	out, err = SplitAt(out, to)
	if err != nil {
		return nil, 0, 0, err
	}
	i, _ := out.locate(from)
	j, _ := out.locate(to)
	if from == to {
		j = i
	}
	return out, i, j, nil
}
