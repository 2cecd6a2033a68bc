package fstr

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// TokenForPos returns the index of the token at pos and the offset of pos
// inside it. On a boundary the right token wins when it is sticky,
// otherwise the left one does. An empty sequence yields index -1.
func TokenForPos(seq Sequence, pos int) (int, int, error) {
	if err := checkRange(seq, pos, pos); err != nil {
		return 0, 0, err
	}
	if len(seq) == 0 {
		return -1, 0, nil
	}
	idx, off := seq.locate(pos)
	if off > 0 {
		return idx, off, nil
	}
	if idx < len(seq) && (seq[idx].Sticky || idx == 0) {
		return idx, 0, nil
	}
	return idx - 1, len(seq[idx-1].Value), nil
}

// InsertText inserts text at pos. The receiving token is chosen by
// TokenForPos. The run of re-tokenizable tokens around the insertion is
// scanned again as one text, so typed mentions, hashtags and links are
// recognized in context; every byte keeps the format it had. Manual links
// grow in place.
func InsertText(seq Sequence, pos int, text string, opts ...ParseOption) (Sequence, error) {
	idx, off, err := TokenForPos(seq, pos)
	if err != nil {
		return nil, errors.Errorf("insert text: %w", err)
	}
	if text == "" {
		return seq, nil
	}
	cfg := editConfig(opts)
	if idx < 0 {
		return retokenize(Sequence{NewText(text, FormatNone)}, 0, 1, &cfg), nil
	}
	t := seq[idx]
	if err := checkSplit(t, off); err != nil {
		cfg.logger.Debug().Int("pos", pos).Str("token", t.Type.String()).Msg("insert position rejected")
		return nil, errors.Errorf("insert text at %d: %w", pos, err)
	}

	switch {
	case t.atomic() && off == 0:
		out := replace(seq, idx, idx+1, []Token{NewText(text, outerFormat(t, true)), t})
		return retokenize(out, idx, idx+1, &cfg), nil
	case t.atomic():
		out := replace(seq, idx, idx+1, []Token{t, NewText(text, outerFormat(t, false))})
		return retokenize(out, idx+1, idx+2, &cfg), nil
	case t.Type == TypeLink && !t.Auto:
		return Merge(replace(seq, idx, idx+1, []Token{insertInto(t, off, text)})), nil
	default:
		out := replace(seq, idx, idx+1, []Token{insertInto(t, off, text)})
		return retokenize(out, idx, idx+1, &cfg), nil
	}
}

// RemoveText deletes [from, to). The tokens meeting at the cut are
// re-tokenized together with the rest of their run.
func RemoveText(seq Sequence, from, to int, opts ...ParseOption) (Sequence, error) {
	out, i, j, err := splitRange(seq, from, to)
	if err != nil {
		return nil, errors.Errorf("remove text: %w", err)
	}
	if i == j {
		return seq, nil
	}
	cfg := editConfig(opts)
	out = replace(out, i, j, nil)
	lo, hi := i, i
	if i > 0 && reparseable(out[i-1]) {
		lo = i - 1
	}
	if i < len(out) && reparseable(out[i]) {
		hi = i + 1
	}
	if lo == hi {
		return Merge(out), nil
	}
	return retokenize(out, lo, hi, &cfg), nil
}

// ReplaceText replaces [from, to) with text.
func ReplaceText(seq Sequence, from, to int, text string, opts ...ParseOption) (Sequence, error) {
	out, err := RemoveText(seq, from, to, opts...)
	if err != nil {
		return nil, errors.Errorf("replace text: %w", err)
	}
	return InsertText(out, from, text, opts...)
}

// SetLink turns [from, to) into a manual link to link. An empty link turns
// links in the range back into text. Markdown delimiters are kept.
func SetLink(seq Sequence, from, to int, link string) (Sequence, error) {
	out, i, j, err := splitRange(seq, from, to)
	if err != nil {
		return nil, errors.Errorf("set link: %w", err)
	}
	res := make(Sequence, len(out))
	copy(res, out)
	for k := i; k < j; k++ {
		t := res[k]
		switch {
		case t.Type == TypeMarkdown:
			continue
		case link == "":
			if t.Type == TypeLink {
				res[k] = t.toText()
			}
		default:
			lt := NewLink(t.Value, link, t.Format)
			lt.Emoji = t.clone().Emoji
			res[k] = lt
		}
	}
	return Merge(res), nil
}

// Slice returns the tokens covering [from, to).
func Slice(seq Sequence, from, to int) (Sequence, error) {
	out, i, j, err := splitRange(seq, from, to)
	if err != nil {
		return nil, errors.Errorf("slice: %w", err)
	}
	return Merge(out[i:j]), nil
}

// StripMarkdown drops markdown delimiters and keeps the formats they
// produced.
func StripMarkdown(seq Sequence) Sequence {
	out := make(Sequence, 0, len(seq))
	for _, t := range seq {
		if t.Type != TypeMarkdown {
			out = append(out, t)
		}
	}
	return Merge(out)
}

// editConfig is the parse configuration used to re-tokenize edited text.
// Markdown is resolved only by Parse.
func editConfig(opts []ParseOption) parseConfig {
	cfg := newParseConfig(opts)
	cfg.markdown = false
	return cfg
}

// outerFormat is the format of text typed next to an atomic token, before
// it when before is set. Text outside a markdown pair loses the pair's flag.
func outerFormat(t Token, before bool) Format {
	if t.Type == TypeMarkdown && t.MdStart == before {
		return Subtract(t.Format, t.MdType)
	}
	return t.Format
}

// reparseable tokens are re-tokenized after an edit touches them.
func reparseable(t Token) bool {
	switch t.Type {
	case TypeText, TypeMention, TypeCommand, TypeHashTag:
		return true
	case TypeLink:
		return t.Auto
	case TypeMarkdown, TypeUserSticker, TypeEmoji, TypeTextEmoji:
		return false
	default:
		panic(fmt.Sprintf("fstr: unknown token type %d", t.Type))
	}
}

// formatSeg is the format of the bytes up to end of a retokenized run.
type formatSeg struct {
	end    int
	format Format
}

// retokenize widens [lo, hi), which must hold re-tokenizable tokens, to
// the whole run of them and scans the run again as one text. The rune
// before the run takes part in word boundary checks. Each resulting token
// gets the format its bytes had, split where formats change.
func retokenize(seq Sequence, lo, hi int, cfg *parseConfig) Sequence {
	for lo > 0 && reparseable(seq[lo-1]) {
		lo--
	}
	for hi < len(seq) && reparseable(seq[hi]) {
		hi++
	}
	var b strings.Builder
	segs := make([]formatSeg, 0, hi-lo)
	for _, t := range seq[lo:hi] {
		b.WriteString(t.Value)
		segs = append(segs, formatSeg{end: b.Len(), format: t.Format})
	}
	prefix := ""
	if lo > 0 {
		prev := seq[lo-1].Value
		_, size := utf8.DecodeLastRuneInString(prev)
		prefix = prev[len(prev)-size:]
	}
	toks, _ := parseAfter(prefix, b.String(), cfg)
	return Merge(replace(seq, lo, hi, restoreFormats(toks, segs)))
}

// restoreFormats gives every token the format of the segment it starts in
// and splits it where a later segment begins. A boundary that cannot be
// split, inside an emoji or an atomic token, is dropped and the bytes after
// it take the earlier format.
func restoreFormats(toks []Token, segs []formatSeg) []Token {
	out := make([]Token, 0, len(toks))
	pos, k := 0, 0
	for _, t := range toks {
		end := pos + len(t.Value)
		for {
			for segs[k].end <= pos {
				k++
			}
			cut := -1
			for s := k; s < len(segs) && segs[s].end < end; s++ {
				if checkSplit(t, segs[s].end-pos) == nil {
					cut = segs[s].end
					break
				}
			}
			if cut < 0 {
				t.Format = segs[k].format
				out = append(out, t)
				break
			}
			left, right := splitToken(t, cut-pos)
			left.Format = segs[k].format
			out = append(out, left)
			t, pos = right, cut
		}
		pos = end
	}
	return out
}

// insertInto inserts text into t at off, shifting emoji ranges behind it.
func insertInto(t Token, off int, text string) Token {
	t = t.clone()
	var b strings.Builder
	b.Grow(len(t.Value) + len(text))
	b.WriteString(t.Value[:off])
	b.WriteString(text)
	b.WriteString(t.Value[off:])
	t.Value = b.String()
	for k := range t.Emoji {
		if t.Emoji[k].From >= off {
			t.Emoji[k].From += len(text)
			t.Emoji[k].To += len(text)
		}
	}
	return t
}

// replace returns a copy of seq with seq[i:j] replaced by repl.
func replace(seq Sequence, i, j int, repl []Token) Sequence {
	out := make(Sequence, 0, len(seq)-(j-i)+len(repl))
	out = append(out, seq[:i]...)
	out = append(out, repl...)
	out = append(out, seq[j:]...)
	return out
}
