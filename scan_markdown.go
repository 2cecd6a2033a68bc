package fstr

import (
	"fmt"
	"sort"
	"unicode"
)

// mdDelimiters maps markdown delimiters to the format they toggle.
var mdDelimiters = map[byte]Format{
	'*': Bold,
	'_': Italic,
	'~': Strike,
	'`': Monospace,
}

// mdPair is a matched opening and closing delimiter.
type mdPair struct {
	open  int
	close int
	flag  Format
}

// span is a token with its start offset in the parsed text.
type span struct {
	start int
	tok   Token
}

// canOpen reports whether the delimiter at pos may open a span: it follows
// the start or a non-word rune other than itself and precedes a non-space
// rune other than itself.
func canOpen(text string, pos int, isWord func(rune) bool) bool {
	c := rune(text[pos])
	if r, ok := prevRune(text, pos); ok && (isWord(r) || r == c) {
		return false
	}
	r, ok := nextRune(text, pos+1)
	return ok && !unicode.IsSpace(r) && r != c
}

// canClose mirrors canOpen for a closing delimiter.
func canClose(text string, pos int, isWord func(rune) bool) bool {
	c := rune(text[pos])
	r, ok := prevRune(text, pos)
	if !ok || unicode.IsSpace(r) || r == c {
		return false
	}
	if r, ok := nextRune(text, pos+1); ok && (isWord(r) || r == c) {
		return false
	}
	return true
}

// pairDelimiter pairs the occurrences of one delimiter. A closer matches
// the nearest pending opener; a newer opener replaces a pending one.
func pairDelimiter(text string, positions []int, flag Format, isWord func(rune) bool) ([]mdPair, []int) {
	var pairs []mdPair
	var unpaired []int
	open := -1
	for _, p := range positions {
		if open >= 0 && p > open+1 && canClose(text, p, isWord) {
			pairs = append(pairs, mdPair{open: open, close: p, flag: flag})
			open = -1
			continue
		}
		if canOpen(text, p, isWord) {
			if open >= 0 {
				unpaired = append(unpaired, open)
			}
			open = p
		}
	}
	if open >= 0 {
		unpaired = append(unpaired, open)
	}
	return pairs, unpaired
}

// pairMarkdown pairs delimiter candidates. Code spans are paired first and
// delimiters inside them are literal.
func pairMarkdown(text string, candidates []int, isWord func(rune) bool) ([]mdPair, []int) {
	byChar := make(map[byte][]int)
	for _, p := range candidates {
		byChar[text[p]] = append(byChar[text[p]], p)
	}
	pairs, unpaired := pairDelimiter(text, byChar['`'], Monospace, isWord)
	code := pairs
	for _, c := range []byte{'*', '_', '~'} {
		var positions []int
		k := 0
		for _, p := range byChar[c] {
			for k < len(code) && code[k].close < p {
				k++
			}
			if k < len(code) && code[k].open < p {
				continue
			}
			positions = append(positions, p)
		}
		pp, up := pairDelimiter(text, positions, mdDelimiters[c], isWord)
		pairs = append(pairs, pp...)
		unpaired = append(unpaired, up...)
	}
	sort.Ints(unpaired)
	return pairs, unpaired
}

// applyMarkdown turns paired delimiters found in text spans into Markdown
// tokens and applies their formats to everything between them.
func applyMarkdown(text string, spans []span, cfg *parseConfig) ([]span, []Warning) {
	var candidates []int
	for _, s := range spans {
		if s.tok.Type != TypeText {
			continue
		}
		for i := 0; i < len(s.tok.Value); i++ {
			if _, ok := mdDelimiters[s.tok.Value[i]]; ok {
				candidates = append(candidates, s.start+i)
			}
		}
	}
	if len(candidates) == 0 {
		return spans, nil
	}
	pairs, unpaired := pairMarkdown(text, candidates, cfg.wordRune)

	var warnings []Warning
	for _, p := range unpaired {
		near := text[p : p+1]
		cfg.logger.Debug().Int("pos", p).Str("delimiter", near).Msg("unpaired markdown delimiter")
		warnings = append(warnings, Warning{
			Issue:       IssueUnpairedMarkdown,
			Pos:         p,
			Near:        near,
			Description: fmt.Sprintf("Delimiter %q at byte %d has no matching pair and is kept as text.", near, p),
		})
	}
	if len(pairs) == 0 {
		return spans, warnings
	}

	delims := make(map[int]Token, len(pairs)*2)
	for _, pr := range pairs {
		delims[pr.open] = Token{Type: TypeMarkdown, Value: text[pr.open : pr.open+1], MdType: pr.flag, MdStart: true}
		delims[pr.close] = Token{Type: TypeMarkdown, Value: text[pr.close : pr.close+1], MdType: pr.flag}
	}

	out := make([]span, 0, len(spans)+len(delims)*2)
	for _, s := range spans {
		if s.tok.Type != TypeText {
			out = append(out, s)
			continue
		}
		value := s.tok.Value
		last := 0
		for i := 0; i < len(value); i++ {
			md, ok := delims[s.start+i]
			if !ok {
				continue
			}
			if i > last {
				out = append(out, span{start: s.start + last, tok: NewText(value[last:i], s.tok.Format)})
			}
			md.Format = s.tok.Format
			out = append(out, span{start: s.start + i, tok: md})
			last = i + 1
		}
		if last < len(value) {
			out = append(out, span{start: s.start + last, tok: NewText(value[last:], s.tok.Format)})
		}
	}
	// Pairs come grouped by flag, ordered and disjoint inside a group, so
	// one sweep over out per group applies them.
	for g := 0; g < len(pairs); {
		h := g
		for h < len(pairs) && pairs[h].flag == pairs[g].flag {
			h++
		}
		i := 0
		for _, pr := range pairs[g:h] {
			for i < len(out) && out[i].start < pr.open {
				i++
			}
			for i < len(out) && out[i].start <= pr.close {
				out[i].tok.Format = Union(out[i].tok.Format, pr.flag)
				i++
			}
		}
		g = h
	}
	return out, warnings
}
