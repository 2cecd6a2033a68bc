package fstr

import (
	"unicode"
	"unicode/utf8"
)

// match is a scanner hit covering text[start:end].
type match struct {
	start int
	end   int
	token Token
}

// scanner recognizes one token pattern starting exactly at pos.
type scanner struct {
	name    string
	enabled func(cfg *parseConfig) bool
	scan    func(text string, pos int, cfg *parseConfig) (match, bool)
}

// scanOrder is the priority in which scanners are tried at every position.
// The first hit wins.
var scanOrder = []scanner{
	{name: "user_sticker", enabled: func(cfg *parseConfig) bool { return cfg.userSticker }, scan: scanUserSticker},
	{name: "hashtag", enabled: func(cfg *parseConfig) bool { return cfg.hashtag }, scan: scanHashTag},
	{name: "mention", enabled: func(cfg *parseConfig) bool { return cfg.mention }, scan: scanMention},
	{name: "command", enabled: func(cfg *parseConfig) bool { return cfg.command }, scan: scanCommand},
	{name: "link", enabled: func(cfg *parseConfig) bool { return cfg.link }, scan: scanLink},
}

// scanAt tries the enabled scanners at pos in priority order.
func scanAt(text string, pos int, cfg *parseConfig) (match, bool) {
	for _, sc := range scanOrder {
		if !sc.enabled(cfg) {
			continue
		}
		if m, ok := sc.scan(text, pos, cfg); ok {
			return m, true
		}
	}
	return match{}, false
}

// IsWordRune reports whether r belongs to a word: letters, marks, decimal
// digits and connector punctuation such as '_'.
func IsWordRune(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.Nd, unicode.Pc)
}

// atWordStart reports whether pos is not preceded by a word rune.
func atWordStart(text string, pos int, isWord func(rune) bool) bool {
	if pos == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !isWord(prev)
}

// wordRunEnd returns the end of the run of word runes starting at pos.
func wordRunEnd(text string, pos int, isWord func(rune) bool) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		if !isWord(r) {
			break
		}
		pos += size
	}
	return pos
}

func prevRune(text string, pos int) (rune, bool) {
	if pos <= 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return r, true
}

func nextRune(text string, pos int) (rune, bool) {
	if pos >= len(text) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return r, true
}
