package fstr

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// AliasTable maps textual emoji aliases such as ":)" to emoji. A table is
// read-only once built.
type AliasTable struct {
	aliases map[string]string
	lengths []int // distinct alias lengths, longest first
}

// NewAliasTable builds a table from alias -> emoji pairs.
func NewAliasTable(aliases map[string]string) *AliasTable {
	t := &AliasTable{aliases: make(map[string]string, len(aliases))}
	seen := make(map[int]struct{})
	for alias, emoji := range aliases {
		if alias == "" {
			continue
		}
		t.aliases[alias] = emoji
		if _, ok := seen[len(alias)]; !ok {
			seen[len(alias)] = struct{}{}
			t.lengths = append(t.lengths, len(alias))
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(t.lengths)))
	return t
}

// Lookup returns the emoji for alias.
func (t *AliasTable) Lookup(alias string) (string, bool) {
	if t == nil {
		return "", false
	}
	emoji, ok := t.aliases[alias]
	return emoji, ok
}

// matchAt returns the longest alias starting at pos.
func (t *AliasTable) matchAt(text string, pos int) (string, int, bool) {
	if t == nil {
		return "", 0, false
	}
	for _, n := range t.lengths {
		if pos+n > len(text) {
			continue
		}
		if emoji, ok := t.aliases[text[pos:pos+n]]; ok {
			return emoji, pos + n, true
		}
	}
	return "", 0, false
}

var defaultAliases = NewAliasTable(map[string]string{
	":)":  "\U0001F642",
	":-)": "\U0001F642",
	":(":  "\U0001F641",
	":-(": "\U0001F641",
	";)":  "\U0001F609",
	";-)": "\U0001F609",
	":D":  "\U0001F603",
	":-D": "\U0001F603",
	":P":  "\U0001F61B",
	":-P": "\U0001F61B",
	":p":  "\U0001F61B",
	":O":  "\U0001F62E",
	":o":  "\U0001F62E",
	":'(": "\U0001F622",
	":|":  "\U0001F610",
	"<3":  "❤️",
	"</3": "\U0001F494",
})

// DefaultAliases returns the built-in alias table.
func DefaultAliases() *AliasTable {
	return defaultAliases
}

// findEmoji returns the emoji ranges of value, relative to value.
func findEmoji(value string, cfg *parseConfig) []Emoji {
	var out []Emoji
	pos := 0
	for pos < len(value) {
		if cfg.textEmoji {
			if emoji, end, ok := cfg.aliases.matchAt(value, pos); ok && aliasBoundary(value, pos, end, cfg.wordRune) {
				out = append(out, Emoji{From: pos, To: end, Emoji: emoji})
				pos = end
				continue
			}
		}
		cluster := nextGrapheme(value[pos:])
		if cluster == "" {
			break
		}
		if isEmojiCluster(cluster) {
			out = append(out, Emoji{From: pos, To: pos + len(cluster)})
		}
		pos += len(cluster)
	}
	return out
}

// aliasBoundary requires an alias to stand alone: preceded by the start or
// whitespace and followed by the end, whitespace or punctuation.
func aliasBoundary(text string, start, end int, isWord func(rune) bool) bool {
	if r, ok := prevRune(text, start); ok && !unicode.IsSpace(r) {
		return false
	}
	if r, ok := nextRune(text, end); ok && (isWord(r) || !(unicode.IsSpace(r) || unicode.IsPunct(r))) {
		return false
	}
	return true
}

// isEmojiCluster reports whether a grapheme cluster renders as an emoji.
func isEmojiCluster(cluster string) bool {
	first, _ := utf8.DecodeRuneInString(cluster)
	if isEmojiPresentation(first) {
		return true
	}
	for _, r := range cluster {
		if r == 0xFE0F || r == 0x20E3 {
			return true
		}
	}
	return false
}

// isEmojiPresentation covers code points that default to emoji
// presentation without a variation selector.
func isEmojiPresentation(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // misc symbols and pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1FAFF: // supplemental, extended-A and B
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r >= 0x1F000 && r <= 0x1F02F, r >= 0x1F0A0 && r <= 0x1F0FF: // tiles, cards
		return true
	case r == 0x231A || r == 0x231B || r == 0x23F0 || r == 0x23F3:
		return true
	case r == 0x2614 || r == 0x2615 || r == 0x26A1 || r == 0x26BD || r == 0x26BE:
		return true
	case r == 0x2705 || r == 0x270A || r == 0x270B || r == 0x2728 || r == 0x274C || r == 0x2B50:
		return true
	default:
		return false
	}
}
