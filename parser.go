package fstr

import "unicode/utf8"

// Parse tokenizes text into a formatted sequence. Parsing never fails:
// anything no scanner recognizes becomes text.
//
// Commands are detected only with WithCommands(true); mentions, hashtags,
// user stickers, links, markdown and textual emoji are on by default.
func Parse(text string, opts ...ParseOption) Sequence {
	cfg := newParseConfig(opts)
	seq, _ := parse(text, &cfg)
	return seq
}

// ParseWithWarnings is Parse that also reports non-fatal problems such as
// unpaired markdown delimiters.
func ParseWithWarnings(text string, opts ...ParseOption) (Sequence, []Warning) {
	cfg := newParseConfig(opts)
	return parse(text, &cfg)
}

func parse(text string, cfg *parseConfig) (Sequence, []Warning) {
	return parseAfter("", text, cfg)
}

// parseAfter parses text as if it followed prefix. The prefix only takes
// part in word boundary checks; no token covers it.
func parseAfter(prefix, text string, cfg *parseConfig) (Sequence, []Warning) {
	full := text
	if prefix != "" {
		full = prefix + text
	}
	spans := scanSpans(full, len(prefix), cfg)
	var warnings []Warning
	if cfg.markdown {
		spans, warnings = applyMarkdown(full, spans, cfg)
		for i := range warnings {
			warnings[i].Pos -= len(prefix)
		}
	}
	out := make(Sequence, 0, len(spans))
	for _, s := range spans {
		if s.tok.Type != TypeText {
			out = append(out, s.tok)
			continue
		}
		s.tok.Emoji = findEmoji(s.tok.Value, cfg)
		if cfg.emojiTokens && len(s.tok.Emoji) > 0 {
			out = append(out, emojiTokens(s.tok)...)
			continue
		}
		out = append(out, s.tok)
	}
	return Merge(out), warnings
}

// scanSpans runs the word and link scanners over text[from:] left to
// right. Unmatched runes accumulate into a pending text span flushed before
// every match.
func scanSpans(text string, from int, cfg *parseConfig) []span {
	cfg.links = linkMemo{}
	var spans []span
	pending := from
	pos := from
	flush := func(end int) {
		if end > pending {
			spans = append(spans, span{start: pending, tok: NewText(text[pending:end], FormatNone)})
		}
	}
	for pos < len(text) {
		if m, ok := scanAt(text, pos, cfg); ok {
			flush(m.start)
			spans = append(spans, span{start: m.start, tok: m.token})
			pos = m.end
			pending = pos
			continue
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	flush(len(text))
	return spans
}

// emojiTokens splits a text token into text, Emoji and TextEmoji tokens
// along its emoji ranges.
func emojiTokens(t Token) []Token {
	var out []Token
	last := 0
	for _, e := range t.Emoji {
		if e.From > last {
			out = append(out, NewText(t.Value[last:e.From], t.Format))
		}
		value := t.Value[e.From:e.To]
		tok := Token{Type: TypeEmoji, Value: value, Format: t.Format, Emoji: []Emoji{{From: 0, To: len(value), Emoji: e.Emoji}}}
		if e.Emoji != "" {
			tok.Type = TypeTextEmoji
			tok.Alias = e.Emoji
		}
		out = append(out, tok)
		last = e.To
	}
	if last < len(t.Value) {
		out = append(out, NewText(t.Value[last:], t.Format))
	}
	return out
}
