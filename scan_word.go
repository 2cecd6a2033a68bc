package fstr

// scanMarker matches marker followed by a run of word runes, starting at a
// word boundary.
func scanMarker(text string, pos int, marker byte, isWord func(rune) bool) (int, bool) {
	if pos >= len(text) || text[pos] != marker {
		return 0, false
	}
	if !atWordStart(text, pos, isWord) {
		return 0, false
	}
	end := wordRunEnd(text, pos+1, isWord)
	if end == pos+1 {
		return 0, false
	}
	return end, true
}

func scanCommand(text string, pos int, cfg *parseConfig) (match, bool) {
	end, ok := scanMarker(text, pos, '/', cfg.wordRune)
	if !ok {
		return match{}, false
	}
	value := text[pos:end]
	return match{start: pos, end: end, token: Token{Type: TypeCommand, Value: value, Command: value[1:]}}, true
}

func scanMention(text string, pos int, cfg *parseConfig) (match, bool) {
	end, ok := scanMarker(text, pos, '@', cfg.wordRune)
	if !ok {
		return match{}, false
	}
	value := text[pos:end]
	return match{start: pos, end: end, token: Token{Type: TypeMention, Value: value, Mention: value[1:]}}, true
}

func scanHashTag(text string, pos int, cfg *parseConfig) (match, bool) {
	end, ok := scanMarker(text, pos, '#', cfg.wordRune)
	if !ok {
		return match{}, false
	}
	value := text[pos:end]
	return match{start: pos, end: end, token: Token{Type: TypeHashTag, Value: value, HashTag: value[1:]}}, true
}

// scanUserSticker matches the legacy sticker form #u<digits>s#.
func scanUserSticker(text string, pos int, _ *parseConfig) (match, bool) {
	if pos+2 > len(text) || text[pos] != '#' || text[pos+1] != 'u' {
		return match{}, false
	}
	i := pos + 2
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == pos+2 || i+2 > len(text) || text[i] != 's' || text[i+1] != '#' {
		return match{}, false
	}
	end := i + 2
	return match{start: pos, end: end, token: Token{
		Type:      TypeUserSticker,
		Value:     text[pos:end],
		StickerID: text[pos+2 : i],
	}}, true
}
