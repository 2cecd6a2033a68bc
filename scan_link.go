package fstr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// knownTLDs limits bare host detection ("example.com") so that file names
// and abbreviations stay text. Hosts with a scheme or "www." skip the check.
var knownTLDs = map[string]struct{}{
	"ai": {}, "app": {}, "au": {}, "biz": {}, "br": {}, "by": {}, "ca": {},
	"ch": {}, "cn": {}, "co": {}, "com": {}, "cz": {}, "de": {}, "dev": {},
	"edu": {}, "es": {}, "eu": {}, "fi": {}, "fm": {}, "fr": {}, "gg": {},
	"gov": {}, "in": {}, "info": {}, "io": {}, "it": {}, "jp": {}, "kz": {},
	"ly": {}, "me": {}, "mil": {}, "net": {}, "nl": {}, "no": {}, "online": {},
	"org": {}, "pl": {}, "pro": {}, "ru": {}, "se": {}, "site": {}, "su": {},
	"tech": {}, "to": {}, "tv": {}, "ua": {}, "uk": {}, "us": {}, "xyz": {},
}

// maxTLDLen is the length of the longest entry in knownTLDs.
var maxTLDLen = func() int {
	n := 0
	for tld := range knownTLDs {
		n = max(n, len(tld))
	}
	return n
}()

// runMemo remembers the last byte run a link scanner walked. Every run is
// defined by a byte class alone, so any start inside it reaches the same
// end and the run is walked once per text.
type runMemo struct {
	start int
	end   int
	mark  int
}

func (m *runMemo) get(pos int) (end, mark int, ok bool) {
	if m.start <= pos && pos < m.end {
		return m.end, m.mark, true
	}
	return 0, 0, false
}

func (m *runMemo) set(start, end, mark int) {
	if end > start {
		*m = runMemo{start: start, end: end, mark: mark}
	}
}

// linkMemo holds the runs of one scanned text. scanSpans resets it.
type linkMemo struct {
	scheme runMemo
	local  runMemo
	host   runMemo
}

// scanLink detects URLs with a scheme, www. hosts, bare hosts with a known
// TLD and e-mail addresses.
func scanLink(text string, pos int, cfg *parseConfig) (match, bool) {
	if pos >= len(text) || !isASCIIAlnum(text[pos]) {
		return match{}, false
	}
	if !atWordStart(text, pos, cfg.wordRune) {
		return match{}, false
	}
	var end int
	var link string
	switch {
	case hasSchemePrefix(text, pos, &cfg.links.scheme):
		end = urlTailEnd(text, pos)
		link = text[pos:end]
	default:
		if e, ok := emailEnd(text, pos, &cfg.links); ok {
			end = e
			link = "mailto:" + text[pos:end]
			break
		}
		e, ok := hostEnd(text, pos, &cfg.links.host)
		if !ok {
			return match{}, false
		}
		end = urlTailEnd(text, e)
		link = "http://" + text[pos:end]
	}
	trimmed := trimURLSuffix(text[pos:end])
	if trimmed == "" {
		return match{}, false
	}
	link = link[:len(link)-(end-pos-len(trimmed))]
	end = pos + len(trimmed)
	if strings.HasSuffix(trimmed, "://") {
		return match{}, false
	}
	return match{start: pos, end: end, token: Token{
		Type:  TypeLink,
		Value: trimmed,
		Link:  link,
		Auto:  true,
	}}, true
}

// hasSchemePrefix reports whether text[pos:] starts with scheme "://".
func hasSchemePrefix(text string, pos int, memo *runMemo) bool {
	if pos >= len(text) || !isASCIILetter(text[pos]) {
		return false
	}
	end, _, ok := memo.get(pos)
	if !ok {
		end = pos
		for end < len(text) && isSchemeByte(text[end]) {
			end++
		}
		memo.set(pos, end, 0)
	}
	return strings.HasPrefix(text[end:], "://")
}

// hostEnd matches label(.label)+ at pos and returns the end of the host
// including an optional port.
func hostEnd(text string, pos int, memo *runMemo) (int, bool) {
	if pos >= len(text) || !isHostByte(text[pos]) {
		return 0, false
	}
	end, lastDot, ok := memo.get(pos)
	if !ok {
		end, lastDot = pos, -1
		for {
			for end < len(text) && isHostByte(text[end]) {
				end++
			}
			if end+1 < len(text) && text[end] == '.' && isASCIIAlnum(text[end+1]) {
				lastDot = end
				end++
				continue
			}
			break
		}
		memo.set(pos, end, lastDot)
	}
	if lastDot < pos {
		return 0, false
	}
	if !hasWWWPrefix(text[pos:end]) && !isKnownTLD(text[lastDot+1:end]) {
		return 0, false
	}
	i := end
	if i < len(text) && text[i] == ':' {
		j := i + 1
		for j < len(text) && text[j] >= '0' && text[j] <= '9' {
			j++
		}
		if j > i+1 {
			i = j
		}
	}
	if i < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[i:]); IsWordRune(r) {
			return 0, false
		}
	}
	return i, true
}

// emailEnd matches local@host.tld at pos.
func emailEnd(text string, pos int, memo *linkMemo) (int, bool) {
	end, _, ok := memo.local.get(pos)
	if !ok {
		end = pos
		for end < len(text) && isEmailLocal(text[end]) {
			end++
		}
		memo.local.set(pos, end, 0)
	}
	if end == pos || end >= len(text) || text[end] != '@' {
		return 0, false
	}
	return hostEnd(text, end+1, &memo.host)
}

func hasWWWPrefix(host string) bool {
	return len(host) >= 4 && strings.EqualFold(host[:4], "www.")
}

func isKnownTLD(label string) bool {
	if len(label) > maxTLDLen {
		return false
	}
	_, ok := knownTLDs[strings.ToLower(label)]
	return ok
}

// urlTailEnd extends a URL from pos up to the next whitespace or angle
// bracket.
func urlTailEnd(text string, pos int) int {
	i := pos
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		if unicode.IsSpace(r) || r == '<' || r == '>' || r == '"' {
			break
		}
		i += size
	}
	return i
}

// urlBrackets pairs the brackets a URL may close.
var urlBrackets = [...][2]byte{{'(', ')'}, {'[', ']'}, {'{', '}'}}

// trimURLSuffix drops trailing punctuation, markdown delimiters and
// unbalanced closing brackets from a detected URL.
func trimURLSuffix(s string) string {
	var unbalanced [len(urlBrackets)]int
	for k, pair := range urlBrackets {
		unbalanced[k] = strings.Count(s, string(pair[1])) - strings.Count(s, string(pair[0]))
	}
	for len(s) > 0 {
		last := s[len(s)-1]
		if strings.IndexByte(".,:;!?'\"*_~`", last) >= 0 {
			s = s[:len(s)-1]
			continue
		}
		k := closingBracket(last)
		if k >= 0 && unbalanced[k] > 0 {
			unbalanced[k]--
			s = s[:len(s)-1]
			continue
		}
		break
	}
	return s
}

func closingBracket(b byte) int {
	for k, pair := range urlBrackets {
		if pair[1] == b {
			return k
		}
	}
	return -1
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSchemeByte(b byte) bool {
	return isASCIIAlnum(b) || b == '+' || b == '-' || b == '.'
}

func isHostByte(b byte) bool {
	return isASCIIAlnum(b) || b == '-'
}

func isEmailLocal(b byte) bool {
	return isASCIIAlnum(b) || strings.IndexByte("._%+-", b) >= 0
}
